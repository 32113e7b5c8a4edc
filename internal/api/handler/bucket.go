package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/teamstore/internal/api/request"
	"github.com/halvard/teamstore/internal/api/response"
	"github.com/halvard/teamstore/internal/core"
)

type Bucket struct {
	svc *core.BucketService
}

func NewBucket(svc *core.BucketService) *Bucket {
	return &Bucket{svc: svc}
}

func (h *Bucket) List(w http.ResponseWriter, r *http.Request) {
	teamID, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	buckets, err := h.svc.List(r.Context(), teamID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, buckets)
}

func (h *Bucket) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := chi.URLParam(r, "bucketName")
	if name == "" {
		response.WriteError(w, http.StatusBadRequest, "bucket name is required")
		return
	}

	if err := h.svc.Delete(r.Context(), teamID, name); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
