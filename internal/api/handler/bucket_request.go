package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/teamstore/internal/api/request"
	"github.com/halvard/teamstore/internal/api/response"
	"github.com/halvard/teamstore/internal/core"
)

type BucketRequest struct {
	svc *core.RequestService
}

func NewBucketRequest(svc *core.RequestService) *BucketRequest {
	return &BucketRequest{svc: svc}
}

func (h *BucketRequest) Submit(w http.ResponseWriter, r *http.Request) {
	teamID, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.SubmitBucketRequest
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestID, err := h.svc.Submit(r.Context(), req.RequesterID, teamID, req.BucketName)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusAccepted, map[string]string{"request_id": requestID})
}

func (h *BucketRequest) List(w http.ResponseWriter, r *http.Request) {
	teamID, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var summaries any
	if raw := r.URL.Query().Get("requester_id"); raw != "" {
		requesterID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || requesterID <= 0 {
			response.WriteError(w, http.StatusBadRequest, "invalid requester_id")
			return
		}
		summaries, err = h.svc.ListPendingForUser(r.Context(), requesterID, teamID)
		if err != nil {
			response.WriteServiceError(w, err)
			return
		}
	} else {
		var err error
		summaries, err = h.svc.ListPendingForTeam(r.Context(), teamID)
		if err != nil {
			response.WriteServiceError(w, err)
			return
		}
	}

	response.WriteJSON(w, http.StatusOK, summaries)
}

func (h *BucketRequest) Decide(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")
	if requestID == "" {
		response.WriteError(w, http.StatusBadRequest, "request id is required")
		return
	}

	var req request.Decision
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resolution, err := h.svc.Decide(r.Context(), requestID, *req.Approved)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, resolution)
}
