package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/teamstore/internal/api/request"
	"github.com/halvard/teamstore/internal/api/response"
	"github.com/halvard/teamstore/internal/core"
)

type APIKey struct {
	svc *core.APIKeyService
}

func NewAPIKey(svc *core.APIKeyService) *APIKey {
	return &APIKey{svc: svc}
}

func (h *APIKey) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key, err := h.svc.Create(r.Context(), req.Name, req.Scopes)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	// The plaintext key is returned exactly once; only its hash is stored.
	response.WriteJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (h *APIKey) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Revoke(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
