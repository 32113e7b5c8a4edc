package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/teamstore/internal/api/request"
	"github.com/halvard/teamstore/internal/api/response"
	"github.com/halvard/teamstore/internal/core"
	"github.com/halvard/teamstore/internal/model"
)

type Credential struct {
	svc *core.CredentialService
}

func NewCredential(svc *core.CredentialService) *Credential {
	return &Credential{svc: svc}
}

func (h *Credential) Put(w http.ResponseWriter, r *http.Request) {
	teamID, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.PutCredentials
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	creds := model.Credentials{
		Endpoint:  req.Endpoint,
		AccessKey: req.AccessKey,
		SecretKey: req.SecretKey,
	}
	if err := h.svc.Put(r.Context(), teamID, creds); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Credential) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), teamID); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
