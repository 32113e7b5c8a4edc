package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/teamstore/internal/api/request"
	"github.com/halvard/teamstore/internal/api/response"
	"github.com/halvard/teamstore/internal/core"
)

type Team struct {
	svc *core.TeamService
}

func NewTeam(svc *core.TeamService) *Team {
	return &Team{svc: svc}
}

func (h *Team) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTeam
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, team)
}

func (h *Team) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ParseID(chi.URLParam(r, "teamID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	team, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, team)
}

func (h *Team) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, teams)
}
