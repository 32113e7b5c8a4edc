package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/halvard/teamstore/internal/core"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteServiceError maps core sentinel errors to HTTP statuses.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrDuplicateActiveRequest),
		errors.Is(err, core.ErrAlreadyResolved),
		errors.Is(err, core.ErrBucketExists):
		WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrTeamNotFound),
		errors.Is(err, core.ErrRequestNotFound),
		errors.Is(err, core.ErrBucketNotFound),
		errors.Is(err, core.ErrCredentialsNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrInvalidBucketName):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
