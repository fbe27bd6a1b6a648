package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"strata/internal/domain"
	"strata/internal/httputil"
)

// handleError maps domain errors to HTTP status codes
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		// Storage and other internal failures keep their message on the wire.
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}

// successResponse is the wire shape of delete/move/reorder results
type successResponse struct {
	Success bool `json:"success"`
}
