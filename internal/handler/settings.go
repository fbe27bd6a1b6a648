package handler

import (
	"log/slog"
	"net/http"

	"strata/internal/domain/models"
	"strata/internal/domain/services"
	"strata/internal/httputil"
)

// SettingsHandler handles the UI settings blob endpoints
type SettingsHandler struct {
	svc    services.SettingsService
	logger *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(svc services.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, logger: logger}
}

// Get reads the whole settings blob
// GET /api/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetAll(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if settings == nil {
		settings = models.Settings{}
	}

	httputil.RespondJSON(w, http.StatusOK, settings)
}

// Put upserts every submitted key
// PUT /api/settings
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := httputil.ParseJSON(w, r, &settings); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), settings); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, successResponse{Success: true})
}
