package handler

import (
	"log/slog"
	"net/http"

	"strata/internal/domain/models"
	"strata/internal/domain/services"
	"strata/internal/httputil"
)

// SelectedViewHandler handles the selected-view collection endpoints
type SelectedViewHandler struct {
	svc    services.SelectedViewService
	logger *slog.Logger
}

// NewSelectedViewHandler creates a new selected-view handler
func NewSelectedViewHandler(svc services.SelectedViewService, logger *slog.Logger) *SelectedViewHandler {
	return &SelectedViewHandler{svc: svc, logger: logger}
}

type selectedCreatePayload struct {
	ViewID   string  `json:"view_id"`
	FolderID *string `json:"folder_id"`
}

// List returns the selection tree
// GET /api/selected
func (h *SelectedViewHandler) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.GetAll(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if nodes == nil {
		nodes = []*models.TreeNode{}
	}

	httputil.RespondJSON(w, http.StatusOK, nodes)
}

// Create marks a view as selected
// POST /api/selected
func (h *SelectedViewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload selectedCreatePayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sv, err := h.svc.Create(r.Context(), payload.ViewID, payload.FolderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sv)
}

// Delete removes one selection
// DELETE /api/selected/{id}
func (h *SelectedViewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, successResponse{Success: deleted})
}

// Check reports whether a view is currently selected
// GET /api/selected/check/{viewId}
func (h *SelectedViewHandler) Check(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.CheckSelected(r.Context(), r.PathValue("viewId"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, status)
}

// Location resolves the full ancestry path of a view
// GET /api/views/{id}/location
func (h *SelectedViewHandler) Location(w http.ResponseWriter, r *http.Request) {
	location, err := h.svc.GetViewLocation(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, location)
}
