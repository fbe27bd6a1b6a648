package handler

import (
	"log/slog"
	"net/http"

	"strata/internal/domain/models"
	"strata/internal/domain/services"
	"strata/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	svc    services.FolderService
	logger *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(svc services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{svc: svc, logger: logger}
}

type folderCreatePayload struct {
	Name     *string `json:"name"`
	Type     string  `json:"type"`
	ParentID *string `json:"parent_id"`
	OwnerID  *string `json:"owner_id"`
}

type folderUpdatePayload struct {
	Name     *string                 `json:"name"`
	Expanded *bool                   `json:"expanded"`
	ParentID httputil.OptionalString `json:"parent_id"`
	SortKey  *int64                  `json:"sort_order"`
}

// List returns the flat folder set of one scope
// GET /api/folders?type=...&owner_id=...
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folderType := r.URL.Query().Get("type")

	var owner *string
	if v := r.URL.Query().Get("owner_id"); v != "" {
		owner = &v
	}

	folders, err := h.svc.GetAll(r.Context(), folderType, owner)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if folders == nil {
		folders = []models.Folder{}
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// Create stores a new folder
// POST /api/folders
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload folderCreatePayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Create(r.Context(), &models.CreateFolderRequest{
		Name:     payload.Name,
		Type:     payload.Type,
		ParentID: payload.ParentID,
		OwnerID:  payload.OwnerID,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, f)
}

// Update applies a partial update
// PUT /api/folders/{id}
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload folderUpdatePayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f, err := h.svc.Update(r.Context(), id, models.FolderPatch{
		Name:        payload.Name,
		Expanded:    payload.Expanded,
		ParentID:    payload.ParentID.Value,
		ParentIDSet: payload.ParentID.Present,
		SortKey:     payload.SortKey,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, f)
}

// Delete removes exactly one folder
// DELETE /api/folders/{id}
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, successResponse{Success: deleted})
}
