package handler

import (
	"log/slog"
	"net/http"

	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/services"
	"strata/internal/httputil"
)

// EntityHandler handles HTTP requests for one hierarchy level. One instance is
// registered per level; the wire payloads carry the level's parent foreign-key
// field by name.
type EntityHandler struct {
	kind   domain.Kind
	svc    services.EntityService
	logger *slog.Logger
}

// NewEntityHandler creates a new entity handler for one level
func NewEntityHandler(kind domain.Kind, svc services.EntityService, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{kind: kind, svc: svc, logger: logger}
}

// entityCreatePayload is the creation wire shape. Each level reads its own
// parent field; the others stay nil and are ignored.
type entityCreatePayload struct {
	Name          *string `json:"name"`
	FolderID      *string `json:"folder_id"`
	ShareholderID *string `json:"shareholder_id"`
	CompanyID     *string `json:"company_id"`
	ProjectID     *string `json:"project_id"`
	TableID       *string `json:"table_id"`
	Color         *string `json:"color"`
	ViewType      *string `json:"view_type"`
	Cascade       *bool   `json:"cascade"`
}

func (p *entityCreatePayload) parentFor(kind domain.Kind) *string {
	switch kind.ParentColumn() {
	case "shareholder_id":
		return p.ShareholderID
	case "company_id":
		return p.CompanyID
	case "project_id":
		return p.ProjectID
	case "table_id":
		return p.TableID
	default:
		return nil
	}
}

// entityUpdatePayload is the partial-update wire shape. folder_id is tri-state:
// absent leaves it alone, null moves the row to the root.
type entityUpdatePayload struct {
	Name     *string                 `json:"name"`
	FolderID httputil.OptionalString `json:"folder_id"`
	SortKey  *int64                  `json:"sort_order"`
	Color    *string                 `json:"color"`
	ViewType *string                 `json:"view_type"`
}

// List returns the level's tree, scoped by the parent id query param when given
// GET /api/{level}s?{parent_id}=...
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	var owner *string
	if col := h.kind.ParentColumn(); col != "" {
		if v := r.URL.Query().Get(col); v != "" {
			owner = &v
		}
	}

	nodes, err := h.svc.GetAll(r.Context(), owner)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	if nodes == nil {
		nodes = []*models.TreeNode{}
	}

	httputil.RespondJSON(w, http.StatusOK, nodes)
}

// Create stores a new entity; cascade defaults to true
// POST /api/{level}s
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload entityCreatePayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cascade := true
	if payload.Cascade != nil {
		cascade = *payload.Cascade
	}

	req := &models.CreateEntityRequest{
		Name:     payload.Name,
		FolderID: payload.FolderID,
		ParentID: payload.parentFor(h.kind),
		Color:    payload.Color,
		ViewType: payload.ViewType,
	}

	e, err := h.svc.Create(r.Context(), req, cascade)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, e)
}

// Update applies a partial update
// PUT /api/{level}s/{id}
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload entityUpdatePayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := models.EntityPatch{
		Name:        payload.Name,
		FolderID:    payload.FolderID.Value,
		FolderIDSet: payload.FolderID.Present,
		SortKey:     payload.SortKey,
		Color:       payload.Color,
		ViewType:    payload.ViewType,
	}

	e, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, e)
}

// Delete removes exactly one row
// DELETE /api/{level}s/{id}
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, successResponse{Success: deleted})
}
