package handler

import (
	"log/slog"
	"net/http"

	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/httputil"
	"strata/internal/service"
)

// ArrangeHandler dispatches move and reorder requests to the registered
// arranger for the request's kind.
type ArrangeHandler struct {
	registry *service.ArrangeRegistry
	logger   *slog.Logger
}

// NewArrangeHandler creates a new arrange handler
func NewArrangeHandler(registry *service.ArrangeRegistry, logger *slog.Logger) *ArrangeHandler {
	return &ArrangeHandler{registry: registry, logger: logger}
}

type movePayload struct {
	FolderID *string `json:"folder_id"`
}

type reorderItemPayload struct {
	ID       string  `json:"id"`
	SortKey  int64   `json:"sort_order"`
	FolderID *string `json:"folder_id"`
	ParentID *string `json:"parent_id"`
}

type reorderPayload struct {
	Type  string               `json:"type"`
	Items []reorderItemPayload `json:"items"`
}

// Move reassigns container membership for one row
// PUT /api/move/{type}/{id}
func (h *ArrangeHandler) Move(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseKind(r.PathValue("type"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var payload movePayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	arranger, err := h.registry.For(kind)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	moved, err := arranger.Move(r.Context(), r.PathValue("id"), payload.FolderID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, successResponse{Success: moved})
}

// Reorder applies a batch of sort-key updates for one kind
// PUT /api/reorder
func (h *ArrangeHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var payload reorderPayload
	if err := httputil.ParseJSON(w, r, &payload); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := domain.ParseKind(payload.Type)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	arranger, err := h.registry.For(kind)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	items := make([]models.ReorderItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, models.ReorderItem{
			ID:       item.ID,
			SortKey:  item.SortKey,
			FolderID: item.FolderID,
			ParentID: item.ParentID,
		})
	}

	if err := arranger.Reorder(r.Context(), items); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, successResponse{Success: true})
}
