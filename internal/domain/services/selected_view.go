package services

import (
	"context"

	"strata/internal/domain/models"
)

// SelectedViewService manages the cross-cutting selection collection.
type SelectedViewService interface {
	Arranger

	// GetAll returns selections denormalized with view/table display fields,
	// merged with selection folders into a tree.
	GetAll(ctx context.Context) ([]*models.TreeNode, error)

	// Create marks a view as selected. ErrConflict when already selected.
	Create(ctx context.Context, viewID string, folderID *string) (*models.SelectedView, error)

	// Delete removes one selection and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// CheckSelected reports whether a view is currently selected.
	CheckSelected(ctx context.Context, viewID string) (models.SelectionStatus, error)

	// GetViewLocation resolves the full ancestry path of a view. ErrNotFound
	// when the view is missing or any ancestor link dangles - never a
	// partially filled location.
	GetViewLocation(ctx context.Context, viewID string) (*models.ViewLocation, error)
}
