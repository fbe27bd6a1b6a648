package repositories

import (
	"context"

	"strata/internal/domain/models"
)

// SelectedViewRepository defines data access for the selected-view junction
// rows. Reads return rows denormalized against the view and its table.
type SelectedViewRepository interface {
	// Insert stores a new selection. Returns ErrConflict (as a ConflictError)
	// when the view is already selected - backed by the unique index, not a
	// read-then-insert check.
	Insert(ctx context.Context, sv *models.SelectedView) error

	// GetByID retrieves one denormalized selection, ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.SelectedView, error)

	// List retrieves all selections denormalized, ordered by sort key.
	List(ctx context.Context) ([]*models.SelectedView, error)

	// FindByViewID returns the selection referencing a view, nil when none.
	FindByViewID(ctx context.Context, viewID string) (*models.SelectedView, error)

	// Delete removes exactly one selection and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// SetFolder reassigns folder membership only.
	SetFolder(ctx context.Context, id string, folderID *string) (bool, error)

	// Reorder rewrites sort key and folder placement for each listed id.
	Reorder(ctx context.Context, items []models.ReorderItem) error

	// ResolveLocation walks view -> table -> project -> company -> shareholder
	// in one join. ErrNotFound when the view is missing or any link dangles.
	ResolveLocation(ctx context.Context, viewID string) (*models.ViewLocation, error)
}
