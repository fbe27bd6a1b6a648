package repositories

import (
	"context"

	"strata/internal/domain"
	"strata/internal/domain/models"
)

// EntityRepository defines data access for the five hierarchy levels. The kind
// argument selects the backing table; callers only pass hierarchy-level kinds.
type EntityRepository interface {
	// Insert stores a new entity. The entity's Code must already be allocated;
	// Insert is expected to run inside the same transaction as the allocation.
	Insert(ctx context.Context, e *models.Entity) error

	// GetByID retrieves one entity, ErrNotFound when absent.
	GetByID(ctx context.Context, kind domain.Kind, id string) (*models.Entity, error)

	// ListByParent retrieves all entities of a level, filtered by the level's
	// parent foreign key when parentID is non-nil. Ordered by sort key.
	ListByParent(ctx context.Context, kind domain.Kind, parentID *string) ([]*models.Entity, error)

	// Update applies a partial update and returns the resulting row,
	// ErrNotFound when the id does not exist.
	Update(ctx context.Context, kind domain.Kind, id string, patch models.EntityPatch) (*models.Entity, error)

	// Delete removes exactly one row and reports whether it existed.
	Delete(ctx context.Context, kind domain.Kind, id string) (bool, error)

	// SetFolder reassigns folder membership only.
	SetFolder(ctx context.Context, kind domain.Kind, id string, folderID *string) (bool, error)

	// Reorder rewrites sort key and folder placement for each listed id.
	// Unknown ids are skipped.
	Reorder(ctx context.Context, kind domain.Kind, items []models.ReorderItem) error
}
