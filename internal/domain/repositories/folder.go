package repositories

import (
	"context"

	"strata/internal/domain/models"
)

// FolderScope selects one (folderType, owner) forest. A nil Owner with
// OwnerScoped=true matches only unowned folders; OwnerScoped=false ignores the
// owner column entirely (root-level and unscoped listings).
type FolderScope struct {
	Type        string
	Owner       *string
	OwnerScoped bool
}

// FolderRepository defines data access for grouping folders.
type FolderRepository interface {
	// Insert stores a new folder (code pre-allocated, same transaction).
	Insert(ctx context.Context, f *models.Folder) error

	// GetByID retrieves one folder, ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// ListByScope retrieves the flat folder set of one scope, ordered by sort key.
	ListByScope(ctx context.Context, scope FolderScope) ([]models.Folder, error)

	// Update applies a partial update and returns the resulting row.
	Update(ctx context.Context, id string, patch models.FolderPatch) (*models.Folder, error)

	// Delete removes exactly one folder and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)

	// SetParent re-parents a folder within its type.
	SetParent(ctx context.Context, id string, parentID *string) (bool, error)

	// Reorder rewrites sort key and parent placement for each listed id.
	Reorder(ctx context.Context, items []models.ReorderItem) error
}
