package services

import (
	"context"

	"strata/internal/domain/models"
)

// EntityService is the per-level hierarchy contract. One instance exists per
// level, all sharing an implementation parameterized by Kind.
type EntityService interface {
	Arranger

	// GetAll returns the level's tree scoped to one parent instance (nil for
	// the root level or unscoped listings).
	GetAll(ctx context.Context, ownerID *string) ([]*models.TreeNode, error)

	// Create stores a new entity. With cascade, one placeholder child is
	// created at every level further down the chain.
	Create(ctx context.Context, req *models.CreateEntityRequest, cascade bool) (*models.Entity, error)

	// Update applies the fields present in the patch. An empty patch returns
	// the current row unchanged.
	Update(ctx context.Context, id string, patch models.EntityPatch) (*models.Entity, error)

	// Delete removes exactly one row; descendants are never cascaded.
	Delete(ctx context.Context, id string) (bool, error)
}
