package services

import (
	"context"

	"strata/internal/domain/models"
)

// FolderService manages grouping folders, keyed by (folder type, owner).
type FolderService interface {
	Arranger

	// GetAll returns the flat folder list of one scope ordered by sort key.
	GetAll(ctx context.Context, folderType string, ownerID *string) ([]models.Folder, error)

	// Create stores a new folder; expanded defaults to true.
	Create(ctx context.Context, req *models.CreateFolderRequest) (*models.Folder, error)

	// Update may rename, toggle expanded, re-parent or re-sort.
	Update(ctx context.Context, id string, patch models.FolderPatch) (*models.Folder, error)

	// Delete removes exactly one folder; contained rows are never cascaded.
	Delete(ctx context.Context, id string) (bool, error)
}
