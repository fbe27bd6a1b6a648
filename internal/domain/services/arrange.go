package services

import (
	"context"

	"strata/internal/domain/models"
)

// Arranger is the shared placement contract behind the move and reorder
// endpoints. Every addressable kind (the five levels, folders, selections)
// implements it once; dispatch happens over the closed Kind enum.
type Arranger interface {
	// Move reassigns container membership only (folder_id, or parent_id for
	// folders). Reports whether the row existed.
	Move(ctx context.Context, id string, containerID *string) (bool, error)

	// Reorder applies new sort keys (and container placement) to each listed
	// id in one logical batch. Ids that match no row are skipped.
	Reorder(ctx context.Context, items []models.ReorderItem) error
}
