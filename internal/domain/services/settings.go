package services

import (
	"context"

	"strata/internal/domain/models"
)

// SettingsService round-trips the opaque UI settings blob.
type SettingsService interface {
	// GetAll reads the whole blob.
	GetAll(ctx context.Context) (models.Settings, error)

	// Update upserts every submitted key, leaving other keys untouched.
	Update(ctx context.Context, settings models.Settings) error
}
