package repositories

import (
	"context"
	"encoding/json"

	"strata/internal/domain/models"
)

// SettingsRepository defines data access for the settings key/value table.
type SettingsRepository interface {
	// GetAll reads the whole settings blob.
	GetAll(ctx context.Context) (models.Settings, error)

	// Upsert writes one key.
	Upsert(ctx context.Context, key string, value json.RawMessage) error
}
