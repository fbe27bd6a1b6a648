package service

import (
	"context"
	"fmt"
	"log/slog"

	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
	"strata/internal/domain/services"
)

// settingsService implements the SettingsService interface. Values are opaque
// JSON; the server never inspects them.
type settingsService struct {
	settingsRepo repositories.SettingsRepository
	logger       *slog.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repositories.SettingsRepository, logger *slog.Logger) services.SettingsService {
	return &settingsService{settingsRepo: settingsRepo, logger: logger}
}

// GetAll reads the whole settings blob
func (s *settingsService) GetAll(ctx context.Context) (models.Settings, error) {
	return s.settingsRepo.GetAll(ctx)
}

// Update upserts every submitted key, leaving other keys untouched.
func (s *settingsService) Update(ctx context.Context, settings models.Settings) error {
	for key, value := range settings {
		if err := s.settingsRepo.Upsert(ctx, key, value); err != nil {
			return fmt.Errorf("update setting %s: %w", key, err)
		}
	}
	return nil
}
