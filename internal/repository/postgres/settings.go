package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
)

// PostgresSettingsRepository implements the SettingsRepository interface
type PostgresSettingsRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(config *RepositoryConfig) repositories.SettingsRepository {
	return &PostgresSettingsRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetAll reads the whole settings blob
func (r *PostgresSettingsRepository) GetAll(ctx context.Context) (models.Settings, error) {
	query := fmt.Sprintf(`SELECT key, value FROM %s`, r.tables.Settings)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	defer rows.Close()

	settings := models.Settings{}
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}

	return settings, nil
}

// Upsert writes one key
func (r *PostgresSettingsRepository) Upsert(ctx context.Context, key string, value json.RawMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, r.tables.Settings)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, key, []byte(value)); err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}

	return nil
}
