package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables, indexes and the counter seed row if they do
// not exist yet. Runs at server startup and from the seeder.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			folder_id TEXT,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.Shareholders),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			shareholder_id TEXT,
			folder_id TEXT,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.Companies),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			company_id TEXT,
			folder_id TEXT,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.Projects),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			color TEXT NOT NULL DEFAULT '#3b82f6',
			project_id TEXT,
			folder_id TEXT,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.Tables),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			view_type TEXT NOT NULL DEFAULT 'grid',
			table_id TEXT,
			folder_id TEXT,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.Views),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			view_id TEXT NOT NULL UNIQUE,
			folder_id TEXT,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.SelectedViews),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			parent_id TEXT,
			owner_id TEXT,
			expanded BOOLEAN NOT NULL DEFAULT TRUE,
			sort_order BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, tables.Folders),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			current_value BIGINT NOT NULL DEFAULT 1000
		)`, tables.CodeCounter),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL
		)`, tables.Settings),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_shareholder ON %s (shareholder_id)`, tables.Companies, tables.Companies),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_company ON %s (company_id)`, tables.Projects, tables.Projects),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_project ON %s (project_id)`, tables.Tables, tables.Tables),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_table ON %s (table_id)`, tables.Views, tables.Views),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_parent ON %s (parent_id)`, tables.Folders, tables.Folders),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_scope ON %s (type, owner_id)`, tables.Folders, tables.Folders),

		fmt.Sprintf(`INSERT INTO %s (id, current_value) VALUES (%d, 1000) ON CONFLICT (id) DO NOTHING`,
			tables.CodeCounter, codeCounterRow),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
