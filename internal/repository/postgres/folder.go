package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
)

const folderColumns = "id, code, name, type, parent_id, owner_id, expanded, sort_order, created_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func scanFolder(row interface{ Scan(...interface{}) error }, f *models.Folder) error {
	return row.Scan(
		&f.ID,
		&f.Code,
		&f.Name,
		&f.Type,
		&f.ParentID,
		&f.OwnerID,
		&f.Expanded,
		&f.SortKey,
		&f.CreatedAt,
	)
}

// Insert stores a new folder row
func (r *PostgresFolderRepository) Insert(ctx context.Context, f *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, code, name, type, parent_id, owner_id, expanded, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		f.ID,
		f.Code,
		f.Name,
		f.Type,
		f.ParentID,
		f.OwnerID,
		f.Expanded,
		f.SortKey,
		f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert folder: %w", err)
	}

	return nil
}

// GetByID retrieves one folder by id
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	var f models.Folder
	executor := GetExecutor(ctx, r.pool)
	if err := scanFolder(executor.QueryRow(ctx, query, id), &f); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &f, nil
}

// ListByScope retrieves the flat folder set of one (type, owner) scope
func (r *PostgresFolderRepository) ListByScope(ctx context.Context, scope repositories.FolderScope) ([]models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE type = $1`, folderColumns, r.tables.Folders)
	args := []interface{}{scope.Type}

	if scope.Owner != nil {
		args = append(args, *scope.Owner)
		query += fmt.Sprintf(" AND owner_id = $%d", len(args))
	} else if scope.OwnerScoped {
		query += " AND owner_id IS NULL"
	}
	query += " ORDER BY sort_order ASC"

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := scanFolder(rows, &f); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// Update applies the present patch fields and returns the updated row
func (r *PostgresFolderRepository) Update(ctx context.Context, id string, patch models.FolderPatch) (*models.Folder, error) {
	var sets []string
	var args []interface{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Expanded != nil {
		addSet("expanded", *patch.Expanded)
	}
	if patch.ParentIDSet {
		addSet("parent_id", models.NormalizeRef(patch.ParentID))
	}
	if patch.SortKey != nil {
		addSet("sort_order", *patch.SortKey)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE %s SET %s WHERE id = $%d RETURNING %s
	`, r.tables.Folders, strings.Join(sets, ", "), len(args), folderColumns)

	var f models.Folder
	executor := GetExecutor(ctx, r.pool)
	if err := scanFolder(executor.QueryRow(ctx, query, args...), &f); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update folder: %w", err)
	}

	return &f, nil
}

// Delete removes exactly one folder; contents are never cascaded.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete folder: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// SetParent re-parents a folder
func (r *PostgresFolderRepository) SetParent(ctx context.Context, id string, parentID *string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET parent_id = $1 WHERE id = $2`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, models.NormalizeRef(parentID), id)
	if err != nil {
		return false, fmt.Errorf("move folder: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Reorder rewrites sort key and parent placement for each listed id
func (r *PostgresFolderRepository) Reorder(ctx context.Context, items []models.ReorderItem) error {
	query := fmt.Sprintf(`UPDATE %s SET sort_order = $1, parent_id = $2 WHERE id = $3`, r.tables.Folders)

	executor := GetExecutor(ctx, r.pool)
	for _, item := range items {
		if _, err := executor.Exec(ctx, query, item.SortKey, models.NormalizeRef(item.ParentID), item.ID); err != nil {
			return fmt.Errorf("reorder folder %s: %w", item.ID, err)
		}
	}

	return nil
}
