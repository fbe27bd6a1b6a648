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

// PostgresEntityRepository implements the EntityRepository interface for all
// five level tables. The level's kind selects the table and its extra columns.
type PostgresEntityRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewEntityRepository creates a new entity repository
func NewEntityRepository(config *RepositoryConfig) repositories.EntityRepository {
	return &PostgresEntityRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// entityColumns returns the select list for a level, base columns first.
func entityColumns(kind domain.Kind) string {
	cols := []string{"id", "code", "name", "folder_id", "sort_order", "created_at"}
	if col := kind.ParentColumn(); col != "" {
		cols = append(cols, col)
	}
	if kind == domain.KindTable {
		cols = append(cols, "color")
	}
	if kind == domain.KindView {
		cols = append(cols, "view_type")
	}
	return strings.Join(cols, ", ")
}

// scanTargets returns scan destinations matching entityColumns order.
func scanTargets(e *models.Entity) []interface{} {
	dest := []interface{}{&e.ID, &e.Code, &e.Name, &e.FolderID, &e.SortKey, &e.CreatedAt}
	if e.Kind.ParentColumn() != "" {
		dest = append(dest, &e.ParentID)
	}
	if e.Kind == domain.KindTable {
		dest = append(dest, &e.Color)
	}
	if e.Kind == domain.KindView {
		dest = append(dest, &e.ViewType)
	}
	return dest
}

// Insert stores a new entity row. Runs against the transaction in ctx when one
// is present, so the code allocation and the insert commit together.
func (r *PostgresEntityRepository) Insert(ctx context.Context, e *models.Entity) error {
	cols := []string{"id", "code", "name", "folder_id", "sort_order", "created_at"}
	args := []interface{}{e.ID, e.Code, e.Name, e.FolderID, e.SortKey, e.CreatedAt}

	if col := e.Kind.ParentColumn(); col != "" {
		cols = append(cols, col)
		args = append(args, e.ParentID)
	}
	if e.Kind == domain.KindTable {
		cols = append(cols, "color")
		args = append(args, e.Color)
	}
	if e.Kind == domain.KindView {
		cols = append(cols, "view_type")
		args = append(args, e.ViewType)
	}

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES (%s)
	`, r.tables.ForLevel(e.Kind), strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", e.Kind, err)
	}

	return nil
}

// GetByID retrieves one entity by id
func (r *PostgresEntityRepository) GetByID(ctx context.Context, kind domain.Kind, id string) (*models.Entity, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, entityColumns(kind), r.tables.ForLevel(kind))

	e := &models.Entity{Kind: kind}
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(scanTargets(e)...)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}

	return e, nil
}

// ListByParent retrieves a level's rows, scoped by the parent foreign key when
// parentID is non-nil. Ordered by sort key ascending.
func (r *PostgresEntityRepository) ListByParent(ctx context.Context, kind domain.Kind, parentID *string) ([]*models.Entity, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, entityColumns(kind), r.tables.ForLevel(kind))
	var args []interface{}

	if parentID != nil && kind.ParentColumn() != "" {
		query += fmt.Sprintf(" WHERE %s = $1", kind.ParentColumn())
		args = append(args, *parentID)
	}
	query += " ORDER BY sort_order ASC"

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var entities []*models.Entity
	for rows.Next() {
		e := &models.Entity{Kind: kind}
		if err := rows.Scan(scanTargets(e)...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}

	return entities, nil
}

// Update applies the present patch fields and returns the updated row
func (r *PostgresEntityRepository) Update(ctx context.Context, kind domain.Kind, id string, patch models.EntityPatch) (*models.Entity, error) {
	var sets []string
	var args []interface{}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.FolderIDSet {
		addSet("folder_id", models.NormalizeRef(patch.FolderID))
	}
	if patch.SortKey != nil {
		addSet("sort_order", *patch.SortKey)
	}
	if kind == domain.KindTable && patch.Color != nil {
		addSet("color", *patch.Color)
	}
	if kind == domain.KindView && patch.ViewType != nil {
		addSet("view_type", *patch.ViewType)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, kind, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE %s SET %s WHERE id = $%d RETURNING %s
	`, r.tables.ForLevel(kind), strings.Join(sets, ", "), len(args), entityColumns(kind))

	e := &models.Entity{Kind: kind}
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(scanTargets(e)...)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update %s: %w", kind, err)
	}

	return e, nil
}

// Delete removes exactly one row; descendants stay untouched by policy.
func (r *PostgresEntityRepository) Delete(ctx context.Context, kind domain.Kind, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.ForLevel(kind))

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", kind, err)
	}

	return result.RowsAffected() > 0, nil
}

// SetFolder reassigns folder membership only
func (r *PostgresEntityRepository) SetFolder(ctx context.Context, kind domain.Kind, id string, folderID *string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET folder_id = $1 WHERE id = $2`, r.tables.ForLevel(kind))

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, models.NormalizeRef(folderID), id)
	if err != nil {
		return false, fmt.Errorf("move %s: %w", kind, err)
	}

	return result.RowsAffected() > 0, nil
}

// Reorder rewrites sort key and folder placement for each listed id. Ids
// matching no row are skipped.
func (r *PostgresEntityRepository) Reorder(ctx context.Context, kind domain.Kind, items []models.ReorderItem) error {
	query := fmt.Sprintf(`UPDATE %s SET sort_order = $1, folder_id = $2 WHERE id = $3`, r.tables.ForLevel(kind))

	executor := GetExecutor(ctx, r.pool)
	for _, item := range items {
		if _, err := executor.Exec(ctx, query, item.SortKey, models.NormalizeRef(item.FolderID), item.ID); err != nil {
			return fmt.Errorf("reorder %s %s: %w", kind, item.ID, err)
		}
	}

	return nil
}
