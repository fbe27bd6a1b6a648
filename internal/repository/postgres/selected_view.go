package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"strata/internal/domain"
	"strata/internal/domain/models"
	"strata/internal/domain/repositories"
)

// PostgresSelectedViewRepository implements the SelectedViewRepository interface
type PostgresSelectedViewRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSelectedViewRepository creates a new selected-view repository
func NewSelectedViewRepository(config *RepositoryConfig) repositories.SelectedViewRepository {
	return &PostgresSelectedViewRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// denormalizedQuery joins each selection against its view and the view's table
// so the client can render name, type and color without extra lookups.
func (r *PostgresSelectedViewRepository) denormalizedQuery(where string) string {
	return fmt.Sprintf(`
		SELECT s.id, s.code, s.view_id, s.folder_id, s.sort_order, s.created_at,
		       v.name, v.view_type, t.name, t.color
		FROM %s s
		JOIN %s v ON s.view_id = v.id
		JOIN %s t ON v.table_id = t.id
		%s
		ORDER BY s.sort_order ASC
	`, r.tables.SelectedViews, r.tables.Views, r.tables.Tables, where)
}

func scanSelectedView(row interface{ Scan(...interface{}) error }, sv *models.SelectedView) error {
	return row.Scan(
		&sv.ID,
		&sv.Code,
		&sv.ViewID,
		&sv.FolderID,
		&sv.SortKey,
		&sv.CreatedAt,
		&sv.ViewName,
		&sv.ViewType,
		&sv.TableName,
		&sv.TableColor,
	)
}

// Insert stores a new selection. The unique index on view_id enforces the
// at-most-one-selection invariant; violations surface as ConflictError.
func (r *PostgresSelectedViewRepository) Insert(ctx context.Context, sv *models.SelectedView) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, code, view_id, folder_id, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.SelectedViews)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		sv.ID,
		sv.Code,
		sv.ViewID,
		sv.FolderID,
		sv.SortKey,
		sv.CreatedAt,
	)
	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "view already selected",
				ResourceType: "view",
				ResourceID:   sv.ViewID,
			}
		}
		return fmt.Errorf("insert selected view: %w", err)
	}

	return nil
}

// GetByID retrieves one denormalized selection
func (r *PostgresSelectedViewRepository) GetByID(ctx context.Context, id string) (*models.SelectedView, error) {
	query := r.denormalizedQuery("WHERE s.id = $1")

	var sv models.SelectedView
	executor := GetExecutor(ctx, r.pool)
	if err := scanSelectedView(executor.QueryRow(ctx, query, id), &sv); err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("selected view %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get selected view: %w", err)
	}

	return &sv, nil
}

// List retrieves all selections denormalized, ordered by sort key
func (r *PostgresSelectedViewRepository) List(ctx context.Context) ([]*models.SelectedView, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, r.denormalizedQuery(""))
	if err != nil {
		return nil, fmt.Errorf("list selected views: %w", err)
	}
	defer rows.Close()

	var selections []*models.SelectedView
	for rows.Next() {
		var sv models.SelectedView
		if err := scanSelectedView(rows, &sv); err != nil {
			return nil, fmt.Errorf("scan selected view: %w", err)
		}
		selections = append(selections, &sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selected views: %w", err)
	}

	return selections, nil
}

// FindByViewID returns the selection referencing a view, nil when none exists
func (r *PostgresSelectedViewRepository) FindByViewID(ctx context.Context, viewID string) (*models.SelectedView, error) {
	query := fmt.Sprintf(`
		SELECT id, code, view_id, folder_id, sort_order, created_at
		FROM %s WHERE view_id = $1
	`, r.tables.SelectedViews)

	var sv models.SelectedView
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, viewID).Scan(
		&sv.ID,
		&sv.Code,
		&sv.ViewID,
		&sv.FolderID,
		&sv.SortKey,
		&sv.CreatedAt,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find selected view: %w", err)
	}

	return &sv, nil
}

// Delete removes exactly one selection
func (r *PostgresSelectedViewRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.SelectedViews)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete selected view: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// SetFolder reassigns folder membership only
func (r *PostgresSelectedViewRepository) SetFolder(ctx context.Context, id string, folderID *string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET folder_id = $1 WHERE id = $2`, r.tables.SelectedViews)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, models.NormalizeRef(folderID), id)
	if err != nil {
		return false, fmt.Errorf("move selected view: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Reorder rewrites sort key and folder placement for each listed id
func (r *PostgresSelectedViewRepository) Reorder(ctx context.Context, items []models.ReorderItem) error {
	query := fmt.Sprintf(`UPDATE %s SET sort_order = $1, folder_id = $2 WHERE id = $3`, r.tables.SelectedViews)

	executor := GetExecutor(ctx, r.pool)
	for _, item := range items {
		if _, err := executor.Exec(ctx, query, item.SortKey, models.NormalizeRef(item.FolderID), item.ID); err != nil {
			return fmt.Errorf("reorder selected view %s: %w", item.ID, err)
		}
	}

	return nil
}

// ResolveLocation walks the full ancestry chain in one join. Inner joins mean
// a dangling link anywhere yields no row at all, never a partial path.
func (r *PostgresSelectedViewRepository) ResolveLocation(ctx context.Context, viewID string) (*models.ViewLocation, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.name,
		       t.id, t.name,
		       p.id, p.name,
		       c.id, c.name,
		       s.id, s.name
		FROM %s v
		JOIN %s t ON v.table_id = t.id
		JOIN %s p ON t.project_id = p.id
		JOIN %s c ON p.company_id = c.id
		JOIN %s s ON c.shareholder_id = s.id
		WHERE v.id = $1
	`, r.tables.Views, r.tables.Tables, r.tables.Projects, r.tables.Companies, r.tables.Shareholders)

	var view, table, project, company, shareholder models.LocationRef
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, viewID).Scan(
		&view.ID, &view.Name,
		&table.ID, &table.Name,
		&project.ID, &project.Name,
		&company.ID, &company.Name,
		&shareholder.ID, &shareholder.Name,
	)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("view %s location: %w", viewID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve view location: %w", err)
	}

	return &models.ViewLocation{
		Shareholder: &shareholder,
		Company:     &company,
		Project:     &project,
		Table:       &table,
		View:        &view,
	}, nil
}
