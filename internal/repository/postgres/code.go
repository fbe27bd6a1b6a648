package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"strata/internal/domain/repositories"
)

// codeCounterRow is the fixed id of the singleton counter row.
const codeCounterRow = 1

// PostgresCodeAllocator implements the CodeAllocator interface with a single
// atomic UPDATE ... RETURNING against the persisted counter. Joined to the
// caller's transaction through the context, the allocated code commits (or
// rolls back) together with the insert that consumes it.
type PostgresCodeAllocator struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCodeAllocator creates a new code allocator
func NewCodeAllocator(config *RepositoryConfig) repositories.CodeAllocator {
	return &PostgresCodeAllocator{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Next returns the next code as a zero-padded decimal string, at least four
// digits wide.
func (r *PostgresCodeAllocator) Next(ctx context.Context) (string, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET current_value = current_value + 1
		WHERE id = $1
		RETURNING current_value
	`, r.tables.CodeCounter)

	var value int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, codeCounterRow).Scan(&value); err != nil {
		return "", fmt.Errorf("allocate code: %w", err)
	}

	return fmt.Sprintf("%04d", value), nil
}
