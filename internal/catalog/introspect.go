// internal/catalog/introspect.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	ErrTableLookupFailed  = errors.New("TABLE_LOOKUP_FAILED")
	ErrColumnLookupFailed = errors.New("COLUMN_LOOKUP_FAILED")
)

// SchemaIntrospector reports what the live database actually looks like.
// The store re-asks on every operation instead of caching, so a deploy
// that adds or renames a price column changes behavior without a restart.
type SchemaIntrospector interface {
	HasTable(ctx context.Context, table string) (bool, error)
	Columns(ctx context.Context, table string) ([]string, error)
}

// PostgresIntrospector answers from information_schema in the current
// search-path schema.
type PostgresIntrospector struct {
	db *sql.DB
}

func NewPostgresIntrospector(db *sql.DB) *PostgresIntrospector {
	return &PostgresIntrospector{db: db}
}

func (p *PostgresIntrospector) HasTable(ctx context.Context, table string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	)`

	var exists bool
	if err := p.db.QueryRowContext(ctx, query, table).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: %v", ErrTableLookupFailed, err)
	}
	return exists, nil
}

func (p *PostgresIntrospector) Columns(ctx context.Context, table string) ([]string, error) {
	const query = `SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
		ORDER BY ordinal_position`

	rows, err := p.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrColumnLookupFailed, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrColumnLookupFailed, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrColumnLookupFailed, err)
	}
	return columns, nil
}
