package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ProbeRepo implements repository.ProbeRepository against a foreign database
type ProbeRepo struct {
	db *sqlx.DB
}

// NewProbeRepo creates a new probe repository
func NewProbeRepo(db *sqlx.DB) *ProbeRepo {
	return &ProbeRepo{db: db}
}

// TableExists checks whether table (optionally schema-qualified) is visible.
// The name is quoted the same way CountRows quotes it, so case is kept.
func (r *ProbeRepo) TableExists(ctx context.Context, table string) (bool, error) {
	ident, err := quoteTable(table)
	if err != nil {
		return false, err
	}

	var exists bool
	query := `SELECT to_regclass($1) IS NOT NULL`
	if err := r.db.GetContext(ctx, &exists, query, ident); err != nil {
		return false, err
	}
	return exists, nil
}

// CountRows returns number of rows in table
func (r *ProbeRepo) CountRows(ctx context.Context, table string) (int, error) {
	ident, err := quoteTable(table)
	if err != nil {
		return 0, err
	}

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, ident)
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}

// quoteTable quotes each part of a schema-qualified table name
func quoteTable(table string) (string, error) {
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", fmt.Errorf("invalid table name %q", table)
	}

	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("invalid table name %q", table)
		}
		quoted = append(quoted, pq.QuoteIdentifier(p))
	}
	return strings.Join(quoted, "."), nil
}
