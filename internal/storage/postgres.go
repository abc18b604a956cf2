package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// DefaultTable is the key-value table used when none is configured.
const DefaultTable = "kv_store"

// PostgresBackend keeps every key as one row of a two-column table.
type PostgresBackend struct {
	db    *sql.DB
	table string // already quoted
}

// NewPostgresBackend wraps an open connection pool. Call EnsureSchema once
// before use on a fresh database.
func NewPostgresBackend(db *sql.DB, table string) *PostgresBackend {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresBackend{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the key-value table if it does not exist.
func (p *PostgresBackend) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("storage: creating %s: %w", p.table, describePQ(err))
	}
	return nil
}

func (p *PostgresBackend) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, p.table), key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, describePQ(err)
	}
	return value, true, nil
}

func (p *PostgresBackend) SetItem(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`, p.table),
		key, value,
	)
	return describePQ(err)
}

func (p *PostgresBackend) RemoveItem(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, p.table), key)
	return describePQ(err)
}

// describePQ adds the SQLSTATE condition name to driver errors.
func describePQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%w (%s)", err, pqErr.Code.Name())
	}
	return err
}
