// Package sqlstore is the database/sql backend of the reference lists. It runs
// on SQLite for local use and on Postgres in shared environments.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB is an open database shared by the stores of every list.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to dsn and verifies the connection. For SQLite dsn is a file
// path whose directory is created when missing.
func Open(ctx context.Context, d Dialect, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: %s dsn is empty", d.Name)
	}
	if d.Name == SQLite.Name {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if d.Name == SQLite.Name {
		// One writer at a time; transactions would otherwise hit SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return &DB{db: db, dialect: d}, nil
}

// Migrate applies the schema of specs and the outbox table.
func (d *DB) Migrate(ctx context.Context, specs []domain.ListSpec) error {
	for _, stmt := range d.dialect.Schema(specs) {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// ListStore returns the store of one list.
func (d *DB) ListStore(spec domain.ListSpec, clk clock.Clock, opts ...Option) *Store {
	return newStore(d, spec, clk, opts...)
}

// Outbox returns the event sink writing to outbox_events.
func (d *DB) Outbox() *OutboxSink {
	return &OutboxSink{db: d}
}

// Dialect reports the engine in use.
func (d *DB) Dialect() Dialect { return d.dialect }

// SQL exposes the underlying pool for tests and health checks.
func (d *DB) SQL() *sql.DB { return d.db }

func (d *DB) Close() error {
	return d.db.Close()
}
