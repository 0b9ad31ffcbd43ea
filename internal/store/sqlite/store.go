// Package sqlite implements the repository contracts (internal/repository)
// against the embedded columnar analytical store, opened read-only. Every
// query is a parameterized prepared statement; nothing in this package ever
// composes an identifier into query text: sql.Open against a
// modernc.org/sqlite DSN, fmt.Errorf-wrapped failures, short-lived
// *sql.Rows per call.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite" // registers "sqlite" driver (modernc.org/sqlite under the hood) and provides the gorm dialector
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"supplierwatch/internal/apierr"
)

// Store wraps the read-only analytical database handle. db serves the
// hot-path prepared-statement lookups; gdb serves the org-dashboard and
// stats aggregation queries.
type Store struct {
	db         *sql.DB
	gdb        *gorm.DB
	parquetDir string
}

// ErrReadOnlyRequired is returned when Open is asked to open a store
// without the read-only flag set.
var ErrReadOnlyRequired = errors.New("sqlite: read-only flag is required")

// Open opens the analytical store file in read-only mode exactly once; the
// returned *Store is shared read-only across every worker goroutine.
// readOnly must be true — the parameter exists to make the invariant
// visible at every call site rather than silently assumed. parquetDir
// names the sibling directory holding the per-source columnar freshness
// files the Stats rollup reads; pass "" if the deployment does not ship
// them, and StatsRollup reports no sources.
func Open(path string, readOnly bool, parquetDir string) (*Store, error) {
	if !readOnly {
		return nil, ErrReadOnlyRequired
	}
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("sqlite: store path required")
	}
	dsn := trimmed + "?mode=ro&_pragma=query_only(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping store: %w", err)
	}
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open gorm handle: %w", err)
	}
	return &Store{db: db, gdb: gdb, parquetDir: parquetDir}, nil
}

// OpenFixture opens (and schema-initializes) an in-memory store for tests.
// Production code never calls this: the analytical file is produced
// upstream by the ingestion pipeline.
func OpenFixture() (*Store, error) {
	const dsn = "file::memory:?cache=shared"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open fixture: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: apply fixture schema: %w", err)
	}
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open gorm fixture handle: %w", err)
	}
	return &Store{db: db, gdb: gdb}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// wrapStoreErr classifies a database/sql failure into apierr.ErrStore,
// preserving no query text or driver-internal detail beyond the Go error
// chain (never serialized to clients — see internal/httpapi/errors.go).
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apierr.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, apierr.ErrStore, err)
}
