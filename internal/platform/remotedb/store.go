// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package remotedb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Row is one materialized result row. Values carry SQLite's dynamic types:
// int64, float64, string, or nil. Materializing rows (instead of streaming
// *sql.Rows) is what makes results safely cacheable upstream.
type Row []any

// storeSequence disambiguates the logical file names of concurrently open
// stores inside the shared VFS registry.
var storeSequence atomic.Int64

// Store is the remote paged store adapter: SQL text + positional parameters
// in, materialized rows out, byte-range fetches underneath.
//
// The store holds exactly one SQLite connection. The backing file format is
// designed around a single reader, and one connection also keeps the chunk
// cache access pattern sequential.
type Store struct {
	db     *sql.DB
	pager  *Pager
	name   string
	logger *slog.Logger
}

// Open constructs the adapter: size handshake, VFS attachment, and a format
// handshake (schema probe) that forces the first header pages to be fetched.
//
// Every failure path detaches the pager and propagates the error; retry
// policy belongs to the connection singleton, not here.
func Open(ctx context.Context, datasetURL string, chunkSize int, fetchTimeout time.Duration, logger *slog.Logger) (*Store, error) {
	if err := registerVFS(); err != nil {
		return nil, fmt.Errorf("remotedb: register vfs: %w", err)
	}

	pager, err := NewPager(ctx, datasetURL, chunkSize, fetchTimeout, logger)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("remote-%d.db", storeSequence.Add(1))
	registry.attach(name, pager)

	dsn := fmt.Sprintf("file:%s?vfs=%s&mode=ro&immutable=1", name, vfsName)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		registry.detach(name)
		return nil, fmt.Errorf("remotedb: open store: %w", err)
	}

	// One logical connection by design.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{db: db, pager: pager, name: name, logger: logger}

	// Format handshake: reading sqlite_master validates the header bytes and
	// fails fast on a non-SQLite or truncated file.
	if err := store.Ping(ctx); err != nil {
		_ = db.Close()
		registry.detach(name)
		return nil, fmt.Errorf("remotedb: format handshake: %w", err)
	}

	fetches, bytes := pager.Stats()
	logger.Info("remote_store_ready",
		slog.String("dataset", datasetURL),
		slog.Int64("handshake_fetches", fetches),
		slog.Int64("handshake_bytes", bytes),
	)

	return store, nil
}

// Execute runs a query and materializes every row.
//
// Network failures mid-fetch surface here as query errors; nothing is
// swallowed. The context bounds the whole statement, including any range
// fetches it triggers.
func (store *Store) Execute(ctx context.Context, query string, args []any) ([]Row, error) {
	rows, err := store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("remotedb: execute: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("remotedb: execute: %w", err)
	}

	results := make([]Row, 0, 16)
	for rows.Next() {
		values := make(Row, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("remotedb: scan: %w", err)
		}

		// TEXT columns scan as []byte slices that the driver may reuse.
		// Convert to immutable strings so cached rows stay valid.
		for i, value := range values {
			if raw, ok := value.([]byte); ok {
				values[i] = string(raw)
			}
		}

		results = append(results, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remotedb: iterate: %w", err)
	}

	return results, nil
}

// Ping verifies the store can serve queries by probing the schema catalog.
func (store *Store) Ping(ctx context.Context) error {
	var count int64
	row := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master")
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("remotedb: ping: %w", err)
	}
	return nil
}

// Stats exposes pager fetch counters for logging and readiness reporting.
func (store *Store) Stats() (fetches, bytes int64) {
	return store.pager.Stats()
}

// Close releases the SQLite connection and detaches the pager from the VFS
// registry. The chunk cache is dropped with the pager.
func (store *Store) Close() error {
	registry.detach(store.name)
	if err := store.db.Close(); err != nil {
		return fmt.Errorf("remotedb: close: %w", err)
	}
	return nil
}
