// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

/*
Package datastore owns the lifecycle of the remote dataset connection and
fronts every query with the optimizer/cache layer.

# Architecture

One [DB] instance is created in main and injected into the catalog
repositories — there is no ambient module-level connection. The DB guarantees
that at most one adapter construction is ever in flight or completed:
concurrent first callers attach to the same pending attempt and observe its
single outcome. A failed attempt moves the DB to StateFailed, from which the
next call retries; failure never poisons the singleton.

# Lifecycle

	Uninitialized → Initializing → Ready
	                     ↓            ↑
	                  Failed ─────────┘ (next call retries)

Shutdown returns to Uninitialized and clears the query cache as a side
effect, since cached rows are meaningless without a live store.
*/
package datastore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shirakawa/archmap/internal/platform/querycache"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

// State is the connection lifecycle phase.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// initTimeout bounds one adapter construction attempt. Construction runs on
// a background context so one impatient caller cannot fail the attempt for
// everyone waiting on it.
const initTimeout = 60 * time.Second

// Executor is the adapter surface the DB depends on. Satisfied by
// [*remotedb.Store]; tests substitute fakes.
type Executor interface {
	Execute(ctx context.Context, query string, args []any) ([]remotedb.Row, error)
	Ping(ctx context.Context) error
	Close() error
}

// Opener constructs the adapter. Injected so tests can count and fail
// construction attempts deterministically.
type Opener func(ctx context.Context) (Executor, error)

// attempt is the shared in-flight handle all concurrent initializers await.
type attempt struct {
	done  chan struct{}
	store Executor
	err   error
}

// DB is the explicit connection-singleton context object.
type DB struct {
	open   Opener
	cache  *querycache.Cache
	logger *slog.Logger

	mu         sync.Mutex
	state      State
	flight     *attempt
	store      Executor
	generation uint64 // bumped by Shutdown to orphan late-landing attempts
}

// New creates a DB in StateUninitialized. No network activity happens until
// the first query.
func New(open Opener, cache *querycache.Cache, logger *slog.Logger) *DB {
	return &DB{
		open:   open,
		cache:  cache,
		logger: logger,
		state:  StateUninitialized,
	}
}

// State reports the current lifecycle phase.
func (db *DB) State() State {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state
}

// Query resolves parameters, consults the cache, and falls through to the
// adapter on a miss.
//
// Cache hits never touch the network. Cache writes only happen for query
// shapes the classifier marked cacheable, and the key covers both the
// rewritten text and the ordered parameter values.
func (db *DB) Query(ctx context.Context, text string, params Params) ([]remotedb.Row, error) {
	bound, args, err := params.Bind(text)
	if err != nil {
		return nil, err
	}

	rewritten := querycache.Rewrite(bound)
	ttl := querycache.ClassifyTTL(rewritten)
	key := querycache.Key(rewritten, args)

	if ttl > querycache.NoCache {
		if rows, ok := db.cache.Get(key); ok {
			return rows, nil
		}
	}

	store, err := db.connect(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := store.Execute(ctx, rewritten, args)
	if err != nil {
		return nil, err
	}

	if ttl > querycache.NoCache {
		db.cache.Put(key, rows, ttl)
	}

	return rows, nil
}

// Ping forces initialization if needed and verifies the store answers.
func (db *DB) Ping(ctx context.Context) error {
	store, err := db.connect(ctx)
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

// ClearCache drops every cached result set.
func (db *DB) ClearCache() {
	db.cache.Clear()
}

// Shutdown closes the adapter (if any), clears the cache, and returns the DB
// to StateUninitialized. An attempt still in flight is orphaned: its result
// is discarded and its store closed when it lands.
func (db *DB) Shutdown() error {
	db.mu.Lock()
	store := db.store
	db.store = nil
	db.flight = nil
	db.state = StateUninitialized
	db.generation++
	db.mu.Unlock()

	db.cache.Clear()

	if store != nil {
		if err := store.Close(); err != nil {
			return fmt.Errorf("datastore: shutdown: %w", err)
		}
	}

	db.logger.Info("datastore_shutdown_complete")
	return nil
}

// connect returns the ready adapter, starting or joining a construction
// attempt as needed.
//
// The caller's context governs only its own wait: cancelling it abandons the
// wait but never cancels the shared attempt other callers are parked on.
func (db *DB) connect(ctx context.Context) (Executor, error) {
	db.mu.Lock()

	if db.state == StateReady {
		store := db.store
		db.mu.Unlock()
		return store, nil
	}

	if db.flight == nil {
		pending := &attempt{done: make(chan struct{})}
		db.flight = pending
		db.state = StateInitializing
		go db.runAttempt(pending, db.generation)
	}

	pending := db.flight
	db.mu.Unlock()

	select {
	case <-pending.done:
		return pending.store, pending.err
	case <-ctx.Done():
		return nil, fmt.Errorf("datastore: waiting for connection: %w", ctx.Err())
	}
}

// runAttempt performs one adapter construction and publishes its outcome.
func (db *DB) runAttempt(pending *attempt, generation uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	store, err := db.open(ctx)

	db.mu.Lock()
	if db.generation != generation {
		// Shutdown raced us. Nobody owns this store; dispose of it.
		db.mu.Unlock()
		if store != nil {
			_ = store.Close()
		}
		pending.err = fmt.Errorf("datastore: shut down during initialization")
		close(pending.done)
		return
	}

	if err != nil {
		db.state = StateFailed
		db.flight = nil
		db.logger.Error("datastore_init_failed", slog.Any("error", err))
	} else {
		db.state = StateReady
		db.store = store
		db.flight = nil
		db.logger.Info("datastore_ready")
	}
	db.mu.Unlock()

	pending.store = store
	pending.err = err
	close(pending.done)
}
