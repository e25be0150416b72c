// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package datastore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirakawa/archmap/internal/platform/datastore"
	"github.com/shirakawa/archmap/internal/platform/querycache"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeExecutor counts executions and returns canned rows.
type fakeExecutor struct {
	executions atomic.Int64
	rows       []remotedb.Row
	execErr    error
}

func (f *fakeExecutor) Execute(ctx context.Context, query string, args []any) ([]remotedb.Row, error) {
	f.executions.Add(1)
	if f.execErr != nil {
		return nil, f.execErr
	}
	return f.rows, nil
}

func (f *fakeExecutor) Ping(ctx context.Context) error { return nil }

func (f *fakeExecutor) Close() error { return nil }

/*
TestDB_ConcurrentInitSharesOneAttempt verifies that concurrent first callers
attach to a single in-flight construction instead of racing to build
duplicate adapters.
*/
func TestDB_ConcurrentInitSharesOneAttempt(t *testing.T) {
	var opens atomic.Int64
	release := make(chan struct{})

	opener := func(ctx context.Context) (datastore.Executor, error) {
		opens.Add(1)
		<-release
		return &fakeExecutor{}, nil
	}

	db := datastore.New(opener, querycache.New(), testLogger())

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			errs[slot] = db.Ping(context.Background())
		}(i)
	}

	close(release)
	wg.Wait()

	// 1. Exactly one construction happened
	assert.Equal(t, int64(1), opens.Load())

	// 2. Every caller observed the same successful outcome
	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, datastore.StateReady, db.State())
}

/*
TestDB_FailedInitRetries verifies that a failed attempt does not poison the
singleton: the next call constructs again.
*/
func TestDB_FailedInitRetries(t *testing.T) {
	var opens atomic.Int64

	opener := func(ctx context.Context) (datastore.Executor, error) {
		if opens.Add(1) == 1 {
			return nil, errors.New("dataset host unreachable")
		}
		return &fakeExecutor{}, nil
	}

	db := datastore.New(opener, querycache.New(), testLogger())

	// 1. First attempt fails and the failure propagates
	err := db.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, datastore.StateFailed, db.State())

	// 2. Second call retries and succeeds
	err = db.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, datastore.StateReady, db.State())
	assert.Equal(t, int64(2), opens.Load())
}

/*
TestDB_QueryCaching verifies read-through caching: a repeat of the same
(text, params) pair within TTL does not re-invoke the adapter, while a
different parameter set does.
*/
func TestDB_QueryCaching(t *testing.T) {
	executor := &fakeExecutor{rows: []remotedb.Row{{int64(1), "丹下健三"}}}
	opener := func(ctx context.Context) (datastore.Executor, error) { return executor, nil }

	db := datastore.New(opener, querycache.New(), testLogger())

	query := "SELECT id, architect FROM works WHERE prefecture = ?"

	// 1. Miss, executes
	rows, err := db.Query(context.Background(), query, datastore.Positional("東京都"))
	require.NoError(t, err)
	assert.Equal(t, executor.rows, rows)
	assert.Equal(t, int64(1), executor.executions.Load())

	// 2. Hit, no second execution
	_, err = db.Query(context.Background(), query, datastore.Positional("東京都"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), executor.executions.Load())

	// 3. Different parameters never reuse the entry
	_, err = db.Query(context.Background(), query, datastore.Positional("大阪府"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), executor.executions.Load())

	// 4. Cosmetic whitespace differences share the entry
	_, err = db.Query(context.Background(),
		"SELECT id, architect\n  FROM works\n  WHERE prefecture = ?;",
		datastore.Positional("東京都"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), executor.executions.Load())
}

/*
TestDB_UncacheableShapeAlwaysExecutes verifies that non-deterministic query
shapes bypass the cache entirely.
*/
func TestDB_UncacheableShapeAlwaysExecutes(t *testing.T) {
	executor := &fakeExecutor{rows: []remotedb.Row{{int64(1)}}}
	opener := func(ctx context.Context) (datastore.Executor, error) { return executor, nil }

	db := datastore.New(opener, querycache.New(), testLogger())

	query := "SELECT id FROM works ORDER BY RANDOM() LIMIT 1"

	for i := 0; i < 3; i++ {
		_, err := db.Query(context.Background(), query, datastore.Positional())
		require.NoError(t, err)
	}

	assert.Equal(t, int64(3), executor.executions.Load())
}

/*
TestDB_ShutdownResetsLifecycle verifies teardown: cache cleared, state back
to uninitialized, and the next query reconstructs the adapter.
*/
func TestDB_ShutdownResetsLifecycle(t *testing.T) {
	var opens atomic.Int64
	opener := func(ctx context.Context) (datastore.Executor, error) {
		opens.Add(1)
		return &fakeExecutor{rows: []remotedb.Row{{int64(1)}}}, nil
	}

	cache := querycache.New()
	db := datastore.New(opener, cache, testLogger())

	_, err := db.Query(context.Background(), "SELECT id FROM works", datastore.Positional())
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())

	// 1. Shutdown clears the cache and resets state
	require.NoError(t, db.Shutdown())
	assert.Equal(t, datastore.StateUninitialized, db.State())
	assert.Equal(t, 0, cache.Len())

	// 2. Next query transparently reinitializes
	_, err = db.Query(context.Background(), "SELECT id FROM works", datastore.Positional())
	require.NoError(t, err)
	assert.Equal(t, int64(2), opens.Load())
}

/*
TestDB_ExecutionErrorPropagates verifies that adapter query failures reach
the caller (containment is the dispatch layer's job, not this one's).
*/
func TestDB_ExecutionErrorPropagates(t *testing.T) {
	executor := &fakeExecutor{execErr: errors.New("range fetch timeout")}
	opener := func(ctx context.Context) (datastore.Executor, error) { return executor, nil }

	db := datastore.New(opener, querycache.New(), testLogger())

	_, err := db.Query(context.Background(), "SELECT id FROM works", datastore.Positional())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range fetch timeout")
}
