// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

package remotedb_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

// buildFixtureDB writes a small dataset file to disk and returns its path.
// The file plays the role of the published dataset: built offline, then
// served as static bytes.
func buildFixtureDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dataset.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	statements := []string{
		`CREATE TABLE works (id INTEGER PRIMARY KEY, title TEXT, completion_year INTEGER, tag TEXT)`,
		`INSERT INTO works VALUES (1, '国立代々木競技場', 1964, 'BCS賞(1965),新建築1964年10月号')`,
		`INSERT INTO works VALUES (2, '東京都庁舎', 1991, NULL)`,
		`INSERT INTO works VALUES (3, 'せんだいメディアテーク', 2000, '新建築2001年3月号')`,
	}
	for _, statement := range statements {
		_, err := db.Exec(statement)
		require.NoError(t, err)
	}

	return path
}

func serveFixture(t *testing.T, path string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.ServeFile(writer, request, path)
	}))
	t.Cleanup(server.Close)
	return server
}

/*
TestStore_ExecuteOverHTTP runs real SQL against a dataset served exclusively
through byte-range requests.
*/
func TestStore_ExecuteOverHTTP(t *testing.T) {
	path := buildFixtureDB(t)
	server := serveFixture(t, path)

	store, err := remotedb.Open(context.Background(), server.URL, 4096, 5*time.Second, testLogger())
	require.NoError(t, err)
	defer store.Close()

	// 1. Parameterized query
	rows, err := store.Execute(context.Background(),
		"SELECT id, title FROM works WHERE completion_year > ? ORDER BY id", []any{1980})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0][0])
	assert.Equal(t, "東京都庁舎", rows[0][1])

	// 2. NULL columns come back as nil values
	rows, err = store.Execute(context.Background(),
		"SELECT tag FROM works WHERE id = ?", []any{2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0][0])

	// 3. The pager only touched a fraction of the file
	fetches, bytes := store.Stats()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, fetches)
	assert.LessOrEqual(t, bytes, info.Size())
}

/*
TestStore_QueryErrorPropagates verifies that malformed SQL surfaces as a
query error rather than being swallowed.
*/
func TestStore_QueryErrorPropagates(t *testing.T) {
	path := buildFixtureDB(t)
	server := serveFixture(t, path)

	store, err := remotedb.Open(context.Background(), server.URL, 4096, 5*time.Second, testLogger())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Execute(context.Background(), "SELECT nope FROM missing_table", nil)
	require.Error(t, err)
}

/*
TestStore_ConstructionFailurePropagates verifies that an unreachable dataset
fails Open with an error (retry belongs to the connection singleton).
*/
func TestStore_ConstructionFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := remotedb.Open(context.Background(), server.URL, 4096, 2*time.Second, testLogger())
	require.Error(t, err)
}
