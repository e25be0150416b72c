// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

/*
Package querycache makes repeated or expensive dataset queries cheap without
letting staleness silently corrupt results.

It has two halves:

  - The optimizer: rewrites raw query text into a canonical form and
    classifies each query shape into a TTL class (or marks it uncacheable).
  - The cache: a TTL-bounded map from (rewritten text, ordered parameters)
    to materialized rows.

The cache never raises novel errors — absence is a value, not an exception —
and a read after an entry's TTL has elapsed behaves exactly like a miss.
*/
package querycache

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/shirakawa/archmap/internal/platform/constants"
	"github.com/shirakawa/archmap/internal/platform/remotedb"
)

// NoCache marks a query shape whose results must never be stored.
const NoCache time.Duration = 0

// whitespaceRun collapses any run of whitespace (including newlines from
// multi-line query literals) into a single space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// # Optimizer

// Rewrite normalizes query text before it becomes a cache key component, so
// cosmetically different but semantically identical queries collide in the
// cache. The rewritten text is also what gets executed.
func Rewrite(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	return strings.TrimSpace(text)
}

// ClassifyTTL inspects rewritten query text and decides whether its result
// is safe to cache and for how long.
//
// # Classification Rules
//
//   - Non-deterministic shapes (RANDOM(), 'now'-relative time) are never cached.
//   - Non-SELECT text is never cached (the dataset is read-only, so anything
//     else is a programming error that should stay visible).
//   - Aggregate/lookup shapes (COUNT, DISTINCT) change only when the dataset
//     file is republished and get the long TTL.
//   - Paginated detail shapes (LIMIT/OFFSET) get the short TTL.
//   - Everything else gets the default TTL.
func ClassifyTTL(text string) time.Duration {
	upper := strings.ToUpper(text)

	if !strings.HasPrefix(upper, "SELECT") {
		return NoCache
	}

	if strings.Contains(upper, "RANDOM()") ||
		strings.Contains(upper, "'NOW'") ||
		strings.Contains(upper, "CURRENT_TIMESTAMP") {
		return NoCache
	}

	if strings.Contains(upper, "COUNT(") || strings.Contains(upper, "DISTINCT") {
		return constants.CacheTTLAggregate
	}

	if strings.Contains(upper, " LIMIT ") || strings.Contains(upper, " OFFSET ") {
		return constants.CacheTTLDetail
	}

	return constants.CacheTTLDefault
}

// Key derives a deterministic cache key from the pair (rewritten text,
// ordered parameter values).
//
// Parameter values are type-tagged before hashing so that the integer 1 and
// the string "1" can never collide. Two queries with identical text but
// different parameters always produce different keys.
func Key(text string, args []any) string {
	digest := xxhash.New()
	_, _ = digest.WriteString(text)

	for _, arg := range args {
		// 0x1f (unit separator) keeps adjacent values from gluing together.
		_, _ = digest.WriteString("\x1f")
		_, _ = digest.WriteString(fmt.Sprintf("%T=%v", arg, arg))
	}

	return fmt.Sprintf("%016x", digest.Sum64())
}

// # Cache

// entry is one cached result set with its expiry deadline.
type entry struct {
	rows      []remotedb.Row
	expiresAt time.Time
}

// Cache is the process-wide query result cache.
//
// Eviction is TTL-expiry or a full Clear; there is no size-based eviction.
// The map is mutex-guarded; handlers read and write it in parallel.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	// now is swappable for deterministic TTL tests.
	now func() time.Time

	hits   uint64
	misses uint64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached rows for key, or absent. An expired entry behaves
// identically to a miss and is dropped on the way out.
func (cache *Cache) Get(key string) ([]remotedb.Row, bool) {
	cache.mu.RLock()
	cached, ok := cache.entries[key]
	cache.mu.RUnlock()

	if !ok {
		cache.miss()
		return nil, false
	}

	if cache.now().After(cached.expiresAt) {
		cache.mu.Lock()
		// Re-check: a concurrent Put may have refreshed the entry.
		if current, still := cache.entries[key]; still && cache.now().After(current.expiresAt) {
			delete(cache.entries, key)
		}
		cache.mu.Unlock()
		cache.miss()
		return nil, false
	}

	cache.hit()
	return cached.rows, true
}

// Put stores rows under key for the given TTL. A non-positive TTL is a
// no-op: writes only happen for shapes the classifier marked cacheable.
func (cache *Cache) Put(key string, rows []remotedb.Row, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	cache.mu.Lock()
	cache.entries[key] = entry{rows: rows, expiresAt: cache.now().Add(ttl)}
	cache.mu.Unlock()
}

// Clear drops every entry. Partial invalidation by key pattern is
// intentionally unsupported; the dataset changes as a whole file or not at all.
func (cache *Cache) Clear() {
	cache.mu.Lock()
	cache.entries = make(map[string]entry)
	cache.mu.Unlock()
}

// Len returns the number of live entries (expired ones included until read).
func (cache *Cache) Len() int {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return len(cache.entries)
}

// Stats returns cumulative hit/miss counters.
func (cache *Cache) Stats() (hits, misses uint64) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return cache.hits, cache.misses
}

func (cache *Cache) hit() {
	cache.mu.Lock()
	cache.hits++
	cache.mu.Unlock()
}

func (cache *Cache) miss() {
	cache.mu.Lock()
	cache.misses++
	cache.mu.Unlock()
}
