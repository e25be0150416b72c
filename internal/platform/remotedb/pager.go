// Copyright (c) 2026 ArchMap. All rights reserved.
// Author: shirakawa.arch.jp@gmail.com

/*
Package remotedb presents the published dataset file as a queryable
relational store.

The dataset is a single immutable SQLite file served as static bytes over
HTTP. It is far too large to download wholesale, so this package reads it
through byte-range requests: a chunked pager caches the ranges a query
actually touches, and a custom SQLite VFS routes the engine's page reads
through that pager.

Layering:

  - Pager: chunk-granular io.ReaderAt over HTTP Range requests.
  - VFS: read-only sqlite3vfs bridge backed by a Pager.
  - Store: database/sql handle executing text + positional parameters.
*/
package remotedb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Pager fetches and caches fixed-size chunks of the remote dataset file.
//
// Chunks are retained for the lifetime of the pager: the file is immutable,
// so cached bytes never go stale. Concurrent reads of the same uncached
// chunk are coalesced into a single HTTP request.
type Pager struct {
	url       string
	client    *http.Client
	chunkSize int64
	size      int64
	etag      string
	logger    *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	chunks map[int64][]byte

	// Fetch accounting, exposed via Stats for observability.
	fetchCount   atomic.Int64
	bytesFetched atomic.Int64
}

// NewPager performs the size handshake against the dataset host and returns
// a ready pager.
//
// The handshake is a HEAD request; hosts that strip Content-Length from HEAD
// responses are probed with a one-byte range request instead. Construction
// failure always propagates — the caller (the connection singleton) decides
// whether to retry.
func NewPager(ctx context.Context, url string, chunkSize int, fetchTimeout time.Duration, logger *slog.Logger) (*Pager, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("remotedb: chunk size must be positive, got %d", chunkSize)
	}

	pager := &Pager{
		url:       url,
		client:    &http.Client{Timeout: fetchTimeout},
		chunkSize: int64(chunkSize),
		logger:    logger,
		chunks:    make(map[int64][]byte),
	}

	size, etag, err := pager.discoverSize(ctx)
	if err != nil {
		return nil, err
	}
	pager.size = size
	pager.etag = etag

	logger.Info("dataset_handshake_complete",
		slog.String("url", url),
		slog.Int64("size_bytes", size),
		slog.Int64("chunk_bytes", pager.chunkSize),
	)

	return pager, nil
}

// Size returns the total byte length of the remote file.
func (pager *Pager) Size() int64 {
	return pager.size
}

// Stats returns the number of range requests issued and total bytes fetched.
func (pager *Pager) Stats() (fetches, bytes int64) {
	return pager.fetchCount.Load(), pager.bytesFetched.Load()
}

// ReadAt implements [io.ReaderAt] over the remote file.
//
// Reads spanning multiple chunks are assembled from per-chunk fetches. A
// read past the end of the file returns the bytes available and io.EOF,
// matching the io.ReaderAt contract.
func (pager *Pager) ReadAt(buffer []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, fmt.Errorf("remotedb: negative read offset %d", offset)
	}
	if offset >= pager.size {
		return 0, io.EOF
	}

	read := 0
	for read < len(buffer) {
		position := offset + int64(read)
		if position >= pager.size {
			return read, io.EOF
		}

		chunkIndex := position / pager.chunkSize
		chunk, err := pager.chunk(chunkIndex)
		if err != nil {
			return read, err
		}

		within := int(position - chunkIndex*pager.chunkSize)
		copied := copy(buffer[read:], chunk[within:])
		if copied == 0 {
			// Short chunk at the tail of the file.
			return read, io.EOF
		}
		read += copied
	}

	return read, nil
}

// chunk returns the cached bytes for the given chunk index, fetching them on
// first access. Concurrent callers for the same index share one fetch.
func (pager *Pager) chunk(index int64) ([]byte, error) {
	pager.mu.RLock()
	cached, ok := pager.chunks[index]
	pager.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := pager.group.Do(strconv.FormatInt(index, 10), func() (any, error) {
		// Re-check under the group: another flight may have landed between
		// the RLock miss and the singleflight entry.
		pager.mu.RLock()
		cached, ok := pager.chunks[index]
		pager.mu.RUnlock()
		if ok {
			return cached, nil
		}

		data, err := pager.fetchRange(index*pager.chunkSize, pager.chunkSize)
		if err != nil {
			return nil, err
		}

		pager.mu.Lock()
		pager.chunks[index] = data
		pager.mu.Unlock()
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// fetchRange issues one HTTP Range request for [start, start+length).
//
// The per-request context carries the client timeout, so a hung dataset host
// surfaces as a query execution error instead of blocking forever.
func (pager *Pager) fetchRange(start, length int64) ([]byte, error) {
	end := start + length - 1
	if max := pager.size - 1; end > max {
		end = max
	}

	request, err := http.NewRequest(http.MethodGet, pager.url, nil)
	if err != nil {
		return nil, fmt.Errorf("remotedb: build range request: %w", err)
	}
	request.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", start, end))
	if pager.etag != "" {
		// A changed ETag means the published file was swapped underneath us;
		// failing the fetch is better than mixing pages of two datasets.
		request.Header.Set("If-Match", pager.etag)
	}

	response, err := pager.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("remotedb: range fetch %d-%d: %w", start, end, err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusPartialContent:
		// Expected path.
	case http.StatusOK:
		// Host ignored the Range header. Tolerable only when the whole file
		// fits in the requested window.
		if pager.size > length {
			return nil, fmt.Errorf("remotedb: host %s does not honor Range requests", pager.url)
		}
	case http.StatusPreconditionFailed:
		return nil, fmt.Errorf("remotedb: dataset file changed on host (etag mismatch)")
	default:
		return nil, fmt.Errorf("remotedb: range fetch %d-%d: unexpected status %s", start, end, response.Status)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("remotedb: range fetch %d-%d: read body: %w", start, end, err)
	}

	pager.fetchCount.Add(1)
	pager.bytesFetched.Add(int64(len(data)))

	pager.logger.Debug("range_fetched",
		slog.Int64("start", start),
		slog.Int64("end", end),
		slog.Int("bytes", len(data)),
	)

	return data, nil
}

// discoverSize resolves the total file size, preferring a HEAD request and
// falling back to a one-byte range probe.
func (pager *Pager) discoverSize(ctx context.Context) (int64, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodHead, pager.url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("remotedb: build handshake request: %w", err)
	}

	response, err := pager.client.Do(request)
	if err != nil {
		return 0, "", fmt.Errorf("remotedb: dataset handshake: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return 0, "", fmt.Errorf("remotedb: dataset handshake: unexpected status %s", response.Status)
	}

	etag := response.Header.Get("ETag")
	if response.ContentLength > 0 {
		return response.ContentLength, etag, nil
	}

	return pager.probeSize(ctx, etag)
}

// probeSize derives the file size from the Content-Range header of a
// one-byte range response.
func (pager *Pager) probeSize(ctx context.Context, etag string) (int64, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pager.url, nil)
	if err != nil {
		return 0, "", fmt.Errorf("remotedb: build size probe: %w", err)
	}
	request.Header.Set("Range", "bytes=0-0")

	response, err := pager.client.Do(request)
	if err != nil {
		return 0, "", fmt.Errorf("remotedb: size probe: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusPartialContent {
		return 0, "", fmt.Errorf("remotedb: size probe: unexpected status %s", response.Status)
	}

	// Content-Range: bytes 0-0/123456
	contentRange := response.Header.Get("Content-Range")
	slash := strings.LastIndex(contentRange, "/")
	if slash < 0 {
		return 0, "", fmt.Errorf("remotedb: size probe: malformed Content-Range %q", contentRange)
	}

	size, err := strconv.ParseInt(contentRange[slash+1:], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("remotedb: size probe: malformed Content-Range %q", contentRange)
	}

	if etag == "" {
		etag = response.Header.Get("ETag")
	}
	return size, etag, nil
}
