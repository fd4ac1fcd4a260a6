// Package cache stores rendered dashboard pages keyed by request path and
// drops them when the data behind a path changes.
package cache

import (
	"context"
	"errors"
	"strings"
)

const (
	// keyPrefix namespaces rendered pages in shared stores
	keyPrefix = "render:"
	// generationKey counts invalidations in shared stores
	generationKey = "render-gen"
)

// ErrStale is returned by Set when an invalidation happened after the
// generation the page was rendered at. The page is not stored.
var ErrStale = errors.New("page rendered before the latest invalidation")

// PageCache holds rendered pages. Invalidate removes every entry rooted at
// path: the path itself, path?query and path/sub. It is idempotent.
//
// Every Invalidate advances the cache generation. Readers take Generation
// before loading data and hand it to Set, so a page rendered from rows read
// before a concurrent invalidation is never stored.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, key string, data []byte, generation int64) error
	Invalidate(ctx context.Context, path string) error
}

// Key builds the cache key for a path and its canonical query string
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// rootedAt reports whether key belongs to path on a segment boundary
func rootedAt(key, path string) bool {
	if !strings.HasPrefix(key, path) {
		return false
	}
	rest := key[len(path):]
	if rest == "" {
		return true
	}
	if strings.HasSuffix(path, "/") {
		return true
	}
	return rest[0] == '?' || rest[0] == '/'
}
