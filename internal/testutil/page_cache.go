package testutil

import (
	"context"
	"sync"

	"github.com/ridwanfathin/invoice-dashboard/internal/cache"
)

// PageCache wraps a memory cache and records every invalidated path
type PageCache struct {
	*cache.MemoryPageCache

	mu            sync.Mutex
	Invalidated   []string
	InvalidateErr error
	GetErr        error
}

// NewPageCache creates a recording cache with no expiry
func NewPageCache() *PageCache {
	return &PageCache{MemoryPageCache: cache.NewMemoryPageCache(0)}
}

func (c *PageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	return c.MemoryPageCache.Get(ctx, key)
}

func (c *PageCache) Invalidate(ctx context.Context, path string) error {
	c.mu.Lock()
	c.Invalidated = append(c.Invalidated, path)
	c.mu.Unlock()
	if c.InvalidateErr != nil {
		return c.InvalidateErr
	}
	return c.MemoryPageCache.Invalidate(ctx, path)
}

// Invalidations returns a copy of the recorded paths
func (c *PageCache) Invalidations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.Invalidated...)
}
