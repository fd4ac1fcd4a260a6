package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryPageCache is an in-process PageCache. Entries expire after ttl;
// a zero ttl keeps them until invalidated.
type MemoryPageCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	generation int64
	ttl        time.Duration
	now        func() time.Time
}

// NewMemoryPageCache creates an empty in-process cache
func NewMemoryPageCache(ttl time.Duration) *MemoryPageCache {
	return &MemoryPageCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached page for key
func (c *MemoryPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.data, true, nil
}

// Generation returns the number of invalidations so far
func (c *MemoryPageCache) Generation(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation, nil
}

// Set stores a copy of data under key unless the cache was invalidated
// after generation
func (c *MemoryPageCache) Set(_ context.Context, key string, data []byte, generation int64) error {
	entry := memoryEntry{data: append([]byte(nil), data...)}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return ErrStale
	}
	c.entries[key] = entry
	return nil
}

// Invalidate drops every entry rooted at path
func (c *MemoryPageCache) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	for key := range c.entries {
		if rootedAt(key, path) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryPageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
