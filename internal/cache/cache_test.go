package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootedAt(t *testing.T) {
	path := "/dashboard/invoices"

	assert.True(t, rootedAt("/dashboard/invoices", path))
	assert.True(t, rootedAt("/dashboard/invoices?page=2&query=lee", path))
	assert.True(t, rootedAt("/dashboard/invoices/abc/edit", path))
	assert.False(t, rootedAt("/dashboard/invoicesarchive", path))
	assert.False(t, rootedAt("/dashboard", path))
	assert.False(t, rootedAt("/dashboard/customers", path))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "/dashboard/invoices", Key("/dashboard/invoices", ""))
	assert.Equal(t, "/dashboard/invoices?page=1", Key("/dashboard/invoices", "page=1"))
}

func TestMemoryPageCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPageCache(0)

	require.NoError(t, c.Set(ctx, "/dashboard/invoices?page=1", []byte("a"), 0))
	require.NoError(t, c.Set(ctx, "/dashboard/invoices/abc/edit", []byte("b"), 0))
	require.NoError(t, c.Set(ctx, "/dashboard/customers", []byte("c"), 0))

	require.NoError(t, c.Invalidate(ctx, "/dashboard/invoices"))

	_, ok, err := c.Get(ctx, "/dashboard/invoices?page=1")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "/dashboard/invoices/abc/edit")
	assert.False(t, ok)

	data, ok, _ := c.Get(ctx, "/dashboard/customers")
	assert.True(t, ok)
	assert.Equal(t, []byte("c"), data)

	// Invalidating an already stale path is a no-op
	require.NoError(t, c.Invalidate(ctx, "/dashboard/invoices"))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryPageCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPageCache(time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "/dashboard/invoices", []byte("page"), 0))

	_, ok, _ := c.Get(ctx, "/dashboard/invoices")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "/dashboard/invoices")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestMemoryPageCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPageCache(0)

	buf := []byte("page")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'X'

	data, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("page"), data)
}

func TestMemoryPageCacheRejectsStaleGeneration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPageCache(0)

	generation, err := c.Generation(ctx)
	require.NoError(t, err)

	// a mutation lands while the page is being rendered
	require.NoError(t, c.Invalidate(ctx, "/dashboard/invoices"))

	err = c.Set(ctx, "/dashboard/invoices?page=1", []byte("old rows"), generation)
	assert.ErrorIs(t, err, ErrStale)
	_, ok, _ := c.Get(ctx, "/dashboard/invoices?page=1")
	assert.False(t, ok)

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, generation+1, current)
	require.NoError(t, c.Set(ctx, "/dashboard/invoices?page=1", []byte("new rows"), current))

	data, ok, _ := c.Get(ctx, "/dashboard/invoices?page=1")
	assert.True(t, ok)
	assert.Equal(t, []byte("new rows"), data)
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `/a\*b\?c\[d\]`, escapeGlob("/a*b?c[d]"))
}
