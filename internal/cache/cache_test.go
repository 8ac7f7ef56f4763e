package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCaches(t *testing.T) map[string]CollectionCache {
	bolt, err := NewBoltCache(filepath.Join(t.TempDir(), "fallback-cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })

	return map[string]CollectionCache{
		"memory": NewMemoryCache(),
		"bolt":   bolt,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			_, hit := c.Get("products")
			assert.False(t, hit)

			require.NoError(t, c.Set("products", []byte(`[{"id":"product-1"}]`)))

			payload, hit := c.Get("products")
			require.True(t, hit)
			assert.JSONEq(t, `[{"id":"product-1"}]`, string(payload))

			ts, hit := c.LastFetch("products")
			require.True(t, hit)
			assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
		})
	}
}

func TestCacheCollectionsIsolated(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set("products", []byte(`[]`)))

			_, hit := c.Get("messages")
			assert.False(t, hit)
			_, hit = c.LastFetch("messages")
			assert.False(t, hit)
		})
	}
}

func TestCacheClear(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set("messages", []byte(`[]`)))
			require.NoError(t, c.Clear("messages"))

			_, hit := c.Get("messages")
			assert.False(t, hit)

			// clearing an absent collection is not an error
			require.NoError(t, c.Clear("messages"))
		})
	}
}

func TestCacheOverwrite(t *testing.T) {
	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set("products", []byte(`[1]`)))
			require.NoError(t, c.Set("products", []byte(`[2]`)))

			payload, hit := c.Get("products")
			require.True(t, hit)
			assert.Equal(t, `[2]`, string(payload))
		})
	}
}

func TestBoltCachePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback-cache.db")

	c, err := NewBoltCache(path)
	require.NoError(t, err)
	require.NoError(t, c.Set("products", []byte(`[{"id":"product-1"}]`)))
	require.NoError(t, c.Close())

	c, err = NewBoltCache(path)
	require.NoError(t, err)
	defer c.Close()

	payload, hit := c.Get("products")
	require.True(t, hit)
	assert.JSONEq(t, `[{"id":"product-1"}]`, string(payload))
}
