package orm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open("file::memory:")
	require.NoError(t, err)
	return cache
}

func TestCache_SetGet(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Set("prayer:Dubai:2025-06-01", []byte(`{"city":"Dubai"}`), time.Minute))

	val, ok := cache.Get("prayer:Dubai:2025-06-01")
	assert.True(t, ok)
	assert.JSONEq(t, `{"city":"Dubai"}`, string(val))

	_, ok = cache.Get("prayer:Sharjah:2025-06-01")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Set("k", []byte("v"), -time.Second))

	_, ok := cache.Get("k")
	assert.False(t, ok)

	assert.NoError(t, cache.Cleanup())
}

func TestCache_Overwrite(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Set("k", []byte("old"), time.Minute))
	require.NoError(t, cache.Set("k", []byte("new"), time.Minute))

	val, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "new", string(val))
}
