package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a Storage on top of it
func setupTestRedis(t *testing.T) (*Storage, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStorage(client), mr
}

func TestGet_Missing(t *testing.T) {
	s, _ := setupTestRedis(t)

	v, ok, err := s.Scope("c1").Get(context.Background(), "carrito")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_WritesNamespacedKeyWithoutTTL(t *testing.T) {
	s, mr := setupTestRedis(t)

	err := s.Scope("c1").Set(context.Background(), "majestyUsers", `[{"id":1}]`)
	require.NoError(t, err)

	stored, err := mr.Get("kv:c1:majestyUsers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, stored)
	assert.Zero(t, mr.TTL("kv:c1:majestyUsers"))
}

func TestGet_ReadsOwnScopeOnly(t *testing.T) {
	s, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("kv:c1:currentUser", `{"id":7}`))

	v, ok, err := s.Scope("c1").Get(context.Background(), "currentUser")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":7}`, v)

	_, ok, err = s.Scope("c2").Get(context.Background(), "currentUser")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	s, mr := setupTestRedis(t)
	require.NoError(t, mr.Set("kv:c1:carrito", "[]"))

	require.NoError(t, s.Scope("c1").Remove(context.Background(), "carrito"))
	assert.False(t, mr.Exists("kv:c1:carrito"))

	// Deleting a missing key should not error
	assert.NoError(t, s.Scope("c1").Remove(context.Background(), "carrito"))
}

func TestStorageKey_Format(t *testing.T) {
	assert.Equal(t, "kv:abc:carrito", storageKey("abc", "carrito"))
}
