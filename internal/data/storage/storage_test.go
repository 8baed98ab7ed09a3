package storage

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songzhibin97/chainpulse/internal/configs"
	"github.com/songzhibin97/chainpulse/internal/data"
)

// runKVStoreSuite exercises the behavior every backend must share.
func runKVStoreSuite(t *testing.T, store data.KVStore) {
	ctx := context.Background()
	key := fmt.Sprintf("test-key-%d", time.Now().UnixNano())

	_, err := store.Get(ctx, key, true)
	assert.ErrorIs(t, err, data.ErrNotFound)

	require.NoError(t, store.Set(ctx, key, `["a"]`, true))
	v, err := store.Get(ctx, key, true)
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, v)

	// overwrite
	require.NoError(t, store.Set(ctx, key, `["b","a"]`, true))
	v, err = store.Get(ctx, key, true)
	require.NoError(t, err)
	assert.Equal(t, `["b","a"]`, v)

	// shared and private namespaces are separate
	_, err = store.Get(ctx, key, false)
	assert.ErrorIs(t, err, data.ErrNotFound)
	require.NoError(t, store.Set(ctx, key, "private", false))
	v, err = store.Get(ctx, key, true)
	require.NoError(t, err)
	assert.Equal(t, `["b","a"]`, v)

	require.NoError(t, store.Delete(ctx, key, true))
	_, err = store.Get(ctx, key, true)
	assert.ErrorIs(t, err, data.ErrNotFound)

	// deleting an absent key is fine
	require.NoError(t, store.Delete(ctx, key, true))
	require.NoError(t, store.Delete(ctx, key, false))
}

func TestMemoryStore(t *testing.T) {
	runKVStoreSuite(t, NewMemoryStore())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		cfg         configs.StorageConfig
		expectError bool
	}{
		{name: "default", cfg: configs.StorageConfig{}},
		{name: "memory", cfg: configs.StorageConfig{Driver: "memory"}},
		{name: "unknown", cfg: configs.StorageConfig{Driver: "etcd"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := New(tt.cfg)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, &MemoryStore{}, store)
			assert.NoError(t, store.Close())
		})
	}
}

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}

	store, err := NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	defer store.Close()

	runKVStoreSuite(t, store)
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL not set")
	}

	store, err := NewPostgresStore(connStr)
	require.NoError(t, err)
	defer store.Close()

	runKVStoreSuite(t, store)
}
