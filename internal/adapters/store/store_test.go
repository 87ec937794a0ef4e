package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnstudio/quote-studio/internal/ports"
)

// kvContract runs the shared store contract against any implementation.
func kvContract(t *testing.T, kv ports.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	key := ports.InteractionKey("user-1", ports.InteractionLikes)

	_, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "absent key must report ok=false")

	require.NoError(t, kv.Set(ctx, key, `["1","2"]`))

	value, ok, err := kv.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["1","2"]`, value)

	// Overwrite replaces, not appends.
	require.NoError(t, kv.Set(ctx, key, `["3"]`))

	value, ok, err = kv.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["3"]`, value)

	require.NoError(t, kv.Delete(ctx, key))

	_, ok, err = kv.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, kv.Delete(ctx, key))
}

func TestMemory_Contract(t *testing.T) {
	kvContract(t, NewMemory())
}

func TestSQLite_Contract(t *testing.T) {
	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	kvContract(t, kv)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.db")
	key := ports.CurrentIdentityKey()

	kv, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, key, `{"id":"u1"}`))
	require.NoError(t, kv.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, ok, err := reopened.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, value)
}

func TestStores_HealthCheck(t *testing.T) {
	mem := NewMemory()
	assert.Equal(t, "memory-store", mem.Name())
	assert.NoError(t, mem.Check(context.Background()))

	kv, err := OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	assert.Equal(t, "sqlite-store", kv.Name())
	assert.NoError(t, kv.Check(context.Background()))
}
