package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// exerciseSlot runs the common slot contract against any backend.
func exerciseSlot(t *testing.T, store Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	slot := store.Slot("cart")

	_, found, err := slot.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, slot.Save(ctx, []byte(`[{"q":1}]`)))
	data, found, err := slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`[{"q":1}]`), data)

	// overwrite
	require.NoError(t, slot.Save(ctx, []byte(`[]`)))
	data, found, err = slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte(`[]`), data)

	// independent slot
	other := store.Slot("user")
	_, found, err = other.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, slot.Clear(ctx))
	_, found, err = slot.Load(ctx)
	require.NoError(t, err)
	require.False(t, found)

	// clear is idempotent
	require.NoError(t, slot.Clear(ctx))
}

func TestFileStore(t *testing.T) {
	store, err := newFileStore(t.TempDir())
	require.NoError(t, err)
	exerciseSlot(t, store)
}

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(dbPath, migrations))
	// running the schema again on an up-to-date database is a no-op
	require.NoError(t, RunMigrations(dbPath, migrations))

	store, err := openSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	exerciseSlot(t, store)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })

	exerciseSlot(t, store)
}
