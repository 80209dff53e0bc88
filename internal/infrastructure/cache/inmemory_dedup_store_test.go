package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDedupStore_Reserve(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("reserves a new key", func(t *testing.T) {
		isNew, err := store.Reserve(ctx, "msg-1", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew, "new key should return true")
	})

	t.Run("returns false for an already reserved key", func(t *testing.T) {
		isNew, err := store.Reserve(ctx, "msg-2", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.Reserve(ctx, "msg-2", 1*time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew, "reserved key should return false")
	})

	t.Run("allows re-reserving after expiration", func(t *testing.T) {
		isNew, err := store.Reserve(ctx, "msg-3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew)

		time.Sleep(20 * time.Millisecond)

		isNew, err = store.Reserve(ctx, "msg-3", 10*time.Millisecond)
		require.NoError(t, err)
		assert.True(t, isNew, "expired key should be reservable again")
	})
}

func TestInMemoryDedupStore_IsSeen(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("returns false for an unknown key", func(t *testing.T) {
		seen, err := store.IsSeen(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("returns true for a reserved key", func(t *testing.T) {
		_, err := store.Reserve(ctx, "seen-key", 1*time.Hour)
		require.NoError(t, err)

		seen, err := store.IsSeen(ctx, "seen-key")
		require.NoError(t, err)
		assert.True(t, seen)
	})

	t.Run("returns false after expiration", func(t *testing.T) {
		_, err := store.Reserve(ctx, "short-key", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		seen, err := store.IsSeen(ctx, "short-key")
		require.NoError(t, err)
		assert.False(t, seen)
	})
}

func TestInMemoryDedupStore_Release(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("released key can be reserved again", func(t *testing.T) {
		isNew, err := store.Reserve(ctx, "retry-key", 1*time.Hour)
		require.NoError(t, err)
		require.True(t, isNew)

		require.NoError(t, store.Release(ctx, "retry-key"))

		isNew, err = store.Reserve(ctx, "retry-key", 1*time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("releasing an unknown key is a no-op", func(t *testing.T) {
		require.NoError(t, store.Release(ctx, "never-reserved"))
	})
}

func TestInMemoryDedupStore_Close(t *testing.T) {
	store := NewInMemoryDedupStore()

	require.NoError(t, store.Close())
	// Close is idempotent
	require.NoError(t, store.Close())
}
