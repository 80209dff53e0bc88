package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubArchiveStorage_Upload(t *testing.T) {
	stub := NewStubArchiveStorage()
	ctx := context.Background()

	t.Run("uploaded object is retrievable", func(t *testing.T) {
		err := stub.Upload(ctx, "tenant-a/Quote_Q-2025-001.pdf", []byte("%PDF-1.7"), "application/pdf")
		require.NoError(t, err)

		data, ok := stub.Get("tenant-a/Quote_Q-2025-001.pdf")
		assert.True(t, ok)
		assert.Equal(t, []byte("%PDF-1.7"), data)
	})

	t.Run("missing object is not found", func(t *testing.T) {
		_, ok := stub.Get("tenant-a/missing.pdf")
		assert.False(t, ok)
	})

	t.Run("upload copies the data", func(t *testing.T) {
		payload := []byte("%PDF-1.7 original")
		require.NoError(t, stub.Upload(ctx, "doc.pdf", payload, "application/pdf"))
		payload[0] = 'X'

		data, ok := stub.Get("doc.pdf")
		require.True(t, ok)
		assert.Equal(t, byte('%'), data[0])
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		err := stub.Upload(ctx, "", []byte("data"), "application/pdf")
		assert.Error(t, err)
	})
}
