package pebble

import (
	"context"
	"testing"

	"github.com/labsx402/paradoxd/internal/storage/statestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestKV(t *testing.T) statestore.KV {
	t.Helper()
	m := NewManager(t.TempDir())
	t.Cleanup(func() { m.Close() })

	kv, err := m.OpenDB("state")
	require.NoError(t, err)
	return kv
}

func TestReadWriteDelete(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	_, err := kv.Read(ctx, []byte("missing"))
	assert.ErrorIs(t, err, statestore.ErrKeyNotFound)

	require.NoError(t, kv.Write(ctx, []byte("k"), []byte("v")))
	val, err := kv.Read(ctx, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, kv.Delete(ctx, []byte("k")))
	_, err = kv.Read(ctx, []byte("k"))
	assert.ErrorIs(t, err, statestore.ErrKeyNotFound)
}

func TestBatchAppliesAllOperations(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Write(ctx, []byte("stale"), []byte("x")))
	require.NoError(t, kv.Batch(ctx, []statestore.BatchOperation{
		{Type: statestore.BatchPut, Key: []byte("a"), Value: []byte("1")},
		{Type: statestore.BatchPut, Key: []byte("b"), Value: []byte("2")},
		{Type: statestore.BatchDelete, Key: []byte("stale")},
	}))

	val, err := kv.Read(ctx, []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
	_, err = kv.Read(ctx, []byte("stale"))
	assert.ErrorIs(t, err, statestore.ErrKeyNotFound)
}

func TestIteratorEndIsExclusive(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, kv.Write(ctx, []byte(k), []byte(k)))
	}

	it, err := kv.Iterator(ctx, []byte("b"), []byte("d"))
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"b", "c"}, keys)
}

func TestManagerReusesOpenStore(t *testing.T) {
	m := NewManager(t.TempDir())
	t.Cleanup(func() { m.Close() })

	first, err := m.OpenDB("state")
	require.NoError(t, err)
	second, err := m.OpenDB("state")
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, m.CloseDB("state"))
	assert.Error(t, m.CloseDB("state"), "already closed")

	_, err = first.Read(context.Background(), []byte("k"))
	assert.ErrorIs(t, err, statestore.ErrClosed)
}
