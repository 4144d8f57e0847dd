package statestore

import (
	"bytes"
	"context"
	"testing"

	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(mint state.Mint) *state.TokenConfig {
	return &state.TokenConfig{
		Mint:             mint,
		Admin:            state.AccountID{7},
		Decimals:         9,
		TransferFeeBps:   300,
		LpShareBps:       7000,
		BurnShareBps:     1500,
		TreasuryShareBps: 1500,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	store, err := NewStore(NewMemoryKV())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	mint := state.Mint{1}
	k := keylet.TokenConfig(mint)

	cfg := testConfig(mint)
	require.NoError(t, store.Save(ctx, k, cfg))

	got, err := store.Load(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// loads return independent instances
	got.(*state.TokenConfig).TransferFeeBps = 100
	again, err := store.Load(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, uint16(300), again.(*state.TokenConfig).TransferFeeBps)
}

func TestStoreLoadMissing(t *testing.T) {
	store, err := NewStore(NewMemoryKV())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(context.Background(), keylet.TokenConfig(state.Mint{9}))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreRejectsKeyletTypeMismatch(t *testing.T) {
	store, err := NewStore(NewMemoryKV())
	require.NoError(t, err)
	defer store.Close()

	mint := state.Mint{1}
	err = store.Save(context.Background(), keylet.Treasury(mint), testConfig(mint))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestStoreCommitAtomicBatch(t *testing.T) {
	store, err := NewStore(NewMemoryKV())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	mint := state.Mint{2}
	cfgKey := keylet.TokenConfig(mint)
	treKey := keylet.Treasury(mint)

	treasury := &state.Treasury{
		Mint:                 mint,
		SpendAuthority:       state.AccountID{3},
		Balance:              500,
		TotalReceived:        500,
		MaxSpendBpsPerPeriod: 1000,
		PeriodSeconds:        86_400,
		PeriodStart:          1,
	}
	require.NoError(t, store.Commit(ctx, []Change{
		{Keylet: cfgKey, Record: testConfig(mint)},
		{Keylet: treKey, Record: treasury},
	}))

	_, err = store.Load(ctx, cfgKey)
	require.NoError(t, err)
	got, err := store.Load(ctx, treKey)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), got.(*state.Treasury).Balance)

	// nil record deletes
	require.NoError(t, store.Commit(ctx, []Change{{Keylet: treKey}}))
	_, err = store.Load(ctx, treKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoadSurvivesCacheMiss(t *testing.T) {
	kv := NewMemoryKV()
	store, err := NewStore(kv)
	require.NoError(t, err)

	ctx := context.Background()
	mint := state.Mint{4}
	k := keylet.TokenConfig(mint)
	require.NoError(t, store.Save(ctx, k, testConfig(mint)))

	// a second store over the same backend has a cold cache
	fresh, err := NewStore(kv)
	require.NoError(t, err)
	got, err := fresh.Load(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, mint, got.(*state.TokenConfig).Mint)
}

func TestCompressRoundTrip(t *testing.T) {
	small := []byte{1, 2, 3}
	got, err := decompress(compress(small))
	require.NoError(t, err)
	assert.Equal(t, small, got)

	big := bytes.Repeat([]byte("paradox"), 1024)
	frame := compress(big)
	assert.Less(t, len(frame), len(big))
	got, err = decompress(frame)
	require.NoError(t, err)
	assert.Equal(t, big, got)

	_, err = decompress(nil)
	assert.ErrorIs(t, err, ErrCorrupt)
	_, err = decompress([]byte{99})
	assert.ErrorIs(t, err, ErrCorrupt)
}
