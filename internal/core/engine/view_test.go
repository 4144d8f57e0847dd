package engine

import (
	"context"
	"testing"

	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *statestore.Store {
	t.Helper()
	store, err := statestore.NewStore(statestore.NewMemoryKV())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func validConfig(mint state.Mint) *state.TokenConfig {
	return &state.TokenConfig{
		Mint:             mint,
		Admin:            state.AccountID{1},
		Decimals:         9,
		TransferFeeBps:   300,
		LpShareBps:       7000,
		BurnShareBps:     1500,
		TreasuryShareBps: 1500,
	}
}

func TestViewBuffersUntilCommit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mint := state.Mint{1}
	k := keylet.TokenConfig(mint)

	view := NewView(store)
	view.Put(k, validConfig(mint))

	// visible through the view, invisible in the store
	exists, err := view.Exists(ctx, k)
	require.NoError(t, err)
	assert.True(t, exists)
	_, err = store.Load(ctx, k)
	assert.ErrorIs(t, err, statestore.ErrNotFound)

	require.NoError(t, view.Commit(ctx))
	_, err = store.Load(ctx, k)
	require.NoError(t, err)
}

func TestViewDiscardOnFailureLeavesStoreClean(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mint := state.Mint{2}
	k := keylet.TokenConfig(mint)
	require.NoError(t, store.Save(ctx, k, validConfig(mint)))

	view := NewView(store)
	rec, err := view.Load(ctx, k)
	require.NoError(t, err)
	rec.(*state.TokenConfig).TransferFeeBps = 100
	// view dropped without Put or Commit

	got, err := store.Load(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, uint16(300), got.(*state.TokenConfig).TransferFeeBps)
}

func TestViewErase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	mint := state.Mint{3}
	k := keylet.TokenConfig(mint)
	require.NoError(t, store.Save(ctx, k, validConfig(mint)))

	view := NewView(store)
	view.Erase(k)

	exists, err := view.Exists(ctx, k)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, view.Commit(ctx))
	_, err = store.Load(ctx, k)
	assert.ErrorIs(t, err, statestore.ErrNotFound)
}

func TestResultCategories(t *testing.T) {
	assert.True(t, Success.IsSuccess())
	assert.False(t, Success.IsTerminal())

	for _, r := range []Result{TimelockNotElapsed, CooldownActive, ThresholdNotMet, ArmageddonActive, CannotRecoverYet, GrowthLocked} {
		assert.True(t, r.IsRetryable(), r.String())
		assert.False(t, r.IsTerminal(), r.String())
	}
	for _, r := range []Result{Unauthorized, OutOfRange, AlreadyPending, ExceedsLocked, InsufficientFunds} {
		assert.True(t, r.IsTerminal(), r.String())
		assert.False(t, r.IsRetryable(), r.String())
	}
	assert.False(t, Internal.IsRetryable())
	assert.NotEqual(t, "unknown", Unauthorized.String())
}
