package engine_test

import (
	"testing"
	"time"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/state"
	testenv "github.com/labsx402/paradoxd/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTokenConfig(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitConfig()

	cfg := env.Config()
	assert.Equal(t, testenv.Admin, cfg.Admin)
	assert.Equal(t, uint16(300), cfg.TransferFeeBps)

	// second init is rejected
	res := env.Apply(engine.InitTokenConfig{
		Mint: env.Mint, Caller: testenv.Admin,
		Decimals: 9, TransferFeeBps: 200,
		LpShareBps: 7000, BurnShareBps: 1500, TreasuryShareBps: 1500,
	})
	assert.Equal(t, engine.AlreadyExists, res)
}

func TestInitTokenConfigRejectsBadShares(t *testing.T) {
	env := testenv.NewEnv(t)
	res := env.Apply(engine.InitTokenConfig{
		Mint: env.Mint, Caller: testenv.Admin,
		Decimals: 9, TransferFeeBps: 300,
		LpShareBps: 7000, BurnShareBps: 1500, TreasuryShareBps: 1600,
	})
	assert.Equal(t, engine.OutOfRange, res)
}

func TestAnnounceFeeChangeGuards(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitConfig()

	res := env.Apply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Outsider, NewBps: 200})
	assert.Equal(t, engine.Unauthorized, res)
	assert.False(t, env.Config().HasPendingFeeChange(), "failed announce must not persist")

	res = env.Apply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 99})
	assert.Equal(t, engine.OutOfRange, res)
	res = env.Apply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 301})
	assert.Equal(t, engine.OutOfRange, res)

	env.RequireApply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 200})
	res = env.Apply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 250})
	assert.Equal(t, engine.AlreadyPending, res)
}

func TestExecuteFeeChangeTimelockBoundary(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitConfig()

	env.RequireApply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 200})

	env.Clock.Advance(24*time.Hour - time.Second)
	res := env.Apply(engine.ExecuteFeeChange{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.TimelockNotElapsed, res)
	assert.True(t, res.IsRetryable())
	assert.Equal(t, uint16(300), env.Config().TransferFeeBps)

	env.Clock.Advance(time.Second)
	env.RequireApply(engine.ExecuteFeeChange{Mint: env.Mint, Caller: testenv.Outsider})

	cfg := env.Config()
	assert.Equal(t, uint16(200), cfg.TransferFeeBps)
	assert.False(t, cfg.HasPendingFeeChange())

	// the announcement is consumed; a second execute has nothing to do
	res = env.Apply(engine.ExecuteFeeChange{Mint: env.Mint, Caller: testenv.Admin})
	assert.Equal(t, engine.NoPendingRequest, res)
}

func TestCancelFeeChange(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitConfig()

	res := env.Apply(engine.CancelFeeChange{Mint: env.Mint, Caller: testenv.Admin})
	assert.Equal(t, engine.NoPendingRequest, res)

	env.RequireApply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 150})

	res = env.Apply(engine.CancelFeeChange{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.Unauthorized, res)

	// cancel needs no timelock
	env.RequireApply(engine.CancelFeeChange{Mint: env.Mint, Caller: testenv.Admin})
	cfg := env.Config()
	assert.False(t, cfg.HasPendingFeeChange())
	assert.Equal(t, uint16(300), cfg.TransferFeeBps)

	// a fresh announcement is possible after cancellation
	env.RequireApply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 150})
}

func TestFeeChangeEvents(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitConfig()

	env.RequireApply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 200})
	env.Clock.AdvanceSeconds(state.FeeChangeTimelockSeconds)
	env.RequireApply(engine.ExecuteFeeChange{Mint: env.Mint, Caller: testenv.Admin})

	types := env.Events.Types()
	require.Contains(t, types, engine.EventFeeChangeAnnounced)
	require.Contains(t, types, engine.EventFeeChangeExecuted)
}

func TestOperationsAgainstMissingConfig(t *testing.T) {
	env := testenv.NewEnv(t)
	res := env.Apply(engine.AnnounceFeeChange{Mint: env.Mint, Caller: testenv.Admin, NewBps: 200})
	assert.Equal(t, engine.NotFound, res)
}
