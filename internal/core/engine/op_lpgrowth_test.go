package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/labsx402/paradoxd/internal/core/engine"
	testenv "github.com/labsx402/paradoxd/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initGrowthEnv sets up a mint with a 100M growth threshold.
func initGrowthEnv(t *testing.T) *testenv.Env {
	t.Helper()
	env := testenv.NewEnv(t)
	env.InitConfig()
	env.RequireApply(engine.InitLpGrowth{
		Mint:            env.Mint,
		Caller:          testenv.Admin,
		PoolAddress:     testenv.Pool,
		MinFeeThreshold: 100_000_000,
		CooldownSeconds: 3600,
	})
	return env
}

func TestTryExecuteGrowthThreshold(t *testing.T) {
	env := initGrowthEnv(t)

	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 50_000_000})
	res := env.Apply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.ThresholdNotMet, res)
	assert.True(t, res.IsRetryable())

	// crossing the threshold unlocks execution
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 60_000_000})
	env.RequireApply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})

	growth := env.Growth()
	assert.Zero(t, growth.AccumulatedFeeAmount, "full fill resets the accumulator")
	assert.Equal(t, env.Now(), growth.LastGrowthAt)
	assert.Equal(t, uint64(110_000_000), growth.TotalTokensAdded)
	assert.Equal(t, uint64(1), growth.GrowthExecutions)
	require.Len(t, env.Dex.Calls, 1)
}

func TestTryExecuteGrowthCooldown(t *testing.T) {
	env := initGrowthEnv(t)

	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 100_000_000})
	env.RequireApply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})

	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 100_000_000})
	env.Clock.Advance(time.Hour - time.Second)
	res := env.Apply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.CooldownActive, res)

	env.Clock.Advance(time.Second)
	env.RequireApply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, uint64(2), env.Growth().GrowthExecutions)
}

func TestTryExecuteGrowthAdapterFailure(t *testing.T) {
	env := initGrowthEnv(t)
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 100_000_000})

	env.Dex.AddErr = errors.New("pool unavailable")
	res := env.Apply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.Internal, res)

	growth := env.Growth()
	assert.Equal(t, uint64(100_000_000), growth.AccumulatedFeeAmount, "failed growth must not touch the accumulator")
	assert.Zero(t, growth.LastGrowthAt)
	assert.Zero(t, growth.GrowthExecutions)

	// the same is true when the oracle fails
	env.Dex.AddErr = nil
	env.Dex.PriceErr = errors.New("oracle stale")
	res = env.Apply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.Internal, res)
	assert.Equal(t, uint64(100_000_000), env.Growth().AccumulatedFeeAmount)
}

func TestTryExecuteGrowthPartialFill(t *testing.T) {
	env := initGrowthEnv(t)
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 100_000_000})

	env.Dex.TokensConsumed = 80_000_000
	env.RequireApply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})

	growth := env.Growth()
	assert.Equal(t, uint64(20_000_000), growth.AccumulatedFeeAmount, "remainder carries forward")
	assert.Equal(t, uint64(80_000_000), growth.TotalTokensAdded)
}

func TestGrowthLockPausesExecution(t *testing.T) {
	env := initGrowthEnv(t)
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 100_000_000})

	res := env.Apply(engine.SetGrowthLock{Mint: env.Mint, Caller: testenv.Outsider, Locked: true})
	assert.Equal(t, engine.Unauthorized, res)

	env.RequireApply(engine.SetGrowthLock{Mint: env.Mint, Caller: testenv.Admin, Locked: true})
	res = env.Apply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.GrowthLocked, res)
	assert.True(t, res.IsRetryable())

	// fees keep accumulating while paused
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 25_000_000})
	assert.Equal(t, uint64(125_000_000), env.Growth().AccumulatedFeeAmount)
	assert.Zero(t, env.Growth().GrowthExecutions)

	env.RequireApply(engine.SetGrowthLock{Mint: env.Mint, Caller: testenv.Admin, Locked: false})
	env.RequireApply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, uint64(125_000_000), env.Growth().TotalTokensAdded)

	types := env.Events.Types()
	assert.Contains(t, types, engine.EventGrowthLocked)
	assert.Contains(t, types, engine.EventGrowthUnlocked)
}

func TestRecordFeeCheckedAddition(t *testing.T) {
	env := initGrowthEnv(t)
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: ^uint64(0)})

	res := env.Apply(engine.RecordFee{Mint: env.Mint, Amount: 1})
	assert.Equal(t, engine.ArithmeticOverflow, res)
	assert.Equal(t, ^uint64(0), env.Growth().AccumulatedFeeAmount)
}
