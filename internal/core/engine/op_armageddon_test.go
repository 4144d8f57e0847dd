package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	testenv "github.com/labsx402/paradoxd/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerArmageddonGuards(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	res := env.Apply(engine.TriggerArmageddon{Mint: env.Mint, Caller: testenv.Outsider, Reason: state.ReasonAdmin})
	assert.Equal(t, engine.Unauthorized, res)

	res = env.Apply(engine.TriggerArmageddon{Mint: env.Mint, Caller: testenv.Admin, Reason: state.ReasonNone})
	assert.Equal(t, engine.OutOfRange, res)

	env.RequireApply(engine.TriggerArmageddon{Mint: env.Mint, Caller: testenv.Admin, Reason: state.ReasonLiquidityDrop})

	res = env.Apply(engine.TriggerArmageddon{Mint: env.Mint, Caller: testenv.Admin, Reason: state.ReasonAdmin})
	assert.Equal(t, engine.AlreadyPending, res)

	arm := env.Armageddon()
	assert.True(t, arm.Triggered)
	assert.Equal(t, uint64(1000), arm.Snapshot.LpValue, "snapshot captures the locked position")
}

func TestArmageddonFreezesGrowthAndWithdrawals(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	// make both paths otherwise eligible
	env.RequireApply(engine.RecordFee{Mint: env.Mint, Amount: 1000})
	env.RequireApply(engine.RequestWithdrawal{Mint: env.Mint, Caller: testenv.Admin})
	env.Clock.Advance(12 * time.Hour)

	env.RequireApply(engine.TriggerArmageddon{Mint: env.Mint, Caller: testenv.Admin, Reason: state.ReasonWithdrawalAnomaly})

	res := env.Apply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	assert.Equal(t, engine.ArmageddonActive, res)
	res = env.Apply(engine.ExecuteWithdrawal{Mint: env.Mint, Caller: testenv.Admin, Amount: 1})
	assert.Equal(t, engine.ArmageddonActive, res)

	// figures never dropped, so recovery is immediately available
	env.RequireApply(engine.RecoverArmageddon{Mint: env.Mint, Caller: testenv.Admin})
	assert.False(t, env.Armageddon().Triggered)

	// both paths thaw after recovery
	env.RequireApply(engine.TryExecuteGrowth{Mint: env.Mint, Caller: testenv.Outsider})
	env.RequireApply(engine.ExecuteWithdrawal{Mint: env.Mint, Caller: testenv.Admin, Amount: 1})
}

func TestRecoverBlockedBelowBand(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll() // lock 1000, threshold 9000 bps

	env.RequireApply(engine.TriggerArmageddon{Mint: env.Mint, Caller: testenv.Admin, Reason: state.ReasonLiquidityDrop})

	// shrink the stored position below 90% of the snapshot
	lock := env.Lock()
	lock.LockedAmount = 899
	require.NoError(t, env.Store.Save(context.Background(), keylet.LpLock(env.Mint), lock))

	res := env.Apply(engine.RecoverArmageddon{Mint: env.Mint, Caller: testenv.Admin})
	assert.Equal(t, engine.CannotRecoverYet, res)
	assert.True(t, res.IsRetryable())
	assert.True(t, env.Armageddon().Triggered)

	// refilling the position re-enables recovery
	lock.LockedAmount = 900
	require.NoError(t, env.Store.Save(context.Background(), keylet.LpLock(env.Mint), lock))
	env.RequireApply(engine.RecoverArmageddon{Mint: env.Mint, Caller: testenv.Admin})
	assert.False(t, env.Armageddon().Triggered)
}

func TestRecoverWithoutTrigger(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	res := env.Apply(engine.RecoverArmageddon{Mint: env.Mint, Caller: testenv.Admin})
	assert.Equal(t, engine.NotRequested, res)
}
