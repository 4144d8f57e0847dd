package engine_test

import (
	"errors"
	"testing"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/state"
	testenv "github.com/labsx402/paradoxd/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvestFeesThreeWaySplit(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	holder := state.AccountID{0x42}
	env.Token.Withheld[holder] = 1000

	env.RequireApply(engine.HarvestFees{
		Mint:    env.Mint,
		Caller:  testenv.Outsider, // permissionless
		Sources: []state.AccountID{holder},
	})

	assert.Equal(t, uint64(700), env.Growth().AccumulatedFeeAmount)
	assert.Equal(t, uint64(150), env.Token.Burned)
	assert.Equal(t, uint64(150), env.Treasury().Balance)
	assert.Equal(t, uint64(150), env.Treasury().TotalReceived)

	cfg := env.Config()
	assert.Equal(t, uint64(1000), cfg.TotalFeesCollected)
	assert.Equal(t, uint64(1000), cfg.TotalFeesDistributed)
}

func TestHarvestFeesRemainderToTreasury(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	holder := state.AccountID{0x42}
	env.Token.Withheld[holder] = 1001

	env.RequireApply(engine.HarvestFees{Mint: env.Mint, Sources: []state.AccountID{holder}})

	growth := env.Growth().AccumulatedFeeAmount
	burned := env.Token.Burned
	treasury := env.Treasury().Balance
	assert.Equal(t, uint64(700), growth)
	assert.Equal(t, uint64(150), burned)
	assert.Equal(t, uint64(151), treasury)
	assert.Equal(t, uint64(1001), growth+burned+treasury, "no value created or leaked")
}

func TestHarvestFeesNothingWithheld(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	env.RequireApply(engine.HarvestFees{Mint: env.Mint, Sources: []state.AccountID{{0x42}}})
	assert.Zero(t, env.Growth().AccumulatedFeeAmount)
	assert.Zero(t, env.Treasury().Balance)
}

func TestHarvestFeesBurnFailureLeavesStateUntouched(t *testing.T) {
	env := testenv.NewEnv(t)
	env.InitAll()

	holder := state.AccountID{0x42}
	env.Token.Withheld[holder] = 1000
	env.Token.BurnErr = errors.New("extension unavailable")

	res := env.Apply(engine.HarvestFees{Mint: env.Mint, Sources: []state.AccountID{holder}})
	assert.Equal(t, engine.Internal, res)

	assert.Zero(t, env.Growth().AccumulatedFeeAmount)
	assert.Zero(t, env.Treasury().Balance)
	assert.Zero(t, env.Config().TotalFeesCollected)
}

func TestCalculateDistribution(t *testing.T) {
	cfg := &state.TokenConfig{
		LpShareBps:       7000,
		BurnShareBps:     1500,
		TreasuryShareBps: 1500,
	}
	split, err := engine.CalculateDistribution(cfg, 1000)
	require.NoError(t, err)
	assert.Equal(t, [3]uint64{700, 150, 150}, split)
}
