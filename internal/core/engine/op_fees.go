package engine

import (
	"github.com/labsx402/paradoxd/internal/core/bpsmath"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// CalculateDistribution splits an amount per the config's active
// shares. Pure; the three outputs sum exactly to amount with any
// flooring remainder assigned to the treasury slot.
func CalculateDistribution(cfg *state.TokenConfig, amount uint64) ([3]uint64, error) {
	return bpsmath.Distribute(amount, cfg.Shares())
}

// HarvestFees sweeps withheld fees from the given accounts into engine
// custody and applies the three-way split in the same transition: the
// burn share is destroyed, the LP share lands in the growth
// accumulator, the treasury share credits the treasury. Permissionless.
type HarvestFees struct {
	Mint    state.Mint
	Caller  state.AccountID
	Sources []state.AccountID
}

func (op HarvestFees) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}

	growthRec, err := ctx.View.Load(ctx.Ctx, keylet.LpGrowth(op.Mint))
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	growth := growthRec.(*state.LpGrowthState)

	treasuryRec, err := ctx.View.Load(ctx.Ctx, keylet.Treasury(op.Mint))
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	treasury := treasuryRec.(*state.Treasury)

	harvested, err := ctx.Token.Harvest(ctx.Ctx, op.Mint, op.Sources)
	if err != nil {
		return Internal
	}
	if harvested == 0 {
		ctx.Emit(EventFeesHarvested, op.Mint, map[string]uint64{"amount": 0})
		return Success
	}

	split, err := bpsmath.Distribute(harvested, cfg.Shares())
	if err != nil {
		return ArithmeticOverflow
	}
	lpShare, burnShare, treasuryShare := split[0], split[1], split[2]

	if burnShare > 0 {
		if err := ctx.Token.Burn(ctx.Ctx, op.Mint, burnShare); err != nil {
			return Internal
		}
	}

	if growth.AccumulatedFeeAmount, err = bpsmath.CheckedAdd(growth.AccumulatedFeeAmount, lpShare); err != nil {
		return ArithmeticOverflow
	}
	if treasury.Balance, err = bpsmath.CheckedAdd(treasury.Balance, treasuryShare); err != nil {
		return ArithmeticOverflow
	}
	if treasury.TotalReceived, err = bpsmath.CheckedAdd(treasury.TotalReceived, treasuryShare); err != nil {
		return ArithmeticOverflow
	}
	if cfg.TotalFeesCollected, err = bpsmath.CheckedAdd(cfg.TotalFeesCollected, harvested); err != nil {
		return ArithmeticOverflow
	}
	if cfg.TotalFeesDistributed, err = bpsmath.CheckedAdd(cfg.TotalFeesDistributed, harvested); err != nil {
		return ArithmeticOverflow
	}

	ctx.View.Put(keylet.TokenConfig(op.Mint), cfg)
	ctx.View.Put(keylet.LpGrowth(op.Mint), growth)
	ctx.View.Put(keylet.Treasury(op.Mint), treasury)

	ctx.Emit(EventFeesHarvested, op.Mint, map[string]uint64{"amount": harvested})
	ctx.Emit(EventFeesDistributed, op.Mint, map[string]uint64{
		"lp":       lpShare,
		"burn":     burnShare,
		"treasury": treasuryShare,
	})
	return Success
}
