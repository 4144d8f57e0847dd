package engine

import (
	"math/bits"

	"github.com/labsx402/paradoxd/internal/core/bpsmath"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// InitLpGrowth creates a mint's growth manager. Admin-only, one-time.
type InitLpGrowth struct {
	Mint            state.Mint
	Caller          state.AccountID
	PoolAddress     state.AccountID
	MinFeeThreshold uint64
	CooldownSeconds int64
}

func (op InitLpGrowth) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}

	k := keylet.LpGrowth(op.Mint)
	exists, err := ctx.View.Exists(ctx.Ctx, k)
	if err != nil {
		return Internal
	}
	if exists {
		return AlreadyExists
	}

	growth := &state.LpGrowthState{
		Mint:            op.Mint,
		PoolAddress:     op.PoolAddress,
		MinFeeThreshold: op.MinFeeThreshold,
		CooldownSeconds: op.CooldownSeconds,
	}
	if growth.Validate() != nil {
		return OutOfRange
	}

	ctx.View.Put(k, growth)
	return Success
}

// RecordFee credits the growth accumulator. Fed by fee distribution;
// always succeeds short of overflow.
type RecordFee struct {
	Mint   state.Mint
	Amount uint64
}

func (op RecordFee) Apply(ctx *ApplyContext) Result {
	k := keylet.LpGrowth(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	growth := rec.(*state.LpGrowthState)

	if growth.AccumulatedFeeAmount, err = bpsmath.CheckedAdd(growth.AccumulatedFeeAmount, op.Amount); err != nil {
		return ArithmeticOverflow
	}
	ctx.View.Put(k, growth)
	return Success
}

// SetGrowthLock pauses or resumes growth execution. Admin-only. Fees
// recorded while paused accumulate and convert once resumed.
type SetGrowthLock struct {
	Mint   state.Mint
	Caller state.AccountID
	Locked bool
}

func (op SetGrowthLock) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}

	k := keylet.LpGrowth(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	growth := rec.(*state.LpGrowthState)

	growth.Locked = op.Locked
	ctx.View.Put(k, growth)
	ev := EventGrowthUnlocked
	if op.Locked {
		ev = EventGrowthLocked
	}
	ctx.Emit(ev, op.Mint, nil)
	return Success
}

// TryExecuteGrowth converts the accumulator into added liquidity once
// threshold and cooldown allow. Permissionless. An adapter failure
// leaves the accumulator untouched; a partial fill carries the
// unconsumed remainder forward.
type TryExecuteGrowth struct {
	Mint   state.Mint
	Caller state.AccountID
}

func (op TryExecuteGrowth) Apply(ctx *ApplyContext) Result {
	active, res := ctx.armageddonActive(op.Mint)
	if res != Success {
		return res
	}
	if active {
		return ArmageddonActive
	}

	k := keylet.LpGrowth(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	growth := rec.(*state.LpGrowthState)

	if growth.Locked {
		return GrowthLocked
	}
	if !growth.ThresholdMet() {
		return ThresholdNotMet
	}
	if !growth.CooldownOver(ctx.Now) {
		return CooldownActive
	}

	price, err := ctx.Dex.PriceOracle(ctx.Ctx, growth.PoolAddress)
	if err != nil {
		return Internal
	}
	tokens := growth.AccumulatedFeeAmount
	hi, quote := bits.Mul64(tokens, price)
	if hi != 0 {
		return ArithmeticOverflow
	}

	delta, err := ctx.Dex.AddLiquidity(ctx.Ctx, growth.PoolAddress, tokens, quote)
	if err != nil {
		return Internal
	}
	if delta.TokensAdded > tokens {
		return Internal
	}

	growth.AccumulatedFeeAmount = tokens - delta.TokensAdded
	growth.LastGrowthAt = ctx.Now
	if growth.TotalTokensAdded, err = bpsmath.CheckedAdd(growth.TotalTokensAdded, delta.TokensAdded); err != nil {
		return ArithmeticOverflow
	}
	if growth.TotalQuoteAdded, err = bpsmath.CheckedAdd(growth.TotalQuoteAdded, delta.QuoteAdded); err != nil {
		return ArithmeticOverflow
	}
	growth.GrowthExecutions++

	ctx.View.Put(k, growth)
	ctx.Emit(EventGrowthExecuted, op.Mint, map[string]uint64{
		"tokensAdded": delta.TokensAdded,
		"quoteAdded":  delta.QuoteAdded,
		"remainder":   growth.AccumulatedFeeAmount,
	})
	return Success
}
