package engine

import (
	"github.com/labsx402/paradoxd/internal/core/bpsmath"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// InitVesting creates a beneficiary's vesting schedule. Admin-only,
// one per (mint, beneficiary).
type InitVesting struct {
	Mint            state.Mint
	Caller          state.AccountID
	Beneficiary     state.AccountID
	TotalAllocation uint64
	LiquidAtTge     uint64
	StartTimestamp  int64
	CliffSeconds    int64
	VestingSeconds  int64
}

func (op InitVesting) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}

	k := keylet.Vesting(op.Mint, op.Beneficiary)
	exists, err := ctx.View.Exists(ctx.Ctx, k)
	if err != nil {
		return Internal
	}
	if exists {
		return AlreadyExists
	}

	schedule := &state.VestingSchedule{
		Mint:            op.Mint,
		Beneficiary:     op.Beneficiary,
		TotalAllocation: op.TotalAllocation,
		LiquidAtTge:     op.LiquidAtTge,
		StartTimestamp:  op.StartTimestamp,
		CliffSeconds:    op.CliffSeconds,
		VestingSeconds:  op.VestingSeconds,
	}
	if schedule.Validate() != nil {
		return OutOfRange
	}

	ctx.View.Put(k, schedule)
	return Success
}

// RequestUnlock releases vested tokens to the beneficiary. The claim
// may never outrun the schedule: claimed + amount must stay within
// MaxUnlockable(now).
type RequestUnlock struct {
	Mint   state.Mint
	Caller state.AccountID
	Amount uint64
}

func (op RequestUnlock) Apply(ctx *ApplyContext) Result {
	k := keylet.Vesting(op.Mint, op.Caller)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	schedule := rec.(*state.VestingSchedule)
	if op.Caller != schedule.Beneficiary {
		return Unauthorized
	}

	unlockable, err := schedule.MaxUnlockable(ctx.Now)
	if err != nil {
		return ArithmeticOverflow
	}
	claimed, err := bpsmath.CheckedAdd(schedule.ClaimedAmount, op.Amount)
	if err != nil {
		return ArithmeticOverflow
	}
	if claimed > unlockable {
		return ExceedsUnlockable
	}

	if err := ctx.Token.Release(ctx.Ctx, op.Mint, schedule.Beneficiary, op.Amount); err != nil {
		return Internal
	}

	schedule.ClaimedAmount = claimed
	ctx.View.Put(k, schedule)
	ctx.Emit(EventUnlockRequested, op.Mint, map[string]uint64{
		"amount":  op.Amount,
		"claimed": claimed,
	})
	return Success
}
