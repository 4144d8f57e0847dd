package engine

import (
	"github.com/labsx402/paradoxd/internal/core/bpsmath"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// InitLpLock creates a mint's LP lock. Admin-only, one-time.
type InitLpLock struct {
	Mint          state.Mint
	Caller        state.AccountID
	InitialAmount uint64
	Tier          state.LockTier
}

func (op InitLpLock) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}

	k := keylet.LpLock(op.Mint)
	exists, err := ctx.View.Exists(ctx.Ctx, k)
	if err != nil {
		return Internal
	}
	if exists {
		return AlreadyExists
	}

	lock := &state.LpLock{
		Mint:              op.Mint,
		Admin:             op.Caller,
		LockedAmount:      op.InitialAmount,
		InitialLockAmount: op.InitialAmount,
		Tier:              op.Tier,
		TierStartedAt:     ctx.Now,
	}
	if lock.Validate() != nil {
		return OutOfRange
	}

	ctx.View.Put(k, lock)
	return Success
}

// IncreaseLock adds to the locked position. The tier policy decides
// whether the larger position escalates the tier; tiers never lower
// here.
type IncreaseLock struct {
	Mint   state.Mint
	Caller state.AccountID
	Amount uint64
}

func (op IncreaseLock) Apply(ctx *ApplyContext) Result {
	k := keylet.LpLock(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	lock := rec.(*state.LpLock)
	if op.Caller != lock.Admin {
		return Unauthorized
	}

	next := ctx.TierPolicy(lock, op.Amount)
	if lock.LockedAmount, err = bpsmath.CheckedAdd(lock.LockedAmount, op.Amount); err != nil {
		return ArithmeticOverflow
	}
	if next > lock.Tier {
		lock.Tier = next
		lock.TierStartedAt = ctx.Now
	}

	ctx.View.Put(k, lock)
	ctx.Emit(EventLockIncreased, op.Mint, map[string]uint64{
		"amount": op.Amount,
		"locked": lock.LockedAmount,
		"tier":   uint64(lock.Tier),
	})
	return Success
}

// RequestWithdrawal opens the tier timelock. Only one request may be
// outstanding.
type RequestWithdrawal struct {
	Mint   state.Mint
	Caller state.AccountID
}

func (op RequestWithdrawal) Apply(ctx *ApplyContext) Result {
	k := keylet.LpLock(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	lock := rec.(*state.LpLock)
	if op.Caller != lock.Admin {
		return Unauthorized
	}
	if lock.HasPendingRequest() {
		return AlreadyRequested
	}

	lock.UnlockRequestedAt = ctx.Now
	ctx.View.Put(k, lock)
	ctx.Emit(EventWithdrawalRequested, op.Mint, map[string]uint64{
		"maturesAt": uint64(ctx.Now + lock.Tier.Duration()),
	})
	return Success
}

// CancelWithdrawal abandons a pending withdrawal request. The timelock
// restarts from zero on the next request.
type CancelWithdrawal struct {
	Mint   state.Mint
	Caller state.AccountID
}

func (op CancelWithdrawal) Apply(ctx *ApplyContext) Result {
	k := keylet.LpLock(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	lock := rec.(*state.LpLock)
	if op.Caller != lock.Admin {
		return Unauthorized
	}
	if !lock.HasPendingRequest() {
		return NotRequested
	}

	lock.UnlockRequestedAt = 0
	ctx.View.Put(k, lock)
	ctx.Emit(EventWithdrawalCancelled, op.Mint, map[string]uint64{
		"locked": lock.LockedAmount,
	})
	return Success
}

// ExecuteWithdrawal releases part of the locked position once the
// tier's timelock has matured. The request clears only when the
// position reaches zero, so partial withdrawals keep their maturity.
type ExecuteWithdrawal struct {
	Mint   state.Mint
	Caller state.AccountID
	Amount uint64
}

func (op ExecuteWithdrawal) Apply(ctx *ApplyContext) Result {
	active, res := ctx.armageddonActive(op.Mint)
	if res != Success {
		return res
	}
	if active {
		return ArmageddonActive
	}

	k := keylet.LpLock(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	lock := rec.(*state.LpLock)
	if op.Caller != lock.Admin {
		return Unauthorized
	}
	if !lock.HasPendingRequest() {
		return NotRequested
	}
	if !lock.RequestMatured(ctx.Now) {
		return TimelockNotElapsed
	}
	if op.Amount > lock.LockedAmount {
		return ExceedsLocked
	}

	if err := ctx.Token.Release(ctx.Ctx, op.Mint, lock.Admin, op.Amount); err != nil {
		return Internal
	}

	lock.LockedAmount -= op.Amount
	if lock.TotalWithdrawn, err = bpsmath.CheckedAdd(lock.TotalWithdrawn, op.Amount); err != nil {
		return ArithmeticOverflow
	}
	if lock.LockedAmount == 0 {
		lock.UnlockRequestedAt = 0
	}

	ctx.View.Put(k, lock)
	ctx.Emit(EventWithdrawalExecuted, op.Mint, map[string]uint64{
		"amount":    op.Amount,
		"remaining": lock.LockedAmount,
	})
	return Success
}

// ResetTier is the explicit administrative path for lowering a tier.
type ResetTier struct {
	Mint   state.Mint
	Caller state.AccountID
	Tier   state.LockTier
}

func (op ResetTier) Apply(ctx *ApplyContext) Result {
	k := keylet.LpLock(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	lock := rec.(*state.LpLock)
	if op.Caller != lock.Admin {
		return Unauthorized
	}
	if op.Tier != state.Tier12h && op.Tier != state.Tier15d && op.Tier != state.Tier30d {
		return OutOfRange
	}

	lock.Tier = op.Tier
	lock.TierStartedAt = ctx.Now
	ctx.View.Put(k, lock)
	ctx.Emit(EventLockTierReset, op.Mint, map[string]uint64{
		"tier": uint64(op.Tier),
	})
	return Success
}
