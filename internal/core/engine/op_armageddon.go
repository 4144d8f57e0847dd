package engine

import (
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// InitArmageddon arms emergency mode for a mint. Admin-only, one-time.
type InitArmageddon struct {
	Mint                 state.Mint
	Caller               state.AccountID
	TriggerAuthority     state.AccountID
	RecoveryThresholdBps uint16
}

func (op InitArmageddon) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}

	k := keylet.Armageddon(op.Mint)
	exists, err := ctx.View.Exists(ctx.Ctx, k)
	if err != nil {
		return Internal
	}
	if exists {
		return AlreadyExists
	}

	arm := &state.ArmageddonState{
		Mint:                 op.Mint,
		TriggerAuthority:     op.TriggerAuthority,
		RecoveryThresholdBps: op.RecoveryThresholdBps,
	}
	if arm.Validate() != nil {
		return OutOfRange
	}

	ctx.View.Put(k, arm)
	return Success
}

// TriggerArmageddon freezes growth execution and lock withdrawals and
// snapshots the last-known-good LP and treasury figures the recovery
// predicate is judged against.
type TriggerArmageddon struct {
	Mint   state.Mint
	Caller state.AccountID
	Reason state.TriggerReason
}

func (op TriggerArmageddon) Apply(ctx *ApplyContext) Result {
	k := keylet.Armageddon(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	arm := rec.(*state.ArmageddonState)
	if op.Caller != arm.TriggerAuthority {
		return Unauthorized
	}
	if arm.Triggered {
		return AlreadyPending
	}
	if op.Reason == state.ReasonNone {
		return OutOfRange
	}

	lpValue, treasuryBalance, res := currentFigures(ctx, op.Mint)
	if res != Success {
		return res
	}

	arm.Triggered = true
	arm.TriggeredAt = ctx.Now
	arm.Reason = op.Reason
	arm.Snapshot = state.RecoverySnapshot{
		LpValue:         lpValue,
		TreasuryBalance: treasuryBalance,
	}

	ctx.View.Put(k, arm)
	ctx.Emit(EventArmageddonTriggered, op.Mint, map[string]uint64{
		"reason":          uint64(op.Reason),
		"lpValue":         lpValue,
		"treasuryBalance": treasuryBalance,
	})
	return Success
}

// RecoverArmageddon clears emergency mode once liquidity and treasury
// figures are back within the recovery band of the trigger snapshot.
type RecoverArmageddon struct {
	Mint   state.Mint
	Caller state.AccountID
}

func (op RecoverArmageddon) Apply(ctx *ApplyContext) Result {
	k := keylet.Armageddon(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	arm := rec.(*state.ArmageddonState)
	if op.Caller != arm.TriggerAuthority {
		return Unauthorized
	}
	if !arm.Triggered {
		return NotRequested
	}

	lpValue, treasuryBalance, res := currentFigures(ctx, op.Mint)
	if res != Success {
		return res
	}
	if !arm.CanRecover(lpValue, treasuryBalance) {
		return CannotRecoverYet
	}

	arm.Triggered = false
	arm.TriggeredAt = 0
	arm.Reason = state.ReasonNone
	arm.Snapshot = state.RecoverySnapshot{}

	ctx.View.Put(k, arm)
	ctx.Emit(EventArmageddonRecovered, op.Mint, map[string]uint64{
		"lpValue":         lpValue,
		"treasuryBalance": treasuryBalance,
	})
	return Success
}

// currentFigures reads the LP and treasury figures both the snapshot
// and the recovery predicate are built from. A missing entity counts
// as zero rather than failing, so a partially initialized mint can
// still trigger.
func currentFigures(ctx *ApplyContext, mint state.Mint) (lpValue, treasuryBalance uint64, res Result) {
	lockRec, err := ctx.View.Load(ctx.Ctx, keylet.LpLock(mint))
	if err == nil {
		lpValue = lockRec.(*state.LpLock).LockedAmount
	} else if !IsNotFound(err) {
		return 0, 0, Internal
	}

	treasuryRec, err := ctx.View.Load(ctx.Ctx, keylet.Treasury(mint))
	if err == nil {
		treasuryBalance = treasuryRec.(*state.Treasury).Balance
	} else if !IsNotFound(err) {
		return 0, 0, Internal
	}
	return lpValue, treasuryBalance, Success
}
