package engine

import (
	"github.com/labsx402/paradoxd/internal/core/bpsmath"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// TierPolicy decides the lock tier after an increase. Implementations
// may only hold or raise the tier; the engine clamps any attempt to
// lower it.
type TierPolicy func(lock *state.LpLock, added uint64) state.LockTier

// DefaultTierPolicy escalates on cumulative growth relative to the
// initial lock: doubling the position moves to the 15-day tier,
// quadrupling it to the 30-day tier.
func DefaultTierPolicy(lock *state.LpLock, added uint64) state.LockTier {
	if lock.InitialLockAmount == 0 {
		return lock.Tier
	}
	cumulative, err := bpsmath.CheckedAdd(lock.LockedAmount, added)
	if err != nil {
		return state.Tier30d
	}
	switch ratio := cumulative / lock.InitialLockAmount; {
	case ratio >= 4:
		return state.Tier30d
	case ratio >= 2:
		return state.Tier15d
	default:
		return lock.Tier
	}
}

// SpendPolicy gates a treasury spend. It may mutate period-tracking
// fields (those land with the operation's batch) and returns Success
// when the spend is allowed.
type SpendPolicy func(t *state.Treasury, amount uint64, now int64) Result

// DefaultSpendPolicy caps spending per rolling period at
// MaxSpendBpsPerPeriod of the current balance.
func DefaultSpendPolicy(t *state.Treasury, amount uint64, now int64) Result {
	if t.PeriodSeconds <= 0 || t.MaxSpendBpsPerPeriod == 0 {
		return Success
	}
	if t.PeriodExpired(now) {
		t.PeriodStart = now
		t.SpentThisPeriod = 0
	}
	cap, err := bpsmath.MulDivBps(t.Balance, t.MaxSpendBpsPerPeriod)
	if err != nil {
		return ArithmeticOverflow
	}
	spent, err := bpsmath.CheckedAdd(t.SpentThisPeriod, amount)
	if err != nil {
		return ArithmeticOverflow
	}
	if spent > cap {
		return InsufficientFunds
	}
	t.SpentThisPeriod = spent
	return Success
}
