package state

import (
	"errors"

	"github.com/labsx402/paradoxd/internal/core/bpsmath"
)

// VestingSchedule locks a fixed allocation behind a cliff followed by
// linear unlocking.
type VestingSchedule struct {
	// Mint being vested.
	Mint Mint `codec:"1"`

	// Beneficiary who may claim unlocked amounts.
	Beneficiary AccountID `codec:"2"`

	// TotalAllocation originally assigned to this schedule.
	TotalAllocation uint64 `codec:"3"`

	// LiquidAtTge is immediately claimable once the cliff has passed;
	// the remainder vests linearly.
	LiquidAtTge uint64 `codec:"4"`

	// StartTimestamp is when vesting began.
	StartTimestamp int64 `codec:"5"`

	// CliffSeconds during which nothing is claimable.
	CliffSeconds int64 `codec:"6"`

	// VestingSeconds over which the locked remainder unlocks linearly
	// after the cliff.
	VestingSeconds int64 `codec:"7"`

	// ClaimedAmount released so far. Never exceeds MaxUnlockable(now).
	ClaimedAmount uint64 `codec:"8"`
}

func (v *VestingSchedule) Type() Type {
	return TypeVesting
}

// MaxUnlockable returns the total amount claimable at now: zero before
// the cliff, the full allocation once vesting completes, and a linear
// interpolation from LiquidAtTge in between. Monotonically non-decreasing
// in now.
func (v *VestingSchedule) MaxUnlockable(now int64) (uint64, error) {
	cliffEnd := v.StartTimestamp + v.CliffSeconds
	if now < cliffEnd {
		return 0, nil
	}
	if v.VestingSeconds <= 0 || now >= cliffEnd+v.VestingSeconds {
		return v.TotalAllocation, nil
	}

	span, err := bpsmath.CheckedSub(v.TotalAllocation, v.LiquidAtTge)
	if err != nil {
		return 0, err
	}
	elapsed := uint64(now - cliffEnd)
	vested, err := bpsmath.LinearInterp(span, elapsed, uint64(v.VestingSeconds))
	if err != nil {
		return 0, err
	}
	return bpsmath.CheckedAdd(v.LiquidAtTge, vested)
}

func (v *VestingSchedule) Validate() error {
	if v.Mint == ZeroMint {
		return errors.New("mint is required")
	}
	if v.Beneficiary == ZeroAccount {
		return errors.New("beneficiary is required")
	}
	if v.LiquidAtTge > v.TotalAllocation {
		return errors.New("liquid at TGE cannot exceed total allocation")
	}
	if v.ClaimedAmount > v.TotalAllocation {
		return errors.New("claimed amount cannot exceed total allocation")
	}
	if v.CliffSeconds < 0 || v.VestingSeconds < 0 {
		return errors.New("negative vesting durations")
	}
	return nil
}
