package state

import "errors"

// LockTier is the progressive timelock tier of an LP lock. Tiers only
// escalate; an explicit administrative reset is the only way down.
type LockTier uint8

const (
	Tier12h LockTier = iota
	Tier15d
	Tier30d
)

// Duration returns the withdrawal timelock the tier imposes, in seconds.
func (t LockTier) Duration() int64 {
	switch t {
	case Tier12h:
		return 12 * 60 * 60
	case Tier15d:
		return 15 * 24 * 60 * 60
	case Tier30d:
		return 30 * 24 * 60 * 60
	default:
		// unknown tiers behave like the strictest one
		return 30 * 24 * 60 * 60
	}
}

func (t LockTier) String() string {
	switch t {
	case Tier12h:
		return "Tier12h"
	case Tier15d:
		return "Tier15d"
	case Tier30d:
		return "Tier30d"
	default:
		return "Unknown"
	}
}

// LpLock gates withdrawals from a liquidity position behind a
// progressive timelock.
type LpLock struct {
	// Mint this lock belongs to.
	Mint Mint `codec:"1"`

	// Admin may request and execute withdrawals.
	Admin AccountID `codec:"2"`

	// LockedAmount of LP tokens currently held by the lock.
	LockedAmount uint64 `codec:"3"`

	// Tier in effect; raised by the escalation policy, lowered only by
	// an explicit administrative reset.
	Tier LockTier `codec:"4"`

	// TierStartedAt is when the current tier was assigned.
	TierStartedAt int64 `codec:"5"`

	// UnlockRequestedAt is the pending withdrawal request timestamp.
	// Zero means no request is outstanding.
	UnlockRequestedAt int64 `codec:"6"`

	// InitialLockAmount is the amount locked at initialization; the
	// default escalation policy measures growth against it.
	InitialLockAmount uint64 `codec:"7"`

	// TotalWithdrawn over the lock's lifetime.
	TotalWithdrawn uint64 `codec:"8"`
}

func (l *LpLock) Type() Type {
	return TypeLpLock
}

// HasPendingRequest reports whether a withdrawal request is outstanding.
func (l *LpLock) HasPendingRequest() bool {
	return l.UnlockRequestedAt != 0
}

// RequestMatured reports whether the pending request has aged past the
// tier's required duration at now. Exactly the boundary counts as matured.
func (l *LpLock) RequestMatured(now int64) bool {
	if !l.HasPendingRequest() {
		return false
	}
	return now-l.UnlockRequestedAt >= l.Tier.Duration()
}

func (l *LpLock) Validate() error {
	if l.Mint == ZeroMint {
		return errors.New("mint is required")
	}
	if l.Admin == ZeroAccount {
		return errors.New("admin is required")
	}
	if l.Tier > Tier30d {
		return errors.New("unknown lock tier")
	}
	if l.UnlockRequestedAt < 0 {
		return errors.New("negative request timestamp")
	}
	return nil
}
