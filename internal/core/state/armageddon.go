package state

import (
	"errors"

	"github.com/labsx402/paradoxd/internal/core/bpsmath"
)

// TriggerReason records why armageddon mode was entered.
type TriggerReason uint8

const (
	ReasonNone TriggerReason = iota
	ReasonAdmin
	ReasonLiquidityDrop
	ReasonWithdrawalAnomaly
)

func (r TriggerReason) String() string {
	switch r {
	case ReasonNone:
		return "None"
	case ReasonAdmin:
		return "Admin"
	case ReasonLiquidityDrop:
		return "LiquidityDrop"
	case ReasonWithdrawalAnomaly:
		return "WithdrawalAnomaly"
	default:
		return "Unknown"
	}
}

// RecoverySnapshot captures last-known-good figures when armageddon
// triggers. The recovery predicate compares current state against it.
type RecoverySnapshot struct {
	LpValue         uint64 `codec:"1"`
	TreasuryBalance uint64 `codec:"2"`
}

// ArmageddonState is the global circuit breaker for a mint. While
// triggered, LP growth and LP lock withdrawal execution fail fast.
type ArmageddonState struct {
	// Mint this state belongs to.
	Mint Mint `codec:"1"`

	// TriggerAuthority may trigger and recover.
	TriggerAuthority AccountID `codec:"2"`

	// Triggered is the breaker flag. Once set, only Recover clears it.
	Triggered bool `codec:"3"`

	// TriggeredAt and Reason describe the active trigger. Zero when
	// not triggered.
	TriggeredAt int64         `codec:"4"`
	Reason      TriggerReason `codec:"5"`

	// Snapshot taken at trigger time. Zero-valued when not triggered.
	Snapshot RecoverySnapshot `codec:"6"`

	// RecoveryThresholdBps is how far figures must return toward the
	// snapshot before recovery is allowed (e.g. 9000 = within 90%).
	RecoveryThresholdBps uint16 `codec:"7"`
}

func (a *ArmageddonState) Type() Type {
	return TypeArmageddon
}

// CanRecover reports whether current liquidity and treasury figures have
// returned to within the safe band of the snapshot. Checked arithmetic;
// never panics on extreme inputs.
func (a *ArmageddonState) CanRecover(currentLpValue, currentTreasury uint64) bool {
	if !a.Triggered {
		return false
	}
	lpFloor, err := bpsmath.MulDivBps(a.Snapshot.LpValue, a.RecoveryThresholdBps)
	if err != nil {
		return false
	}
	treasuryFloor, err := bpsmath.MulDivBps(a.Snapshot.TreasuryBalance, a.RecoveryThresholdBps)
	if err != nil {
		return false
	}
	return currentLpValue >= lpFloor && currentTreasury >= treasuryFloor
}

func (a *ArmageddonState) Validate() error {
	if a.Mint == ZeroMint {
		return errors.New("mint is required")
	}
	if a.TriggerAuthority == ZeroAccount {
		return errors.New("trigger authority is required")
	}
	if a.RecoveryThresholdBps == 0 || a.RecoveryThresholdBps > 10_000 {
		return errors.New("recovery threshold out of range")
	}
	if !a.Triggered && a.TriggeredAt != 0 {
		return errors.New("trigger timestamp without active trigger")
	}
	return nil
}
