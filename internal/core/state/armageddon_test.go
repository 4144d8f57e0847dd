package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRecover(t *testing.T) {
	a := &ArmageddonState{
		Mint:             Mint{1},
		TriggerAuthority: AccountID{2},
		Triggered:        true,
		TriggeredAt:      1000,
		Reason:           ReasonLiquidityDrop,
		Snapshot: RecoverySnapshot{
			LpValue:         1_000_000,
			TreasuryBalance: 500_000,
		},
		RecoveryThresholdBps: 9000,
	}

	// both figures back within 90% of the snapshot
	assert.True(t, a.CanRecover(900_000, 450_000))
	assert.True(t, a.CanRecover(2_000_000, 500_000))

	// either figure still below the band blocks recovery
	assert.False(t, a.CanRecover(899_999, 450_000))
	assert.False(t, a.CanRecover(900_000, 449_999))
}

func TestCanRecoverRequiresTrigger(t *testing.T) {
	a := &ArmageddonState{
		Mint:                 Mint{1},
		TriggerAuthority:     AccountID{2},
		RecoveryThresholdBps: 9000,
	}
	assert.False(t, a.CanRecover(math.MaxUint64, math.MaxUint64))
}

func TestCanRecoverExtremeSnapshot(t *testing.T) {
	a := &ArmageddonState{
		Mint:             Mint{1},
		TriggerAuthority: AccountID{2},
		Triggered:        true,
		TriggeredAt:      1,
		Snapshot: RecoverySnapshot{
			LpValue:         math.MaxUint64,
			TreasuryBalance: math.MaxUint64,
		},
		RecoveryThresholdBps: 10_000,
	}
	// must not panic; the band is the full snapshot value
	assert.True(t, a.CanRecover(math.MaxUint64, math.MaxUint64))
	assert.False(t, a.CanRecover(math.MaxUint64-1, math.MaxUint64))
}
