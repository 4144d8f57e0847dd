package state

import "errors"

// Governance bounds for fee configuration. A fee or share outside these
// ranges can never be set, announced, or loaded.
const (
	MinTransferFeeBps uint16 = 100
	MaxTransferFeeBps uint16 = 300

	MinLpShareBps uint16 = 6000
	MaxLpShareBps uint16 = 8000

	MinBurnShareBps uint16 = 1000
	MaxBurnShareBps uint16 = 2000

	MinTreasuryShareBps uint16 = 1000
	MaxTreasuryShareBps uint16 = 2000
)

// FeeChangeTimelockSeconds is the mandatory delay between announcing a
// fee change and executing it.
const FeeChangeTimelockSeconds int64 = 24 * 60 * 60

// TokenConfig stores fee rates, distribution shares, and the admin
// authority for one mint.
type TokenConfig struct {
	// Mint this config belongs to.
	Mint Mint `codec:"1"`

	// Admin may update config and trigger privileged operations.
	Admin AccountID `codec:"2"`

	// Decimals is fixed at initialization and never changes.
	Decimals uint8 `codec:"3"`

	// TransferFeeBps is the active transfer fee (100-300).
	TransferFeeBps uint16 `codec:"4"`

	// Distribution shares; always sum to 10000.
	LpShareBps       uint16 `codec:"5"`
	BurnShareBps     uint16 `codec:"6"`
	TreasuryShareBps uint16 `codec:"7"`

	// Pending fee change. Zero values mean no request is outstanding.
	// These fields were added after the initial layout; records written
	// before them decode with both at zero.
	PendingFeeBps         uint16 `codec:"8"`
	PendingFeeAnnouncedAt int64  `codec:"9"`

	// Lifetime accounting.
	TotalFeesCollected   uint64 `codec:"10"`
	TotalFeesDistributed uint64 `codec:"11"`

	// LastFeeUpdate is when the active fee last changed.
	LastFeeUpdate int64 `codec:"12"`
}

func (c *TokenConfig) Type() Type {
	return TypeTokenConfig
}

// HasPendingFeeChange reports whether a fee-change request is outstanding.
func (c *TokenConfig) HasPendingFeeChange() bool {
	return c.PendingFeeBps != 0
}

// FeeChangeExecutableAt returns the earliest instant the pending change
// may execute. Meaningless when no request is outstanding.
func (c *TokenConfig) FeeChangeExecutableAt() int64 {
	return c.PendingFeeAnnouncedAt + FeeChangeTimelockSeconds
}

// Shares returns the distribution triple in the order the fee engine
// splits a harvested amount: LP growth, burn, treasury.
func (c *TokenConfig) Shares() [3]uint16 {
	return [3]uint16{c.LpShareBps, c.BurnShareBps, c.TreasuryShareBps}
}

// ValidFeeBps reports whether a transfer fee lies in the governance range.
func ValidFeeBps(bps uint16) bool {
	return bps >= MinTransferFeeBps && bps <= MaxTransferFeeBps
}

// ValidShares reports whether a share triple lies in the governance
// ranges and sums to exactly 10000.
func ValidShares(lp, burn, treasury uint16) bool {
	if lp < MinLpShareBps || lp > MaxLpShareBps {
		return false
	}
	if burn < MinBurnShareBps || burn > MaxBurnShareBps {
		return false
	}
	if treasury < MinTreasuryShareBps || treasury > MaxTreasuryShareBps {
		return false
	}
	return uint32(lp)+uint32(burn)+uint32(treasury) == 10_000
}

func (c *TokenConfig) Validate() error {
	if c.Mint == ZeroMint {
		return errors.New("mint is required")
	}
	if c.Admin == ZeroAccount {
		return errors.New("admin is required")
	}
	if !ValidFeeBps(c.TransferFeeBps) {
		return errors.New("transfer fee out of governance range")
	}
	if !ValidShares(c.LpShareBps, c.BurnShareBps, c.TreasuryShareBps) {
		return errors.New("distribution shares out of governance range")
	}
	if c.PendingFeeBps != 0 && !ValidFeeBps(c.PendingFeeBps) {
		return errors.New("pending transfer fee out of governance range")
	}
	if c.TotalFeesDistributed > c.TotalFeesCollected {
		return errors.New("distributed fees cannot exceed collected fees")
	}
	return nil
}
