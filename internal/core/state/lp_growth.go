package state

import "errors"

// LpGrowthState controls automatic liquidity growth from accumulated fees.
type LpGrowthState struct {
	// Mint this manager controls.
	Mint Mint `codec:"1"`

	// PoolAddress references the liquidity pool. Reference only; the
	// pool itself is owned by the DEX, not by this record.
	PoolAddress AccountID `codec:"2"`

	// AccumulatedFeeAmount waits to be converted into liquidity. It only
	// grows between growth executions and resets to the unconverted
	// remainder immediately after a successful growth.
	AccumulatedFeeAmount uint64 `codec:"3"`

	// MinFeeThreshold is the minimum accumulation required to trigger
	// a growth execution.
	MinFeeThreshold uint64 `codec:"4"`

	// CooldownSeconds between growth executions.
	CooldownSeconds int64 `codec:"5"`

	// LastGrowthAt is the timestamp of the last successful growth.
	LastGrowthAt int64 `codec:"6"`

	// Lifetime accounting.
	TotalQuoteAdded  uint64 `codec:"7"`
	TotalTokensAdded uint64 `codec:"8"`
	GrowthExecutions uint64 `codec:"9"`

	// Locked pauses growth execution while the admin investigates the
	// pool. Fees keep accumulating.
	Locked bool `codec:"10"`
}

func (g *LpGrowthState) Type() Type {
	return TypeLpGrowth
}

// ThresholdMet reports whether enough fees have accumulated.
func (g *LpGrowthState) ThresholdMet() bool {
	return g.AccumulatedFeeAmount >= g.MinFeeThreshold
}

// CooldownOver reports whether the cooldown since the last growth has
// elapsed at now.
func (g *LpGrowthState) CooldownOver(now int64) bool {
	return now-g.LastGrowthAt >= g.CooldownSeconds
}

func (g *LpGrowthState) Validate() error {
	if g.Mint == ZeroMint {
		return errors.New("mint is required")
	}
	if g.MinFeeThreshold == 0 {
		return errors.New("min fee threshold is required")
	}
	if g.CooldownSeconds <= 0 {
		return errors.New("cooldown must be positive")
	}
	return nil
}
