package state

import "errors"

// Treasury is a governance-gated spending vault fed by the fee split.
type Treasury struct {
	// Mint this treasury belongs to.
	Mint Mint `codec:"1"`

	// SpendAuthority may spend from the balance.
	SpendAuthority AccountID `codec:"2"`

	// Balance currently held. Invariant: Balance = TotalReceived - TotalSpent.
	Balance uint64 `codec:"3"`

	// Lifetime accounting.
	TotalReceived uint64 `codec:"4"`
	TotalSpent    uint64 `codec:"5"`

	// Per-period spending cap policy (default accrual rule): at most
	// MaxSpendBpsPerPeriod of the current balance per rolling period.
	MaxSpendBpsPerPeriod uint16 `codec:"6"`
	PeriodSeconds        int64  `codec:"7"`
	PeriodStart          int64  `codec:"8"`
	SpentThisPeriod      uint64 `codec:"9"`
}

func (t *Treasury) Type() Type {
	return TypeTreasury
}

// PeriodExpired reports whether the current spending period has ended.
func (t *Treasury) PeriodExpired(now int64) bool {
	return now >= t.PeriodStart+t.PeriodSeconds
}

func (t *Treasury) Validate() error {
	if t.Mint == ZeroMint {
		return errors.New("mint is required")
	}
	if t.SpendAuthority == ZeroAccount {
		return errors.New("spend authority is required")
	}
	if t.TotalSpent > t.TotalReceived {
		return errors.New("total spent cannot exceed total received")
	}
	if t.Balance != t.TotalReceived-t.TotalSpent {
		return errors.New("balance must equal received minus spent")
	}
	if t.MaxSpendBpsPerPeriod > 10_000 {
		return errors.New("spend cap above 10000 bps")
	}
	return nil
}
