// Package token defines the transfer collaborator. Fee withholding and
// decimal enforcement live entirely on this side of the boundary; the
// engine only consumes harvested amounts and issues releases.
package token

import (
	"context"

	"github.com/labsx402/paradoxd/internal/core/state"
)

// FeeWithheld reports the fee retained by a transfer.
type FeeWithheld struct {
	Amount uint64
}

// Adapter is the injected token-extension capability.
type Adapter interface {
	// WithheldFeeBalance returns fees withheld on an account and not
	// yet harvested.
	WithheldFeeBalance(ctx context.Context, mint state.Mint, account state.AccountID) (uint64, error)

	// TransferWithFee moves amount from one account to another, letting
	// the extension withhold its fee at the configured rate.
	TransferWithFee(ctx context.Context, mint state.Mint, from, to state.AccountID, amount uint64) (FeeWithheld, error)

	// Harvest sweeps withheld fees from the given accounts into the
	// engine's custody and returns the total collected. Permissionless.
	Harvest(ctx context.Context, mint state.Mint, accounts []state.AccountID) (uint64, error)

	// Burn destroys amount from engine custody.
	Burn(ctx context.Context, mint state.Mint, amount uint64) error

	// Release moves amount from engine custody to a recipient. Used by
	// vesting unlocks, treasury spends, and matured lock withdrawals.
	Release(ctx context.Context, mint state.Mint, to state.AccountID, amount uint64) error

	// ValidRecipient reports whether an account may receive funds.
	ValidRecipient(ctx context.Context, mint state.Mint, account state.AccountID) (bool, error)
}
