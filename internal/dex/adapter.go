// Package dex defines the capability interface through which liquidity
// growth reaches the pool. Pool mechanics are protocol specific, so the
// engine treats this as an opaque collaborator injected at construction.
package dex

import (
	"context"

	"github.com/labsx402/paradoxd/internal/core/state"
)

// LpDelta reports what an add-liquidity call actually consumed and minted.
type LpDelta struct {
	TokensAdded uint64
	QuoteAdded  uint64
	LpMinted    uint64
}

// Adapter is the injected DEX capability.
type Adapter interface {
	// PriceOracle returns the current quote price per token unit.
	PriceOracle(ctx context.Context, pool state.AccountID) (uint64, error)

	// AddLiquidity provisions the pool with up to tokenAmount/quoteAmount.
	// A partial fill is reported through the returned delta; the caller
	// reconciles any unconsumed remainder.
	AddLiquidity(ctx context.Context, pool state.AccountID, tokenAmount, quoteAmount uint64) (LpDelta, error)
}
