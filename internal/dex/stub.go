package dex

import (
	"context"
	"sync"

	"github.com/labsx402/paradoxd/internal/core/state"
)

// Stub is an in-memory Adapter for tests. It fills add-liquidity calls
// completely unless a failure or partial fill is injected.
type Stub struct {
	mu sync.Mutex

	Price uint64

	// PriceErr / AddErr make the next corresponding call fail.
	PriceErr error
	AddErr   error

	// TokensConsumed, when non-zero, caps how many tokens the next
	// AddLiquidity call consumes.
	TokensConsumed uint64

	// Calls records every successful AddLiquidity invocation.
	Calls []LpDelta
}

func NewStub(price uint64) *Stub {
	return &Stub{Price: price}
}

func (s *Stub) PriceOracle(ctx context.Context, pool state.AccountID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.PriceErr != nil {
		return 0, s.PriceErr
	}
	return s.Price, nil
}

func (s *Stub) AddLiquidity(ctx context.Context, pool state.AccountID, tokenAmount, quoteAmount uint64) (LpDelta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AddErr != nil {
		return LpDelta{}, s.AddErr
	}

	consumed := tokenAmount
	if s.TokensConsumed != 0 && s.TokensConsumed < tokenAmount {
		consumed = s.TokensConsumed
	}
	delta := LpDelta{
		TokensAdded: consumed,
		QuoteAdded:  quoteAmount,
		LpMinted:    consumed,
	}
	s.Calls = append(s.Calls, delta)
	return delta, nil
}
