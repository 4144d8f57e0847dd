package token

import (
	"context"
	"errors"
	"sync"

	"github.com/labsx402/paradoxd/internal/core/state"
)

// Release is one recorded custody release.
type Release struct {
	To     state.AccountID
	Amount uint64
}

// Stub is an in-memory Adapter for tests.
type Stub struct {
	mu sync.Mutex

	// Withheld is consumed by Harvest.
	Withheld map[state.AccountID]uint64

	// BadRecipients fail ValidRecipient.
	BadRecipients map[state.AccountID]bool

	// Injected failures for the corresponding calls.
	HarvestErr error
	BurnErr    error
	ReleaseErr error

	Burned   uint64
	Releases []Release
}

func NewStub() *Stub {
	return &Stub{
		Withheld:      make(map[state.AccountID]uint64),
		BadRecipients: make(map[state.AccountID]bool),
	}
}

func (s *Stub) WithheldFeeBalance(ctx context.Context, mint state.Mint, account state.AccountID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Withheld[account], nil
}

func (s *Stub) TransferWithFee(ctx context.Context, mint state.Mint, from, to state.AccountID, amount uint64) (FeeWithheld, error) {
	if amount == 0 {
		return FeeWithheld{}, errors.New("zero transfer")
	}
	// fee accounting happens on harvest; the stub withholds nothing here
	return FeeWithheld{}, nil
}

func (s *Stub) Harvest(ctx context.Context, mint state.Mint, accounts []state.AccountID) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.HarvestErr != nil {
		return 0, s.HarvestErr
	}
	var total uint64
	for _, acct := range accounts {
		total += s.Withheld[acct]
		delete(s.Withheld, acct)
	}
	return total, nil
}

func (s *Stub) Burn(ctx context.Context, mint state.Mint, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.BurnErr != nil {
		return s.BurnErr
	}
	s.Burned += amount
	return nil
}

func (s *Stub) Release(ctx context.Context, mint state.Mint, to state.AccountID, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReleaseErr != nil {
		return s.ReleaseErr
	}
	s.Releases = append(s.Releases, Release{To: to, Amount: amount})
	return nil
}

func (s *Stub) ValidRecipient(ctx context.Context, mint state.Mint, account state.AccountID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account == state.ZeroAccount {
		return false, nil
	}
	return !s.BadRecipients[account], nil
}
