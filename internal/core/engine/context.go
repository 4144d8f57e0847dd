package engine

import (
	"context"

	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/labsx402/paradoxd/internal/dex"
	"github.com/labsx402/paradoxd/internal/token"
)

// ApplyContext provides all the state and helpers an operation needs.
// It is passed to Operation.Apply() instead of individual parameters.
type ApplyContext struct {
	// Ctx carries cancellation for store and collaborator calls.
	Ctx context.Context

	// View provides buffered read/write access to entity records.
	View *View

	// Now is the caller-supplied current time in unix seconds. All
	// timelock and vesting math polls against it.
	Now int64

	// Dex and Token are the injected collaborators.
	Dex   dex.Adapter
	Token token.Adapter

	// TierPolicy and SpendPolicy resolve the governance-tunable rules.
	TierPolicy  TierPolicy
	SpendPolicy SpendPolicy

	events []Event
}

// Emit queues an event for publication after commit.
func (ctx *ApplyContext) Emit(typ string, mint state.Mint, data map[string]uint64) {
	ctx.events = append(ctx.events, Event{Type: typ, Mint: mint, At: ctx.Now, Data: data})
}

// loadConfig fetches a mint's token configuration.
func (ctx *ApplyContext) loadConfig(mint state.Mint) (*state.TokenConfig, Result) {
	rec, err := ctx.View.Load(ctx.Ctx, keylet.TokenConfig(mint))
	if err != nil {
		if IsNotFound(err) {
			return nil, NotFound
		}
		return nil, Internal
	}
	return rec.(*state.TokenConfig), Success
}

// armageddonActive reports whether emergency mode is in force for a
// mint. A missing armageddon record means it was never armed.
func (ctx *ApplyContext) armageddonActive(mint state.Mint) (bool, Result) {
	rec, err := ctx.View.Load(ctx.Ctx, keylet.Armageddon(mint))
	if err != nil {
		if IsNotFound(err) {
			return false, Success
		}
		return false, Internal
	}
	return rec.(*state.ArmageddonState).Triggered, Success
}
