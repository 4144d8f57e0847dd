package engine

import (
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// InitTokenConfig creates a mint's token configuration. One-time; the
// caller becomes the admin authority.
type InitTokenConfig struct {
	Mint             state.Mint
	Caller           state.AccountID
	Decimals         uint8
	TransferFeeBps   uint16
	LpShareBps       uint16
	BurnShareBps     uint16
	TreasuryShareBps uint16
}

func (op InitTokenConfig) Apply(ctx *ApplyContext) Result {
	k := keylet.TokenConfig(op.Mint)
	exists, err := ctx.View.Exists(ctx.Ctx, k)
	if err != nil {
		return Internal
	}
	if exists {
		return AlreadyExists
	}
	if op.Caller == state.ZeroAccount {
		return Unauthorized
	}

	cfg := &state.TokenConfig{
		Mint:             op.Mint,
		Admin:            op.Caller,
		Decimals:         op.Decimals,
		TransferFeeBps:   op.TransferFeeBps,
		LpShareBps:       op.LpShareBps,
		BurnShareBps:     op.BurnShareBps,
		TreasuryShareBps: op.TreasuryShareBps,
		LastFeeUpdate:    ctx.Now,
	}
	if cfg.Validate() != nil {
		return OutOfRange
	}

	ctx.View.Put(k, cfg)
	ctx.Emit(EventConfigInitialized, op.Mint, map[string]uint64{
		"transferFeeBps": uint64(cfg.TransferFeeBps),
		"lpShareBps":     uint64(cfg.LpShareBps),
	})
	return Success
}

// AnnounceFeeChange stages a new transfer fee behind the 24h timelock.
// The pending rate is publicly visible and fixed before taking effect,
// so nobody can front-run the change.
type AnnounceFeeChange struct {
	Mint   state.Mint
	Caller state.AccountID
	NewBps uint16
}

func (op AnnounceFeeChange) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}
	if !state.ValidFeeBps(op.NewBps) {
		return OutOfRange
	}
	if cfg.HasPendingFeeChange() {
		return AlreadyPending
	}

	cfg.PendingFeeBps = op.NewBps
	cfg.PendingFeeAnnouncedAt = ctx.Now

	ctx.View.Put(keylet.TokenConfig(op.Mint), cfg)
	ctx.Emit(EventFeeChangeAnnounced, op.Mint, map[string]uint64{
		"newBps":       uint64(op.NewBps),
		"executableAt": uint64(cfg.FeeChangeExecutableAt()),
	})
	return Success
}

// ExecuteFeeChange makes a matured pending fee active and consumes the
// announcement. Permissionless once the timelock has elapsed.
type ExecuteFeeChange struct {
	Mint   state.Mint
	Caller state.AccountID
}

func (op ExecuteFeeChange) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if !cfg.HasPendingFeeChange() {
		return NoPendingRequest
	}
	if ctx.Now < cfg.FeeChangeExecutableAt() {
		return TimelockNotElapsed
	}

	cfg.TransferFeeBps = cfg.PendingFeeBps
	cfg.PendingFeeBps = 0
	cfg.PendingFeeAnnouncedAt = 0
	cfg.LastFeeUpdate = ctx.Now

	ctx.View.Put(keylet.TokenConfig(op.Mint), cfg)
	ctx.Emit(EventFeeChangeExecuted, op.Mint, map[string]uint64{
		"transferFeeBps": uint64(cfg.TransferFeeBps),
	})
	return Success
}

// CancelFeeChange clears a pending fee change. Admin-only, no timelock.
type CancelFeeChange struct {
	Mint   state.Mint
	Caller state.AccountID
}

func (op CancelFeeChange) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}
	if !cfg.HasPendingFeeChange() {
		return NoPendingRequest
	}

	cancelled := cfg.PendingFeeBps
	cfg.PendingFeeBps = 0
	cfg.PendingFeeAnnouncedAt = 0

	ctx.View.Put(keylet.TokenConfig(op.Mint), cfg)
	ctx.Emit(EventFeeChangeCancelled, op.Mint, map[string]uint64{
		"cancelledBps": uint64(cancelled),
	})
	return Success
}
