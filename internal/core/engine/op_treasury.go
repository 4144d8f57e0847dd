package engine

import (
	"github.com/labsx402/paradoxd/internal/core/bpsmath"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// InitTreasury creates a mint's treasury. Admin-only, one-time.
type InitTreasury struct {
	Mint                 state.Mint
	Caller               state.AccountID
	SpendAuthority       state.AccountID
	MaxSpendBpsPerPeriod uint16
	PeriodSeconds        int64
}

func (op InitTreasury) Apply(ctx *ApplyContext) Result {
	cfg, res := ctx.loadConfig(op.Mint)
	if res != Success {
		return res
	}
	if op.Caller != cfg.Admin {
		return Unauthorized
	}

	k := keylet.Treasury(op.Mint)
	exists, err := ctx.View.Exists(ctx.Ctx, k)
	if err != nil {
		return Internal
	}
	if exists {
		return AlreadyExists
	}

	treasury := &state.Treasury{
		Mint:                 op.Mint,
		SpendAuthority:       op.SpendAuthority,
		MaxSpendBpsPerPeriod: op.MaxSpendBpsPerPeriod,
		PeriodSeconds:        op.PeriodSeconds,
		PeriodStart:          ctx.Now,
	}
	if treasury.Validate() != nil {
		return OutOfRange
	}

	ctx.View.Put(k, treasury)
	return Success
}

// TreasurySpend releases treasury funds to a recipient, guarded by the
// spend authority, the balance, recipient validation, and the accrual
// policy.
type TreasurySpend struct {
	Mint      state.Mint
	Caller    state.AccountID
	Recipient state.AccountID
	Amount    uint64
}

func (op TreasurySpend) Apply(ctx *ApplyContext) Result {
	k := keylet.Treasury(op.Mint)
	rec, err := ctx.View.Load(ctx.Ctx, k)
	if err != nil {
		if IsNotFound(err) {
			return NotFound
		}
		return Internal
	}
	treasury := rec.(*state.Treasury)

	if op.Caller != treasury.SpendAuthority {
		return Unauthorized
	}
	if op.Recipient == state.ZeroAccount {
		return InvalidRecipient
	}
	ok, err := ctx.Token.ValidRecipient(ctx.Ctx, op.Mint, op.Recipient)
	if err != nil {
		return Internal
	}
	if !ok {
		return InvalidRecipient
	}
	if op.Amount > treasury.Balance {
		return InsufficientFunds
	}
	if res := ctx.SpendPolicy(treasury, op.Amount, ctx.Now); res != Success {
		return res
	}

	if err := ctx.Token.Release(ctx.Ctx, op.Mint, op.Recipient, op.Amount); err != nil {
		return Internal
	}

	treasury.Balance -= op.Amount
	if treasury.TotalSpent, err = bpsmath.CheckedAdd(treasury.TotalSpent, op.Amount); err != nil {
		return ArithmeticOverflow
	}

	ctx.View.Put(k, treasury)
	ctx.Emit(EventTreasurySpend, op.Mint, map[string]uint64{
		"amount":  op.Amount,
		"balance": treasury.Balance,
	})
	return Success
}
