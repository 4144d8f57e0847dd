// Package testing provides the test environment for engine operations:
// a manual clock, an in-memory store, stub collaborators, and helpers
// for reading entity state back.
package testing

import (
	"context"
	"sync"
	"testing"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/labsx402/paradoxd/internal/dex"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
	"github.com/labsx402/paradoxd/internal/token"
)

// Standard identities used across tests.
var (
	Admin       = state.AccountID{0xAD}
	Beneficiary = state.AccountID{0xBE}
	Spender     = state.AccountID{0x5E}
	Recipient   = state.AccountID{0x4C}
	Outsider    = state.AccountID{0x0F}
	Pool        = state.AccountID{0xB0}
)

// EventSink records published events for assertions.
type EventSink struct {
	mu     sync.Mutex
	events []engine.Event
}

func (s *EventSink) Publish(ev engine.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// Events returns a copy of everything published so far.
func (s *EventSink) Events() []engine.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]engine.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Types returns just the event type strings, in publication order.
func (s *EventSink) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

// Env wires an in-memory store, stub collaborators, a manual clock,
// and the engine into one test fixture.
type Env struct {
	t *testing.T

	Store  *statestore.Store
	Clock  *ManualClock
	Token  *token.Stub
	Dex    *dex.Stub
	Events *EventSink
	Engine *engine.Engine

	Mint state.Mint
}

// NewEnv creates a fresh environment. The mint's config is not created;
// use InitAll or apply InitTokenConfig explicitly.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	store, err := statestore.NewStore(statestore.NewMemoryKV())
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &Env{
		t:      t,
		Store:  store,
		Clock:  NewManualClock(),
		Token:  token.NewStub(),
		Dex:    dex.NewStub(1),
		Events: &EventSink{},
		Mint:   state.Mint{0x11},
	}
	env.Engine = engine.New(store, env.Token, env.Dex,
		engine.WithClock(env.Clock),
		engine.WithPublisher(env.Events),
	)
	return env
}

// Now returns the clock's current unix time.
func (e *Env) Now() int64 {
	return e.Clock.Now().Unix()
}

// Apply submits one operation.
func (e *Env) Apply(op engine.Operation) engine.Result {
	return e.Engine.Apply(context.Background(), op)
}

// RequireApply submits an operation and fails the test unless it
// succeeds.
func (e *Env) RequireApply(op engine.Operation) {
	e.t.Helper()
	if res := e.Apply(op); !res.IsSuccess() {
		e.t.Fatalf("apply %T: %s", op, res)
	}
}

// InitConfig creates the default token config for the env's mint.
func (e *Env) InitConfig() {
	e.t.Helper()
	e.RequireApply(engine.InitTokenConfig{
		Mint:             e.Mint,
		Caller:           Admin,
		Decimals:         9,
		TransferFeeBps:   300,
		LpShareBps:       7000,
		BurnShareBps:     1500,
		TreasuryShareBps: 1500,
	})
}

// InitAll creates every entity for the env's mint with workable
// defaults: growth (threshold 100, cooldown 3600s), treasury (20% per
// day), lock (1000 at the 12h tier), armageddon (90% recovery band).
func (e *Env) InitAll() {
	e.t.Helper()
	e.InitConfig()
	e.RequireApply(engine.InitLpGrowth{
		Mint:            e.Mint,
		Caller:          Admin,
		PoolAddress:     Pool,
		MinFeeThreshold: 100,
		CooldownSeconds: 3600,
	})
	e.RequireApply(engine.InitTreasury{
		Mint:                 e.Mint,
		Caller:               Admin,
		SpendAuthority:       Spender,
		MaxSpendBpsPerPeriod: 2000,
		PeriodSeconds:        86_400,
	})
	e.RequireApply(engine.InitLpLock{
		Mint:          e.Mint,
		Caller:        Admin,
		InitialAmount: 1000,
		Tier:          state.Tier12h,
	})
	e.RequireApply(engine.InitArmageddon{
		Mint:                 e.Mint,
		Caller:               Admin,
		TriggerAuthority:     Admin,
		RecoveryThresholdBps: 9000,
	})
}

func (e *Env) load(k keylet.Keylet) state.Record {
	e.t.Helper()
	rec, err := e.Store.Load(context.Background(), k)
	if err != nil {
		e.t.Fatalf("load %s: %v", k.Type, err)
	}
	return rec
}

// Config reads the current token config back from the store.
func (e *Env) Config() *state.TokenConfig {
	return e.load(keylet.TokenConfig(e.Mint)).(*state.TokenConfig)
}

// Growth reads the current LP growth state.
func (e *Env) Growth() *state.LpGrowthState {
	return e.load(keylet.LpGrowth(e.Mint)).(*state.LpGrowthState)
}

// Treasury reads the current treasury state.
func (e *Env) Treasury() *state.Treasury {
	return e.load(keylet.Treasury(e.Mint)).(*state.Treasury)
}

// Lock reads the current LP lock state.
func (e *Env) Lock() *state.LpLock {
	return e.load(keylet.LpLock(e.Mint)).(*state.LpLock)
}

// Vesting reads a beneficiary's schedule.
func (e *Env) Vesting(beneficiary state.AccountID) *state.VestingSchedule {
	return e.load(keylet.Vesting(e.Mint, beneficiary)).(*state.VestingSchedule)
}

// Armageddon reads the current armageddon state.
func (e *Env) Armageddon() *state.ArmageddonState {
	return e.load(keylet.Armageddon(e.Mint)).(*state.ArmageddonState)
}
