package engine

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/labsx402/paradoxd/internal/dex"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
	"github.com/labsx402/paradoxd/internal/token"
)

// Clock supplies the current time. Operations never read the wall
// clock directly; eligibility is recomputed from stored timestamps
// against this value on every invocation.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Operation is a single guarded state transition.
type Operation interface {
	Apply(ctx *ApplyContext) Result
}

// Engine applies operations against the state store. Each operation is
// atomic: its writes buffer in a View and land as one batch only on
// Success. Operations against the store are serialized; the host never
// interleaves partial writes.
type Engine struct {
	mu    sync.Mutex
	store *statestore.Store
	clock Clock

	dex       dex.Adapter
	token     token.Adapter
	publisher Publisher

	tierPolicy  TierPolicy
	spendPolicy SpendPolicy
}

// Option configures an Engine.
type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithPublisher(p Publisher) Option {
	return func(e *Engine) { e.publisher = p }
}

func WithTierPolicy(p TierPolicy) Option {
	return func(e *Engine) { e.tierPolicy = p }
}

func WithSpendPolicy(p SpendPolicy) Option {
	return func(e *Engine) { e.spendPolicy = p }
}

// New creates an engine over a store and its two collaborators.
func New(store *statestore.Store, tok token.Adapter, dx dex.Adapter, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		clock:       SystemClock(),
		dex:         dx,
		token:       tok,
		publisher:   NopPublisher{},
		tierPolicy:  DefaultTierPolicy,
		spendPolicy: DefaultSpendPolicy,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply runs one operation as an all-or-nothing transition. Events
// emitted by the operation publish only after the batch commits.
func (e *Engine) Apply(ctx context.Context, op Operation) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	actx := &ApplyContext{
		Ctx:         ctx,
		View:        NewView(e.store),
		Now:         e.clock.Now().Unix(),
		Dex:         e.dex,
		Token:       e.token,
		TierPolicy:  e.tierPolicy,
		SpendPolicy: e.spendPolicy,
	}

	res := op.Apply(actx)
	if !res.IsSuccess() {
		return res
	}

	// Collaborator transfers made during Apply are not rolled back on a
	// commit failure; the operator reconciles state against the adapter's
	// transfer records.
	if err := actx.View.Commit(ctx); err != nil {
		log.Printf("engine: commit failed: %v", err)
		return Internal
	}

	for _, ev := range actx.events {
		e.publisher.Publish(ev)
	}
	return Success
}
