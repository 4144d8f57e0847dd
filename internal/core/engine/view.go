package engine

import (
	"context"
	"errors"

	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
)

// View buffers every record an operation touches. Nothing reaches the
// backing store until Commit, so a failing operation leaves no trace
// and a succeeding one lands as a single batch.
type View struct {
	store   *statestore.Store
	pending map[[32]byte]*pendingEntry
	order   [][32]byte
}

type pendingEntry struct {
	keylet keylet.Keylet
	record state.Record // nil means erased
}

func NewView(store *statestore.Store) *View {
	return &View{
		store:   store,
		pending: make(map[[32]byte]*pendingEntry),
	}
}

// Load returns the record at k, preferring a buffered write. Records
// from the store are fresh decodes, so callers may mutate them freely;
// mutations only persist through Put.
func (v *View) Load(ctx context.Context, k keylet.Keylet) (state.Record, error) {
	if entry, ok := v.pending[k.Key]; ok {
		if entry.record == nil {
			return nil, statestore.ErrNotFound
		}
		return entry.record, nil
	}
	return v.store.Load(ctx, k)
}

// Exists reports whether a record is visible at k.
func (v *View) Exists(ctx context.Context, k keylet.Keylet) (bool, error) {
	if entry, ok := v.pending[k.Key]; ok {
		return entry.record != nil, nil
	}
	return v.store.Has(ctx, k)
}

// Put buffers a write at k.
func (v *View) Put(k keylet.Keylet, rec state.Record) {
	if entry, ok := v.pending[k.Key]; ok {
		entry.record = rec
		return
	}
	v.pending[k.Key] = &pendingEntry{keylet: k, record: rec}
	v.order = append(v.order, k.Key)
}

// Erase buffers a delete at k.
func (v *View) Erase(k keylet.Keylet) {
	v.Put(k, nil)
}

// Commit flushes all buffered writes as one atomic batch.
func (v *View) Commit(ctx context.Context) error {
	if len(v.order) == 0 {
		return nil
	}
	changes := make([]statestore.Change, 0, len(v.order))
	for _, key := range v.order {
		entry := v.pending[key]
		changes = append(changes, statestore.Change{Keylet: entry.keylet, Record: entry.record})
	}
	return v.store.Commit(ctx, changes)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, statestore.ErrNotFound)
}
