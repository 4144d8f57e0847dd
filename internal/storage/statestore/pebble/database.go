// Package pebble adapts a cockroachdb/pebble store to the statestore
// KV interface. Range bounds follow the interface contract: start is
// inclusive, end is exclusive, which matches pebble's own iterator
// bounds directly.
package pebble

import (
	"context"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/labsx402/paradoxd/internal/storage/statestore"
)

type KV struct {
	db *pebble.DB
}

func NewKV(db *pebble.DB) *KV {
	return &KV{db: db}
}

// handle returns the live pebble instance, or ErrClosed after Close.
func (p *KV) handle() (*pebble.DB, error) {
	if p.db == nil {
		return nil, statestore.ErrClosed
	}
	return p.db, nil
}

func (p *KV) Read(ctx context.Context, key []byte) ([]byte, error) {
	db, err := p.handle()
	if err != nil {
		return nil, err
	}

	val, closer, err := db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, statestore.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	// val aliases pebble's block cache until closer.Close runs
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (p *KV) Write(ctx context.Context, key, value []byte) error {
	db, err := p.handle()
	if err != nil {
		return err
	}
	return db.Set(key, value, pebble.Sync)
}

func (p *KV) Delete(ctx context.Context, key []byte) error {
	db, err := p.handle()
	if err != nil {
		return err
	}
	return db.Delete(key, pebble.Sync)
}

func (p *KV) Batch(ctx context.Context, ops []statestore.BatchOperation) error {
	db, err := p.handle()
	if err != nil {
		return err
	}

	b := db.NewBatch()
	defer b.Close()

	for _, op := range ops {
		switch op.Type {
		case statestore.BatchPut:
			err = b.Set(op.Key, op.Value, nil)
		case statestore.BatchDelete:
			err = b.Delete(op.Key, nil)
		default:
			err = fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
		if err != nil {
			return err
		}
	}
	return b.Commit(pebble.Sync)
}

func (p *KV) Iterator(ctx context.Context, start, end []byte) (statestore.Iterator, error) {
	db, err := p.handle()
	if err != nil {
		return nil, err
	}

	// LowerBound/UpperBound already give inclusive-start, exclusive-end,
	// so the wrapper never inspects keys itself.
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, err
	}
	return &Iterator{iter: iter}, nil
}

func (p *KV) Close() error {
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

type Iterator struct {
	iter   *pebble.Iterator
	primed bool
	key    []byte
	value  []byte
}

func (it *Iterator) Next() bool {
	var ok bool
	if !it.primed {
		ok = it.iter.First()
		it.primed = true
	} else {
		ok = it.iter.Next()
	}
	if !ok {
		it.key, it.value = nil, nil
		return false
	}

	// pebble reuses its key/value buffers across Next calls
	it.key = append([]byte(nil), it.iter.Key()...)
	it.value = append([]byte(nil), it.iter.Value()...)
	return true
}

func (it *Iterator) Key() []byte {
	return it.key
}

func (it *Iterator) Value() []byte {
	return it.value
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	return it.iter.Close()
}
