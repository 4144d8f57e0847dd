package leveldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/labsx402/paradoxd/internal/storage/statestore"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var syncWrites = &opt.WriteOptions{Sync: true}

type KV struct {
	db *leveldb.DB
}

func NewKV(db *leveldb.DB) *KV {
	return &KV{db: db}
}

func (l *KV) Read(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, statestore.ErrClosed
	}

	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, statestore.ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

func (l *KV) Write(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return statestore.ErrClosed
	}
	return l.db.Put(key, value, syncWrites)
}

func (l *KV) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return statestore.ErrClosed
	}
	return l.db.Delete(key, syncWrites)
}

func (l *KV) Batch(ctx context.Context, ops []statestore.BatchOperation) error {
	if l.db == nil {
		return statestore.ErrClosed
	}

	batch := new(leveldb.Batch)
	for _, op := range ops {
		switch op.Type {
		case statestore.BatchPut:
			batch.Put(op.Key, op.Value)
		case statestore.BatchDelete:
			batch.Delete(op.Key)
		default:
			return fmt.Errorf("unknown batch operation type: %d", op.Type)
		}
	}

	return l.db.Write(batch, syncWrites)
}

func (l *KV) Iterator(ctx context.Context, start, end []byte) (statestore.Iterator, error) {
	if l.db == nil {
		return nil, statestore.ErrClosed
	}

	rng := &util.Range{Start: start, Limit: end}
	return &Iterator{iter: l.db.NewIterator(rng, nil)}, nil
}

func (l *KV) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

type Iterator struct {
	iter    iteratorSource
	current struct {
		key, value []byte
	}
}

// iteratorSource is the subset of goleveldb's iterator the wrapper needs.
type iteratorSource interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *Iterator) Next() bool {
	if !it.iter.Next() {
		return false
	}

	key := it.iter.Key()
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	val := it.iter.Value()
	valCopy := make([]byte, len(val))
	copy(valCopy, val)

	it.current.key = keyCopy
	it.current.value = valCopy
	return true
}

func (it *Iterator) Key() []byte {
	return it.current.key
}

func (it *Iterator) Value() []byte {
	return it.current.value
}

func (it *Iterator) Error() error {
	return it.iter.Error()
}

func (it *Iterator) Close() error {
	it.iter.Release()
	return nil
}
