package statestore

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labsx402/paradoxd/internal/core/keylet"
	"github.com/labsx402/paradoxd/internal/core/state"
)

const defaultCacheSize = 4096

// Store persists typed records under their keylets. Values are CBOR
// encoded, optionally LZ4 compressed, and served through an LRU cache
// of encoded bytes so callers never share mutable record instances.
type Store struct {
	kv    KV
	cache *lru.Cache[[32]byte, []byte]
}

// Change describes one record mutation inside an atomic commit.
// A nil Record deletes the entry at the keylet.
type Change struct {
	Keylet keylet.Keylet
	Record state.Record
}

func NewStore(kv KV) (*Store, error) {
	cache, err := lru.New[[32]byte, []byte](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create record cache: %w", err)
	}
	return &Store{kv: kv, cache: cache}, nil
}

// Load reads the record at k. The keylet's type determines the decoded
// layout; a stored record of a different type is an error.
func (s *Store) Load(ctx context.Context, k keylet.Keylet) (state.Record, error) {
	encoded, ok := s.cache.Get(k.Key)
	if !ok {
		raw, err := s.kv.Read(ctx, k.Key[:])
		if err != nil {
			if errors.Is(err, ErrKeyNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("read %s: %w", k.Type, err)
		}
		encoded, err = decompress(raw)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", k.Type, err)
		}
		s.cache.Add(k.Key, encoded)
	}

	rec, err := state.NewRecord(k.Type)
	if err != nil {
		return nil, err
	}
	if err := state.Decode(encoded, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rec, nil
}

// Has reports whether a record exists at k without decoding it.
func (s *Store) Has(ctx context.Context, k keylet.Keylet) (bool, error) {
	if _, ok := s.cache.Get(k.Key); ok {
		return true, nil
	}
	_, err := s.kv.Read(ctx, k.Key[:])
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Save writes a single record at k.
func (s *Store) Save(ctx context.Context, k keylet.Keylet, rec state.Record) error {
	if rec.Type() != k.Type {
		return fmt.Errorf("%w: %s record under %s keylet", ErrTypeMismatch, rec.Type(), k.Type)
	}
	encoded, err := state.Encode(rec)
	if err != nil {
		return err
	}
	if err := s.kv.Write(ctx, k.Key[:], compress(encoded)); err != nil {
		return fmt.Errorf("write %s: %w", k.Type, err)
	}
	s.cache.Add(k.Key, encoded)
	return nil
}

// Remove deletes the record at k if present.
func (s *Store) Remove(ctx context.Context, k keylet.Keylet) error {
	if err := s.kv.Delete(ctx, k.Key[:]); err != nil {
		return fmt.Errorf("delete %s: %w", k.Type, err)
	}
	s.cache.Remove(k.Key)
	return nil
}

// Commit applies all changes as a single backend batch. Either every
// change lands or none does; the cache is only updated after the batch
// succeeds.
func (s *Store) Commit(ctx context.Context, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	ops := make([]BatchOperation, 0, len(changes))
	encoded := make([][]byte, len(changes))
	for i, ch := range changes {
		if ch.Record == nil {
			ops = append(ops, BatchOperation{Type: BatchDelete, Key: ch.Keylet.Key[:]})
			continue
		}
		if ch.Record.Type() != ch.Keylet.Type {
			return fmt.Errorf("%w: %s record under %s keylet", ErrTypeMismatch, ch.Record.Type(), ch.Keylet.Type)
		}
		enc, err := state.Encode(ch.Record)
		if err != nil {
			return err
		}
		encoded[i] = enc
		ops = append(ops, BatchOperation{Type: BatchPut, Key: ch.Keylet.Key[:], Value: compress(enc)})
	}

	if err := s.kv.Batch(ctx, ops); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	for i, ch := range changes {
		if ch.Record == nil {
			s.cache.Remove(ch.Keylet.Key)
		} else {
			s.cache.Add(ch.Keylet.Key, encoded[i])
		}
	}
	return nil
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	s.cache.Purge()
	return s.kv.Close()
}
