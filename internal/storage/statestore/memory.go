package statestore

import (
	"bytes"
	"context"
	"sort"
	"sync"
)

// MemoryKV implements an in-memory KV for testing purposes.
// It provides thread-safe operations and is useful for unit tests and development.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryKV creates a new in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Read(ctx context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	val, ok := m.data[string(key)]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MemoryKV) Write(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[string(key)] = cp
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.data, string(key))
	return nil
}

func (m *MemoryKV) Batch(ctx context.Context, ops []BatchOperation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for _, op := range ops {
		switch op.Type {
		case BatchPut:
			cp := make([]byte, len(op.Value))
			copy(cp, op.Value)
			m.data[string(op.Key)] = cp
		case BatchDelete:
			delete(m.data, string(op.Key))
		}
	}
	return nil
}

func (m *MemoryKV) Iterator(ctx context.Context, start, end []byte) (Iterator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		kb := []byte(k)
		if start != nil && bytes.Compare(kb, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(kb, end) >= 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]memEntry, len(keys))
	for i, k := range keys {
		val := m.data[k]
		cp := make([]byte, len(val))
		copy(cp, val)
		entries[i] = memEntry{key: []byte(k), value: cp}
	}
	return &memoryIterator{entries: entries, pos: -1}, nil
}

func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = make(map[string][]byte)
	return nil
}

type memEntry struct {
	key, value []byte
}

type memoryIterator struct {
	entries []memEntry
	pos     int
}

func (it *memoryIterator) Next() bool {
	if it.pos+1 >= len(it.entries) {
		return false
	}
	it.pos++
	return true
}

func (it *memoryIterator) Key() []byte {
	if it.pos < 0 || it.pos >= len(it.entries) {
		return nil
	}
	return it.entries[it.pos].key
}

func (it *memoryIterator) Value() []byte {
	if it.pos < 0 || it.pos >= len(it.entries) {
		return nil
	}
	return it.entries[it.pos].value
}

func (it *memoryIterator) Error() error { return nil }
func (it *memoryIterator) Close() error { return nil }
