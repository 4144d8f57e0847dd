package statestore

import (
	"context"
)

// KV defines the basic operations any key-value backend must support
type KV interface {
	// Read Basic operations
	Read(ctx context.Context, key []byte) ([]byte, error)
	Write(ctx context.Context, key []byte, value []byte) error
	Delete(ctx context.Context, key []byte) error

	// Batch operations
	Batch(ctx context.Context, ops []BatchOperation) error
	Iterator(ctx context.Context, start, end []byte) (Iterator, error)

	// Close releases backend resources
	Close() error
}

// Iterator allows traversing over backend entries
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// BatchOperation represents a single operation in a batch
type BatchOperation struct {
	Type  BatchOpType
	Key   []byte
	Value []byte
}

type BatchOpType int

const (
	BatchPut BatchOpType = iota
	BatchDelete
)

// Manager handles the lifecycle of key-value backends
type Manager interface {
	// OpenDB opens or creates a backend with the given name
	OpenDB(name string) (KV, error)

	// CloseDB closes a specific backend
	CloseDB(name string) error

	// Close closes all backends
	Close() error
}
