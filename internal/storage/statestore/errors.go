package statestore

import "errors"

var (
	// ErrClosed is returned when operating on a closed backend or store
	ErrClosed = errors.New("statestore is closed")

	// ErrKeyNotFound is returned when a key doesn't exist in the backend
	ErrKeyNotFound = errors.New("key not found")

	// ErrNotFound is returned when no record exists at a keylet
	ErrNotFound = errors.New("record not found")

	// ErrTypeMismatch is returned when a stored record's type does not
	// match the keylet it was loaded through
	ErrTypeMismatch = errors.New("record type mismatch")

	// ErrCorrupt is returned when a stored value cannot be decoded
	ErrCorrupt = errors.New("corrupt record data")
)
