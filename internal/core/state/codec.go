package state

import (
	"fmt"

	"github.com/ugorji/go/codec"
)

// Records are persisted as CBOR maps keyed by stable field tags. Fields
// added after a record was written decode to their zero value, so layout
// growth (e.g. the pending-fee fields on TokenConfig) is read-safe.
var cborHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

// Encode serializes a record to its persisted form.
func Encode(r Record) ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s record: %w", r.Type(), err)
	}
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, cborHandle)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encode %s: %w", r.Type(), err)
	}
	return buf, nil
}

// Decode deserializes a record in place. The target's type determines
// the expected layout; missing fields default to zero.
func Decode(data []byte, r Record) error {
	dec := codec.NewDecoderBytes(data, cborHandle)
	if err := dec.Decode(r); err != nil {
		return fmt.Errorf("decode %s: %w", r.Type(), err)
	}
	return nil
}

// NewRecord returns an empty record of the given type.
func NewRecord(t Type) (Record, error) {
	switch t {
	case TypeTokenConfig:
		return &TokenConfig{}, nil
	case TypeLpGrowth:
		return &LpGrowthState{}, nil
	case TypeLpLock:
		return &LpLock{}, nil
	case TypeVesting:
		return &VestingSchedule{}, nil
	case TypeTreasury:
		return &Treasury{}, nil
	case TypeArmageddon:
		return &ArmageddonState{}, nil
	default:
		return nil, fmt.Errorf("unknown record type %d", t)
	}
}
