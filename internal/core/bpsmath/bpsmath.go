package bpsmath

import (
	"errors"
	"math/bits"
)

// BpsDenominator is the basis-point denominator (10000 = 100%).
const BpsDenominator = 10_000

var (
	// ErrOverflow is returned when a checked operation would overflow uint64.
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrBadShares is returned when a share triple does not sum to 10000 bps.
	ErrBadShares = errors.New("shares must sum to 10000 bps")
)

// MulDivBps computes floor(amount * shareBps / 10000) using a 128-bit
// intermediate so that amount * shareBps can never wrap.
// The quotient always fits in uint64 when shareBps <= 10000.
func MulDivBps(amount uint64, shareBps uint16) (uint64, error) {
	if shareBps > BpsDenominator {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(amount, uint64(shareBps))
	// quotient < 2^64 is guaranteed because shareBps <= denominator,
	// which bounds the quotient by amount itself
	q, _ := bits.Div64(hi, lo, BpsDenominator)
	return q, nil
}

// Distribute splits amount across three shares given in basis points.
// Shares must sum to exactly 10000. The first two outputs are floored;
// the third receives the remainder, so the outputs always sum exactly
// to amount.
func Distribute(amount uint64, shares [3]uint16) ([3]uint64, error) {
	var total uint32
	for _, s := range shares {
		total += uint32(s)
	}
	if total != BpsDenominator {
		return [3]uint64{}, ErrBadShares
	}

	var out [3]uint64
	var err error
	out[0], err = MulDivBps(amount, shares[0])
	if err != nil {
		return [3]uint64{}, err
	}
	out[1], err = MulDivBps(amount, shares[1])
	if err != nil {
		return [3]uint64{}, err
	}
	// Remainder sink: everything not assigned to the first two shares.
	rest, err := CheckedSub(amount, out[0])
	if err != nil {
		return [3]uint64{}, err
	}
	out[2], err = CheckedSub(rest, out[1])
	if err != nil {
		return [3]uint64{}, err
	}
	return out, nil
}

// CheckedAdd returns a + b or ErrOverflow if the sum wraps.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSub returns a - b or ErrOverflow if b > a.
func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// LinearInterp computes floor(span * elapsed / window) with 128-bit
// intermediates. Used for linear vesting where span * elapsed can
// exceed 64 bits. Returns ErrOverflow when the quotient itself would
// not fit in uint64.
func LinearInterp(span, elapsed, window uint64) (uint64, error) {
	if window == 0 {
		return 0, ErrOverflow
	}
	hi, lo := bits.Mul64(span, elapsed)
	if hi >= window {
		// quotient >= 2^64
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, window)
	return q, nil
}
