package bpsmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributeExact(t *testing.T) {
	out, err := Distribute(1000, [3]uint16{7000, 1500, 1500})
	require.NoError(t, err)
	assert.Equal(t, [3]uint64{700, 150, 150}, out)
}

func TestDistributeRemainderGoesToThirdSink(t *testing.T) {
	// 1001 * 7000 / 10000 = 700 (floor), 1001 * 1500 / 10000 = 150 (floor)
	// remainder 151 lands in the third slot
	out, err := Distribute(1001, [3]uint16{7000, 1500, 1500})
	require.NoError(t, err)
	assert.Equal(t, uint64(700), out[0])
	assert.Equal(t, uint64(150), out[1])
	assert.Equal(t, uint64(151), out[2])
}

func TestDistributeConservation(t *testing.T) {
	amounts := []uint64{0, 1, 3, 7, 999, 10_000, 123_456_789, math.MaxUint64}
	shares := [][3]uint16{
		{7000, 1500, 1500},
		{6000, 2000, 2000},
		{8000, 1000, 1000},
		{10000, 0, 0},
		{0, 0, 10000},
		{3333, 3333, 3334},
	}
	for _, amount := range amounts {
		for _, s := range shares {
			out, err := Distribute(amount, s)
			require.NoError(t, err, "amount=%d shares=%v", amount, s)
			sum := out[0] + out[1] + out[2]
			assert.Equal(t, amount, sum, "amount=%d shares=%v", amount, s)
		}
	}
}

func TestDistributeRejectsBadShares(t *testing.T) {
	_, err := Distribute(1000, [3]uint16{7000, 1500, 1501})
	assert.ErrorIs(t, err, ErrBadShares)

	_, err = Distribute(1000, [3]uint16{0, 0, 0})
	assert.ErrorIs(t, err, ErrBadShares)
}

func TestMulDivBpsWidePrecision(t *testing.T) {
	// amount * 10000 overflows uint64; the 128-bit path must not
	got, err := MulDivBps(math.MaxUint64, 10000)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got)

	got, err = MulDivBps(math.MaxUint64, 5000)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64/2), got)
}

func TestCheckedAdd(t *testing.T) {
	sum, err := CheckedAdd(1, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), sum)

	_, err = CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedSub(t *testing.T) {
	diff, err := CheckedSub(5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), diff)

	_, err = CheckedSub(2, 5)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestLinearInterp(t *testing.T) {
	// halfway through the window unlocks half the span
	got, err := LinearInterp(100_000_000, 47_304_000, 94_608_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(50_000_000), got)

	_, err = LinearInterp(1, 1, 0)
	assert.ErrorIs(t, err, ErrOverflow)
}
