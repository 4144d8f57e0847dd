package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"
)

func TestCodecRoundTrip(t *testing.T) {
	cfg := &TokenConfig{
		Mint:                  Mint{1, 2, 3},
		Admin:                 AccountID{4, 5},
		Decimals:              9,
		TransferFeeBps:        300,
		LpShareBps:            7000,
		BurnShareBps:          1500,
		TreasuryShareBps:      1500,
		PendingFeeBps:         200,
		PendingFeeAnnouncedAt: 1_700_000_000,
		TotalFeesCollected:    42,
	}

	data, err := Encode(cfg)
	require.NoError(t, err)

	var got TokenConfig
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, *cfg, got)
}

func TestEncodeRejectsInvalidRecord(t *testing.T) {
	_, err := Encode(&TokenConfig{})
	assert.Error(t, err)
}

// tokenConfigV0 mirrors the TokenConfig layout before the pending-fee
// fields existed.
type tokenConfigV0 struct {
	Mint             Mint      `codec:"1"`
	Admin            AccountID `codec:"2"`
	Decimals         uint8     `codec:"3"`
	TransferFeeBps   uint16    `codec:"4"`
	LpShareBps       uint16    `codec:"5"`
	BurnShareBps     uint16    `codec:"6"`
	TreasuryShareBps uint16    `codec:"7"`
}

func TestDecodeOlderLayoutDefaultsNewFields(t *testing.T) {
	old := tokenConfigV0{
		Mint:             Mint{9},
		Admin:            AccountID{8},
		Decimals:         9,
		TransferFeeBps:   300,
		LpShareBps:       7000,
		BurnShareBps:     1500,
		TreasuryShareBps: 1500,
	}

	var data []byte
	require.NoError(t, codec.NewEncoderBytes(&data, cborHandle).Encode(old))

	var got TokenConfig
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, old.TransferFeeBps, got.TransferFeeBps)
	assert.False(t, got.HasPendingFeeChange(), "absent pending fields must decode to none")
	assert.Zero(t, got.PendingFeeAnnouncedAt)
}

func TestNewRecordCoversAllTypes(t *testing.T) {
	for _, typ := range []Type{
		TypeTokenConfig, TypeLpGrowth, TypeLpLock,
		TypeVesting, TypeTreasury, TypeArmageddon,
	} {
		r, err := NewRecord(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, r.Type())
	}

	_, err := NewRecord(Type(0))
	assert.Error(t, err)
}
