package identity

import (
	"crypto/ed25519"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountFromPubKeyDeterministic(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	prefixed := append([]byte{0xED}, pub...)

	a, err := AccountFromPubKey(prefixed)
	require.NoError(t, err)
	b, err := AccountFromPubKey(prefixed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, state.ZeroAccount, a)
}

func TestAccountFromPubKeyRejectsBadShape(t *testing.T) {
	_, err := AccountFromPubKey([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrBadPublicKey)

	_, err = AccountFromPubKey(make([]byte, 33)) // 0x00 lead byte
	assert.ErrorIs(t, err, ErrBadPublicKey)
}

func TestVerifyEd25519(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	prefixed := append([]byte{0xED}, pub...)

	msg := []byte("announce_fee_change:200")
	sig := ed25519.Sign(priv, msg)

	ok, err := Verify(prefixed, msg, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(prefixed, []byte("announce_fee_change:250"), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySecp256k1(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PubKey().SerializeCompressed()

	msg := []byte("treasury_spend:1500")
	digest := sha512Half(msg)
	sig := secpecdsa.Sign(priv, digest[:])

	ok, err := Verify(pub, msg, sig.Serialize())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(pub, []byte("treasury_spend:9999"), sig.Serialize())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = Verify(pub, msg, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrBadSignature)
}
