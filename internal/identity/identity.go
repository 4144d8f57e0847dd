// Package identity derives account identifiers from public keys and
// verifies operation signatures. Every privileged operation's first
// check is caller-identity against stored-authority equality; this
// package supplies the verified caller side of that comparison.
package identity

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/crypto/ripemd160"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// Key type prefixes. An ed25519 public key is its 32 bytes behind the
// 0xED marker; a secp256k1 key is SEC1 compressed (0x02/0x03 lead).
const (
	ed25519Prefix byte = 0xED

	ed25519KeyLen   = 1 + ed25519.PublicKeySize
	secp256k1KeyLen = 33
)

var (
	ErrBadPublicKey = errors.New("malformed public key")
	ErrBadSignature = errors.New("malformed signature")
)

// AccountFromPubKey computes the 20-byte account ID for a public key:
// RIPEMD160(SHA256(publicKey)), the whole key including its prefix.
// Two different hashes avoid length-extension attacks, and RIPEMD160
// is the only hash generally considered safe at 160 bits.
func AccountFromPubKey(pubKey []byte) (state.AccountID, error) {
	if !validKeyShape(pubKey) {
		return state.ZeroAccount, ErrBadPublicKey
	}
	inner := sha256.Sum256(pubKey)
	h := ripemd160.New()
	h.Write(inner[:])

	var id state.AccountID
	copy(id[:], h.Sum(nil))
	return id, nil
}

// Verify checks a signature over a message. secp256k1 signatures are
// DER encoded over the SHA-512Half of the message; ed25519 signatures
// cover the raw message.
func Verify(pubKey, message, sig []byte) (bool, error) {
	if !validKeyShape(pubKey) {
		return false, ErrBadPublicKey
	}

	if pubKey[0] == ed25519Prefix {
		if len(sig) != ed25519.SignatureSize {
			return false, ErrBadSignature
		}
		return ed25519.Verify(ed25519.PublicKey(pubKey[1:]), message, sig), nil
	}

	key, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false, ErrBadPublicKey
	}
	parsed, err := secpecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, ErrBadSignature
	}
	digest := sha512Half(message)
	return parsed.Verify(digest[:], key), nil
}

func validKeyShape(pubKey []byte) bool {
	switch {
	case len(pubKey) == ed25519KeyLen && pubKey[0] == ed25519Prefix:
		return true
	case len(pubKey) == secp256k1KeyLen && (pubKey[0] == 0x02 || pubKey[0] == 0x03):
		return true
	default:
		return false
	}
}

// sha512Half is the first 256 bits of SHA-512, the digest signing
// convention shared with keylet derivation.
func sha512Half(data []byte) [32]byte {
	full := sha512.Sum512(data)
	var half [32]byte
	copy(half[:], full[:32])
	return half
}
