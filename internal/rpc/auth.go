package rpc

import (
	"encoding/hex"
	"strings"

	"github.com/labsx402/paradoxd/internal/identity"
)

// signingPayload is the byte string a client signs to prove it controls
// the caller account for one method invocation.
func signingPayload(method, mint, caller string) []byte {
	return []byte(method + "|" + strings.ToLower(mint) + "|" + strings.ToLower(caller))
}

// verifyCaller checks that the attached public key derives the claimed
// caller account and that the signature covers this method invocation.
func verifyCaller(method string, cp callerParams) *RpcError {
	pub, err := hex.DecodeString(cp.PubKey)
	if err != nil {
		return RpcErrorInvalidParams("pub_key: invalid hex")
	}
	sig, err := hex.DecodeString(cp.Signature)
	if err != nil {
		return RpcErrorInvalidParams("signature: invalid hex")
	}

	account, err := identity.AccountFromPubKey(pub)
	if err != nil {
		return RpcErrorUnauthorized("pub_key: " + err.Error())
	}
	if !strings.EqualFold(hex.EncodeToString(account[:]), cp.Caller) {
		return RpcErrorUnauthorized("public key does not derive the claimed caller")
	}

	ok, err := identity.Verify(pub, signingPayload(method, cp.Mint, cp.Caller), sig)
	if err != nil {
		return RpcErrorUnauthorized("signature: " + err.Error())
	}
	if !ok {
		return RpcErrorUnauthorized("signature verification failed")
	}
	return nil
}
