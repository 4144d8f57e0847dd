package keylet

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/labsx402/paradoxd/internal/core/state"
)

// Space identifiers for keylet generation. Each entity role owned by a
// mint gets its own namespace so identities never collide.
const (
	spaceTokenConfig uint16 = 'c' // Token configuration
	spaceLpGrowth    uint16 = 'g' // LP growth manager
	spaceLpLock      uint16 = 'l' // LP lock
	spaceVesting     uint16 = 'v' // Vesting schedule
	spaceTreasury    uint16 = 't' // Treasury
	spaceArmageddon  uint16 = 'a' // Armageddon state
)

// Keylet represents an addressable location in the state store.
// It combines a record type with a 256-bit key.
type Keylet struct {
	Type state.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	h := sha512.New()
	h.Write(spaceBytes)
	for _, d := range data {
		h.Write(d)
	}

	var key [32]byte
	copy(key[:], h.Sum(nil)[:32])
	return key
}

// TokenConfig returns the keylet for a mint's token configuration.
func TokenConfig(mint state.Mint) Keylet {
	return Keylet{
		Type: state.TypeTokenConfig,
		Key:  indexHash(spaceTokenConfig, mint[:]),
	}
}

// LpGrowth returns the keylet for a mint's LP growth manager.
func LpGrowth(mint state.Mint) Keylet {
	return Keylet{
		Type: state.TypeLpGrowth,
		Key:  indexHash(spaceLpGrowth, mint[:]),
	}
}

// LpLock returns the keylet for a mint's LP lock.
func LpLock(mint state.Mint) Keylet {
	return Keylet{
		Type: state.TypeLpLock,
		Key:  indexHash(spaceLpLock, mint[:]),
	}
}

// Vesting returns the keylet for a beneficiary's vesting schedule
// under a mint. Each beneficiary has its own schedule.
func Vesting(mint state.Mint, beneficiary state.AccountID) Keylet {
	return Keylet{
		Type: state.TypeVesting,
		Key:  indexHash(spaceVesting, mint[:], beneficiary[:]),
	}
}

// Treasury returns the keylet for a mint's treasury.
func Treasury(mint state.Mint) Keylet {
	return Keylet{
		Type: state.TypeTreasury,
		Key:  indexHash(spaceTreasury, mint[:]),
	}
}

// Armageddon returns the keylet for a mint's armageddon state.
func Armageddon(mint state.Mint) Keylet {
	return Keylet{
		Type: state.TypeArmageddon,
		Key:  indexHash(spaceArmageddon, mint[:]),
	}
}
