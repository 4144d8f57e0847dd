package state

// Type identifies the kind of record stored at a keylet.
type Type uint16

const (
	TypeTokenConfig Type = iota + 1
	TypeLpGrowth
	TypeLpLock
	TypeVesting
	TypeTreasury
	TypeArmageddon
)

// String returns the record type name.
func (t Type) String() string {
	switch t {
	case TypeTokenConfig:
		return "TokenConfig"
	case TypeLpGrowth:
		return "LpGrowthState"
	case TypeLpLock:
		return "LpLock"
	case TypeVesting:
		return "VestingSchedule"
	case TypeTreasury:
		return "Treasury"
	case TypeArmageddon:
		return "ArmageddonState"
	default:
		return "Unknown"
	}
}

// AccountID is a 20-byte authority or recipient identifier.
type AccountID [20]byte

// Mint is the 32-byte address of the asset this state machine governs.
type Mint [32]byte

// Zero values used for "not set" checks.
var (
	ZeroAccount AccountID
	ZeroMint    Mint
)

// Record is implemented by every entity stored in the state store.
type Record interface {
	// Type returns the record's type tag.
	Type() Type

	// Validate checks the record's internal invariants.
	Validate() error
}
