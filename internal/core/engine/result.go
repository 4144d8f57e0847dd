package engine

// Result represents an operation result code.
type Result int

// Result codes, organized by category. Success is zero; positive codes
// are terminal for the submission as made; negative codes mean the same
// submission can succeed later once time passes or state changes.
const (
	Success Result = 0

	// Authorization and validation (100-199): never succeeds as submitted.
	Unauthorized     Result = 100
	OutOfRange       Result = 101
	InvalidRecipient Result = 102

	// State shape (200-299): the entity is not in a shape that admits
	// the operation.
	AlreadyPending     Result = 200
	NoPendingRequest   Result = 201
	AlreadyRequested   Result = 202
	NotRequested       Result = 203
	ExceedsUnlockable  Result = 204
	ExceedsLocked      Result = 205
	InsufficientFunds  Result = 206
	NotFound           Result = 207
	AlreadyExists      Result = 208
	ArithmeticOverflow Result = 209

	// Timing and gating (-199 to -100): retry once the window opens.
	TimelockNotElapsed Result = -100
	CooldownActive     Result = -101
	ThresholdNotMet    Result = -102
	ArmageddonActive   Result = -103
	CannotRecoverYet   Result = -104
	GrowthLocked       Result = -105

	// Internal (-299 to -200): host-side failure, state unchanged.
	Internal Result = -200
)

// String returns the string representation of the result code
func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Unauthorized:
		return "unauthorized"
	case OutOfRange:
		return "outOfRange"
	case InvalidRecipient:
		return "invalidRecipient"
	case AlreadyPending:
		return "alreadyPending"
	case NoPendingRequest:
		return "noPendingRequest"
	case AlreadyRequested:
		return "alreadyRequested"
	case NotRequested:
		return "notRequested"
	case ExceedsUnlockable:
		return "exceedsUnlockable"
	case ExceedsLocked:
		return "exceedsLocked"
	case InsufficientFunds:
		return "insufficientFunds"
	case NotFound:
		return "notFound"
	case AlreadyExists:
		return "alreadyExists"
	case ArithmeticOverflow:
		return "arithmeticOverflow"
	case TimelockNotElapsed:
		return "timelockNotElapsed"
	case CooldownActive:
		return "cooldownActive"
	case ThresholdNotMet:
		return "thresholdNotMet"
	case ArmageddonActive:
		return "armageddonActive"
	case CannotRecoverYet:
		return "cannotRecoverYet"
	case GrowthLocked:
		return "growthLocked"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// IsSuccess returns true if the operation applied.
func (r Result) IsSuccess() bool {
	return r == Success
}

// IsRetryable returns true when the identical submission can succeed
// later: a timelock or cooldown still running, a threshold not yet
// reached, armageddon still in force, growth paused.
func (r Result) IsRetryable() bool {
	return r <= TimelockNotElapsed && r >= GrowthLocked
}

// IsTerminal returns true when the submission can never succeed as made.
func (r Result) IsTerminal() bool {
	return r > Success
}
