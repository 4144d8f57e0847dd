package engine

import (
	"encoding/hex"
	"encoding/json"

	"github.com/labsx402/paradoxd/internal/core/state"
)

// Event types emitted by operations.
const (
	EventConfigInitialized   = "config.initialized"
	EventFeeChangeAnnounced  = "feeChange.announced"
	EventFeeChangeExecuted   = "feeChange.executed"
	EventFeeChangeCancelled  = "feeChange.cancelled"
	EventFeesHarvested       = "fees.harvested"
	EventFeesDistributed     = "fees.distributed"
	EventGrowthExecuted      = "growth.executed"
	EventGrowthLocked        = "growth.locked"
	EventGrowthUnlocked      = "growth.unlocked"
	EventLockIncreased       = "lock.increased"
	EventLockTierReset       = "lock.tierReset"
	EventWithdrawalRequested = "lock.withdrawalRequested"
	EventWithdrawalExecuted  = "lock.withdrawalExecuted"
	EventWithdrawalCancelled = "lock.withdrawalCancelled"
	EventUnlockRequested     = "vesting.unlockRequested"
	EventTreasurySpend       = "treasury.spend"
	EventArmageddonTriggered = "armageddon.triggered"
	EventArmageddonRecovered = "armageddon.recovered"
)

// Event is one emitted state-change notification. Events publish only
// after the operation's batch has committed.
type Event struct {
	Type string
	Mint state.Mint
	At   int64
	Data map[string]uint64
}

// MarshalJSON renders the mint as hex for the wire and the journal.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string            `json:"type"`
		Mint string            `json:"mint"`
		At   int64             `json:"at"`
		Data map[string]uint64 `json:"data,omitempty"`
	}{
		Type: e.Type,
		Mint: hex.EncodeToString(e.Mint[:]),
		At:   e.At,
		Data: e.Data,
	})
}

// Publisher receives committed events.
type Publisher interface {
	Publish(ev Event)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// MultiPublisher fans events out to several publishers.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ev Event) {
	for _, p := range m {
		p.Publish(ev)
	}
}
