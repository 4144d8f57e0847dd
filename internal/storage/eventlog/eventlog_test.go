package eventlog

import (
	"context"
	"testing"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestPublishRecentRoundTrip(t *testing.T) {
	j := openTestJournal(t)
	mint := state.Mint{0xAA}

	j.Publish(engine.Event{
		Type: engine.EventFeesHarvested,
		Mint: mint,
		At:   1700000000,
		Data: map[string]uint64{"amount": 1000},
	})
	j.Publish(engine.Event{
		Type: engine.EventFeesDistributed,
		Mint: mint,
		At:   1700000001,
		Data: map[string]uint64{"lp": 700, "burn": 150, "treasury": 150},
	})

	events, err := j.Recent(context.Background(), mint, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// newest first
	assert.Equal(t, engine.EventFeesDistributed, events[0].Type)
	assert.Equal(t, uint64(700), events[0].Data["lp"])
	assert.Equal(t, engine.EventFeesHarvested, events[1].Type)
	assert.Equal(t, mint, events[1].Mint)
	assert.Equal(t, int64(1700000000), events[1].At)
}

func TestRecentFiltersByMint(t *testing.T) {
	j := openTestJournal(t)

	j.Publish(engine.Event{Type: engine.EventUnlockRequested, Mint: state.Mint{1}, At: 1})
	j.Publish(engine.Event{Type: engine.EventTreasurySpend, Mint: state.Mint{2}, At: 2})

	events, err := j.Recent(context.Background(), state.Mint{1}, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, engine.EventUnlockRequested, events[0].Type)
}

func TestRecentHonorsLimit(t *testing.T) {
	j := openTestJournal(t)
	mint := state.Mint{3}

	for i := int64(0); i < 5; i++ {
		j.Publish(engine.Event{Type: engine.EventGrowthExecuted, Mint: mint, At: i})
	}

	events, err := j.Recent(context.Background(), mint, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(4), events[0].At)
	assert.Equal(t, int64(3), events[1].At)
}
