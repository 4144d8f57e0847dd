// Package eventlog persists every published engine event into an
// append-only SQL journal.
package eventlog

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/labsx402/paradoxd/internal/core/engine"
	"github.com/labsx402/paradoxd/internal/core/state"
)

// Driver names accepted by Open. The sqlite driver is embedded;
// postgres expects a reachable server in the DSN.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var ErrUnknownDriver = errors.New("unknown eventlog driver")

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    type    TEXT    NOT NULL,
    mint    TEXT    NOT NULL,
    at      INTEGER NOT NULL,
    payload TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS events_mint_idx ON events (mint, id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS events (
    id      BIGSERIAL PRIMARY KEY,
    type    TEXT    NOT NULL,
    mint    TEXT    NOT NULL,
    at      BIGINT  NOT NULL,
    payload TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS events_mint_idx ON events (mint, id);
`

// Journal is an append-only event log. It implements engine.Publisher,
// so it can sit directly behind the engine next to the websocket hub.
type Journal struct {
	db     *sql.DB
	driver string
}

// Open connects the journal. For sqlite the DSN is a file path (or
// ":memory:"); for postgres a connection string.
func Open(driver, dsn string) (*Journal, error) {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = sqliteSchema
	case DriverPostgres:
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open eventlog: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create eventlog schema: %w", err)
	}
	return &Journal{db: db, driver: driver}, nil
}

// Publish appends one event. Journal failures must not fail the
// already-committed operation, so they are logged and dropped.
func (j *Journal) Publish(ev engine.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("eventlog: marshal %s: %v", ev.Type, err)
		return
	}
	insert := `INSERT INTO events (type, mint, at, payload) VALUES (?, ?, ?, ?)`
	if j.driver == DriverPostgres {
		insert = `INSERT INTO events (type, mint, at, payload) VALUES ($1, $2, $3, $4)`
	}
	_, err = j.db.Exec(insert, ev.Type, hex.EncodeToString(ev.Mint[:]), ev.At, string(payload))
	if err != nil {
		log.Printf("eventlog: append %s: %v", ev.Type, err)
	}
}

// Recent returns up to limit events for a mint, newest first.
func (j *Journal) Recent(ctx context.Context, mint state.Mint, limit int) ([]engine.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT payload FROM events WHERE mint = ? ORDER BY id DESC LIMIT ?`
	if j.driver == DriverPostgres {
		query = `SELECT payload FROM events WHERE mint = $1 ORDER BY id DESC LIMIT $2`
	}

	rows, err := j.db.QueryContext(ctx, query, hex.EncodeToString(mint[:]), limit)
	if err != nil {
		return nil, fmt.Errorf("query eventlog: %w", err)
	}
	defer rows.Close()

	var events []engine.Event
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var ev wireEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("decode event payload: %w", err)
		}
		decoded, err := ev.toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, decoded)
	}
	return events, rows.Err()
}

// Close releases the database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}

// wireEvent mirrors engine.Event's JSON form.
type wireEvent struct {
	Type string            `json:"type"`
	Mint string            `json:"mint"`
	At   int64             `json:"at"`
	Data map[string]uint64 `json:"data"`
}

func (w wireEvent) toEvent() (engine.Event, error) {
	raw, err := hex.DecodeString(w.Mint)
	if err != nil || len(raw) != len(state.Mint{}) {
		return engine.Event{}, fmt.Errorf("decode event mint %q", w.Mint)
	}
	var mint state.Mint
	copy(mint[:], raw)
	return engine.Event{Type: w.Type, Mint: mint, At: w.At, Data: w.Data}, nil
}
