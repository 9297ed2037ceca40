// Package persistence keeps a SQLite journal of played turns: the goods
// stocked on the map after every turn, notable events and match metadata.
// The journal is write-mostly and is never used to restore a match.
package persistence

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexecon/internal/economy"
)

// DB wraps a SQLite connection for the turn journal.
type DB struct {
	conn *sqlx.DB
}

// Event is a notable occurrence in a match.
type Event struct {
	MatchID     string `db:"match_id"`
	Turn        int    `db:"turn"`
	Description string `db:"description"`
	Category    string `db:"category"` // "build", "road", "turn", ...
}

// Total is the amount of one good stocked on the map after a turn.
type Total struct {
	Turn   int     `db:"turn"`
	Good   string  `db:"good"`
	Amount float64 `db:"amount"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		match_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		good TEXT NOT NULL,
		amount REAL NOT NULL,
		PRIMARY KEY (match_id, turn, good)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_match ON events(match_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordTurn stores the totals of a turn, replacing an earlier record of
// the same turn.
func (db *DB) RecordTurn(matchID uuid.UUID, turn int, totals economy.Inventory) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM turns WHERE match_id = ? AND turn = ?", matchID.String(), turn); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO turns
		(match_id, turn, good, amount) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	goods := make([]economy.Good, 0, len(totals))
	for g := range totals {
		goods = append(goods, g)
	}
	sort.Slice(goods, func(i, j int) bool { return goods[i] < goods[j] })

	for _, g := range goods {
		if _, err := stmt.Exec(matchID.String(), turn, string(g), totals[g]); err != nil {
			return fmt.Errorf("insert %s for turn %d: %w", g, turn, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("turn recorded", "match", matchID, "turn", turn, "goods", len(goods))
	return nil
}

// RecordEvents appends events to the journal.
func (db *DB) RecordEvents(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.NamedExec(
			`INSERT INTO events (match_id, turn, description, category)
			 VALUES (:match_id, :turn, :description, :category)`,
			e,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveMeta stores a key-value pair in match metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO match_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM match_meta WHERE key = ?", key)
	return value, err
}

// TurnTotals returns the recorded amount of good per turn, oldest first.
func (db *DB) TurnTotals(matchID uuid.UUID, good economy.Good) ([]Total, error) {
	var totals []Total
	err := db.conn.Select(&totals,
		"SELECT turn, good, amount FROM turns WHERE match_id = ? AND good = ? ORDER BY turn",
		matchID.String(), string(good),
	)
	return totals, err
}

// RecentEvents returns the most recent N events, newest first.
func (db *DB) RecentEvents(limit int) ([]Event, error) {
	var events []Event
	err := db.conn.Select(&events,
		"SELECT match_id, turn, description, category FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
