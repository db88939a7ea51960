// Package recorder persists session chunks and layer decisions to SQLite so
// a run can later be replayed and compared against the live trace.
package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jmadden/cadenza/internal/engine"
	"github.com/jmadden/cadenza/internal/mixer"
	"github.com/jmadden/cadenza/internal/synth"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	started_at    TEXT NOT NULL,
	settings_json TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS chunks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	text        TEXT NOT NULL,
	arrived_at  TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE TABLE IF NOT EXISTS decisions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	layer       TEXT NOT NULL,
	trigger_type TEXT NOT NULL,
	intensity   REAL NOT NULL,
	frequency   REAL NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);
`

// #endregion schema

// #region store-struct
// Store records sessions in SQLite and implements engine.Sink.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion db-accessor

// #region sink
// BeginSession records the start of a session along with the mixer settings
// in force, so a later replay can reproduce the same gains.
func (s *Store) BeginSession(sessionID string, startedAt time.Time, settings map[mixer.Axis]mixer.Setting) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO sessions (session_id, started_at, settings_json) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		sessionID, startedAt.Format(time.RFC3339Nano), string(settingsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordChunk appends one arrived text chunk.
func (s *Store) RecordChunk(sessionID string, seq int, text string, at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO chunks (session_id, seq, text, arrived_at) VALUES (?, ?, ?, ?)`,
		sessionID, seq, text, at.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert chunk: %w", err)
	}
	return nil
}

// RecordDecision appends one layer decision.
func (s *Store) RecordDecision(sessionID string, rec engine.TriggerRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO decisions (session_id, seq, layer, trigger_type, intensity, frequency)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, rec.Seq, string(rec.Layer), string(rec.Trigger), rec.Intensity, rec.Frequency,
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// #endregion sink

// #region queries
// Chunks returns a session's text chunks in arrival order.
func (s *Store) Chunks(sessionID string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT text FROM chunks WHERE session_id = ? ORDER BY seq ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	defer rows.Close()

	var chunks []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, text)
	}
	return chunks, rows.Err()
}

// Decisions returns a session's layer decisions in trigger order.
func (s *Store) Decisions(sessionID string) ([]engine.TriggerRecord, error) {
	rows, err := s.db.Query(
		`SELECT seq, layer, trigger_type, intensity, frequency
		 FROM decisions WHERE session_id = ? ORDER BY id ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var recs []engine.TriggerRecord
	for rows.Next() {
		var rec engine.TriggerRecord
		var layer, trigger string
		if err := rows.Scan(&rec.Seq, &layer, &trigger, &rec.Intensity, &rec.Frequency); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		rec.Layer = synth.Layer(layer)
		rec.Trigger = synth.Trigger(trigger)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Settings returns the mixer settings recorded at session start, overlaid
// onto the defaults. A session recorded before settings were persisted (an
// empty column) yields the defaults unchanged.
func (s *Store) Settings(sessionID string) (map[mixer.Axis]mixer.Setting, error) {
	var settingsJSON string
	err := s.db.QueryRow(
		`SELECT settings_json FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&settingsJSON)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	settings := mixer.DefaultSettings()
	if settingsJSON == "" {
		return settings, nil
	}
	var stored map[mixer.Axis]mixer.Setting
	if err := json.Unmarshal([]byte(settingsJSON), &stored); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	for a, s := range stored {
		settings[a] = s
	}
	return settings, nil
}

// SessionInfo is one row of the sessions table.
type SessionInfo struct {
	SessionID string
	StartedAt time.Time
}

// Sessions returns the most recent sessions.
func (s *Store) Sessions(limit int) ([]SessionInfo, error) {
	rows, err := s.db.Query(
		`SELECT session_id, started_at FROM sessions ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var startedStr string
		if err := rows.Scan(&info.SessionID, &startedStr); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// #endregion queries
