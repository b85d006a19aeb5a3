// Package state persists profile snapshots and an applied-command audit
// trail in SQLite.
//
// The store uses modernc.org/sqlite (pure Go, no CGO) so the tool
// cross-compiles cleanly.
package state

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/the-hwk/powercfg/internal/power"
)

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Options configures the store.
type Options struct {
	Path    string // Database file path (":memory:" for in-memory)
	WALMode bool   // Enable WAL mode
}

// DefaultOptions returns sensible defaults.
func DefaultOptions(path string) Options {
	return Options{Path: path, WALMode: true}
}

// Store keeps profile snapshots and the applied-command history.
type Store struct {
	db *sql.DB
}

// Snapshot is one stored profile export.
type Snapshot struct {
	ID         int64
	Label      string
	SchemeGUID string
	TakenAt    time.Time
	Record     power.SchemeRecord
}

// AppliedEntry is one audited powercfg set-value invocation.
type AppliedEntry struct {
	ID           int64
	At           time.Time
	SchemeGUID   string
	SubGroupGUID string
	SettingGUID  string
	Phase        string
	Value        int64
	Command      string
}

// Open opens (and if needed initializes) the store.
func Open(opts Options) (*Store, error) {
	dsn := opts.Path
	if opts.WALMode && opts.Path != ":memory:" {
		dsn += "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			scheme_guid TEXT NOT NULL,
			taken_at TEXT NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at);

		CREATE TABLE IF NOT EXISTS applied (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at TEXT NOT NULL,
			scheme_guid TEXT NOT NULL,
			subgroup_guid TEXT NOT NULL,
			setting_guid TEXT NOT NULL,
			phase TEXT NOT NULL,
			value INTEGER NOT NULL,
			command TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_applied_at ON applied(at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot stores one profile export and returns its id.
func (s *Store) SaveSnapshot(label string, rec power.SchemeRecord) (int64, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO snapshots (label, scheme_guid, taken_at, payload) VALUES (?, ?, ?, ?)`,
		label, rec.GUID, time.Now().UTC().Format(time.RFC3339Nano), payload,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return res.LastInsertId()
}

// GetSnapshot loads one snapshot including its profile record.
func (s *Store) GetSnapshot(id int64) (*Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT id, label, scheme_guid, taken_at, payload FROM snapshots WHERE id = ?`, id)

	var snap Snapshot
	var takenAt string
	var payload []byte
	if err := row.Scan(&snap.ID, &snap.Label, &snap.SchemeGUID, &takenAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	snap.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
	if err := json.Unmarshal(payload, &snap.Record); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %d: %w", id, err)
	}
	return &snap, nil
}

// ListSnapshots returns all snapshots, newest first, without payloads.
func (s *Store) ListSnapshots() ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT id, label, scheme_guid, taken_at FROM snapshots ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var takenAt string
		if err := rows.Scan(&snap.ID, &snap.Label, &snap.SchemeGUID, &takenAt); err != nil {
			return nil, err
		}
		snap.TakenAt, _ = time.Parse(time.RFC3339Nano, takenAt)
		out = append(out, snap)
	}
	return out, rows.Err()
}

// PruneSnapshots deletes all but the newest keep snapshots and returns
// how many were removed.
func (s *Store) PruneSnapshots(keep int) (int64, error) {
	res, err := s.db.Exec(
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return res.RowsAffected()
}

// LogApplied records the commands issued by one apply run.
func (s *Store) LogApplied(schemeGUID string, cmds []power.AppliedCommand) error {
	if len(cmds) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, c := range cmds {
		if _, err := tx.Exec(
			`INSERT INTO applied (at, scheme_guid, subgroup_guid, setting_guid, phase, value, command)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			now, schemeGUID, c.SubGroupGUID, c.SettingGUID, c.Phase, c.Value, c.String(),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to log applied command: %w", err)
		}
	}
	return tx.Commit()
}

// RecentApplied returns the newest limit audit entries, newest first.
func (s *Store) RecentApplied(limit int) ([]AppliedEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, at, scheme_guid, subgroup_guid, setting_guid, phase, value, command
		 FROM applied ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied commands: %w", err)
	}
	defer rows.Close()

	var out []AppliedEntry
	for rows.Next() {
		var e AppliedEntry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.SchemeGUID, &e.SubGroupGUID, &e.SettingGUID, &e.Phase, &e.Value, &e.Command); err != nil {
			return nil, err
		}
		e.At, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
