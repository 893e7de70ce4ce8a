// Package storage provides SQLite-based persistence: the keyed progress blob
// and the history of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/lane-runner/internal/engine"
	"github.com/vovakirdan/lane-runner/internal/progress"
)

// ProgressKey is the blob key the game stores its progress under.
const ProgressKey = "lane-runner-progress-v1"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one recorded run.
type RunEntry struct {
	ID          string
	LevelID     int
	Outcome     engine.Outcome
	TimeElapsed float64
	Distance    float64
	Avoided     int
	Spawned     int
	Stars       int // 0 for crashes
	ShieldUsed  bool
	Difficulty  string
	Character   string
	CreatedAt   time.Time
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			level_id INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			time_elapsed REAL NOT NULL,
			distance REAL NOT NULL,
			avoided INTEGER NOT NULL DEFAULT 0,
			spawned INTEGER NOT NULL DEFAULT 0,
			stars INTEGER NOT NULL DEFAULT 0,
			shield_used INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL,
			character_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, outcome, stars DESC, time_elapsed ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadBlob returns the value stored under key, or nil if there is none.
func (s *Store) LoadBlob(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load blob %q: %w", key, err)
	}
	return value, nil
}

// SaveBlob overwrites the value stored under key.
func (s *Store) SaveBlob(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save blob %q: %w", key, err)
	}
	return nil
}

// blobBackend adapts one blob key to progress.Backend.
type blobBackend struct {
	store *Store
	key   string
}

func (b blobBackend) Load() ([]byte, error)  { return b.store.LoadBlob(b.key) }
func (b blobBackend) Save(data []byte) error { return b.store.SaveBlob(b.key, data) }

// ProgressBackend returns a progress.Backend storing the blob under key.
func (s *Store) ProgressBackend(key string) progress.Backend {
	return blobBackend{store: s, key: key}
}

// RecordRun implements engine.RunRecorder.
func (s *Store) RecordRun(r engine.RunReport) error {
	_, err := s.SaveRun(RunEntry{
		LevelID:     r.LevelID,
		Outcome:     r.Outcome,
		TimeElapsed: r.Stats.TimeElapsed,
		Distance:    r.Distance,
		Avoided:     r.Stats.ObstaclesAvoided,
		Spawned:     r.Stats.ObstaclesSpawned,
		Stars:       r.Stats.Stars,
		ShieldUsed:  r.Stats.ShieldUsed,
		Difficulty:  r.Difficulty.String(),
		Character:   string(r.Character),
	})
	return err
}

// Ensure Store implements RunRecorder
var _ engine.RunRecorder = (*Store)(nil)

// SaveRun records a run and returns its ID. A random ID is assigned when
// the entry has none.
func (s *Store) SaveRun(e RunEntry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, level_id, outcome, time_elapsed, distance, avoided, spawned, stars, shield_used, difficulty, character_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.LevelID, string(e.Outcome), e.TimeElapsed, e.Distance,
		e.Avoided, e.Spawned, e.Stars, e.ShieldUsed, e.Difficulty, e.Character,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return e.ID, nil
}

const runColumns = `id, level_id, outcome, time_elapsed, distance, avoided, spawned,
	stars, shield_used, difficulty, character_id, created_at`

// TopRuns returns the best victories for a level: most stars first, then
// fastest time.
func (s *Store) TopRuns(levelID int, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND outcome = ?
		 ORDER BY stars DESC, time_elapsed ASC, created_at ASC
		 LIMIT ?`,
		levelID, string(engine.OutcomeVictory), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns returns the most recent runs of any outcome. A levelID of 0
// selects every level.
func (s *Store) RecentRuns(levelID int, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	var where []string
	var args []any
	if levelID > 0 {
		where = append(where, "level_id = ?")
		args = append(args, levelID)
	}
	query := `SELECT ` + runColumns + ` FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// scanRuns reads and closes rows.
func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var outcome string
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.LevelID, &outcome, &e.TimeElapsed, &e.Distance, &e.Avoided, &e.Spawned,
			&e.Stars, &e.ShieldUsed, &e.Difficulty, &e.Character, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Outcome = engine.Outcome(outcome)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both driver-decoded times and SQLite text timestamps.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    int
	Runs       int
	Victories  int
	Crashes    int
	BestTime   float64 // Fastest victory, 0 if none
	AvgAvoided float64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a level.
func (s *Store) GetLevelStats(levelID int) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MIN(CASE WHEN outcome = ? THEN time_elapsed END), 0),
		        COALESCE(AVG(avoided), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		string(engine.OutcomeVictory), string(engine.OutcomeCrash), string(engine.OutcomeVictory), levelID,
	).Scan(&stats.Runs, &stats.Victories, &stats.Crashes, &stats.BestTime, &stats.AvgAvoided, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRuns deletes the recorded runs of a level, or all runs for levelID 0.
func (s *Store) ClearRuns(levelID int) error {
	var err error
	if levelID > 0 {
		_, err = s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	} else {
		_, err = s.db.Exec("DELETE FROM runs")
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
