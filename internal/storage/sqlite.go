// Package storage provides SQLite-based persistence for replay journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only seeds and per-tick inputs are stored; scores are recomputed by
// re-simulation and never persisted.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/starfall/internal/core"
)

// ErrNotFound is returned when a replay id does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// Replay is a complete input journal for one session.
type Replay struct {
	ID        int64
	SceneID   string
	Seed      int64
	TickRate  int
	Inputs    []core.InputFrame // One frame per tick
	Config    []byte            // Scene config YAML the session ran with; empty means defaults
	CreatedAt time.Time
}

// ReplayInfo describes a stored replay without its inputs.
type ReplayInfo struct {
	ID        int64
	SceneID   string
	Seed      int64
	TickRate  int
	Ticks     int
	CreatedAt time.Time
}

// Duration returns the simulated length of the replay.
func (r ReplayInfo) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(r.TickRate)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			inputs BLOB NOT NULL,
			config BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_scene_id ON replays(scene_id);
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

// SaveReplay stores a journal and returns its id.
func (s *Store) SaveReplay(r Replay) (int64, error) {
	if r.SceneID == "" {
		return 0, errors.New("storage: cannot save replay: empty scene id")
	}
	result, err := s.db.Exec(
		"INSERT INTO replays (scene_id, seed, tick_rate, ticks, inputs, config) VALUES (?, ?, ?, ?, ?, ?)",
		r.SceneID, r.Seed, r.TickRate, len(r.Inputs), EncodeInputs(r.Inputs), r.Config,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Replays lists stored journals, newest first. An empty sceneID lists all
// scenes; limit <= 0 defaults to 50.
func (s *Store) Replays(sceneID string, limit int) ([]ReplayInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, seed, tick_rate, ticks, created_at
		 FROM replays
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []ReplayInfo
	for rows.Next() {
		var info ReplayInfo
		var createdAt any
		if err := rows.Scan(&info.ID, &info.SceneID, &info.Seed, &info.TickRate, &info.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Replay loads one journal with its inputs.
func (s *Store) Replay(id int64) (*Replay, error) {
	var r Replay
	var blob []byte
	var ticks int
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, scene_id, seed, tick_rate, ticks, inputs, config, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.SceneID, &r.Seed, &r.TickRate, &ticks, &blob, &r.Config, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Inputs, err = DecodeInputs(blob)
	if err != nil {
		return nil, fmt.Errorf("storage: replay %d: %w", id, err)
	}
	if len(r.Inputs) != ticks {
		return nil, fmt.Errorf("storage: replay %d: journal has %d ticks, expected %d", id, len(r.Inputs), ticks)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// DeleteReplay removes one journal.
func (s *Store) DeleteReplay(id int64) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
