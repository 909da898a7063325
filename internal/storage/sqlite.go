// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/multiplayer"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Match is one finished match.
type Match struct {
	ID        string // uuid, generated by SaveMatch when empty
	Mode      string
	Seed      int64
	Player1   string
	Player2   string
	Winner    core.PlayerID // PlayerNone for a draw
	Ticks     int
	Power1    int
	Power2    int
	EndReason string
	CreatedAt time.Time
}

// Tally counts results for one mode.
type Tally struct {
	Mode    string
	Matches int
	Wins1   int
	Wins2   int
	Draws   int
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
		CREATE TABLE IF NOT EXISTS matches (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			player1 TEXT NOT NULL DEFAULT '',
			player2 TEXT NOT NULL DEFAULT '',
			winner INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			power1 INTEGER NOT NULL DEFAULT 0,
			power2 INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT 'completed',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode);
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

// SaveMatch records a finished match and returns its ID.
func (s *Store) SaveMatch(m Match) (string, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.EndReason == "" {
		m.EndReason = "completed"
	}

	_, err := s.db.Exec(
		`INSERT INTO matches (id, mode, seed, player1, player2, winner, ticks, power1, power2, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Mode, m.Seed, m.Player1, m.Player2, int(m.Winner), m.Ticks, m.Power1, m.Power2, m.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return m.ID, nil
}

const matchColumns = `id, mode, seed, player1, player2, winner, ticks, power1, power2, end_reason, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (Match, error) {
	var m Match
	var winner int
	var createdAt any
	if err := row.Scan(&m.ID, &m.Mode, &m.Seed, &m.Player1, &m.Player2, &winner,
		&m.Ticks, &m.Power1, &m.Power2, &m.EndReason, &createdAt); err != nil {
		return Match{}, err
	}
	m.Winner = core.PlayerID(winner)
	m.CreatedAt = parseTime(createdAt)
	return m, nil
}

// parseTime handles the driver returning either time.Time or a string.
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

// RecentMatches returns the latest matches, newest first.
// An empty mode matches every mode.
func (s *Store) RecentMatches(mode string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR mode = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return matches, nil
}

// MatchByID returns a match, or nil if there is none with that ID.
func (s *Store) MatchByID(id string) (*Match, error) {
	m, err := scanMatch(s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// Tally counts wins and draws for a mode.
func (s *Store) Tally(mode string) (Tally, error) {
	t := Tally{Mode: mode}
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 1 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 2 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 0 THEN 1 ELSE 0 END), 0)
		 FROM matches WHERE mode = ?`,
		mode,
	).Scan(&t.Matches, &t.Wins1, &t.Wins2, &t.Draws)
	if err != nil {
		return Tally{}, fmt.Errorf("storage: cannot tally %s: %w", mode, err)
	}
	return t, nil
}

// ClearMatches deletes every match of a mode.
func (s *Store) ClearMatches(mode string) error {
	if _, err := s.db.Exec("DELETE FROM matches WHERE mode = ?", mode); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveMatch(Match{
		ID:        data.MatchID,
		Mode:      data.GameID,
		Seed:      data.Seed,
		Player1:   data.Player1,
		Player2:   data.Player2,
		Winner:    data.Winner,
		Ticks:     data.Ticks,
		Power1:    data.Power1,
		Power2:    data.Power2,
		EndReason: data.EndReason,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
