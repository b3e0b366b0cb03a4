// Package storage persists the study collections to a local SQLite file.
// The data is five independent JSON documents (flashcards, quiz questions,
// history, badges, reminders), so the schema is a flat key-value table
// rather than relational tables.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Collection keys.
const (
	KeyFlashcards    = "flashcards"
	KeyQuizQuestions = "quiz_questions"
	KeyHistory       = "history"
	KeyBadges        = "badges"
	KeyReminders     = "reminders"
)

// Store is the SQLite-backed key-value persistence layer.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open connects to the SQLite database at dsn, applies pragmas, and creates
// the schema.
func Open(dsn string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put marshals v and writes it under key, replacing any previous value.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO collections (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// PersistBestEffort is Put with the error logged instead of returned.
// Persistence is a post-mutation side effect: a failed write must never
// break the session the student is in.
func (s *Store) PersistBestEffort(key string, v any) {
	if err := s.Put(key, v); err != nil {
		s.logger.Warn("persist failed", zap.String("key", key), zap.Error(err))
	}
}

// Get unmarshals the value under key into out. A missing key or a value
// that no longer parses both leave out untouched and return false: startup
// treats either as an empty collection rather than failing.
func (s *Store) Get(key string, out any) bool {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM collections WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.logger.Warn("read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("stored value does not parse, starting empty",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Delete removes a key. Used by the reset command.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM collections WHERE key = ?`, key)
	return err
}

// Reset drops every collection.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`DELETE FROM collections`)
	return err
}

// applyPragmas configures SQLite for single-user desktop use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. VETPREP_DB environment variable
// 2. $XDG_DATA_HOME/vetprep/vetprep.db
// 3. ~/.local/share/vetprep/vetprep.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("VETPREP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "vetprep", "vetprep.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it is missing.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
