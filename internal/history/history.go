// Package history keeps a local record of acquired songs in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "songdl"
	dbFileName = "history.db"

	// MaxEntries bounds the table; older rows are pruned on insert.
	MaxEntries = 1000
)

// Entry is one completed acquisition.
type Entry struct {
	ID         int64
	Title      string
	Artists    string
	SourceID   string
	Path       string
	Placed     bool
	SizeBytes  int64 // 0 when unknown
	AcquiredAt time.Time
}

// Store persists entries.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database under the XDG data home.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens (creating if needed) the history database at path.
// ":memory:" opens a private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS acquisitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			artists TEXT NOT NULL,
			source_id TEXT NOT NULL,
			path TEXT NOT NULL,
			placed INTEGER NOT NULL DEFAULT 0,
			size_bytes INTEGER,
			acquired_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_acquisitions_acquired_at ON acquisitions(acquired_at);
	`)
	return err
}

// Record stores e and returns it with its id. A zero AcquiredAt is set to now.
func (s *Store) Record(e Entry) (Entry, error) {
	if e.AcquiredAt.IsZero() {
		e.AcquiredAt = time.Now()
	}

	var size sql.NullInt64
	if e.SizeBytes > 0 {
		size = sql.NullInt64{Int64: e.SizeBytes, Valid: true}
	}

	err := withTx(s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO acquisitions (title, artists, source_id, path, placed, size_bytes, acquired_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, e.Title, e.Artists, e.SourceID, e.Path, e.Placed, size, e.AcquiredAt.UnixNano())
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}
		if e.ID, err = res.LastInsertId(); err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM acquisitions WHERE id NOT IN (
				SELECT id FROM acquisitions ORDER BY acquired_at DESC, id DESC LIMIT ?
			)
		`, MaxEntries)
		if err != nil {
			return fmt.Errorf("prune: %w", err)
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = MaxEntries
	}

	rows, err := s.db.Query(`
		SELECT id, title, artists, source_id, path, placed, size_bytes, acquired_at
		FROM acquisitions
		ORDER BY acquired_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			size       sql.NullInt64
			acquiredAt int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Artists, &e.SourceID, &e.Path, &e.Placed, &size, &acquiredAt); err != nil {
			return nil, err
		}
		if size.Valid {
			e.SizeBytes = size.Int64
		}
		e.AcquiredAt = time.Unix(0, acquiredAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// withTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback on error is intentional

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
