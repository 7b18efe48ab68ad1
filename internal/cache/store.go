// Package cache persists folder listings in SQLite so re-opening a
// previously visited folder ring is instant. Writes are fire-and-forget
// after a successful load; invalidation arrives from the filesystem
// watcher or an explicit user action.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/atomicstack/radial-shell/internal/logging"
	"github.com/atomicstack/radial-shell/internal/logging/events"
	"github.com/atomicstack/radial-shell/internal/provider"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed listing cache keyed by directory path.
type Store struct {
	db *sql.DB

	mu     sync.Mutex
	writes sync.WaitGroup
}

// Open initializes the cache database at the given path, creating
// directories and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("cache: open database: %w", err)
	}
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS listings (
			dir      TEXT NOT NULL,
			position INTEGER NOT NULL,
			name     TEXT NOT NULL,
			path     TEXT NOT NULL,
			is_dir   INTEGER NOT NULL,
			size     INTEGER NOT NULL,
			PRIMARY KEY (dir, position)
		);
		CREATE INDEX IF NOT EXISTS idx_listings_dir ON listings(dir);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: setup schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close flushes pending writes and closes the database.
func (s *Store) Close() error {
	s.writes.Wait()
	return s.db.Close()
}

// Lookup returns the cached listing for a directory, or a miss.
func (s *Store) Lookup(dir string) ([]provider.Listing, bool) {
	rows, err := s.db.Query(`
		SELECT name, path, is_dir, size FROM listings
		WHERE dir = ? ORDER BY position
	`, dir)
	if err != nil {
		logging.Error(err)
		return nil, false
	}
	defer rows.Close()

	var entries []provider.Listing
	for rows.Next() {
		var entry provider.Listing
		var isDir int
		if err := rows.Scan(&entry.Name, &entry.Path, &isDir, &entry.Size); err != nil {
			logging.Error(err)
			return nil, false
		}
		entry.Dir = isDir != 0
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		logging.Error(err)
		return nil, false
	}
	if entries == nil {
		return nil, false
	}
	return entries, true
}

// StoreAsync persists a listing without blocking the caller. Errors are
// logged and swallowed; the cache is an accelerator, not a source of
// truth.
func (s *Store) StoreAsync(dir string, entries []provider.Listing) {
	snapshot := append([]provider.Listing(nil), entries...)
	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		if err := s.store(dir, snapshot); err != nil {
			logging.Error(err)
			return
		}
		events.Cache.Store(dir, len(snapshot))
	}()
}

func (s *Store) store(dir string, entries []provider.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM listings WHERE dir = ?`, dir); err != nil {
		tx.Rollback()
		return fmt.Errorf("cache: clear %s: %w", dir, err)
	}
	for i, entry := range entries {
		isDir := 0
		if entry.Dir {
			isDir = 1
		}
		_, err := tx.Exec(`
			INSERT INTO listings (dir, position, name, path, is_dir, size)
			VALUES (?, ?, ?, ?, ?, ?)
		`, dir, i, entry.Name, entry.Path, isDir, entry.Size)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("cache: insert %s: %w", entry.Path, err)
		}
	}
	return tx.Commit()
}

// Invalidate drops a directory's cached listing.
func (s *Store) Invalidate(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM listings WHERE dir = ?`, dir); err != nil {
		logging.Error(err)
		return
	}
	events.Cache.Invalidate(dir)
}

// Flush waits for pending fire-and-forget writes. Tests use it to make
// asynchronous stores observable.
func (s *Store) Flush() {
	s.writes.Wait()
}
