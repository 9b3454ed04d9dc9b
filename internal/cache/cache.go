// Package cache is the durable local snapshot store. It plays the role the
// browser's localStorage played for the original frontend: the synced event
// list and the last sync time live under two fixed keys, scoped per user.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Fixed keys mirroring the original storage layout.
const (
	KeyEvents   = "syncedCalendarEvents"
	KeyLastSync = "lastSyncTime"
)

// Store persists per-user key-value snapshots in SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the snapshot database at dbPath.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		user_id    TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, key)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Set stores a value under (userID, key), replacing any previous value.
func (s *Store) Set(userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (user_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, userID, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under (userID, key). The boolean reports
// whether the key exists.
func (s *Store) Get(userID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow(
		`SELECT value FROM kv WHERE user_id = ? AND key = ?`, userID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Delete removes a key for a user. Missing keys are not an error.
func (s *Store) Delete(userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`DELETE FROM kv WHERE user_id = ? AND key = ?`, userID, key,
	); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// ClearUser removes all keys for a user.
func (s *Store) ClearUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM kv WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// Users returns the IDs of users that have cached data, most recently
// written first.
func (s *Store) Users() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT user_id FROM kv GROUP BY user_id ORDER BY MAX(updated_at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, id)
	}
	return users, rows.Err()
}

// SaveSnapshot stores the event snapshot and sync time atomically.
func (s *Store) SaveSnapshot(userID string, snapshot []byte, syncedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	now := time.Now().UTC()
	upsert := `
		INSERT INTO kv (user_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := tx.Exec(upsert, userID, KeyEvents, string(snapshot), now); err != nil {
		return fmt.Errorf("save events snapshot: %w", err)
	}
	if _, err := tx.Exec(upsert, userID, KeyLastSync,
		syncedAt.UTC().Format(time.RFC3339), now); err != nil {
		return fmt.Errorf("save sync time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot save: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored event snapshot and last sync time for a
// user. The boolean reports whether a snapshot exists; an absent sync time
// yields a zero time alongside an existing snapshot.
func (s *Store) LoadSnapshot(userID string) ([]byte, time.Time, bool, error) {
	snapshot, ok, err := s.Get(userID, KeyEvents)
	if err != nil || !ok {
		return nil, time.Time{}, false, err
	}

	var syncedAt time.Time
	if raw, found, err := s.Get(userID, KeyLastSync); err == nil && found {
		syncedAt, _ = time.Parse(time.RFC3339, raw)
	}

	return []byte(snapshot), syncedAt, true, nil
}
