package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed key/value cache with per-entry expiry. It is a
// latency shield in front of the market-data provider; correctness never
// depends on it.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the cache database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		key     TEXT PRIMARY KEY,
		value   TEXT NOT NULL,
		expires INTEGER NOT NULL
	)`)
	return err
}

// Set stores value as JSON under key with the given time to live.
func (s *Store) Set(key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	expires := time.Now().Add(ttl).Unix()

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`REPLACE INTO cache (key, value, expires) VALUES (?, ?, ?)`,
		key, string(payload), expires)
	return err
}

// Get unmarshals the cached value for key into dest. It reports false for
// missing or expired entries; expired rows are deleted on the way out.
func (s *Store) Get(key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	var expires int64
	err := s.db.QueryRow(`SELECT value, expires FROM cache WHERE key = ?`, key).
		Scan(&value, &expires)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if expires < time.Now().Unix() {
		_, _ = s.db.Exec(`DELETE FROM cache WHERE key = ?`, key)
		return false, nil
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false, fmt.Errorf("unmarshal cache value: %w", err)
	}
	return true, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
