// Package store persists the user's explicitly chosen location across process
// restarts using an embedded sqlite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

// locationKey is the single well-known key the saved location lives under.
const locationKey = "user_location"

// SQLiteStore implements env.LocationStore on a one-table key/value schema.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the saved location, or (nil, nil) when none has been saved. A
// record that fails to unmarshal is treated as a miss so a corrupted row can
// never wedge location resolution.
func (s *SQLiteStore) Load(ctx context.Context) (*env.Location, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, locationKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading saved location: %w", err)
	}

	var loc env.Location
	if err := json.Unmarshal(value, &loc); err != nil {
		log.Printf("saved location record is malformed, treating as missing: %v", err)
		return nil, nil
	}
	return &loc, nil
}

// Save upserts the location under the well-known key.
func (s *SQLiteStore) Save(ctx context.Context, loc env.Location) error {
	value, err := json.Marshal(loc)
	if err != nil {
		return fmt.Errorf("error encoding location: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, locationKey, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving location: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
