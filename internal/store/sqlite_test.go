package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadMissingLocation(t *testing.T) {
	s := newTestStore(t)

	loc, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected nil on empty store, got %+v", loc)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := env.Location{
		Latitude:  35.6762,
		Longitude: 139.6503,
		City:      "Tokyo",
		Country:   "Japan",
		Source:    env.SourceManual,
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got == nil || *got != want {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, want)
	}

	// Saving again overwrites the single slot.
	want.City = "Osaka"
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.City != "Osaka" {
		t.Fatalf("expected overwrite, got %+v", got)
	}
}

func TestMalformedRecordIsAMiss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))`,
		locationKey, []byte("{not json")); err != nil {
		t.Fatalf("failed to plant corrupted record: %v", err)
	}

	loc, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("corrupted record must not error: %v", err)
	}
	if loc != nil {
		t.Fatalf("corrupted record should read as a miss, got %+v", loc)
	}
}
