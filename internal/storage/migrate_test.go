package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := store.Set(context.Background(), "neuroflow_high_score", "12"); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := store.Get(context.Background(), "neuroflow_high_score")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got != "12" {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}
