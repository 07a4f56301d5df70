package storage

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *testDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return &testDB{t: t, db: db}
}

func TestNew(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if db.Stats().MaxOpenConnections != 25 {
		t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
	}

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("pragma query error = %v", err)
	}
	if enabled != 1 {
		t.Error("New() foreign keys not enabled")
	}
}

func TestNew_InvalidPath(t *testing.T) {
	db, err := New("/invalid/path/to/db.db")
	if err == nil {
		_ = db.Close()
		t.Error("New() expected error for invalid path")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	h := newTestDB(t)

	// Running migrations again must not fail.
	if err := Migrate(h.db); err != nil {
		t.Errorf("Migrate() second run error = %v", err)
	}

	for _, table := range []string{"classifications", "documents", "document_titles"} {
		var name string
		err := h.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after Migrate(): %v", table, err)
		}
	}
}
