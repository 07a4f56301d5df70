package storage

import (
	"context"
	"database/sql"
	"testing"
)

// testDB bundles a migrated database with seeding helpers shared by the repo
// tests.
type testDB struct {
	t  *testing.T
	db *sql.DB
}

func (h *testDB) seedClassification(name string) int64 {
	h.t.Helper()
	id, err := NewClassificationRepo(h.db).Insert(context.Background(), name)
	if err != nil {
		h.t.Fatalf("Insert(classification %q) error = %v", name, err)
	}
	return id
}

func (h *testDB) seedDocument(classificationID int64, name string) int64 {
	h.t.Helper()
	id, err := NewDocumentRepo(h.db).Insert(context.Background(), classificationID, name)
	if err != nil {
		h.t.Fatalf("Insert(document %q) error = %v", name, err)
	}
	return id
}

func (h *testDB) seedTitle(documentID int64, title string) {
	h.t.Helper()
	if err := NewTitleRepo(h.db).Insert(context.Background(), documentID, title); err != nil {
		h.t.Fatalf("Insert(title %q) error = %v", title, err)
	}
}
