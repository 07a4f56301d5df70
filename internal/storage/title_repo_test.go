package storage

import (
	"context"
	"reflect"
	"testing"
)

func TestTitleRepo_InsertAndList(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("docs")
	docID := h.seedDocument(classID, "doc.txt")
	otherID := h.seedDocument(classID, "other.txt")

	repo := NewTitleRepo(h.db)
	ctx := context.Background()

	h.seedTitle(docID, "# One")
	h.seedTitle(docID, "# Two")
	h.seedTitle(otherID, "# Elsewhere")

	titles, err := repo.ListByDocument(ctx, docID)
	if err != nil {
		t.Fatalf("ListByDocument() error = %v", err)
	}
	if !reflect.DeepEqual(titles, []string{"# One", "# Two"}) {
		t.Errorf("ListByDocument() = %v", titles)
	}
}

func TestTitleRepo_InsertUnknownDocument(t *testing.T) {
	h := newTestDB(t)
	repo := NewTitleRepo(h.db)

	if err := repo.Insert(context.Background(), 9999, "# Orphan"); err == nil {
		t.Error("Insert() expected foreign key error for unknown document")
	}
}

func TestTitleRepo_TitlesMatching(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("docs")
	a := h.seedDocument(classID, "a.txt")
	b := h.seedDocument(classID, "b.txt")

	h.seedTitle(a, "1 Introduction")
	h.seedTitle(a, "2 Methods")
	// The same title in a second document must come back once.
	h.seedTitle(b, "1 Introduction")

	repo := NewTitleRepo(h.db)
	ctx := context.Background()

	titles, err := repo.TitlesMatching(ctx, []string{"Intro"})
	if err != nil {
		t.Fatalf("TitlesMatching() error = %v", err)
	}
	if !reflect.DeepEqual(titles, []string{"1 Introduction"}) {
		t.Errorf("TitlesMatching() = %v, want distinct match", titles)
	}

	titles, err = repo.TitlesMatching(ctx, []string{"Intro", "Methods"})
	if err != nil {
		t.Fatalf("TitlesMatching() error = %v", err)
	}
	if len(titles) != 2 {
		t.Errorf("TitlesMatching() = %v, want 2 distinct titles", titles)
	}

	titles, err = repo.TitlesMatching(ctx, nil)
	if err != nil {
		t.Fatalf("TitlesMatching(nil) error = %v", err)
	}
	if titles != nil {
		t.Errorf("TitlesMatching(nil) = %v, want nil", titles)
	}
}
