package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestDocumentRepo_InsertAndGet(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("manuals")
	repo := NewDocumentRepo(h.db)
	ctx := context.Background()

	id, err := repo.Insert(ctx, classID, "guide.pdf")
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	doc, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Name != "guide.pdf" || doc.ClassificationID != classID {
		t.Errorf("GetByID() = %+v", doc)
	}
	if doc.UploadTime.IsZero() {
		t.Error("GetByID() upload time not set")
	}

	byName, err := repo.GetByName(ctx, "guide.pdf")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if byName.ID != id {
		t.Errorf("GetByName() id = %d, want %d", byName.ID, id)
	}

	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByName(ctx, "missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByName(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_DuplicateNameRejected(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("manuals")
	repo := NewDocumentRepo(h.db)

	h.seedDocument(classID, "guide.pdf")
	if _, err := repo.Insert(context.Background(), classID, "guide.pdf"); err == nil {
		t.Error("Insert() expected unique constraint error for duplicate name")
	}
}

func TestDocumentRepo_List(t *testing.T) {
	h := newTestDB(t)
	novels := h.seedClassification("novels")
	manuals := h.seedClassification("manuals")
	h.seedDocument(novels, "story.txt")
	h.seedDocument(manuals, "guide.pdf")

	listings, err := NewDocumentRepo(h.db).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("List() = %d listings, want 2", len(listings))
	}
	if listings[0].Name != "story.txt" || listings[0].Classification != "novels" {
		t.Errorf("List()[0] = %+v", listings[0])
	}
	if listings[1].Name != "guide.pdf" || listings[1].Classification != "manuals" {
		t.Errorf("List()[1] = %+v", listings[1])
	}
}

func TestDocumentRepo_NamesMatching(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("docs")
	h.seedDocument(classID, "图书馆指南.pdf")
	h.seedDocument(classID, "财务报告.docx")

	repo := NewDocumentRepo(h.db)
	ctx := context.Background()

	tests := []struct {
		name      string
		fragments []string
		want      []string
	}{
		{
			name:      "substring match returns exact stored name",
			fragments: []string{"库"},
			want:      []string{"图书馆指南.pdf"},
		},
		{
			name:      "disjunction across fragments",
			fragments: []string{"库", "财务"},
			want:      []string{"图书馆指南.pdf", "财务报告.docx"},
		},
		{
			name:      "no match",
			fragments: []string{"nonexistent"},
			want:      nil,
		},
		{
			name:      "empty fragment list",
			fragments: nil,
			want:      nil,
		},
		{
			name:      "like wildcard matched literally",
			fragments: []string{"%"},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.NamesMatching(ctx, tt.fragments)
			if err != nil {
				t.Fatalf("NamesMatching() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NamesMatching() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentRepo_ListNamesByClassification(t *testing.T) {
	h := newTestDB(t)
	novels := h.seedClassification("novels")
	manuals := h.seedClassification("manuals")
	h.seedDocument(novels, "story.txt")
	h.seedDocument(manuals, "guide.pdf")

	repo := NewDocumentRepo(h.db)

	names, err := repo.ListNamesByClassification(context.Background(), "novels")
	if err != nil {
		t.Fatalf("ListNamesByClassification() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"story.txt"}) {
		t.Errorf("ListNamesByClassification() = %v", names)
	}
}

func TestDocumentRepo_DateRangeQueries(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("docs")
	docID := h.seedDocument(classID, "old.txt")

	// Backdate the first document; the second keeps today's upload time.
	if _, err := h.db.Exec("UPDATE documents SET upload_time = '2020-01-15 08:00:00' WHERE id = ?", docID); err != nil {
		t.Fatalf("backdate error = %v", err)
	}
	h.seedDocument(classID, "new.txt")

	repo := NewDocumentRepo(h.db)
	ctx := context.Background()

	names, err := repo.ListNamesByDateRange(ctx, "2020-01-01", "2020-12-31")
	if err != nil {
		t.Fatalf("ListNamesByDateRange() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"old.txt"}) {
		t.Errorf("ListNamesByDateRange() = %v, want [old.txt]", names)
	}

	names, err = repo.ListNamesByClassificationAndDateRange(ctx, "docs", "2020-01-01", "2020-12-31")
	if err != nil {
		t.Fatalf("ListNamesByClassificationAndDateRange() error = %v", err)
	}
	if !reflect.DeepEqual(names, []string{"old.txt"}) {
		t.Errorf("ListNamesByClassificationAndDateRange() = %v, want [old.txt]", names)
	}

	names, err = repo.ListNamesByClassificationAndDateRange(ctx, "other", "2020-01-01", "2020-12-31")
	if err != nil {
		t.Fatalf("ListNamesByClassificationAndDateRange() error = %v", err)
	}
	if names != nil {
		t.Errorf("ListNamesByClassificationAndDateRange() = %v, want none", names)
	}
}

func TestDocumentRepo_DeleteCascadesTitles(t *testing.T) {
	h := newTestDB(t)
	classID := h.seedClassification("docs")
	docID := h.seedDocument(classID, "doc.txt")
	h.seedTitle(docID, "# One")
	h.seedTitle(docID, "# Two")

	repo := NewDocumentRepo(h.db)
	ctx := context.Background()

	if err := repo.Delete(ctx, docID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(ctx, docID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	// No orphaned chapter-title rows survive the delete.
	var count int
	if err := h.db.QueryRow("SELECT COUNT(*) FROM document_titles WHERE document_id = ?", docID).Scan(&count); err != nil {
		t.Fatalf("count query error = %v", err)
	}
	if count != 0 {
		t.Errorf("document_titles rows after delete = %d, want 0", count)
	}

	if err := repo.Delete(ctx, docID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
}
