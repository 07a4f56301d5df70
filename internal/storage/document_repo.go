package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docuquery/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert inserts a new document and returns its generated ID.
	Insert(ctx context.Context, classificationID int64, name string) (int64, error)
	// GetByID gets a document by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*Document, error)
	// GetByName gets a document by its unique display name. Returns ErrNotFound if not found.
	GetByName(ctx context.Context, name string) (*Document, error)
	// List returns all documents joined with their classification names.
	List(ctx context.Context) ([]DocumentListing, error)
	// ListNamesByClassification returns document names under a classification.
	ListNamesByClassification(ctx context.Context, classification string) ([]string, error)
	// ListNamesByDateRange returns names of documents uploaded within [start, end] (YYYY-MM-DD).
	ListNamesByDateRange(ctx context.Context, start, end string) ([]string, error)
	// ListNamesByClassificationAndDateRange combines both conditions.
	ListNamesByClassificationAndDateRange(ctx context.Context, classification, start, end string) ([]string, error)
	// NamesMatching returns exact document names whose name contains any of the
	// given fragments (disjunctive substring match). An empty fragment list
	// returns an empty result.
	NamesMatching(ctx context.Context, fragments []string) ([]string, error)
	// Delete removes a document row. Chapter-title rows cascade via foreign key.
	Delete(ctx context.Context, id int64) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert inserts a new document and returns its generated ID.
func (r *DocumentRepo) Insert(ctx context.Context, classificationID int64, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (classification_id, name) VALUES (?, ?)",
		classificationID, name,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted document ID: %w", err)
	}
	return id, nil
}

// GetByID gets a document by ID. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*Document, error) {
	return r.getByCondition(ctx, "id = ?", id)
}

// GetByName gets a document by its unique display name. Returns ErrNotFound if not found.
func (r *DocumentRepo) GetByName(ctx context.Context, name string) (*Document, error) {
	return r.getByCondition(ctx, "name = ?", name)
}

func (r *DocumentRepo) getByCondition(ctx context.Context, condition string, arg any) (*Document, error) {
	var doc Document
	var uploadTimeStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, classification_id, name, upload_time FROM documents WHERE "+condition,
		arg,
	).Scan(&doc.ID, &doc.ClassificationID, &doc.Name, &uploadTimeStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.UploadTime, err = parseSQLiteTime(uploadTimeStr)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns all documents joined with their classification names.
func (r *DocumentRepo) List(ctx context.Context) ([]DocumentListing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT documents.id, documents.name, classifications.name
		 FROM documents
		 LEFT JOIN classifications ON documents.classification_id = classifications.id
		 ORDER BY documents.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var listings []DocumentListing
	for rows.Next() {
		var l DocumentListing
		var classification sql.NullString
		if err := rows.Scan(&l.ID, &l.Name, &classification); err != nil {
			return nil, fmt.Errorf("failed to scan document listing: %w", err)
		}
		l.Classification = classification.String
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return listings, nil
}

// ListNamesByClassification returns document names under a classification.
func (r *DocumentRepo) ListNamesByClassification(ctx context.Context, classification string) ([]string, error) {
	return r.queryNames(ctx,
		`SELECT documents.name FROM documents
		 INNER JOIN classifications ON documents.classification_id = classifications.id
		 WHERE classifications.name = ?`,
		classification,
	)
}

// ListNamesByDateRange returns names of documents uploaded within [start, end] (YYYY-MM-DD).
func (r *DocumentRepo) ListNamesByDateRange(ctx context.Context, start, end string) ([]string, error) {
	return r.queryNames(ctx,
		"SELECT name FROM documents WHERE date(upload_time) BETWEEN ? AND ?",
		start, end,
	)
}

// ListNamesByClassificationAndDateRange combines both conditions.
func (r *DocumentRepo) ListNamesByClassificationAndDateRange(ctx context.Context, classification, start, end string) ([]string, error) {
	return r.queryNames(ctx,
		`SELECT documents.name FROM documents
		 INNER JOIN classifications ON documents.classification_id = classifications.id
		 WHERE classifications.name = ? AND date(upload_time) BETWEEN ? AND ?`,
		classification, start, end,
	)
}

// NamesMatching returns exact document names whose name contains any of the
// given fragments. The full fragment list is turned into one disjunctive
// parameterized LIKE condition up front and issued as a single query.
func (r *DocumentRepo) NamesMatching(ctx context.Context, fragments []string) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}
	condition, args := likeDisjunction("name", fragments)
	return r.queryNames(ctx, "SELECT name FROM documents WHERE "+condition, args...)
}

// Delete removes a document row. Chapter-title rows cascade via foreign key.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query document names: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan document name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return names, nil
}

// likeDisjunction builds an OR-combined parameterized LIKE condition over the
// given column for every fragment. LIKE wildcards inside fragments are
// escaped so user text matches literally.
func likeDisjunction(column string, fragments []string) (string, []any) {
	clauses := make([]string, len(fragments))
	args := make([]any, len(fragments))
	for i, fragment := range fragments {
		clauses[i] = column + ` LIKE ? ESCAPE '\'`
		args[i] = "%" + escapeLike(fragment) + "%"
	}
	return strings.Join(clauses, " OR "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// parseSQLiteTime parses a DATETIME string as written by SQLite.
func parseSQLiteTime(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	// SQLite may use a different format depending on how the value was written
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
