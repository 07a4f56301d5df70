package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_title_store.go -package=mocks docuquery/internal/storage TitleStore

import (
	"context"
	"database/sql"
	"fmt"
)

// TitleStore defines the interface for chapter-title storage operations.
type TitleStore interface {
	// Insert inserts one chapter-title row for a document.
	Insert(ctx context.Context, documentID int64, title string) error
	// ListByDocument returns all chapter titles recorded for a document.
	ListByDocument(ctx context.Context, documentID int64) ([]string, error)
	// TitlesMatching returns exact titles containing any of the given
	// fragments (disjunctive substring match). An empty fragment list
	// returns an empty result.
	TitlesMatching(ctx context.Context, fragments []string) ([]string, error)
}

// TitleRepo provides methods for chapter-title operations.
// It implements the TitleStore interface.
type TitleRepo struct {
	db *sql.DB
}

// NewTitleRepo creates a new TitleRepo.
func NewTitleRepo(db *sql.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

// Insert inserts one chapter-title row for a document.
func (r *TitleRepo) Insert(ctx context.Context, documentID int64, title string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO document_titles (document_id, title) VALUES (?, ?)",
		documentID, title,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chapter title: %w", err)
	}
	return nil
}

// ListByDocument returns all chapter titles recorded for a document.
func (r *TitleRepo) ListByDocument(ctx context.Context, documentID int64) ([]string, error) {
	return r.queryTitles(ctx,
		"SELECT title FROM document_titles WHERE document_id = ?", documentID,
	)
}

// TitlesMatching returns exact titles containing any of the given fragments.
// Like DocumentRepo.NamesMatching, the condition is one parameterized
// disjunction over the full fragment list.
func (r *TitleRepo) TitlesMatching(ctx context.Context, fragments []string) ([]string, error) {
	if len(fragments) == 0 {
		return nil, nil
	}
	condition, args := likeDisjunction("title", fragments)
	return r.queryTitles(ctx, "SELECT DISTINCT title FROM document_titles WHERE "+condition, args...)
}

func (r *TitleRepo) queryTitles(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapter titles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan chapter title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return titles, nil
}
