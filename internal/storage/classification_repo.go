package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_classification_store.go -package=mocks docuquery/internal/storage ClassificationStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ClassificationStore defines the interface for classification storage operations.
type ClassificationStore interface {
	// Insert inserts a new classification and returns its generated ID.
	Insert(ctx context.Context, name string) (int64, error)
	// GetByID gets a classification by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*Classification, error)
	// ListAll returns all classifications ordered by ID.
	ListAll(ctx context.Context) ([]Classification, error)
	// ListNamesByIDs returns the names of the classifications with the given IDs.
	// Unknown IDs are skipped.
	ListNamesByIDs(ctx context.Context, ids []int64) ([]string, error)
	// Rename updates a classification name. Returns ErrNotFound if the ID does not exist.
	Rename(ctx context.Context, id int64, name string) error
}

// ClassificationRepo provides methods for classification operations.
// It implements the ClassificationStore interface.
type ClassificationRepo struct {
	db *sql.DB
}

// NewClassificationRepo creates a new ClassificationRepo.
func NewClassificationRepo(db *sql.DB) *ClassificationRepo {
	return &ClassificationRepo{db: db}
}

// Insert inserts a new classification and returns its generated ID.
func (r *ClassificationRepo) Insert(ctx context.Context, name string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO classifications (name) VALUES (?)", name,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert classification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted classification ID: %w", err)
	}
	return id, nil
}

// GetByID gets a classification by ID. Returns ErrNotFound if not found.
func (r *ClassificationRepo) GetByID(ctx context.Context, id int64) (*Classification, error) {
	var c Classification
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM classifications WHERE id = ?", id,
	).Scan(&c.ID, &c.Name)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query classification: %w", err)
	}
	return &c, nil
}

// ListAll returns all classifications ordered by ID.
func (r *ClassificationRepo) ListAll(ctx context.Context) ([]Classification, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM classifications ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list classifications: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var classifications []Classification
	for rows.Next() {
		var c Classification
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", err)
		}
		classifications = append(classifications, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return classifications, nil
}

// ListNamesByIDs returns the names of the classifications with the given IDs.
func (r *ClassificationRepo) ListNamesByIDs(ctx context.Context, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := ""
	args := make([]any, len(ids))
	for i, id := range ids {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += "?"
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM classifications WHERE id IN ("+placeholders+") ORDER BY id",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query classification names: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan classification name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return names, nil
}

// Rename updates a classification name. Returns ErrNotFound if the ID does not exist.
func (r *ClassificationRepo) Rename(ctx context.Context, id int64, name string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE classifications SET name = ? WHERE id = ?", name, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename classification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check renamed rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
