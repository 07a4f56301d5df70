package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks docuquery/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// Clause restricts one metadata field to a set of values (OR-semantics
// within the field).
type Clause struct {
	Field  string
	Values []string
}

// Predicate is a conjunction of per-field set-membership clauses. The zero
// value matches everything.
type Predicate struct {
	Clauses []Clause
}

// And appends a clause restricting field to values and returns the predicate.
func (p Predicate) And(field string, values []string) Predicate {
	p.Clauses = append(p.Clauses, Clause{Field: field, Values: values})
	return p
}

// Empty reports whether the predicate has no clauses.
func (p Predicate) Empty() bool {
	return len(p.Clauses) == 0
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search constrained by the predicate.
	Search(ctx context.Context, collection string, query []float32, k int, pred Predicate) ([]SearchResult, error)

	// UpdateMetadata sets the given metadata values on every point matching
	// the predicate, in a single store-side operation.
	UpdateMetadata(ctx context.Context, collection string, pred Predicate, values map[string]any) error

	// DeleteByPredicate removes every point matching the predicate.
	DeleteByPredicate(ctx context.Context, collection string, pred Predicate) error
}
