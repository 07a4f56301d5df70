package workflow

import (
	"context"
	"fmt"

	"docuquery/internal/retrieval"
)

// StructuredCompleter produces a JSON-mode completion decoded into out.
type StructuredCompleter interface {
	CompleteStructured(ctx context.Context, prompt string, out any) error
}

// FilterResolver maps proposed filter candidates onto canonical values.
type FilterResolver interface {
	Resolve(ctx context.Context, proposed *retrieval.ProposedFilters, classificationScope []string) (retrieval.FilterSet, error)
}

const filterPrompt = `Extract metadata filters from the user query below. Respond with a JSON object with these keys, each an array of strings (use an empty array when the query does not constrain that field):
- "file_name": document names or fragments of document names the query refers to
- "chapter_title": chapter or section titles or fragments the query refers to
- "creation_date": exact dates in YYYY-MM-DD format the query constrains creation to
- "last_modified_date": exact dates in YYYY-MM-DD format the query constrains modification to

Do not invent values that are not implied by the query.

Query: %s`

// generateFilters asks the completion service to propose filter candidates
// for the query. Classification is never proposed; it only enters a filter
// set from the caller-supplied scope.
func generateFilters(ctx context.Context, completer StructuredCompleter, query string) (*retrieval.ProposedFilters, error) {
	var proposed retrieval.ProposedFilters
	if err := completer.CompleteStructured(ctx, fmt.Sprintf(filterPrompt, query), &proposed); err != nil {
		return nil, fmt.Errorf("failed to generate filters: %w", err)
	}
	return &proposed, nil
}
