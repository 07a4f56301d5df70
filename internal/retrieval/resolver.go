package retrieval

import (
	"context"
	"fmt"

	"docuquery/internal/contextutil"
	"docuquery/internal/storage"
)

// Resolver maps proposed free-text filter fragments onto canonical metadata
// values known to the relational store.
type Resolver struct {
	documents storage.DocumentStore
	titles    storage.TitleStore
}

// NewResolver creates a resolver backed by the given stores.
func NewResolver(documents storage.DocumentStore, titles storage.TitleStore) *Resolver {
	return &Resolver{documents: documents, titles: titles}
}

// Resolve produces a FilterSet from proposed filters and an optional
// classification scope. File-name and chapter-title fragments are matched
// against stored values by substring; a fragment set that matches nothing
// yields the empty-match marker rather than an unset field. Date fields pass
// through unresolved. A nil proposal leaves every field unset except the
// classification scope.
func (r *Resolver) Resolve(ctx context.Context, proposed *ProposedFilters, classificationScope []string) (FilterSet, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var resolved FilterSet
	if len(classificationScope) > 0 {
		resolved.Classification = classificationScope
	}
	if proposed == nil {
		return resolved, nil
	}

	if len(proposed.FileName) > 0 {
		names, err := r.documents.NamesMatching(ctx, proposed.FileName)
		if err != nil {
			return FilterSet{}, fmt.Errorf("failed to resolve file names: %w", err)
		}
		resolved.FileName = markerIfEmpty(names)
		if len(names) == 0 {
			logger.InfoContext(ctx, "no stored documents match proposed file names", "proposed", proposed.FileName)
		}
	}

	if len(proposed.ChapterTitle) > 0 {
		titles, err := r.titles.TitlesMatching(ctx, proposed.ChapterTitle)
		if err != nil {
			return FilterSet{}, fmt.Errorf("failed to resolve chapter titles: %w", err)
		}
		resolved.ChapterTitle = markerIfEmpty(titles)
		if len(titles) == 0 {
			logger.InfoContext(ctx, "no stored titles match proposed chapter titles", "proposed", proposed.ChapterTitle)
		}
	}

	if len(proposed.CreationDate) > 0 {
		resolved.CreationDate = proposed.CreationDate
	}
	if len(proposed.LastModifiedDate) > 0 {
		resolved.LastModifiedDate = proposed.LastModifiedDate
	}

	return resolved, nil
}

// markerIfEmpty keeps a resolved value list distinguishable from an unset
// field: zero matches become the non-nil empty-match marker.
func markerIfEmpty(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}
	return values
}
