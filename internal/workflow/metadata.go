package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"docuquery/internal/contextutil"
	"docuquery/internal/retrieval"
)

// metadataTopK widens the search to favor recall; the score threshold in the
// gateway bounds false positives instead.
const metadataTopK = 100

// MetadataRetriever runs a filtered search and returns above-threshold chunk
// metadata records.
type MetadataRetriever interface {
	RetrieveMetadata(ctx context.Context, queryText string, filters retrieval.FilterSet, topK int) ([]retrieval.ChunkMetadata, error)
}

// Completer produces a plain-text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// MetadataPipeline answers questions about the document inventory itself:
// propose filters, resolve them, retrieve matching chunk metadata and
// summarize the aggregated field values.
type MetadataPipeline struct {
	structured StructuredCompleter
	completer  Completer
	resolver   FilterResolver
	gateway    MetadataRetriever
}

// NewMetadataPipeline creates the metadata-query pipeline.
func NewMetadataPipeline(structured StructuredCompleter, completer Completer, resolver FilterResolver, gateway MetadataRetriever) *MetadataPipeline {
	return &MetadataPipeline{structured: structured, completer: completer, resolver: resolver, gateway: gateway}
}

// Step advances the pipeline one transition.
func (p *MetadataPipeline) Step(ctx context.Context, wc *Context, event Event) (Event, error) {
	switch ev := event.(type) {
	case StartEvent:
		proposed, err := generateFilters(ctx, p.structured, wc.Query)
		if err != nil {
			return nil, err
		}
		return FiltersProposedEvent{Proposed: proposed}, nil

	case FiltersProposedEvent:
		filters, err := p.resolver.Resolve(ctx, ev.Proposed, wc.Classifications)
		if err != nil {
			return nil, err
		}
		return FiltersResolvedEvent{Filters: filters}, nil

	case FiltersResolvedEvent:
		records, err := p.gateway.RetrieveMetadata(ctx, wc.Query, ev.Filters, metadataTopK)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			// Empty retrieval terminates the run; the summarization step
			// never runs on nothing.
			contextutil.LoggerFromContext(ctx).InfoContext(ctx, "metadata retrieval returned no records")
			return StopEvent{Result: retrieval.NoResultsMessage}, nil
		}
		return MetadataRetrievedEvent{Records: records}, nil

	case MetadataRetrievedEvent:
		summary, err := p.summarize(ctx, wc.Query, ev.Records)
		if err != nil {
			return nil, err
		}
		return StopEvent{Result: summary}, nil

	default:
		return nil, fmt.Errorf("metadata pipeline: unexpected event %T", event)
	}
}

// summarize renders the five deduplicated metadata sets plus the original
// query into a natural-language answer.
func (p *MetadataPipeline) summarize(ctx context.Context, query string, records []retrieval.ChunkMetadata) (string, error) {
	groups := retrieval.GroupMetadata(records)

	encoded, err := json.Marshal(groups)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata groups: %w", err)
	}

	prompt := fmt.Sprintf(
		"The user asked about stored documents. Below are the metadata values of the matching document chunks, grouped by field as JSON. Answer the question using only these values.\n\nMetadata:\n%s\n\nQuestion: %s",
		encoded, query,
	)

	summary, err := p.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to summarize metadata: %w", err)
	}
	return summary, nil
}
