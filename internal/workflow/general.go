package workflow

import (
	"context"
	"fmt"

	"docuquery/internal/retrieval"
)

// generalTopK is the similarity-search depth for answer synthesis.
const generalTopK = 5

// AnswerSynthesizer runs a filtered search and synthesizes an answer from the
// retrieved spans.
type AnswerSynthesizer interface {
	SynthesizeAnswer(ctx context.Context, queryText string, filters retrieval.FilterSet, topK int) (string, error)
}

// GeneralPipeline answers free-form questions: propose filters, resolve them,
// then synthesize an answer from a filtered similarity search.
type GeneralPipeline struct {
	completer StructuredCompleter
	resolver  FilterResolver
	gateway   AnswerSynthesizer
}

// NewGeneralPipeline creates the general-query pipeline.
func NewGeneralPipeline(completer StructuredCompleter, resolver FilterResolver, gateway AnswerSynthesizer) *GeneralPipeline {
	return &GeneralPipeline{completer: completer, resolver: resolver, gateway: gateway}
}

// Step advances the pipeline one transition.
func (p *GeneralPipeline) Step(ctx context.Context, wc *Context, event Event) (Event, error) {
	switch ev := event.(type) {
	case StartEvent:
		proposed, err := generateFilters(ctx, p.completer, wc.Query)
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
		answer, err := p.gateway.SynthesizeAnswer(ctx, wc.Query, ev.Filters, generalTopK)
		if err != nil {
			return nil, err
		}
		return StopEvent{Result: answer}, nil

	default:
		return nil, fmt.Errorf("general pipeline: unexpected event %T", event)
	}
}
