package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_query_service.go -package=mocks -mock_names=QueryService=MockQueryService docuquery/internal/service QueryService

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docuquery/internal/contextutil"
	"docuquery/internal/storage"
	"docuquery/internal/workflow"
)

// Intent labels recognized by the classifier. Anything else falls back to the
// general pipeline.
const (
	intentSimple   = "simple_query"
	intentMetadata = "metadata_query"
	intentGeneral  = "general_query"
)

// IntentClassifier produces a completion used to classify query intent.
// Interface defined from the service layer's perspective (consumer-first).
type IntentClassifier interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// QueryRequest represents a query request in the domain layer.
type QueryRequest struct {
	Query             string `validate:"required"`
	ClassificationIDs []int64
}

// QueryResponse represents a query response in the domain layer.
type QueryResponse struct {
	Answer string
	Intent string
}

// Timeouts holds the per-pipeline wall-clock budgets.
type Timeouts struct {
	Simple   time.Duration
	General  time.Duration
	Metadata time.Duration
}

// QueryService routes a query to the right retrieval pipeline.
type QueryService interface {
	// ProcessQuery classifies the query's intent, runs the matching pipeline
	// under its wall-clock budget and returns the single result payload.
	ProcessQuery(ctx context.Context, req QueryRequest) (QueryResponse, error)
}

// queryService implements QueryService.
type queryService struct {
	classifier      IntentClassifier
	classifications storage.ClassificationStore
	simple          workflow.Pipeline
	metadata        workflow.Pipeline
	general         workflow.Pipeline
	timeouts        Timeouts
}

// NewQueryService creates a new QueryService.
func NewQueryService(
	classifier IntentClassifier,
	classifications storage.ClassificationStore,
	simple, metadata, general workflow.Pipeline,
	timeouts Timeouts,
) QueryService {
	return &queryService{
		classifier:      classifier,
		classifications: classifications,
		simple:          simple,
		metadata:        metadata,
		general:         general,
		timeouts:        timeouts,
	}
}

const intentPrompt = `Classify the user query into exactly one of these labels:
- simple_query: an exact lookup over the document inventory (which documents exist, under which classification, uploaded when)
- metadata_query: a question about which documents or chapters cover a topic, answered from chunk metadata
- general_query: a question to be answered from document content

Reply with the label only, nothing else.

Query: %s`

// ProcessQuery processes a query request.
func (s *queryService) ProcessQuery(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Query) == "" {
		logger.WarnContext(ctx, "empty query in request")
		return QueryResponse{}, &ValidationError{
			Field:   "query_text",
			Message: "cannot be empty",
		}
	}

	scope, err := s.classificationScope(ctx, req.ClassificationIDs)
	if err != nil {
		return QueryResponse{}, err
	}

	intent := s.classifyIntent(ctx, req.Query)

	var (
		pipeline workflow.Pipeline
		budget   time.Duration
	)
	switch intent {
	case intentSimple:
		pipeline, budget = s.simple, s.timeouts.Simple
	case intentMetadata:
		pipeline, budget = s.metadata, s.timeouts.Metadata
	default:
		pipeline, budget = s.general, s.timeouts.General
	}

	runCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	wc := &workflow.Context{Query: req.Query, Classifications: scope}
	answer, err := workflow.Run(runCtx, pipeline, wc)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline failed", "intent", intent, "error", err)
		// Pipeline failures are external-service failures (LLM, embeddings,
		// vector store, or their timeouts); keep the cause unwrappable.
		return QueryResponse{}, fmt.Errorf("%s pipeline failed: %w: %w", intent, ErrExternalService, err)
	}

	logger.InfoContext(ctx, "query processed", "intent", intent, "answer_length", len(answer))
	return QueryResponse{Answer: answer, Intent: intent}, nil
}

// classifyIntent maps the query to a pipeline label. A classifier failure or
// an unrecognized label falls back to the general pipeline rather than
// failing the request.
func (s *queryService) classifyIntent(ctx context.Context, query string) string {
	logger := contextutil.LoggerFromContext(ctx)

	reply, err := s.classifier.Complete(ctx, fmt.Sprintf(intentPrompt, query))
	if err != nil {
		logger.WarnContext(ctx, "intent classification failed, defaulting to general", "error", err)
		return intentGeneral
	}

	label := strings.ToLower(strings.TrimSpace(reply))
	switch label {
	case intentSimple, intentMetadata, intentGeneral:
		return label
	default:
		logger.WarnContext(ctx, "unrecognized intent label, defaulting to general", "label", label)
		return intentGeneral
	}
}

// classificationScope resolves the caller-supplied classification IDs to
// names. Unknown IDs are skipped by the store; an empty result means no
// classification filtering.
func (s *queryService) classificationScope(ctx context.Context, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	names, err := s.classifications.ListNamesByIDs(ctx, ids)
	if err != nil {
		return nil, WrapError(err, "failed to resolve classification scope")
	}
	return names, nil
}
