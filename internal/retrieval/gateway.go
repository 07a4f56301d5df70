package retrieval

import (
	"context"
	"fmt"
	"strings"

	"docuquery/internal/contextutil"
	"docuquery/internal/vectorstore"
)

// scoreThreshold is the minimum relevance score for a chunk to count toward
// metadata aggregation. Ranked hits below it are dropped.
const scoreThreshold = 0.55

// NoResultsMessage is returned when a query resolves to an empty result set.
const NoResultsMessage = "未检索到任何内容。"

// Embedder generates the embedding vector for a query text.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// CompletionClient produces a completion for a prompt.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Gateway runs filtered similarity searches against the vector store and
// shapes the results for the retrieval pipelines.
type Gateway struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	completion  CompletionClient
	collection  string
}

// NewGateway creates a gateway over the given collection.
func NewGateway(embedder Embedder, vectorStore vectorstore.VectorStore, completion CompletionClient, collection string) *Gateway {
	return &Gateway{
		embedder:    embedder,
		vectorStore: vectorStore,
		completion:  completion,
		collection:  collection,
	}
}

// search embeds the query and runs the similarity search under the filter
// set's conjunctive predicate. An empty-match marker on any field means the
// predicate can match nothing, so the search is skipped entirely.
func (g *Gateway) search(ctx context.Context, queryText string, filters FilterSet, topK int) ([]vectorstore.SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if filters.HasEmptyMatch() {
		logger.InfoContext(ctx, "filter set contains empty-match field, skipping search")
		return nil, nil
	}

	embedding, err := g.embedder.EmbedText(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := g.vectorStore.Search(ctx, g.collection, embedding, topK, filters.Predicate())
	if err != nil {
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}
	return results, nil
}

// SynthesizeAnswer searches under the filter set and asks the completion
// service to answer the query from the retrieved spans.
func (g *Gateway) SynthesizeAnswer(ctx context.Context, queryText string, filters FilterSet, topK int) (string, error) {
	results, err := g.search(ctx, queryText, filters, topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return NoResultsMessage, nil
	}

	var b strings.Builder
	b.WriteString("Answer the question using only the context below. If the context does not contain the answer, say so.\n\nContext:\n")
	for _, result := range results {
		b.WriteString(chunkText(result))
		b.WriteString("\n\n")
	}
	b.WriteString("Question: ")
	b.WriteString(queryText)

	answer, err := g.completion.Complete(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("failed to synthesize answer: %w", err)
	}
	return answer, nil
}

// RetrieveText searches under the filter set and returns the retrieved chunk
// texts joined with blank-line separators. No completion call is made.
func (g *Gateway) RetrieveText(ctx context.Context, queryText string, filters FilterSet, topK int) (string, error) {
	results, err := g.search(ctx, queryText, filters, topK)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(results))
	for _, result := range results {
		texts = append(texts, chunkText(result))
	}
	return strings.Join(texts, "\n\n"), nil
}

// RetrieveMetadata searches under the filter set and returns the metadata
// record of every chunk scoring above the relevance threshold.
func (g *Gateway) RetrieveMetadata(ctx context.Context, queryText string, filters FilterSet, topK int) ([]ChunkMetadata, error) {
	results, err := g.search(ctx, queryText, filters, topK)
	if err != nil {
		return nil, err
	}

	var records []ChunkMetadata
	for _, result := range results {
		if result.Score <= scoreThreshold {
			continue
		}
		records = append(records, metadataFromMap(result.Meta))
	}
	return records, nil
}

func chunkText(result vectorstore.SearchResult) string {
	if v, ok := result.Meta["text"].(string); ok {
		return v
	}
	return ""
}
