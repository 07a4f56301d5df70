package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"docuquery/internal/contextutil"
	"docuquery/internal/storage"
	"docuquery/internal/vectorstore"
)

// dateLayout is the format used for chunk date metadata.
const dateLayout = "2006-01-02"

// Embedder generates embedding vectors for texts.
// Interface defined from the pipeline's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Stats summarizes one document ingestion.
type Stats struct {
	BaseSpans      int
	DuplicateSpans int
	Titles         int
	TitleErrors    int
}

/// Pipeline orchestrates ingestion of a document: reading, chapter-aware
// chunking, embedding, vector-store persistence and chapter-title recording.
type Pipeline struct {
	titleRepo   storage.TitleStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	chunker     *Chunker
	logger      *slog.Logger
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	titleRepo storage.TitleStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunkSize, chunkOverlap int,
) *Pipeline {
	return &Pipeline{
		titleRepo:   titleRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunker:     NewChunker(chunkSize, chunkOverlap),
		logger:      slog.Default(),
	}
}

// IngestDocument reads the file at filePath, chunks it with chapter labels,
// embeds every span and persists the chunks as one batch. Failures before the
// batch upsert leave no partial chunk set searchable. Chapter-title rows are
// written afterwards; individual title insert failures are logged and
// skipped, never fatal.
func (p *Pipeline) IngestDocument(ctx context.Context, doc *storage.Document, classificationName, filePath string) (Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text, err := ReadDocument(filePath)
	if err != nil {
		return Stats{}, err
	}

	chunkSet := p.chunker.Chunk(text)
	if len(chunkSet.Spans) == 0 {
		logger.WarnContext(ctx, "document produced no chunks", "file_name", doc.Name)
		return Stats{}, nil
	}

	stats := Stats{
		BaseSpans:      chunkSet.BaseCount,
		DuplicateSpans: len(chunkSet.Spans) - chunkSet.BaseCount,
		Titles:         len(chunkSet.Titles),
	}

	creationDate := doc.UploadTime.Format(dateLayout)
	lastModifiedDate := creationDate
	if info, err := os.Stat(filePath); err == nil {
		lastModifiedDate = info.ModTime().Format(dateLayout)
	}

	texts := make([]string, len(chunkSet.Spans))
	for i, span := range chunkSet.Spans {
		texts[i] = span.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunkSet.Spans) {
		return Stats{}, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunkSet.Spans), len(embeddings))
	}

	points := make([]vectorstore.Point, len(chunkSet.Spans))
	for i, span := range chunkSet.Spans {
		points[i] = vectorstore.Point{
			// Every chunk, duplicates included, gets a fresh identity.
			ID:  uuid.New().String(),
			Vec: embeddings[i],
			Meta: map[string]any{
				"file_name":          doc.Name,
				"chapter_title":      span.Chapter,
				"classification":     classificationName,
				"creation_date":      creationDate,
				"last_modified_date": lastModifiedDate,
				"text":               span.Text,
			},
		}
	}

	// One batch upsert keeps ingestion all-or-nothing per document.
	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return Stats{}, fmt.Errorf("failed to upsert chunks: %w", err)
	}

	for _, title := range chunkSet.Titles {
		if err := p.titleRepo.Insert(ctx, doc.ID, title); err != nil {
			stats.TitleErrors++
			logger.ErrorContext(ctx, "failed to insert chapter title", "title", title, "document_id", doc.ID, "error", err)
		}
	}

	logger.InfoContext(ctx, "ingested document",
		"file_name", doc.Name,
		"chunks", len(chunkSet.Spans),
		"duplicates", stats.DuplicateSpans,
		"titles", stats.Titles,
		"title_errors", stats.TitleErrors,
	)
	return stats, nil
}
