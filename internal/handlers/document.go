package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"docuquery/internal/contextutil"
	"docuquery/internal/ingest"
	"docuquery/internal/storage"
	"docuquery/internal/vectorstore"
)

// maxUploadBytes bounds the multipart form held in memory during upload.
const maxUploadBytes = 32 << 20

// Ingestor runs the ingestion pipeline for one uploaded document.
// Interface defined from the handler's perspective (consumer-first).
type Ingestor interface {
	IngestDocument(ctx context.Context, doc *storage.Document, classificationName, filePath string) (ingest.Stats, error)
}

// DocumentHandler handles HTTP requests for document management.
type DocumentHandler struct {
	documents       storage.DocumentStore
	classifications storage.ClassificationStore
	vectorStore     vectorstore.VectorStore
	ingestor        Ingestor
	collection      string
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(
	documents storage.DocumentStore,
	classifications storage.ClassificationStore,
	vectorStore vectorstore.VectorStore,
	ingestor Ingestor,
	collection string,
) *DocumentHandler {
	return &DocumentHandler{
		documents:       documents,
		classifications: classifications,
		vectorStore:     vectorStore,
		ingestor:        ingestor,
		collection:      collection,
	}
}

// UploadResponse represents the HTTP response payload for a document upload.
type UploadResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Chunks int    `json:"chunks"`
	Titles int    `json:"titles"`
}

// Upload handles multipart document uploads. The document row and its chunk
// set are committed together: an ingestion failure rolls the row back so no
// partial chunk set is left searchable.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	classificationID, err := strconv.ParseInt(r.FormValue("classification_id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid classification_id")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." {
		writeError(w, http.StatusBadRequest, "Missing file name")
		return
	}

	classification, err := h.classifications.GetByID(ctx, classificationID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to look up classification")
		return
	}

	if _, err := h.documents.GetByName(ctx, name); err == nil {
		writeError(w, http.StatusConflict, "A document with this name already exists")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		handleServiceError(w, ctx, err, "Failed to check for duplicate document")
		return
	}

	// Spool to a temp file keeping the original name; the reader dispatches
	// on the file extension.
	tempDir, err := os.MkdirTemp("", "docuquery-upload-*")
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to store upload")
		return
	}
	defer func() {
		_ = os.RemoveAll(tempDir)
	}()

	tempPath := filepath.Join(tempDir, name)
	if err := spoolUpload(tempPath, file); err != nil {
		handleServiceError(w, ctx, err, "Failed to store upload")
		return
	}

	id, err := h.documents.Insert(ctx, classificationID, name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to record document")
		return
	}

	doc, err := h.documents.GetByID(ctx, id)
	if err != nil {
		h.rollbackDocument(ctx, id)
		handleServiceError(w, ctx, err, "Failed to record document")
		return
	}

	stats, err := h.ingestor.IngestDocument(ctx, doc, classification.Name, tempPath)
	if err != nil {
		h.rollbackDocument(ctx, id)
		if errors.Is(err, ingest.ErrUnsupportedFormat) || errors.Is(err, ingest.ErrFormatNotImplemented) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		handleServiceError(w, ctx, err, "Failed to ingest document")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		ID:     id,
		Name:   name,
		Chunks: stats.BaseSpans + stats.DuplicateSpans,
		Titles: stats.Titles,
	})
}

// rollbackDocument removes a document row after a failed ingestion so the
// relational store never references a chunk set that was not committed.
func (h *DocumentHandler) rollbackDocument(ctx context.Context, id int64) {
	if err := h.documents.Delete(ctx, id); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to roll back document row", "document_id", id, "error", err)
	}
}

// List handles document listing requests.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	listings, err := h.documents.List(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list documents")
		return
	}
	if listings == nil {
		listings = []storage.DocumentListing{}
	}

	writeJSON(w, http.StatusOK, listings)
}

// Delete removes a document: its chunks leave the vector store first, then
// the document row (chapter titles cascade with it).
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	doc, err := h.documents.GetByID(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to look up document")
		return
	}

	pred := vectorstore.Predicate{}.And("file_name", []string{doc.Name})
	if err := h.vectorStore.DeleteByPredicate(ctx, h.collection, pred); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete document chunks")
		return
	}

	if err := h.documents.Delete(ctx, id); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete document")
		return
	}

	logger.InfoContext(ctx, "deleted document", "document_id", id, "file_name", doc.Name)
	w.WriteHeader(http.StatusNoContent)
}

func spoolUpload(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}
