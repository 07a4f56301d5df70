package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"docuquery/internal/contextutil"
	"docuquery/internal/storage"
	"docuquery/internal/vectorstore"
)

// ClassificationHandler handles HTTP requests for classification management.
type ClassificationHandler struct {
	classifications storage.ClassificationStore
	vectorStore     vectorstore.VectorStore
	collection      string
}

// NewClassificationHandler creates a new ClassificationHandler.
func NewClassificationHandler(classifications storage.ClassificationStore, vectorStore vectorstore.VectorStore, collection string) *ClassificationHandler {
	return &ClassificationHandler{
		classifications: classifications,
		vectorStore:     vectorStore,
		collection:      collection,
	}
}

// ClassificationRequest represents the HTTP request payload for creating or
// renaming a classification.
type ClassificationRequest struct {
	Name string `json:"name"`
}

// ClassificationResponse represents one classification in HTTP responses.
type ClassificationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// List handles classification listing requests.
func (h *ClassificationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	classifications, err := h.classifications.ListAll(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list classifications")
		return
	}

	resp := make([]ClassificationResponse, 0, len(classifications))
	for _, c := range classifications {
		resp = append(resp, ClassificationResponse{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Add handles classification creation requests.
func (h *ClassificationHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	name, ok := decodeName(w, r)
	if !ok {
		return
	}

	id, err := h.classifications.Insert(ctx, name)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create classification")
		return
	}

	logger.InfoContext(ctx, "created classification", "classification_id", id, "name", name)
	writeJSON(w, http.StatusOK, ClassificationResponse{ID: id, Name: name})
}

// Rename updates a classification name and cascades it to every chunk tagged
// with the old name. The vector-store side runs as one predicate-scoped
// payload update before the row update, so concurrent readers observe either
// the old label or the new one, never a mix.
func (h *ClassificationHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid classification id")
		return
	}

	name, ok := decodeName(w, r)
	if !ok {
		return
	}

	current, err := h.classifications.GetByID(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to look up classification")
		return
	}
	if current.Name == name {
		writeJSON(w, http.StatusOK, ClassificationResponse{ID: id, Name: name})
		return
	}

	pred := vectorstore.Predicate{}.And("classification", []string{current.Name})
	if err := h.vectorStore.UpdateMetadata(ctx, h.collection, pred, map[string]any{"classification": name}); err != nil {
		handleServiceError(w, ctx, err, "Failed to update document chunks")
		return
	}

	if err := h.classifications.Rename(ctx, id, name); err != nil {
		handleServiceError(w, ctx, err, "Failed to rename classification")
		return
	}

	logger.InfoContext(ctx, "renamed classification", "classification_id", id, "old_name", current.Name, "new_name", name)
	writeJSON(w, http.StatusOK, ClassificationResponse{ID: id, Name: name})
}

// decodeName reads and validates the name payload shared by Add and Rename.
func decodeName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Name cannot be empty")
		return "", false
	}
	return name, true
}
