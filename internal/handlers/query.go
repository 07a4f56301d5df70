package handlers

import (
	"encoding/json"
	"net/http"

	"docuquery/internal/contextutil"
	"docuquery/internal/service"
)

// QueryHandler handles HTTP requests for document queries.
type QueryHandler struct {
	queryService service.QueryService
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(queryService service.QueryService) *QueryHandler {
	return &QueryHandler{queryService: queryService}
}

// QueryRequest represents the HTTP request payload for a query.
type QueryRequest struct {
	QueryText         string  `json:"query_text"`
	ClassificationIDs []int64 `json:"classification_ids,omitempty"`
}

// QueryResponse represents the HTTP response payload for a query.
type QueryResponse struct {
	Answer string `json:"answer"`
	Intent string `json:"intent"`
}

// ServeHTTP handles HTTP requests for queries.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.queryService.ProcessQuery(ctx, service.QueryRequest{
		Query:             req.QueryText,
		ClassificationIDs: req.ClassificationIDs,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process query")
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Answer: svcResp.Answer,
		Intent: svcResp.Intent,
	})
}
