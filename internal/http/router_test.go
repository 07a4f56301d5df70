package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/mock/gomock"

	"docuquery/internal/ingest"
	"docuquery/internal/service"
	servicemocks "docuquery/internal/service/mocks"
	"docuquery/internal/storage"
	storagemocks "docuquery/internal/storage/mocks"
	vsmocks "docuquery/internal/vectorstore/mocks"
)

type healthyChecker struct{}

func (healthyChecker) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return true, nil
}

type noopIngestor struct{}

func (noopIngestor) IngestDocument(ctx context.Context, doc *storage.Document, classificationName, filePath string) (ingest.Stats, error) {
	return ingest.Stats{}, nil
}

type routerFixture struct {
	handler         http.Handler
	queryService    *servicemocks.MockQueryService
	documents       *storagemocks.MockDocumentStore
	classifications *storagemocks.MockClassificationStore
	vectors         *vsmocks.MockVectorStore
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	f := &routerFixture{
		queryService:    servicemocks.NewMockQueryService(ctrl),
		documents:       storagemocks.NewMockDocumentStore(ctrl),
		classifications: storagemocks.NewMockClassificationStore(ctrl),
		vectors:         vsmocks.NewMockVectorStore(ctrl),
	}
	f.handler = NewRouter(&Deps{
		QueryService:    f.queryService,
		Documents:       f.documents,
		Classifications: f.classifications,
		VectorStore:     f.vectors,
		Checker:         healthyChecker{},
		Ingestor:        noopIngestor{},
		DB:              db,
		Collection:      "documents",
	})
	return f
}

func TestRouter_Query(t *testing.T) {
	f := newRouterFixture(t)
	f.queryService.EXPECT().
		ProcessQuery(gomock.Any(), gomock.Any()).
		Return(service.QueryResponse{Answer: "ok", Intent: "general_query"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(`{"query_text": "hi"}`))
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestRouter_DocumentDeleteParam(t *testing.T) {
	f := newRouterFixture(t)
	f.documents.EXPECT().GetByID(gomock.Any(), int64(12)).Return(&storage.Document{ID: 12, Name: "guide.pdf"}, nil)
	f.vectors.EXPECT().DeleteByPredicate(gomock.Any(), "documents", gomock.Any()).Return(nil)
	f.documents.EXPECT().Delete(gomock.Any(), int64(12)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/document/12", nil)
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestRouter_ClassificationRoutes(t *testing.T) {
	f := newRouterFixture(t)
	f.classifications.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/classification/list", nil)
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRouter_Preflight(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/query", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	f.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
