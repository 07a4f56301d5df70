package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"docuquery/internal/storage"
	storagemocks "docuquery/internal/storage/mocks"
	"docuquery/internal/vectorstore"
	vsmocks "docuquery/internal/vectorstore/mocks"
)

// withURLParam attaches a chi route parameter to the request context so
// handlers can be exercised without a full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestClassificationHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storagemocks.NewMockClassificationStore(ctrl)
	mockStore.EXPECT().ListAll(gomock.Any()).Return([]storage.Classification{
		{ID: 1, Name: "novels"},
		{ID: 2, Name: "manuals"},
	}, nil)

	handler := NewClassificationHandler(mockStore, vsmocks.NewMockVectorStore(ctrl), "documents")

	req := httptest.NewRequest(http.MethodGet, "/api/classification/list", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp []ClassificationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].Name != "novels" || resp[1].Name != "manuals" {
		t.Errorf("response = %+v", resp)
	}
}

func TestClassificationHandler_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storagemocks.NewMockClassificationStore(ctrl)
	mockStore.EXPECT().Insert(gomock.Any(), "novels").Return(int64(7), nil)

	handler := NewClassificationHandler(mockStore, vsmocks.NewMockVectorStore(ctrl), "documents")

	req := httptest.NewRequest(http.MethodPost, "/api/classification", strings.NewReader(`{"name": " novels "}`))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp ClassificationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 7 || resp.Name != "novels" {
		t.Errorf("response = %+v", resp)
	}
}

func TestClassificationHandler_Add_EmptyName(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewClassificationHandler(storagemocks.NewMockClassificationStore(ctrl), vsmocks.NewMockVectorStore(ctrl), "documents")

	req := httptest.NewRequest(http.MethodPost, "/api/classification", strings.NewReader(`{"name": "  "}`))
	rec := httptest.NewRecorder()

	handler.Add(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestClassificationHandler_Rename(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storagemocks.NewMockClassificationStore(ctrl)
	mockVectors := vsmocks.NewMockVectorStore(ctrl)

	mockStore.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&storage.Classification{ID: 3, Name: "小说"}, nil)

	wantPred := vectorstore.Predicate{}.And("classification", []string{"小说"})
	// Chunk payloads change before the row so a reader never sees a renamed
	// row pointing at chunks still tagged with the old name.
	gomock.InOrder(
		mockVectors.EXPECT().
			UpdateMetadata(gomock.Any(), "documents", wantPred, map[string]any{"classification": "网络小说"}).
			Return(nil),
		mockStore.EXPECT().Rename(gomock.Any(), int64(3), "网络小说").Return(nil),
	)

	handler := NewClassificationHandler(mockStore, mockVectors, "documents")

	req := httptest.NewRequest(http.MethodPut, "/api/classification/3", strings.NewReader(`{"name": "网络小说"}`))
	req = withURLParam(req, "id", "3")
	rec := httptest.NewRecorder()

	handler.Rename(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp ClassificationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != 3 || resp.Name != "网络小说" {
		t.Errorf("response = %+v", resp)
	}
}

func TestClassificationHandler_Rename_SameName(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storagemocks.NewMockClassificationStore(ctrl)
	mockStore.EXPECT().GetByID(gomock.Any(), int64(3)).Return(&storage.Classification{ID: 3, Name: "novels"}, nil)

	// No vector-store or rename calls expected for a no-op rename.
	handler := NewClassificationHandler(mockStore, vsmocks.NewMockVectorStore(ctrl), "documents")

	req := httptest.NewRequest(http.MethodPut, "/api/classification/3", strings.NewReader(`{"name": "novels"}`))
	req = withURLParam(req, "id", "3")
	rec := httptest.NewRecorder()

	handler.Rename(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestClassificationHandler_Rename_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := storagemocks.NewMockClassificationStore(ctrl)
	mockStore.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, storage.ErrNotFound)

	handler := NewClassificationHandler(mockStore, vsmocks.NewMockVectorStore(ctrl), "documents")

	req := httptest.NewRequest(http.MethodPut, "/api/classification/99", strings.NewReader(`{"name": "anything"}`))
	req = withURLParam(req, "id", "99")
	rec := httptest.NewRecorder()

	handler.Rename(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestClassificationHandler_Rename_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewClassificationHandler(storagemocks.NewMockClassificationStore(ctrl), vsmocks.NewMockVectorStore(ctrl), "documents")

	req := httptest.NewRequest(http.MethodPut, "/api/classification/abc", strings.NewReader(`{"name": "novels"}`))
	req = withURLParam(req, "id", "abc")
	rec := httptest.NewRecorder()

	handler.Rename(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
