package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docuquery/internal/handlers"
	"docuquery/internal/service"
	"docuquery/internal/storage"
	"docuquery/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	QueryService    service.QueryService
	Documents       storage.DocumentStore
	Classifications storage.ClassificationStore
	VectorStore     vectorstore.VectorStore
	Checker         handlers.CollectionChecker
	Ingestor        handlers.Ingestor
	DB              *sql.DB
	Collection      string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	queryHandler := handlers.NewQueryHandler(deps.QueryService)
	documentHandler := handlers.NewDocumentHandler(deps.Documents, deps.Classifications, deps.VectorStore, deps.Ingestor, deps.Collection)
	classificationHandler := handlers.NewClassificationHandler(deps.Classifications, deps.VectorStore, deps.Collection)
	healthHandler := handlers.NewHealthHandler(deps.Checker, deps.DB, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/query", queryHandler)

		r.Post("/document/upload", documentHandler.Upload)
		r.Get("/document/list", documentHandler.List)
		r.Delete("/document/{id}", documentHandler.Delete)

		r.Get("/classification/list", classificationHandler.List)
		r.Post("/classification", classificationHandler.Add)
		r.Put("/classification/{id}", classificationHandler.Rename)

		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
