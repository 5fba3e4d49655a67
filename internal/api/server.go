package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dgallion1/docvault/internal/config"
	"github.com/dgallion1/docvault/internal/pipeline"
	"github.com/dgallion1/docvault/internal/vault"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Server is the HTTP API server for docvault.
type Server struct {
	router  chi.Router
	indexer *pipeline.Indexer
	log     *slog.Logger
	cfg     config.Config

	// mu guards the vault: rendering marks references and caches content.
	mu     sync.Mutex
	vault  *vault.Vault
	report *pipeline.Report
	pages  *lru.Cache[string, *pageResponse]
}

// NewServer creates and configures the HTTP server around an indexed vault.
// The indexer is used to rebuild the vault on request.
func NewServer(ix *pipeline.Indexer, v *vault.Vault, report *pipeline.Report, log *slog.Logger, cfg config.Config) (*Server, error) {
	pages, err := lru.New[string, *pageResponse](cfg.RenderCacheSize)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}
	s := &Server{
		indexer: ix,
		log:     log,
		cfg:     cfg,
		vault:   v,
		report:  report,
		pages:   pages,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/tree", s.handleTree)
		r.Get("/api/toc", s.handleTOC)
		r.Get("/api/find", s.handleFind)
		r.Get("/api/pages/*", s.handlePage)
		r.Get("/media/*", s.handleMedia)

		r.Get("/api/index/status", s.handleIndexStatus)
		r.Post("/api/index", s.handleReindex)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
