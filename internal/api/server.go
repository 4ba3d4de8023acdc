// Package api serves a document over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /api/document             canonical text
//	PUT    /api/document             replace the text
//	PATCH  /api/document             mutate at an accessor
//	DELETE /api/document             reset to {}
//	GET    /api/graph                derived nodes and edges
//	GET    /api/graph/nodes/{id}     one node with its editable text
//	PUT    /api/graph/nodes/{id}     save a node's text
//	GET    /api/render               rendered graph (svg, dot, json)
//
// Errors are JSON objects {"error": "...", "code": "..."}.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/edit"
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/pipeline"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 10 << 20

// Options configures a Server.
type Options struct {
	// Mode is the coercion mode for PATCH requests that send "input"
	// without a "mode". Defaults to raw.
	Mode edit.Mode
}

// Server is the HTTP API server for one document.
type Server struct {
	router chi.Router
	store  *document.Store
	view   *graph.View
	runner *pipeline.Runner
	log    *log.Logger
	opts   Options
}

// NewServer creates and configures the HTTP server. view must be registered
// as an observer of store. A nil runner disables caching for renders.
func NewServer(store *document.Store, view *graph.View, runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if opts.Mode == "" {
		opts.Mode = edit.ModeRaw
	}
	s := &Server{
		store:  store,
		view:   view,
		runner: runner,
		log:    logger,
		opts:   opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/document", s.handleGetDocument)
		r.Put("/document", s.handleReplaceDocument)
		r.Patch("/document", s.handleMutateDocument)
		r.Delete("/document", s.handleClearDocument)

		r.Get("/graph", s.handleGetGraph)
		r.Get("/graph/nodes/{id}", s.handleGetNode)
		r.Put("/graph/nodes/{id}", s.handleSaveNode)

		r.Get("/render", s.handleRender)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
