package api

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/gamedocs/internal/catalog"
	"github.com/meur/gamedocs/internal/models"
	"github.com/meur/gamedocs/internal/render"
)

// Options configures the preview host
type Options struct {
	AllowedOrigins []string
	ImagesDir      string // served under /images; empty disables
}

// Server holds the HTTP server dependencies
type Server struct {
	cat    *catalog.Catalog
	render *render.Renderer
	opts   Options
	router chi.Router
}

// New creates a new preview host over the renderer's catalog
func New(r *render.Renderer, opts Options) *Server {
	s := &Server{
		cat:    r.Catalog(),
		render: r,
		opts:   opts,
		router: chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "If-None-Match"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	// Detail pages
	for _, cat := range models.Categories() {
		page, err := cat.Page()
		if err != nil {
			continue
		}
		s.router.Get("/"+page+".html", s.handleDetail(cat))
	}

	// Fragments for other hosts to embed
	s.router.Route("/fragments", func(r chi.Router) {
		r.Get("/unlock", s.handleUnlockFragment)
		r.Get("/{category}", s.handleFragment)
	})

	// Raw tables
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/{category}", s.handleGetRecords)
		r.Get("/{category}/{id}", s.handleGetRecord)
	})

	if s.opts.ImagesDir != "" {
		FileServer(s.router, "/images", http.Dir(s.opts.ImagesDir))
	}

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", http.StatusMovedPermanently).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondHTML(w http.ResponseWriter, status int, html template.HTML) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(html))
}

// notModified sets the catalog ETag and reports whether the client already
// has this version.
func (s *Server) notModified(w http.ResponseWriter, r *http.Request) bool {
	etag := `"` + s.cat.Version() + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}
