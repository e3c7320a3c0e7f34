// Package web provides the HTTP server for the AI DJ Remixing API.
package web

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/justestif/go-dj-remix/internal/track"
)

const (
	// AudioPrefix is the URL prefix audio files are served under.
	AudioPrefix = "/static/audio/"

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// allMethods is every method the CORS policy admits.
var allMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr          string
	AllowedOrigin string
	AudioDir      string
	Tracks        track.Store   // defaults to an in-memory store
	Resolver      TrackResolver // nil disables POST /api/tracks/import
	HTTPLog       bool
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.AllowedOrigin == "" {
		return nil, errors.New("allowed origin is required")
	}
	if cfg.AudioDir == "" {
		return nil, errors.New("audio directory is required")
	}

	tracks := cfg.Tracks
	if tracks == nil {
		tracks = track.NewMemoryStore()
	}

	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: NewHandlers(tracks, cfg.Resolver),
	}

	// Configure middleware
	s.setupMiddleware(cfg)

	// Configure routes
	s.setupRoutes(cfg.AudioDir)

	// Create HTTP server; no write timeout since audio responses stream
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware(cfg ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	if cfg.HTTPLog {
		s.router.Use(middleware.Logger)
	}
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   allMethods,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}))
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(audioDir string) {
	// Audio files
	fileServer := http.FileServer(filesOnly{http.Dir(audioDir)})
	s.router.Handle(AudioPrefix+"*", http.StripPrefix(AudioPrefix, fileServer))

	// Probes
	s.router.Get("/", s.handlers.Root)
	s.router.Get("/api/health", s.handlers.Health)

	// Track catalog
	s.router.Route("/api/tracks", func(r chi.Router) {
		r.Get("/", s.handlers.ListTracks)
		r.Post("/", s.handlers.CreateTrack)
		r.Post("/import", s.handlers.ImportTrack)
		r.Get("/{id}", s.handlers.GetTrack)
	})

	s.router.NotFound(s.handlers.NotFound)
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It returns http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// filesOnly hides directories so the file server never renders listings.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}

	return file, nil
}
