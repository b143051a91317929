// Package server exposes the wrapped pipeline over a local REST
// API. A separate viewer renders the slide deck; this server
// only builds and hands out the JSON payloads.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	gosync "sync"
	"time"

	"github.com/wrapview/wrapview/internal/config"
	"github.com/wrapview/wrapview/internal/pipeline"
	"github.com/wrapview/wrapview/internal/story"
)

// VersionInfo holds build-time version metadata.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// Build is one computed wrapped, as returned by the API.
type Build struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Source    string          `json:"source"`
	Result    pipeline.Result `json:"result"`
}

// Server is the HTTP server for the wrapped API.
type Server struct {
	mu      gosync.RWMutex
	cfg     config.Config
	mux     *http.ServeMux
	httpSrv *http.Server
	version VersionInfo
	latest  *Build

	// handlerDelay is injected before each timeout-wrapped
	// handler, used only by tests to guarantee handlers
	// exceed a short timeout. Zero in production.
	handlerDelay time.Duration
}

// New creates a new Server.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Option configures a Server.
type Option func(*Server)

// WithVersion sets the build-time version metadata.
func WithVersion(v VersionInfo) Option {
	return func(s *Server) { s.version = v }
}

func (s *Server) routes() {
	s.mux.Handle("POST /api/v1/wrapped", s.withTimeout(s.handleBuildWrapped))
	s.mux.Handle("GET /api/v1/wrapped", s.withTimeout(s.handleGetWrapped))
	s.mux.Handle("GET /api/v1/story", s.withTimeout(s.handleGetStory))
	s.mux.Handle("GET /api/v1/version", s.withTimeout(s.handleGetVersion))
}

func (s *Server) handleGetVersion(
	w http.ResponseWriter, _ *http.Request,
) {
	writeJSON(w, http.StatusOK, s.version)
}

// SetLatest publishes a build computed outside a request, such
// as the watch-mode reload path.
func (s *Server) SetLatest(b Build) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = &b
}

// Latest returns the most recent build, or nil when none has
// been computed yet.
func (s *Server) Latest() *Build {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Server) handleGetWrapped(
	w http.ResponseWriter, _ *http.Request,
) {
	b := s.Latest()
	if b == nil {
		writeError(w, http.StatusNotFound, "no wrapped computed yet")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleGetStory serves the viewer's story payload. With no
// build yet it falls back to the preview deck.
func (s *Server) handleGetStory(
	w http.ResponseWriter, _ *http.Request,
) {
	b := s.Latest()
	if b == nil {
		writeJSON(w, http.StatusOK, story.Fallback(time.Now()))
		return
	}

	year := b.Result.Metrics.Year
	writeJSON(w, http.StatusOK, story.Config{
		StartDate: fmt.Sprintf("%04d-06-01", year),
		EndDate:   fmt.Sprintf("%04d-08-31", year),
		Slides:    b.Result.Slides,
		Theme:     story.DefaultTheme,
	})
}

// SetPort updates the listen port (for testing).
func (s *Server) SetPort(port int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Port = port
}

// Handler returns the http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(logMiddleware(s.mux))
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}
	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()
	log.Printf("Starting server at http://%s", addr)
	return srv.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	srv := s.httpSrv
	s.mu.RUnlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// FindAvailablePort finds an available port starting from the
// given port, binding to the specified host.
func FindAvailablePort(host string, start int) int {
	for port := start; port < start+100; port++ {
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			ln.Close()
			return port
		}
	}
	return start
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set(
				"Access-Control-Allow-Methods", "GET, POST, OPTIONS",
			)
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			log.Printf("%s %s", r.Method, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}
