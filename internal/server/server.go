package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deusvagus/musicplayer/internal/browser"
	"github.com/deusvagus/musicplayer/internal/config"
	"github.com/deusvagus/musicplayer/internal/logging"
	"github.com/deusvagus/musicplayer/internal/prefs"
)

// LoadFunc builds a fresh browser from the configured source.
type LoadFunc func(ctx context.Context) (*browser.Browser, error)

// Server serves the browser API.
type Server struct {
	bind      string
	staticDir string
	logger    *slog.Logger
	prefs     *prefs.Store
	load      LoadFunc

	mu      sync.RWMutex
	current *browser.Browser

	reloadMu sync.Mutex

	engine   *gin.Engine
	listener net.Listener
	server   *http.Server
}

// New wires a server around an already loaded browser. store and load may be
// nil; the corresponding endpoints then report the feature as unavailable.
func New(cfg *config.Config, b *browser.Browser, store *prefs.Store, load LoadFunc, logger *slog.Logger) (*Server, error) {
	if b == nil {
		return nil, errors.New("server requires a loaded browser")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		logger:  logging.NewComponentLogger(logger, "api-server"),
		prefs:   store,
		load:    load,
		current: b,
	}
	if cfg != nil {
		s.bind = strings.TrimSpace(cfg.Server.Bind)
		s.staticDir = strings.TrimSpace(cfg.Server.StaticDir)
	}
	s.engine = s.routes()
	s.server = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Browser returns the catalog snapshot currently being served.
func (s *Server) Browser() *browser.Browser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Server) swap(b *browser.Browser) {
	s.mu.Lock()
	s.current = b
	s.mu.Unlock()
}

// Reload rebuilds the catalog and swaps it in. On failure the previous
// catalog stays in place.
func (s *Server) Reload(ctx context.Context) (*browser.Browser, error) {
	if s.load == nil {
		return nil, errors.New("reload not configured")
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	started := time.Now()
	next, err := s.load(ctx)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, s.logger), "catalog reload failed", "catalog_reload_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "previous catalog is still being served"),
		)
		return nil, err
	}
	s.swap(next)
	logging.WithContext(ctx, s.logger).Info("catalog reloaded",
		logging.Int("albums", len(next.Catalog().Albums)),
		logging.Int("tracks", next.Catalog().TrackCount()),
		logging.Duration("duration", time.Since(started)),
	)
	return next, nil
}

// Start listens on the configured bind address and serves until ctx ends.
func (s *Server) Start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("server bind address not configured")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.correlation())

	apiGroup := engine.Group("/api")
	apiGroup.GET("/health", s.handleHealth)
	apiGroup.GET("/catalog", s.handleCatalog)
	apiGroup.GET("/fields", s.handleFields)
	apiGroup.GET("/personnel", s.handlePersonnel)
	apiGroup.GET("/search", s.handleSearch)
	apiGroup.GET("/tracks/:album/:track", s.handleTrack)
	apiGroup.GET("/export", s.handleExport)
	apiGroup.GET("/suggest/:kind", s.handleSuggest)
	apiGroup.GET("/prefs", s.handlePrefsList)
	apiGroup.GET("/prefs/:key", s.handlePrefGet)
	apiGroup.PUT("/prefs/:key", s.handlePrefPut)
	apiGroup.POST("/reload", s.handleReload)

	if s.staticDir != "" {
		engine.Static("/static", s.staticDir)
		engine.StaticFile("/", filepath.Join(s.staticDir, "index.html"))
	}
	engine.NoRoute(func(c *gin.Context) {
		s.writeError(c, http.StatusNotFound, "not found")
	})
	return engine
}
