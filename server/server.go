package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsdesk/pkg/breaking"
	"github.com/umputun/newsdesk/pkg/cache"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/feed"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator
//go:generate moq -out mocks/stories.go -pkg mocks -skip-ensure -fmt goimports . StoryTracker
//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . CacheInspector
//go:generate moq -out mocks/endpoints.go -pkg mocks -skip-ensure -fmt goimports . EndpointReporter
//go:generate moq -out mocks/feeds.go -pkg mocks -skip-ensure -fmt goimports . FeedStatusLister

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	services  Services
	generator *feed.Generator
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Services are the backends the API exposes
type Services struct {
	Aggregator Aggregator
	Stories    StoryTracker
	Cache      CacheInspector
	Endpoints  EndpointReporter
	FeedStatus FeedStatusLister
}

// Aggregator serves ranked sections and the front page
type Aggregator interface {
	Sections() []string
	Section(ctx context.Context, name string) ([]domain.Article, error)
	FrontPage(ctx context.Context, limit int) ([]domain.Article, error)
}

// StoryTracker lists currently tracked breaking stories
type StoryTracker interface {
	Stories(minSources int) []breaking.Story
}

// CacheInspector reports section cache state
type CacheInspector interface {
	Stats() cache.Stats
}

// EndpointReporter reports fetch endpoint rotation state
type EndpointReporter interface {
	Stats() []feed.EndpointStats
}

// FeedStatusLister reads the feed health log
type FeedStatusLister interface {
	List(ctx context.Context, section string) ([]domain.FeedStatus, error)
	Failing(ctx context.Context, minErrors int) ([]domain.FeedStatus, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
}

// New initializes a new server instance
func New(cfg ConfigProvider, services Services, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		services:  services,
		generator: feed.NewGenerator(cfg.GetBaseURL()),
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsdesk", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /sections", s.sectionsHandler)
		r.HandleFunc("GET /sections/{section}", s.sectionHandler)
		r.HandleFunc("GET /frontpage", s.frontPageHandler)
		r.HandleFunc("GET /breaking", s.breakingHandler)
		r.HandleFunc("GET /cache", s.cacheHandler)
		r.HandleFunc("GET /endpoints", s.endpointsHandler)
		r.HandleFunc("GET /feeds", s.feedsHandler)
	})

	s.router.HandleFunc("GET /rss/{section}", s.rssHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
