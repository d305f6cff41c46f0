package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"

	"github.com/pep299/headline-search/internal/cache"
	"github.com/pep299/headline-search/internal/catalog"
	"github.com/pep299/headline-search/internal/config"
	"github.com/pep299/headline-search/internal/news"
	"github.com/pep299/headline-search/internal/newsapi"
	"github.com/pep299/headline-search/internal/view"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	config       *config.Config
	version      string
	newsService  *news.Service
	renderer     *view.Renderer
	catalog      *catalog.Catalog
	cacheManager *cache.Manager // nil when caching is disabled
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, cfg *config.Config, version string) (*Server, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	formCatalog, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	var cacheManager *cache.Manager
	if cfg.CacheEnabled {
		cacheManager, err = cache.NewManager(ctx, cache.Options{
			Type:       cfg.CacheType,
			TTL:        cfg.CacheTTL,
			MaxEntries: cfg.CacheMaxEntries,
			Bucket:     cfg.CacheBucket,
			Endpoint:   cfg.CacheStorageEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("creating cache manager: %w", err)
		}
	}

	client := newsapi.NewClient(cfg.APIKey, cfg.NewsAPIBaseURL, cfg.UpstreamTimeout)

	return &Server{
		config:       cfg,
		version:      version,
		newsService:  news.NewService(client, cacheManager),
		renderer:     renderer,
		catalog:      formCatalog,
		cacheManager: cacheManager,
	}, nil
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(gzipMiddleware)

	// Pages
	r.HandleFunc("/", s.homeHandler).Methods("GET")
	r.HandleFunc("/search", s.searchHandler).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.corsMiddleware)

	// OPTIONS lets preflight requests reach corsMiddleware
	api.HandleFunc("/health", s.healthHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/cache/stats", s.cacheStatsHandler).Methods("GET", "OPTIONS")
	api.HandleFunc("/cache/clear", s.cacheClearHandler).Methods("DELETE", "OPTIONS")

	// Static assets last, after every explicit route
	r.PathPrefix("/").Handler(staticHandler(s.config.StaticDir)).Methods("GET", "HEAD")

	return r
}

// CacheEnabled reports whether search results are cached
func (s *Server) CacheEnabled() bool {
	return s.cacheManager != nil
}

// PurgeExpiredCache removes expired cache entries
func (s *Server) PurgeExpiredCache(ctx context.Context) error {
	if s.cacheManager == nil {
		return nil
	}

	removed, err := s.cacheManager.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purging expired cache entries: %w", err)
	}

	if removed > 0 {
		log.Printf("Purged %d expired cache entries", removed)
	}
	return nil
}

// Close releases the cache backend
func (s *Server) Close() error {
	if s.cacheManager == nil {
		return nil
	}
	return s.cacheManager.Close()
}

// staticHandler serves files from dir without directory listings
func staticHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

func gzipMiddleware(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
