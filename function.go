// Package headlinesearch exposes the search front-end as Cloud Functions.
package headlinesearch

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/pep299/headline-search/internal/config"
	"github.com/pep299/headline-search/internal/handlers"
)

func init() {
	functions.HTTP("SearchNews", SearchNews)
	functions.CloudEvent("PurgeCache", PurgeCache)
}

var (
	initOnce sync.Once
	server   *handlers.Server
	handler  http.Handler
	initErr  error
)

// setup builds the server once per function instance
func setup() (*handlers.Server, http.Handler, error) {
	initOnce.Do(func() {
		cfg, err := config.Load(nil)
		if err != nil {
			initErr = fmt.Errorf("loading config: %w", err)
			return
		}

		server, err = handlers.NewServer(context.Background(), cfg, "function")
		if err != nil {
			initErr = fmt.Errorf("creating server: %w", err)
			return
		}
		handler = server.SetupRoutes()
	})
	return server, handler, initErr
}

// SearchNews serves the home page, search page and API routes
func SearchNews(w http.ResponseWriter, r *http.Request) {
	_, h, err := setup()
	if err != nil {
		log.Printf("❌ Failed to initialize: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.ServeHTTP(w, r)
}

// PurgeCache removes expired cache entries; triggered by Cloud Scheduler
func PurgeCache(ctx context.Context, e event.Event) error {
	s, _, err := setup()
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	log.Printf("🕐 Cache purge triggered by event %s from %s", e.ID(), e.Source())
	return s.PurgeExpiredCache(ctx)
}
