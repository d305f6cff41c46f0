package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/pep299/headline-search/internal/cache"
	"github.com/pep299/headline-search/internal/model"
	"github.com/pep299/headline-search/internal/view"
)

// internalErrorBody is sent for any failure on the page routes
const internalErrorBody = "<h1>An internal server error occurred.</h1>"

// homeHandler renders the search form
func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.renderer.Render(w, http.StatusOK, view.Index, s.catalog); err != nil {
		log.Printf("Error rendering index: %v", err)
		writeInternalError(w)
	}
}

// searchHandler forwards the search to NewsAPI and renders the results
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	params := model.ParamsFromQuery(r.URL.Query())
	log.Printf("Received params: %s", params)

	result, err := s.newsService.Search(r.Context(), params)
	if err != nil {
		log.Printf("Error searching headlines for %s: %v", params, err)
		writeInternalError(w)
		return
	}

	if err := s.renderer.Render(w, http.StatusOK, view.Search, result); err != nil {
		log.Printf("Error rendering search: %v", err)
		writeInternalError(w)
	}
}

func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(internalErrorBody))
}

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   s.version,
	}

	writeJSON(w, http.StatusOK, response)
}

type cacheStatsResponse struct {
	Enabled bool `json:"enabled"`
	*cache.Stats
}

// cacheStatsHandler returns cache statistics
func (s *Server) cacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	if s.cacheManager == nil {
		writeJSON(w, http.StatusOK, cacheStatsResponse{Enabled: false})
		return
	}

	stats, err := s.cacheManager.GetStats(r.Context())
	if err != nil {
		log.Printf("Error getting cache stats: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  "Error getting cache stats",
		})
		return
	}

	writeJSON(w, http.StatusOK, cacheStatsResponse{Enabled: true, Stats: stats})
}

// cacheClearHandler clears the cache
func (s *Server) cacheClearHandler(w http.ResponseWriter, r *http.Request) {
	if s.cacheManager != nil {
		if err := s.cacheManager.Clear(r.Context()); err != nil {
			log.Printf("Error clearing cache: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "error",
				"error":  "Error clearing cache",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Cache cleared successfully",
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
