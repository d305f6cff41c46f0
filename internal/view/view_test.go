package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pep299/headline-search/internal/catalog"
	"github.com/pep299/headline-search/internal/model"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	return r
}

func TestRenderIndex(t *testing.T) {
	r := newTestRenderer(t)
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	w := httptest.NewRecorder()
	if err := r.Render(w, http.StatusOK, Index, c); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Expected text/html, got %s", w.Header().Get("Content-Type"))
	}

	body := w.Body.String()
	for _, want := range []string{`action="/search"`, `name="searchKey"`, `<option value="us">United States</option>`, `<option value="technology">`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}

	if n := strings.Count(body, `<option value="">Any</option>`); n != 2 {
		t.Errorf("Expected an Any option on both selects, got %d", n)
	}
}

func TestRenderSearchWithArticles(t *testing.T) {
	r := newTestRenderer(t)
	result := model.SearchResult{
		HasArticles: true,
		NewsArticles: []model.DisplayArticle{
			{Title: "Headline <b>", URLToImage: "https://img.example/a.png", Summary: "Summary text", PublishTime: "2024-01-01", ArticleLink: "https://news.example/a"},
		},
	}

	w := httptest.NewRecorder()
	if err := r.Render(w, http.StatusOK, Search, result); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	body := w.Body.String()
	for _, want := range []string{"Headline &lt;b&gt;", "https://news.example/a", "https://img.example/a.png", "Summary text"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "No articles found.") {
		t.Error("Expected no empty-state message")
	}
}

func TestRenderSearchWithoutArticles(t *testing.T) {
	r := newTestRenderer(t)

	w := httptest.NewRecorder()
	if err := r.Render(w, http.StatusOK, Search, model.EmptyResult()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(w.Body.String(), "No articles found.") {
		t.Error("Expected empty-state message")
	}
}

func TestRenderUnknownView(t *testing.T) {
	r := newTestRenderer(t)

	w := httptest.NewRecorder()
	if err := r.Render(w, http.StatusOK, "missing", nil); err == nil {
		t.Error("Expected error for unknown view")
	}
	if w.Body.Len() != 0 {
		t.Error("Expected nothing written for unknown view")
	}
}
