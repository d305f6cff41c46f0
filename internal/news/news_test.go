package news

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pep299/headline-search/internal/cache"
	"github.com/pep299/headline-search/internal/model"
	"github.com/pep299/headline-search/internal/newsapi"
)

func okResponse(n int) *newsapi.Response {
	resp := &newsapi.Response{Status: "ok", TotalResults: n}
	for i := 0; i < n; i++ {
		resp.Articles = append(resp.Articles, newsapi.Article{
			Title:       "T",
			Description: "D",
			URL:         "U",
			URLToImage:  "I",
			PublishedAt: "P",
		})
	}
	return resp
}

type stubFetcher struct {
	resp    *newsapi.Response
	err     error
	calls   int32
	release chan struct{}
}

func (f *stubFetcher) TopHeadlines(ctx context.Context, params model.SearchParams) (*newsapi.Response, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.release != nil {
		<-f.release
	}
	return f.resp, f.err
}

func TestTransformFieldMapping(t *testing.T) {
	upstream := []newsapi.Article{{
		Title:       "Title",
		Description: "Description",
		URL:         "https://example.com/a",
		URLToImage:  "https://example.com/a.png",
		PublishedAt: "2024-01-01T00:00:00Z",
		Author:      "ignored",
	}}

	display := Transform(upstream)
	if len(display) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(display))
	}

	got := display[0]
	want := model.DisplayArticle{
		Title:       "Title",
		URLToImage:  "https://example.com/a.png",
		Summary:     "Description",
		PublishTime: "2024-01-01T00:00:00Z",
		ArticleLink: "https://example.com/a",
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestTransformPreservesOrder(t *testing.T) {
	upstream := []newsapi.Article{{Title: "first"}, {Title: "second"}, {Title: "third"}}

	display := Transform(upstream)
	for i, a := range upstream {
		if display[i].Title != a.Title {
			t.Errorf("Expected position %d to be '%s', got '%s'", i, a.Title, display[i].Title)
		}
	}
}

func TestTransformEmpty(t *testing.T) {
	display := Transform(nil)
	if display == nil {
		t.Error("Expected non-nil empty slice")
	}
	if len(display) != 0 {
		t.Errorf("Expected 0 articles, got %d", len(display))
	}
}

func TestToResult(t *testing.T) {
	tests := []struct {
		name        string
		resp        *newsapi.Response
		hasArticles bool
		count       int
	}{
		{"ok with articles", okResponse(3), true, 3},
		{"ok without articles", &newsapi.Response{Status: "ok"}, false, 0},
		{"error status with articles", &newsapi.Response{Status: "error", Articles: okResponse(2).Articles}, false, 0},
		{"error status", &newsapi.Response{Status: "error", Code: "apiKeyInvalid"}, false, 0},
		{"nil response", nil, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ToResult(tt.resp)
			if result.HasArticles != tt.hasArticles {
				t.Errorf("Expected HasArticles %v, got %v", tt.hasArticles, result.HasArticles)
			}
			if len(result.NewsArticles) != tt.count {
				t.Errorf("Expected %d articles, got %d", tt.count, len(result.NewsArticles))
			}
			if result.NewsArticles == nil {
				t.Error("Expected non-nil NewsArticles")
			}
		})
	}
}

func TestServiceWithoutCacheFetchesEveryTime(t *testing.T) {
	fetcher := &stubFetcher{resp: okResponse(1)}
	service := NewService(fetcher, nil)
	params := model.SearchParams{SearchKey: model.StringPtr("go")}

	for i := 0; i < 3; i++ {
		result, err := service.Search(context.Background(), params)
		if err != nil {
			t.Fatalf("Search failed: %v", err)
		}
		if !result.HasArticles {
			t.Error("Expected articles")
		}
	}

	if calls := atomic.LoadInt32(&fetcher.calls); calls != 3 {
		t.Errorf("Expected 3 upstream calls, got %d", calls)
	}
}

func TestServicePropagatesFetchError(t *testing.T) {
	fetcher := &stubFetcher{err: newsapi.ErrDecode}
	service := NewService(fetcher, nil)

	_, err := service.Search(context.Background(), model.SearchParams{})
	if !errors.Is(err, newsapi.ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func newCachedService(t *testing.T, fetcher Fetcher) *Service {
	t.Helper()
	manager := cache.NewManagerWithCache(cache.NewMemoryCache(time.Hour, 10))
	t.Cleanup(func() { manager.Close() })
	return NewService(fetcher, manager)
}

func TestServiceServesRepeatSearchFromCache(t *testing.T) {
	fetcher := &stubFetcher{resp: okResponse(2)}
	service := newCachedService(t, fetcher)
	params := model.SearchParams{SearchKey: model.StringPtr("go"), Country: model.StringPtr("us")}

	first, err := service.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := service.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if calls := atomic.LoadInt32(&fetcher.calls); calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", calls)
	}
	if !second.HasArticles || len(second.NewsArticles) != len(first.NewsArticles) {
		t.Errorf("Expected cached result to match, got %+v", second)
	}
}

func TestServiceDoesNotCacheEmptyResults(t *testing.T) {
	fetcher := &stubFetcher{resp: &newsapi.Response{Status: "ok"}}
	service := newCachedService(t, fetcher)
	params := model.SearchParams{SearchKey: model.StringPtr("nothing")}

	service.Search(context.Background(), params)
	service.Search(context.Background(), params)

	if calls := atomic.LoadInt32(&fetcher.calls); calls != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", calls)
	}
}

func TestServiceDeduplicatesConcurrentSearches(t *testing.T) {
	fetcher := &stubFetcher{resp: okResponse(1), release: make(chan struct{})}
	service := newCachedService(t, fetcher)
	params := model.SearchParams{SearchKey: model.StringPtr("go")}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]model.SearchResult, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = service.Search(context.Background(), params)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(fetcher.release)
	wg.Wait()

	if calls := atomic.LoadInt32(&fetcher.calls); calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", calls)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Errorf("Caller %d failed: %v", i, errs[i])
		}
		if !results[i].HasArticles {
			t.Errorf("Expected caller %d to receive articles", i)
		}
	}
}
