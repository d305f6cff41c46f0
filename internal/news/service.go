package news

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/pep299/headline-search/internal/cache"
	"github.com/pep299/headline-search/internal/model"
	"github.com/pep299/headline-search/internal/newsapi"
)

// Fetcher retrieves top headlines from the upstream API
type Fetcher interface {
	TopHeadlines(ctx context.Context, params model.SearchParams) (*newsapi.Response, error)
}

// Service runs the fetch, transform and optional cache steps of a search
type Service struct {
	fetcher Fetcher
	cache   *cache.Manager
	group   singleflight.Group
}

// NewService creates a search service. A nil cacheManager disables caching and
// in-flight de-duplication.
func NewService(fetcher Fetcher, cacheManager *cache.Manager) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cacheManager,
	}
}

// Search returns the articles for params. Transport and decode failures are
// returned as errors; a non-ok upstream status is an empty result.
func (s *Service) Search(ctx context.Context, params model.SearchParams) (model.SearchResult, error) {
	if s.cache == nil {
		return s.fetch(ctx, params)
	}

	key := cache.GenerateKey(params)

	articles, err := s.cache.GetArticles(ctx, params)
	if err == nil {
		log.Printf("Cache hit for %s", key)
		return model.SearchResult{HasArticles: len(articles) > 0, NewsArticles: articles}, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("Cache lookup failed for %s: %v", key, err)
	}

	// The shared call must outlive any single caller's request.
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		result, err := s.fetch(context.WithoutCancel(ctx), params)
		if err != nil {
			return nil, err
		}
		if result.HasArticles {
			if err := s.cache.SetArticles(context.WithoutCancel(ctx), params, result.NewsArticles); err != nil {
				log.Printf("Error caching results for %s: %v", key, err)
			}
		}
		return result, nil
	})
	if err != nil {
		return model.SearchResult{}, err
	}
	if shared {
		log.Printf("Shared in-flight search for %s", key)
	}

	return v.(model.SearchResult), nil
}

func (s *Service) fetch(ctx context.Context, params model.SearchParams) (model.SearchResult, error) {
	resp, err := s.fetcher.TopHeadlines(ctx, params)
	if err != nil {
		return model.SearchResult{}, err
	}

	if resp.Status != newsapi.StatusOK {
		log.Printf("Upstream returned status %q: %s %s", resp.Status, resp.Code, resp.Message)
	}

	return ToResult(resp), nil
}
