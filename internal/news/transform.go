package news

import (
	"github.com/pep299/headline-search/internal/model"
	"github.com/pep299/headline-search/internal/newsapi"
)

// Transform maps upstream articles into the display schema, preserving order.
func Transform(articles []newsapi.Article) []model.DisplayArticle {
	display := make([]model.DisplayArticle, 0, len(articles))
	for _, a := range articles {
		display = append(display, model.DisplayArticle{
			Title:       a.Title,
			URLToImage:  a.URLToImage,
			Summary:     a.Description,
			PublishTime: a.PublishedAt,
			ArticleLink: a.URL,
		})
	}
	return display
}

// ToResult builds the search view context from an upstream response.
func ToResult(resp *newsapi.Response) model.SearchResult {
	if resp == nil || !resp.HasArticles() {
		return model.EmptyResult()
	}
	return model.SearchResult{
		HasArticles:  true,
		NewsArticles: Transform(resp.Articles),
	}
}
