package model

// DisplayArticle is the reduced article shape handed to the search view.
type DisplayArticle struct {
	Title       string `json:"title"`
	URLToImage  string `json:"urlToImage"`
	Summary     string `json:"summary"`
	PublishTime string `json:"publishTime"`
	ArticleLink string `json:"articleLink"`
}

// SearchResult is the render context of the search view.
type SearchResult struct {
	HasArticles  bool             `json:"hasArticles"`
	NewsArticles []DisplayArticle `json:"newsArticles"`
}

// EmptyResult returns a result with no articles.
func EmptyResult() SearchResult {
	return SearchResult{NewsArticles: []DisplayArticle{}}
}
