package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pep299/headline-search/internal/model"
)

// DefaultBaseURL is the NewsAPI top-headlines endpoint.
const DefaultBaseURL = "https://newsapi.org/v2/top-headlines"

// StatusOK is the status value NewsAPI returns on success.
const StatusOK = "ok"

// ErrDecode is returned when the upstream body is not valid JSON.
var ErrDecode = errors.New("decoding upstream response")

// Source identifies the publisher of an article
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a single record from the articles array
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Response is the top-headlines payload. Code and Message are only set when
// Status is "error".
type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// HasArticles reports whether the response is ok and carries at least one article.
func (r *Response) HasArticles() bool {
	return r.Status == StatusOK && len(r.Articles) > 0
}

// Client handles NewsAPI operations
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new NewsAPI client. A zero timeout means no timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "headline-search/1.0",
	}
}

// BuildURL appends the API key and every present search parameter to the base URL.
func (c *Client) BuildURL(params model.SearchParams) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}

	query := u.Query()
	query.Set("apiKey", c.apiKey)
	setIfPresent(query, "q", params.SearchKey)
	setIfPresent(query, "country", params.Country)
	setIfPresent(query, "category", params.Category)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

func setIfPresent(query url.Values, key string, value *string) {
	if value != nil {
		query.Set(key, *value)
	}
}

// TopHeadlines issues a single GET for the given parameters and decodes the body.
// The HTTP status is not checked: NewsAPI reports errors in the JSON body.
func (c *Client) TopHeadlines(ctx context.Context, params model.SearchParams) (*Response, error) {
	endpoint, err := c.BuildURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the full URL, including the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("fetching top headlines: %w", err)
	}
	defer resp.Body.Close()

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w (status %d): %v", ErrDecode, resp.StatusCode, err)
	}

	return &payload, nil
}
