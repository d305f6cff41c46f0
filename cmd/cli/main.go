package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pep299/headline-search/internal/config"
	"github.com/pep299/headline-search/internal/model"
	"github.com/pep299/headline-search/internal/news"
	"github.com/pep299/headline-search/internal/newsapi"
)

func main() {
	var (
		searchKey = flag.String("q", "", "Keywords to search for")
		country   = flag.String("country", "", "2-letter country code")
		category  = flag.String("category", "", "Headline category")
		asJSON    = flag.Bool("json", false, "Print the results as JSON")
	)
	flag.Parse()

	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Only flags that were given are forwarded, like query parameters on /search
	var params model.SearchParams
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "q":
			params.SearchKey = searchKey
		case "country":
			params.Country = country
		case "category":
			params.Category = category
		}
	})

	client := newsapi.NewClient(cfg.APIKey, cfg.NewsAPIBaseURL, cfg.UpstreamTimeout)
	result, err := news.NewService(client, nil).Search(context.Background(), params)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("Encoding results failed: %v", err)
		}
		return
	}

	if !result.HasArticles {
		fmt.Println("No articles found.")
		return
	}

	for _, a := range result.NewsArticles {
		fmt.Printf("%s\n  %s\n  %s\n\n", a.Title, a.PublishTime, a.ArticleLink)
	}
}
