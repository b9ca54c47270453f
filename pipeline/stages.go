package pipeline

import "context"

// Searcher finds candidate URLs for a query.
type Searcher interface {
	// Search returns up to maxResults result URLs, best first.
	Search(ctx context.Context, query string, maxResults int) ([]string, error)
}

// Scraper fetches the readable text of a single page.
type Scraper interface {
	// Scrape returns the page's extracted text. Pages with no usable
	// content return an error.
	Scrape(ctx context.Context, url string) (string, error)
}
