package pipeline

import (
	"context"
	"sync"
	"time"
)

// scrapeAll fetches page text for every URL concurrently over the worker
// pool with a per-page timeout. Failed pages are logged and skipped;
// surviving texts come back in URL order. Partial results are fine, the
// summarizer works with whatever survived.
func (o *Orchestrator) scrapeAll(ctx context.Context, urls []string) []string {
	results := make([]string, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		i, url := i, url
		err := o.pool.Submit(func() {
			defer wg.Done()

			pageCtx, cancel := context.WithTimeout(ctx, o.scrapeTimeout)
			defer cancel()

			text, err := o.scraper.Scrape(pageCtx, url)
			if err != nil {
				o.logger.Debug("skipping page", "url", url, "error", err)
				return
			}
			results[i] = text
		})
		if err != nil {
			// Pool released or overloaded; run the fetch inline.
			wg.Done()
			o.scrapeInline(ctx, url, i, results)
		}
	}
	wg.Wait()

	texts := make([]string, 0, len(urls))
	for _, text := range results {
		if text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

func (o *Orchestrator) scrapeInline(ctx context.Context, url string, i int, results []string) {
	pageCtx, cancel := context.WithTimeout(ctx, o.scrapeTimeout)
	defer cancel()

	text, err := o.scraper.Scrape(pageCtx, url)
	if err != nil {
		o.logger.Debug("skipping page", "url", url, "error", err)
		return
	}
	results[i] = text
}

// defaultScrapeTimeout bounds a single page fetch.
const defaultScrapeTimeout = 15 * time.Second
