// Copyright 2025 Ripplica Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	// maxBodyBytes caps how much of a page is read; anything useful for
	// summarization fits well within it.
	maxBodyBytes = 2 << 20 // 2 MiB

	// minContentChars gates pages whose extracted text is too thin to
	// contribute to an answer.
	minContentChars = 200
)

// PageScraper fetches a page and extracts its readable text.
type PageScraper struct {
	client     *http.Client
	minContent int
	logger     *slog.Logger
}

// PageScraperOption configures a PageScraper.
type PageScraperOption func(*PageScraper)

// WithScraperClient sets the HTTP client used for page fetches.
func WithScraperClient(client *http.Client) PageScraperOption {
	return func(p *PageScraper) {
		if client != nil {
			p.client = client
		}
	}
}

// WithMinContent sets the minimum extracted text length for a page to
// count as scraped.
func WithMinContent(chars int) PageScraperOption {
	return func(p *PageScraper) {
		if chars >= 0 {
			p.minContent = chars
		}
	}
}

// NewPageScraper creates a scraper with a 15 second default timeout.
func NewPageScraper(opts ...PageScraperOption) *PageScraper {
	p := &PageScraper{
		client:     &http.Client{Timeout: 15 * time.Second},
		minContent: minContentChars,
		logger:     slog.Default().With("component", "scraper"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Scrape fetches the URL and returns its readable text. Non-HTML
// responses and pages below the content gate return an error.
func (p *PageScraper) Scrape(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", searchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, pageURL)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContent, contentType)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	text := extractText(doc)
	if len(text) < p.minContent {
		return "", fmt.Errorf("%w: %d chars from %s", ErrContentTooShort, len(text), pageURL)
	}

	p.logger.Debug("scraped page", "url", pageURL, "chars", len(text))
	return text, nil
}
