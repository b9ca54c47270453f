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
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"
	searchUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) ripplica/1.0"
)

// DuckDuckGo searches the DuckDuckGo HTML endpoint, which needs no API
// key and returns parseable result markup.
type DuckDuckGo struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

// DuckDuckGoOption configures a DuckDuckGo searcher.
type DuckDuckGoOption func(*DuckDuckGo)

// WithHTTPClient sets the HTTP client used for search requests.
func WithHTTPClient(client *http.Client) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if client != nil {
			d.client = client
		}
	}
}

// WithEndpoint overrides the search endpoint. Tests point this at a
// local server.
func WithEndpoint(endpoint string) DuckDuckGoOption {
	return func(d *DuckDuckGo) {
		if endpoint != "" {
			d.endpoint = endpoint
		}
	}
}

// NewDuckDuckGo creates a searcher against the public HTML endpoint.
func NewDuckDuckGo(opts ...DuckDuckGoOption) *DuckDuckGo {
	d := &DuckDuckGo{
		client:   &http.Client{Timeout: 20 * time.Second},
		endpoint: duckDuckGoEndpoint,
		logger:   slog.Default().With("component", "duckduckgo"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search returns up to maxResults organic result URLs, best first.
// Ad links and non-HTTP schemes are dropped; duplicates collapse to
// their first occurrence.
func (d *DuckDuckGo) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, err
	}

	urls := resultLinks(doc, maxResults)
	d.logger.Debug("search complete", "query", query, "results", len(urls))
	return urls, nil
}

// resultLinks collects result anchor targets from parsed DuckDuckGo
// markup, resolving the redirect wrapper when present.
func resultLinks(doc *html.Node, limit int) []string {
	seen := make(map[string]bool)
	var urls []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if limit > 0 && len(urls) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" && hasClass(n, "result__a") {
			if target := resolveResultURL(attr(n, "href")); target != "" && !seen[target] {
				seen[target] = true
				urls = append(urls, target)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return urls
}

// resolveResultURL unwraps DuckDuckGo's /l/?uddg= redirect and filters
// out ads and non-HTTP targets.
func resolveResultURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if strings.HasSuffix(u.Host, "duckduckgo.com") {
		if strings.HasPrefix(u.Path, "/y.js") {
			return "" // ad redirect
		}
		if wrapped := u.Query().Get("uddg"); wrapped != "" {
			href = wrapped
			u, err = url.Parse(wrapped)
			if err != nil {
				return ""
			}
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return href
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
