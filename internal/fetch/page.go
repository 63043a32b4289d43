// Package fetch retrieves brand homepages and extracts their metadata.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/visibi/brand-monitor/internal/brand"
)

// DefaultUserAgent mimics a desktop browser; many marketing sites block bots.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPPageFetcher implements brand.PageFetcher over HTTP
type HTTPPageFetcher struct {
	client *resty.Client
}

// Ensure HTTPPageFetcher implements brand.PageFetcher
var _ brand.PageFetcher = (*HTTPPageFetcher)(nil)

// NewHTTPPageFetcher creates a fetcher with the given request timeout
func NewHTTPPageFetcher(timeout time.Duration) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", DefaultUserAgent).
			SetHeader("Accept", "text/html,application/xhtml+xml"),
	}
}

// Fetch downloads url and returns its title and meta description
func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string) (brand.PageInfo, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return brand.PageInfo{}, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if resp.IsError() {
		return brand.PageInfo{}, fmt.Errorf("fetching %s returned status %d", url, resp.StatusCode())
	}

	return ParsePageInfo(resp.Body())
}

// ParsePageInfo extracts the first <title> and the meta description from HTML
func ParsePageInfo(html []byte) (brand.PageInfo, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return brand.PageInfo{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	info := brand.PageInfo{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		info.Description = strings.TrimSpace(content)
	}

	return info, nil
}
