package brand

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"
	"github.com/visibi/brand-monitor/internal/models"
)

// UnknownBrand is returned when no name can be derived from a URL.
const UnknownBrand = "Unknown"

// DefaultFetchTimeout bounds the page fetch made by Identify.
const DefaultFetchTimeout = 5 * time.Second

// titleSeparators are checked in this order; the first one present wins,
// regardless of where it appears in the title.
var titleSeparators = []string{"|", "-", "–", ":"}

// PageInfo holds the metadata Identify reads from a brand's homepage
type PageInfo struct {
	Title       string
	Description string
}

// PageFetcher retrieves page metadata for a URL
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (PageInfo, error)
}

// Identifier derives a BrandIdentity, preferring the page title over the URL
type Identifier struct {
	fetcher PageFetcher
	timeout time.Duration
}

// NewIdentifier creates an identifier. A nil fetcher limits it to URL derivation.
func NewIdentifier(fetcher PageFetcher, timeout time.Duration) *Identifier {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Identifier{fetcher: fetcher, timeout: timeout}
}

// Identify never fails: fetch errors and timeouts fall back to DeriveNameFromURL.
func (i *Identifier) Identify(ctx context.Context, url string) models.BrandIdentity {
	identity := models.BrandIdentity{SourceURL: url}

	if i.fetcher == nil {
		identity.Name = DeriveNameFromURL(url)
		return identity
	}

	fetchCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	page, err := i.fetcher.Fetch(fetchCtx, url)
	if err != nil {
		logrus.WithError(err).Warnf("Failed to fetch brand page %s, deriving name from URL", url)
		identity.Name = DeriveNameFromURL(url)
		return identity
	}

	identity.Description = strings.TrimSpace(page.Description)
	identity.Name = cleanTitle(page.Title)
	if identity.Name == "" {
		identity.Name = DeriveNameFromURL(url)
	}

	return identity
}

func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	for _, separator := range titleSeparators {
		if idx := strings.Index(title, separator); idx >= 0 {
			return strings.TrimSpace(title[:idx])
		}
	}
	return title
}

// DeriveNameFromURL turns "https://www.company.co.uk/about" into "Company".
func DeriveNameFromURL(url string) string {
	domain := strings.TrimSpace(url)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "www.")
	domain = strings.TrimRight(domain, "/")

	if idx := strings.Index(domain, "/"); idx >= 0 {
		domain = domain[:idx]
	}
	if idx := strings.Index(domain, "."); idx >= 0 {
		domain = domain[:idx]
	}

	if domain == "" {
		return UnknownBrand
	}
	return titleCase(domain)
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "not-a-url" becomes "Not-A-Url".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
