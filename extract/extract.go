// Package extract fetches a web page and reduces it to readable
// article text via go-readability.
package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"knowledgebase/config"
	"knowledgebase/types"
)

// ErrInvalidURL means the input was not a fetchable absolute URL.
// No network activity happens when this is returned.
var ErrInvalidURL = errors.New("invalid URL")

// ErrNotExtractable means the page was fetched but readability found no
// usable text content (paywalled or script-only pages). This is a
// terminal condition, not retried.
var ErrNotExtractable = errors.New("could not extract article content; the page may require login or have no readable content")

// FetchError reports a non-success response from the source site.
type FetchError struct {
	Status int
	Reason string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch URL: %d %s", e.Status, e.Reason)
}

// Extractor fetches pages with a fixed client signature and a bounded
// timeout, then hands the markup to readability.
type Extractor struct {
	client    *http.Client
	userAgent string
}

// New returns an extractor using the default timeout and user agent.
func New() *Extractor {
	return &Extractor{
		client:    &http.Client{Timeout: config.ExtractTimeout},
		userAgent: config.UserAgent,
	}
}

// Extract validates and fetches rawURL, then parses the page into an
// ExtractedArticle. The title falls back to "Untitled" and the
// publication name to the hostname minus a leading "www." when the
// page offers no og:site_name metadata.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*types.ExtractedArticle, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Host == "" || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode, Reason: http.StatusText(resp.StatusCode)}
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return nil, ErrNotExtractable
	}

	fullText := strings.TrimSpace(article.TextContent)
	if fullText == "" {
		return nil, ErrNotExtractable
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = config.UntitledTitle
	}

	publication := strings.TrimSpace(article.SiteName)
	if publication == "" {
		publication = strings.TrimPrefix(pageURL.Hostname(), "www.")
	}

	return &types.ExtractedArticle{
		Title:           title,
		PublicationName: publication,
		FullText:        fullText,
		SourceURL:       rawURL,
	}, nil
}
