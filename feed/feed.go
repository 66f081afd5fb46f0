// Package feed previews RSS/Atom feeds as ingestion candidates.
// Importing a candidate still goes through the normal pipeline; this
// only lists links and marks the ones already in the owner's library.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"knowledgebase/dedup"
	"knowledgebase/types"
)

// Candidate is one feed entry the owner could ingest.
type Candidate struct {
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	PublishedAt  time.Time `json:"published_at,omitempty"`
	AlreadySaved bool      `json:"already_saved"`
}

// FetchCandidates retrieves and parses a feed, returning up to maxCount
// entries. AlreadySaved is decided against the caller-supplied article
// set using normalized URL matching.
func FetchCandidates(ctx context.Context, feedURL string, maxCount int, existing []types.Article) ([]Candidate, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	candidates := make([]Candidate, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]
		if item.Link == "" {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		candidates = append(candidates, Candidate{
			Title:        item.Title,
			URL:          item.Link,
			PublishedAt:  publishedAt,
			AlreadySaved: dedup.FindDuplicate(item.Link, existing) != nil,
		})
	}

	return candidates, nil
}
