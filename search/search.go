// Package search implements the free-text article filter used by the
// listing screens and by the store's server-side search parameter.
package search

import (
	"strings"

	"knowledgebase/types"
)

// Filter returns the articles whose title, publication name, summary or
// full text contain the query as a case-insensitive literal substring.
// A query that is empty after trimming returns the input slice as-is.
// Relative order is preserved.
func Filter(articles []types.Article, query string) []types.Article {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return articles
	}

	q := strings.ToLower(trimmed)
	matched := make([]types.Article, 0, len(articles))
	for _, a := range articles {
		if matches(a, q) {
			matched = append(matched, a)
		}
	}
	return matched
}

// matches reports whether a single article contains the already
// lowercased query in any searchable field. An absent publication name
// simply never matches.
func matches(a types.Article, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(a.Title), loweredQuery) ||
		strings.Contains(strings.ToLower(a.PublicationName), loweredQuery) ||
		strings.Contains(strings.ToLower(a.Summary), loweredQuery) ||
		strings.Contains(strings.ToLower(a.FullText), loweredQuery)
}
