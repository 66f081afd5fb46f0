// Package dedup decides whether a candidate URL is already saved.
// Two URLs are the same article when they normalize to the same
// canonical form (see urlutil); no content similarity is involved.
package dedup

import (
	"knowledgebase/types"
	"knowledgebase/urlutil"
)

// FindDuplicate returns the first article in existing whose source URL
// normalizes to the same form as candidateURL, or nil when the
// candidate is new. The caller supplies the full owner-scoped article
// set; no index is kept here.
func FindDuplicate(candidateURL string, existing []types.Article) *types.Article {
	normalized := urlutil.Normalize(candidateURL)
	for i := range existing {
		if urlutil.Normalize(existing[i].SourceURL) == normalized {
			return &existing[i]
		}
	}
	return nil
}
