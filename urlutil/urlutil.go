// Package urlutil canonicalizes URLs for duplicate comparison.
// The canonical form is never stored or displayed; articles keep the
// URL exactly as the user submitted it.
package urlutil

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters stripped during normalization.
// Everything else is preserved, in its original relative order.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"ref":          true,
	"source":       true,
	"mc_cid":       true,
	"mc_eid":       true,
}

// Normalize rewrites a URL into its canonical comparison form:
// lowercase scheme and host, no userinfo, no fragment, at most one
// trailing slash removed from the path, and tracking parameters
// stripped from the query. Input that does not parse as an absolute
// URL is returned unchanged.
//
// The pass order is fixed: strip one trailing slash, drop the
// fragment, then filter tracking params.
func Normalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}

	path := strings.TrimSuffix(u.EscapedPath(), "/")

	var b strings.Builder
	b.WriteString(strings.ToLower(u.Scheme))
	b.WriteString("://")
	b.WriteString(strings.ToLower(u.Host))
	b.WriteString(path)
	if q := stripTracking(u.RawQuery); q != "" {
		b.WriteString("?")
		b.WriteString(q)
	}
	return b.String()
}

// Match reports whether two URLs point at the same content, ignoring
// tracking parameters and cosmetic differences.
func Match(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// stripTracking removes tracking parameters from a raw query string
// without reordering the survivors. url.Values cannot be used here
// because encoding it sorts keys.
func stripTracking(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	pairs := strings.Split(rawQuery, "&")
	kept := pairs[:0]
	for _, pair := range pairs {
		if pair == "" {
			continue
		}
		key := pair
		if i := strings.Index(pair, "="); i >= 0 {
			key = pair[:i]
		}
		if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		if trackingParams[key] {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}
