package dedup

import (
	"testing"

	"knowledgebase/types"
)

func TestFindDuplicate(t *testing.T) {
	existing := []types.Article{
		{ID: "a", SourceURL: "https://example.com/article"},
		{ID: "b", SourceURL: "https://other.com/post/"},
		{ID: "c", SourceURL: "https://example.com/article"}, // same target as "a"
	}

	tests := []struct {
		name      string
		candidate string
		wantID    string
	}{
		{"exact match", "https://example.com/article", "a"},
		{"tracking params ignored", "https://example.com/article?utm_source=twitter", "a"},
		{"trailing slash ignored", "https://other.com/post", "b"},
		{"case insensitive host", "HTTPS://EXAMPLE.COM/article", "a"},
		{"first match wins", "https://example.com/article/", "a"},
		{"no match", "https://example.com/unrelated", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindDuplicate(tt.candidate, existing)
			if tt.wantID == "" {
				if got != nil {
					t.Errorf("FindDuplicate(%q) = %s, want none", tt.candidate, got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindDuplicate(%q) = none, want %s", tt.candidate, tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindDuplicate(%q) = %s, want %s", tt.candidate, got.ID, tt.wantID)
			}
		})
	}
}

func TestFindDuplicateEmptySet(t *testing.T) {
	if got := FindDuplicate("https://example.com/article", nil); got != nil {
		t.Errorf("expected no duplicate against empty set, got %s", got.ID)
	}
}
