package types

import "time"

// Article is a captured piece of content owned by a single user.
// SourceURL is stored exactly as submitted; normalization is only ever
// applied for duplicate comparison, never to the stored value.
type Article struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	PublicationName string    `json:"publication_name,omitempty"`
	SourceURL       string    `json:"source_url"`
	FullText        string    `json:"full_text"`
	Summary         string    `json:"summary"`
	DateAdded       time.Time `json:"date_added"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ExtractedArticle is the result of running readability over a fetched page.
type ExtractedArticle struct {
	Title           string `json:"title"`
	PublicationName string `json:"publication_name,omitempty"`
	FullText        string `json:"full_text"`
	SourceURL       string `json:"source_url"`
}

// Draft is an extracted and summarized article payload that has not yet
// been confirmed for storage.
type Draft struct {
	Title           string `json:"title"`
	PublicationName string `json:"publication_name,omitempty"`
	SourceURL       string `json:"source_url"`
	FullText        string `json:"full_text"`
	Summary         string `json:"summary"`
}

// Settings is the per-owner summarization configuration.
// DefaultPrompt is the owner's own "reset to default" target, distinct
// from the application-wide hardcoded default prompt.
type Settings struct {
	OwnerID       string    `json:"owner_id"`
	SummaryPrompt string    `json:"summary_prompt"`
	DefaultPrompt string    `json:"default_prompt"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Export is the downloadable projection of an owner's article list.
type Export struct {
	ExportedAt time.Time `json:"exported_at"`
	Articles   []Article `json:"articles"`
}
