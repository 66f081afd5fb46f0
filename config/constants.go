package config

import "time"

// Summarization Constants
const (
	// DefaultSummaryPrompt is the application-wide prompt used until an
	// owner saves their own
	DefaultSummaryPrompt = "You are a helpful assistant that summarizes articles. " +
		"Create a clear, concise summary that captures the key points and main arguments. " +
		"Use bullet points for the main takeaways. Keep the summary under 300 words."

	// FallbackSummary is returned when the model produces no usable content
	FallbackSummary = "Failed to generate summary."

	// DefaultSummaryModel is the Cohere chat model used when none is configured
	DefaultSummaryModel = "command-r-08-2024"

	// DefaultSummaryMaxTokens bounds the length of a generated summary
	DefaultSummaryMaxTokens = 1000

	// SummarizeTimeout caps a single summarization round trip
	SummarizeTimeout = 60 * time.Second
)

// Extraction Constants
const (
	// UserAgent identifies the service to fetched sites
	UserAgent = "Mozilla/5.0 (compatible; KnowledgeBase/1.0)"

	// ExtractTimeout caps the page fetch plus readability parse
	ExtractTimeout = 30 * time.Second

	// UntitledTitle is used when readability yields no title
	UntitledTitle = "Untitled"
)

// Feed Import Constants
const (
	// DefaultFeedCount is the number of candidate links returned when the
	// caller does not ask for a specific count
	DefaultFeedCount = 10

	// MaxFeedCount caps a single feed preview request
	MaxFeedCount = 50
)
