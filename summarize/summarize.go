// Package summarize condenses extracted article text through the
// Cohere chat API.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"knowledgebase/config"
)

// Completer abstracts a single-shot "system prompt + user text ->
// completion" call so the summarizer can be exercised without the
// hosted API.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Summarizer produces article summaries with a caller-supplied prompt.
// Policy: an empty completion is a soft failure and yields a fixed
// fallback string; a transport or API error is fatal and propagates.
type Summarizer struct {
	completer Completer
}

// New wraps a completer in the summarization policy.
func New(c Completer) *Summarizer {
	return &Summarizer{completer: c}
}

// Summarize runs one request/response round trip. No retry, no
// streaming, no chunking.
func (s *Summarizer) Summarize(ctx context.Context, text, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SummarizeTimeout)
	defer cancel()

	out, err := s.completer.Complete(ctx, prompt, text)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if strings.TrimSpace(out) == "" {
		return config.FallbackSummary, nil
	}
	return out, nil
}
