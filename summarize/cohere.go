package summarize

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// CohereCompleter implements Completer using the Cohere Chat API.
// Docs: https://docs.cohere.com/reference/chat
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereCompleter struct {
	client    *cohereclient.Client
	model     string
	maxTokens int
}

// NewCohereCompleter builds a Cohere-backed completer. The custom HTTP
// client forces HTTP/1.1 to avoid HTTP/2 protocol errors seen against
// the Cohere endpoint.
func NewCohereCompleter(apiKey, model string, maxTokens int) *CohereCompleter {
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereCompleter{client: client, model: model, maxTokens: maxTokens}
}

// Complete sends the prompt as the chat preamble and the article text
// as the message, and returns the raw completion text.
func (c *CohereCompleter) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:   userText,
		Preamble:  &systemPrompt,
		Model:     &c.model,
		MaxTokens: &c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}
