// Package client is a thin typed HTTP client for the knowledge base
// API, used by the demo TUI.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"knowledgebase/types"
)

// Client talks to a running knowledge base server as a single owner.
type Client struct {
	baseURL    string
	ownerID    string
	httpClient *http.Client
}

// NewClient creates an API client. The owner id is sent as X-Owner-ID
// on every request.
func NewClient(baseURL, ownerID string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		baseURL:    baseURL,
		ownerID:    ownerID,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// Duplicate is the 409 payload: the article already saved for this URL.
type Duplicate struct {
	Existing *types.Article `json:"existing"`
}

// apiError is the generic error body returned by the server.
type apiError struct {
	Error string `json:"error"`
}

// ListArticles fetches the owner's articles, optionally filtered.
func (c *Client) ListArticles(searchQuery string) ([]types.Article, error) {
	endpoint := c.baseURL + "/api/articles"
	if searchQuery != "" {
		endpoint += "?search=" + url.QueryEscape(searchQuery)
	}

	var articles []types.Article
	if err := c.do(http.MethodGet, endpoint, nil, &articles, nil); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle fetches one article by id.
func (c *Client) GetArticle(id string) (*types.Article, error) {
	var a types.Article
	if err := c.do(http.MethodGet, c.baseURL+"/api/articles/"+id, nil, &a, nil); err != nil {
		return nil, err
	}
	return &a, nil
}

// Ingest runs the extract+summarize preview. When the URL is already
// saved the duplicate is returned instead of a draft.
func (c *Client) Ingest(rawURL string, force bool) (*types.Draft, *Duplicate, error) {
	body := map[string]any{"url": rawURL, "force": force}

	var draft types.Draft
	var dup Duplicate
	err := c.do(http.MethodPost, c.baseURL+"/api/ingest", body, &draft, &dup)
	if err != nil {
		return nil, nil, err
	}
	if dup.Existing != nil {
		return nil, &dup, nil
	}
	return &draft, nil, nil
}

// CreateArticle confirms a draft for storage.
func (c *Client) CreateArticle(draft types.Draft, force bool) (*types.Article, error) {
	body := map[string]any{
		"title":            draft.Title,
		"publication_name": draft.PublicationName,
		"source_url":       draft.SourceURL,
		"full_text":        draft.FullText,
		"summary":          draft.Summary,
		"force":            force,
	}

	var a types.Article
	if err := c.do(http.MethodPost, c.baseURL+"/api/articles", body, &a, nil); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteArticle removes an article.
func (c *Client) DeleteArticle(id string) error {
	return c.do(http.MethodDelete, c.baseURL+"/api/articles/"+id, nil, nil, nil)
}

// do issues one request. A 409 is decoded into conflict when the caller
// provided one; other non-2xx statuses become errors with the server's
// message.
func (c *Client) do(method, endpoint string, body any, out any, conflict *Duplicate) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("X-Owner-ID", c.ownerID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusConflict && conflict != nil {
		return json.Unmarshal(data, conflict)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
