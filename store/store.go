// Package store persists articles and settings in Redis, always scoped
// by owner. Concurrent writers are not coordinated; last write wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"knowledgebase/config"
	"knowledgebase/search"
	"knowledgebase/types"
)

// ErrNotFound is returned when an article or settings record does not
// exist for the given owner.
var ErrNotFound = errors.New("not found")

// Store wraps a Redis client with the owner-scoped key layout:
//
//	kb:{owner}:article:{id}      article record JSON
//	kb:{owner}:articles          ZSET of article ids scored by created_at
//	kb:{owner}:settings          current settings JSON
//	kb:{owner}:settings:default  owner's default prompt
type Store struct {
	client *redis.Client
}

// New wraps an existing Redis client.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewFromConfig connects to Redis using the loaded configuration.
func NewFromConfig(cfg config.Config) *Store {
	return New(redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	}))
}

// Ping verifies connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

func articleKey(owner, id string) string { return "kb:" + owner + ":article:" + id }
func indexKey(owner string) string       { return "kb:" + owner + ":articles" }

// ListArticles returns the owner's articles newest-first. A non-empty
// searchQuery filters the list with the free-text search rules.
func (s *Store) ListArticles(ctx context.Context, owner, searchQuery string) ([]types.Article, error) {
	ids, err := s.client.ZRevRange(ctx, indexKey(owner), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	if len(ids) == 0 {
		return []types.Article{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = articleKey(owner, id)
	}
	raw, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load articles: %w", err)
	}

	articles := make([]types.Article, 0, len(raw))
	for _, v := range raw {
		data, ok := v.(string)
		if !ok {
			// Index entry with no record; skip rather than fail the list.
			continue
		}
		var a types.Article
		if err := json.Unmarshal([]byte(data), &a); err != nil {
			continue
		}
		articles = append(articles, a)
	}

	return search.Filter(articles, searchQuery), nil
}

// GetArticle loads one article by id.
func (s *Store) GetArticle(ctx context.Context, owner, id string) (*types.Article, error) {
	data, err := s.client.Get(ctx, articleKey(owner, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load article: %w", err)
	}

	var a types.Article
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		return nil, fmt.Errorf("failed to decode article: %w", err)
	}
	return &a, nil
}

// CreateArticle stores a confirmed draft as a new article and returns
// the stored record with its assigned id and timestamps.
func (s *Store) CreateArticle(ctx context.Context, owner string, draft types.Draft) (*types.Article, error) {
	now := time.Now().UTC()
	a := types.Article{
		ID:              uuid.NewString(),
		OwnerID:         owner,
		Title:           draft.Title,
		PublicationName: draft.PublicationName,
		SourceURL:       draft.SourceURL,
		FullText:        draft.FullText,
		Summary:         draft.Summary,
		DateAdded:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.saveArticle(ctx, &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

// ArticlePatch is a partial article update. Nil fields are untouched.
type ArticlePatch struct {
	Title   *string
	Summary *string
}

// UpdateArticle applies a patch and bumps updated_at.
func (s *Store) UpdateArticle(ctx context.Context, owner, id string, patch ArticlePatch) (*types.Article, error) {
	a, err := s.GetArticle(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Summary != nil {
		a.Summary = *patch.Summary
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.saveArticle(ctx, a, false); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteArticle removes an article and its index entry.
func (s *Store) DeleteArticle(ctx context.Context, owner, id string) error {
	if _, err := s.GetArticle(ctx, owner, id); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, articleKey(owner, id))
	pipe.ZRem(ctx, indexKey(owner), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

func (s *Store) saveArticle(ctx context.Context, a *types.Article, index bool) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode article: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, articleKey(a.OwnerID, a.ID), data, 0)
	if index {
		pipe.ZAdd(ctx, indexKey(a.OwnerID), redis.Z{
			Score:  float64(a.CreatedAt.UnixNano()),
			Member: a.ID,
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store article: %w", err)
	}
	return nil
}
