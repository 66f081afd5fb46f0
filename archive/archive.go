// Package archive mirrors saved articles and export snapshots to S3.
// The mirror is strictly best-effort: it is consulted by operators, not
// by the application, and an upload failure never fails a user request.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"knowledgebase/config"
	"knowledgebase/types"
)

// Archiver writes owner-scoped JSON records under a bucket prefix:
//
//	{prefix}owners/{owner}/articles/{id}.json
//	{prefix}owners/{owner}/exports/{date}.json
type Archiver struct {
	s3     *S3
	bucket string
	prefix string
}

// NewFromConfig returns an Archiver, or nil when S3_BUCKET is not set.
// A nil *Archiver is safe to call; every method becomes a no-op.
func NewFromConfig(ctx context.Context, cfg config.Config) (*Archiver, error) {
	if cfg.S3Bucket == "" {
		return nil, nil
	}

	s3c, err := NewS3(ctx, S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}
	return &Archiver{s3: s3c, bucket: cfg.S3Bucket, prefix: cfg.S3Prefix}, nil
}

// ArchiveArticle uploads the article record.
func (a *Archiver) ArchiveArticle(ctx context.Context, article *types.Article) error {
	if a == nil {
		return nil
	}
	return a.putJSON(ctx, a.articleKey(article.OwnerID, article.ID), article)
}

// RemoveArticle deletes the mirrored record for a deleted article.
func (a *Archiver) RemoveArticle(ctx context.Context, owner, id string) error {
	if a == nil {
		return nil
	}
	return a.s3.Delete(ctx, a.bucket, a.articleKey(owner, id))
}

// ArchiveExport uploads an export snapshot under a date-stamped key.
func (a *Archiver) ArchiveExport(ctx context.Context, owner string, export types.Export) error {
	if a == nil {
		return nil
	}
	key := fmt.Sprintf("%sowners/%s/exports/%s.json", a.prefix, owner, export.ExportedAt.Format("2006-01-02"))
	return a.putJSON(ctx, key, export)
}

func (a *Archiver) articleKey(owner, id string) string {
	return fmt.Sprintf("%sowners/%s/articles/%s.json", a.prefix, owner, id)
}

func (a *Archiver) putJSON(ctx context.Context, key string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return a.s3.Put(ctx, a.bucket, key, bytes.NewReader(b), "application/json")
}
