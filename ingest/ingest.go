// Package ingest composes duplicate detection, extraction and
// summarization into the end-to-end "add article" pipeline.
//
// The pipeline moves Submitted -> Checked -> Extracted -> Summarized;
// Persisted only happens on an explicit Confirm. A failure at any
// stage aborts the attempt and leaves nothing behind, so re-running
// the same URL is always safe.
package ingest

import (
	"context"
	"fmt"

	"knowledgebase/dedup"
	"knowledgebase/types"
)

// Stage names the pipeline step a failure occurred in.
type Stage string

const (
	StageCheck     Stage = "check"
	StageExtract   Stage = "extract"
	StageSummarize Stage = "summarize"
	StagePersist   Stage = "persist"
)

// StageError is the absorbing failure state: the stage that failed plus
// the underlying reason.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ingestion failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// DuplicateError is a decision point, not a hard failure: the owner
// already saved this URL and the caller may view the existing article
// or re-process anyway.
type DuplicateError struct {
	Existing *types.Article
}

func (e *DuplicateError) Error() string {
	return "an article with this URL is already saved"
}

// Extractor turns a URL into readable article content.
type Extractor interface {
	Extract(ctx context.Context, url string) (*types.ExtractedArticle, error)
}

// Summarizer condenses article text with the given prompt.
type Summarizer interface {
	Summarize(ctx context.Context, text, prompt string) (string, error)
}

// Library is the slice of the store the pipeline needs: the owner's
// article set for duplicate checks, the owner's prompt, and final
// persistence.
type Library interface {
	ListArticles(ctx context.Context, owner, searchQuery string) ([]types.Article, error)
	CreateArticle(ctx context.Context, owner string, draft types.Draft) (*types.Article, error)
	CurrentPrompt(ctx context.Context, owner string) (string, error)
}

// Pipeline wires the collaborators together. It holds no state of its
// own; every call is a fresh attempt.
type Pipeline struct {
	extractor  Extractor
	summarizer Summarizer
	library    Library
}

// New builds a pipeline over the given collaborators.
func New(extractor Extractor, summarizer Summarizer, library Library) *Pipeline {
	return &Pipeline{extractor: extractor, summarizer: summarizer, library: library}
}

// Prepare runs the pipeline up to the summarized draft: duplicate
// check, extract, summarize. force skips the duplicate check and
// restarts from extraction, which is how "re-process anyway" works.
// Nothing is persisted.
func (p *Pipeline) Prepare(ctx context.Context, owner, rawURL string, force bool) (*types.Draft, error) {
	if !force {
		if err := p.checkDuplicate(ctx, owner, rawURL); err != nil {
			return nil, err
		}
	}

	extracted, err := p.extractor.Extract(ctx, rawURL)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}

	prompt, err := p.library.CurrentPrompt(ctx, owner)
	if err != nil {
		return nil, &StageError{Stage: StageSummarize, Err: err}
	}

	summary, err := p.summarizer.Summarize(ctx, extracted.FullText, prompt)
	if err != nil {
		return nil, &StageError{Stage: StageSummarize, Err: err}
	}

	return &types.Draft{
		Title:           extracted.Title,
		PublicationName: extracted.PublicationName,
		SourceURL:       extracted.SourceURL,
		FullText:        extracted.FullText,
		Summary:         summary,
	}, nil
}

// Confirm persists a prepared draft. The duplicate check runs once more
// (unless forced) because another tab may have saved the same URL
// between Prepare and Confirm.
func (p *Pipeline) Confirm(ctx context.Context, owner string, draft types.Draft, force bool) (*types.Article, error) {
	if !force {
		if err := p.checkDuplicate(ctx, owner, draft.SourceURL); err != nil {
			return nil, err
		}
	}

	article, err := p.library.CreateArticle(ctx, owner, draft)
	if err != nil {
		return nil, &StageError{Stage: StagePersist, Err: err}
	}
	return article, nil
}

func (p *Pipeline) checkDuplicate(ctx context.Context, owner, rawURL string) error {
	existing, err := p.library.ListArticles(ctx, owner, "")
	if err != nil {
		return &StageError{Stage: StageCheck, Err: err}
	}
	if match := dedup.FindDuplicate(rawURL, existing); match != nil {
		return &DuplicateError{Existing: match}
	}
	return nil
}
