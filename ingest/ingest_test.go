package ingest

import (
	"context"
	"errors"
	"testing"

	"knowledgebase/types"
)

type fakeExtractor struct {
	result *types.ExtractedArticle
	err    error
	calls  int
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*types.ExtractedArticle, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.result
	out.SourceURL = url
	return &out, nil
}

type fakeSummarizer struct {
	out       string
	err       error
	gotPrompt string
	gotText   string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text, prompt string) (string, error) {
	f.gotText = text
	f.gotPrompt = prompt
	return f.out, f.err
}

type fakeLibrary struct {
	articles  []types.Article
	prompt    string
	createErr error
	created   []types.Draft
}

func (f *fakeLibrary) ListArticles(ctx context.Context, owner, searchQuery string) ([]types.Article, error) {
	return f.articles, nil
}

func (f *fakeLibrary) CreateArticle(ctx context.Context, owner string, draft types.Draft) (*types.Article, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, draft)
	return &types.Article{
		ID:        "new-id",
		OwnerID:   owner,
		Title:     draft.Title,
		SourceURL: draft.SourceURL,
		FullText:  draft.FullText,
		Summary:   draft.Summary,
	}, nil
}

func (f *fakeLibrary) CurrentPrompt(ctx context.Context, owner string) (string, error) {
	return f.prompt, nil
}

func newTestPipeline(ex *fakeExtractor, sum *fakeSummarizer, lib *fakeLibrary) *Pipeline {
	if ex.result == nil && ex.err == nil {
		ex.result = &types.ExtractedArticle{
			Title:           "Why Go Scales",
			PublicationName: "Example News",
			FullText:        "a long article body",
		}
	}
	return New(ex, sum, lib)
}

func TestPrepareDetectsDuplicateBeforeExtraction(t *testing.T) {
	lib := &fakeLibrary{
		articles: []types.Article{{ID: "existing", SourceURL: "https://example.com/article"}},
		prompt:   "prompt",
	}
	ex := &fakeExtractor{}
	p := newTestPipeline(ex, &fakeSummarizer{out: "summary"}, lib)

	_, err := p.Prepare(context.Background(), "owner", "https://example.com/article?utm_source=twitter", false)

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dup.Existing.ID != "existing" {
		t.Errorf("duplicate points at %s, want existing", dup.Existing.ID)
	}
	if ex.calls != 0 {
		t.Errorf("extractor was called %d times before the duplicate decision", ex.calls)
	}
}

func TestPrepareForceBypassesDuplicateCheck(t *testing.T) {
	lib := &fakeLibrary{
		articles: []types.Article{{ID: "existing", SourceURL: "https://example.com/article"}},
		prompt:   "prompt",
	}
	ex := &fakeExtractor{}
	p := newTestPipeline(ex, &fakeSummarizer{out: "summary"}, lib)

	draft, err := p.Prepare(context.Background(), "owner", "https://example.com/article", true)
	if err != nil {
		t.Fatalf("forced Prepare failed: %v", err)
	}
	if ex.calls != 1 {
		t.Errorf("extractor calls = %d, want 1", ex.calls)
	}
	if draft.Summary != "summary" {
		t.Errorf("summary = %q, want %q", draft.Summary, "summary")
	}
}

func TestPrepareProducesCompleteDraftWithOwnerPrompt(t *testing.T) {
	lib := &fakeLibrary{prompt: "the owner's custom prompt"}
	sum := &fakeSummarizer{out: "condensed"}
	p := newTestPipeline(&fakeExtractor{}, sum, lib)

	draft, err := p.Prepare(context.Background(), "owner", "https://example.com/fresh", false)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	if draft.Title == "" || draft.FullText == "" || draft.Summary == "" {
		t.Errorf("draft has empty required fields: %+v", draft)
	}
	if sum.gotPrompt != "the owner's custom prompt" {
		t.Errorf("summarizer prompt = %q, want the owner's custom prompt", sum.gotPrompt)
	}
	if sum.gotText != "a long article body" {
		t.Errorf("summarizer text = %q, want the extracted body", sum.gotText)
	}
	if draft.SourceURL != "https://example.com/fresh" {
		t.Errorf("draft source URL = %q, want the submitted URL", draft.SourceURL)
	}
}

func TestPrepareExtractFailure(t *testing.T) {
	boom := errors.New("fetch blew up")
	p := newTestPipeline(&fakeExtractor{err: boom}, &fakeSummarizer{}, &fakeLibrary{})

	_, err := p.Prepare(context.Background(), "owner", "https://example.com/x", false)

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != StageExtract {
		t.Errorf("stage = %s, want %s", stageErr.Stage, StageExtract)
	}
	if !errors.Is(err, boom) {
		t.Errorf("underlying cause lost: %v", err)
	}
}

func TestPrepareSummarizeFailure(t *testing.T) {
	boom := errors.New("cohere down")
	p := newTestPipeline(&fakeExtractor{}, &fakeSummarizer{err: boom}, &fakeLibrary{})

	_, err := p.Prepare(context.Background(), "owner", "https://example.com/x", false)

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != StageSummarize {
		t.Errorf("stage = %s, want %s", stageErr.Stage, StageSummarize)
	}
}

func TestConfirmPersistsDraft(t *testing.T) {
	lib := &fakeLibrary{}
	p := newTestPipeline(&fakeExtractor{}, &fakeSummarizer{out: "s"}, lib)

	draft := types.Draft{Title: "T", SourceURL: "https://example.com/x", FullText: "body", Summary: "s"}
	article, err := p.Confirm(context.Background(), "owner", draft, false)
	if err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if article.ID == "" || article.OwnerID != "owner" {
		t.Errorf("unexpected stored article: %+v", article)
	}
	if len(lib.created) != 1 {
		t.Errorf("created %d articles, want 1", len(lib.created))
	}
}

func TestConfirmRechecksDuplicates(t *testing.T) {
	lib := &fakeLibrary{
		articles: []types.Article{{ID: "existing", SourceURL: "https://example.com/x"}},
	}
	p := newTestPipeline(&fakeExtractor{}, &fakeSummarizer{out: "s"}, lib)

	draft := types.Draft{Title: "T", SourceURL: "https://example.com/x/", FullText: "body", Summary: "s"}
	_, err := p.Confirm(context.Background(), "owner", draft, false)

	var dup *DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateError on confirm, got %v", err)
	}
	if len(lib.created) != 0 {
		t.Errorf("draft was persisted despite the duplicate")
	}

	if _, err := p.Confirm(context.Background(), "owner", draft, true); err != nil {
		t.Errorf("forced confirm failed: %v", err)
	}
}

func TestConfirmPersistFailure(t *testing.T) {
	boom := errors.New("redis gone")
	lib := &fakeLibrary{createErr: boom}
	p := newTestPipeline(&fakeExtractor{}, &fakeSummarizer{out: "s"}, lib)

	draft := types.Draft{Title: "T", SourceURL: "https://example.com/x", FullText: "body", Summary: "s"}
	_, err := p.Confirm(context.Background(), "owner", draft, false)

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if stageErr.Stage != StagePersist {
		t.Errorf("stage = %s, want %s", stageErr.Stage, StagePersist)
	}
}
