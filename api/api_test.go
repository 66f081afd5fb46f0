package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"knowledgebase/ingest"
	"knowledgebase/store"
	"knowledgebase/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type fakeStore struct {
	articles map[string]*types.Article
	settings *types.Settings
	listErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		articles: map[string]*types.Article{},
		settings: &types.Settings{SummaryPrompt: "the prompt", DefaultPrompt: "the prompt"},
	}
}

func (f *fakeStore) ListArticles(ctx context.Context, owner, searchQuery string) ([]types.Article, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []types.Article{}
	for _, a := range f.articles {
		if a.OwnerID == owner {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetArticle(ctx context.Context, owner, id string) (*types.Article, error) {
	a, ok := f.articles[id]
	if !ok || a.OwnerID != owner {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) UpdateArticle(ctx context.Context, owner, id string, patch store.ArticlePatch) (*types.Article, error) {
	a, err := f.GetArticle(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Summary != nil {
		a.Summary = *patch.Summary
	}
	return a, nil
}

func (f *fakeStore) DeleteArticle(ctx context.Context, owner, id string) error {
	if _, err := f.GetArticle(ctx, owner, id); err != nil {
		return err
	}
	delete(f.articles, id)
	return nil
}

func (f *fakeStore) GetSettings(ctx context.Context, owner string) (*types.Settings, error) {
	return f.settings, nil
}

func (f *fakeStore) ApplySettings(ctx context.Context, owner string, action store.SettingsAction, prompt string) (*types.Settings, error) {
	switch action {
	case store.ActionSave, store.ActionSaveAsDefault:
		if strings.TrimSpace(prompt) == "" {
			return nil, store.ErrPromptRequired
		}
		f.settings.SummaryPrompt = prompt
	case store.ActionResetToDefault:
		f.settings.SummaryPrompt = f.settings.DefaultPrompt
	default:
		return nil, store.ErrUnknownAction
	}
	return f.settings, nil
}

func (f *fakeStore) CurrentPrompt(ctx context.Context, owner string) (string, error) {
	return f.settings.SummaryPrompt, nil
}

type fakeIngestor struct {
	draft      *types.Draft
	prepareErr error
	confirmErr error
	gotForce   bool
}

func (f *fakeIngestor) Prepare(ctx context.Context, owner, rawURL string, force bool) (*types.Draft, error) {
	f.gotForce = force
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	return f.draft, nil
}

func (f *fakeIngestor) Confirm(ctx context.Context, owner string, draft types.Draft, force bool) (*types.Article, error) {
	f.gotForce = force
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	return &types.Article{ID: "saved-id", OwnerID: owner, Title: draft.Title, SourceURL: draft.SourceURL}, nil
}

type fakeSummarizer struct{ out string }

func (f *fakeSummarizer) Summarize(ctx context.Context, text, prompt string) (string, error) {
	return f.out, nil
}

type fakeExtractor struct{ out *types.ExtractedArticle }

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*types.ExtractedArticle, error) {
	return f.out, nil
}

type noopArchiver struct{}

func (noopArchiver) ArchiveArticle(ctx context.Context, article *types.Article) error { return nil }
func (noopArchiver) RemoveArticle(ctx context.Context, owner, id string) error        { return nil }
func (noopArchiver) ArchiveExport(ctx context.Context, owner string, export types.Export) error {
	return nil
}

type testEnv struct {
	router   *gin.Engine
	store    *fakeStore
	ingestor *fakeIngestor
}

func newTestEnv(devOwnerID string) *testEnv {
	st := newFakeStore()
	ing := &fakeIngestor{draft: &types.Draft{Title: "T", SourceURL: "https://example.com/x", FullText: "body", Summary: "s"}}
	srv := NewServer(st, ing, &fakeExtractor{out: &types.ExtractedArticle{Title: "T"}}, &fakeSummarizer{out: "tl;dr"}, noopArchiver{}, devOwnerID)
	return &testEnv{router: NewRouter(srv), store: st, ingestor: ing}
}

func (e *testEnv) request(t *testing.T, method, path, owner string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if owner != "" {
		req.Header.Set("X-Owner-ID", owner)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not a JSON object: %v\n%s", err, w.Body.String())
	}
	return out
}

func TestHealthNeedsNoOwner(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodGet, "/api/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health = %d, want 200", w.Code)
	}
}

func TestMissingOwnerIsUnauthorized(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodGet, "/api/articles", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestDevOwnerFallback(t *testing.T) {
	env := newTestEnv("dev-user")
	w := env.request(t, http.MethodGet, "/api/articles", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 with dev owner fallback", w.Code)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodGet, "/api/articles/missing", "alice", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestIngestReturnsDraft(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPost, "/api/ingest", "alice", gin.H{"url": "https://example.com/x"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["title"] != "T" || body["summary"] != "s" {
		t.Errorf("unexpected draft: %v", body)
	}
	if env.ingestor.gotForce {
		t.Error("force was set without being requested")
	}
}

func TestIngestDuplicateIsConflictWithExisting(t *testing.T) {
	env := newTestEnv("")
	env.ingestor.prepareErr = &ingest.DuplicateError{
		Existing: &types.Article{ID: "existing", Title: "Already Saved"},
	}

	w := env.request(t, http.MethodPost, "/api/ingest", "alice", gin.H{"url": "https://example.com/x"})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	existing, ok := body["existing"].(map[string]any)
	if !ok {
		t.Fatalf("409 body carries no existing article: %v", body)
	}
	if existing["id"] != "existing" {
		t.Errorf("existing id = %v", existing["id"])
	}
}

func TestIngestForceIsForwarded(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPost, "/api/ingest", "alice", gin.H{"url": "https://example.com/x", "force": true})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !env.ingestor.gotForce {
		t.Error("force flag not forwarded to the pipeline")
	}
}

func TestIngestRequiresURL(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPost, "/api/ingest", "alice", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateArticle(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPost, "/api/articles", "alice", gin.H{
		"title":      "T",
		"source_url": "https://example.com/x",
		"full_text":  "body",
		"summary":    "s",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["id"] != "saved-id" {
		t.Errorf("unexpected article: %v", body)
	}
}

func TestCreateArticleMissingFields(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPost, "/api/articles", "alice", gin.H{"title": "only a title"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateArticle(t *testing.T) {
	env := newTestEnv("")
	env.store.articles["a1"] = &types.Article{ID: "a1", OwnerID: "alice", Title: "Before", Summary: "old"}

	w := env.request(t, http.MethodPatch, "/api/articles/a1", "alice", gin.H{"title": "After"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["title"] != "After" {
		t.Errorf("title = %v, want After", body["title"])
	}
	if body["summary"] != "old" {
		t.Errorf("summary changed by a title-only patch: %v", body["summary"])
	}
}

func TestDeleteArticle(t *testing.T) {
	env := newTestEnv("")
	env.store.articles["a1"] = &types.Article{ID: "a1", OwnerID: "alice"}

	w := env.request(t, http.MethodDelete, "/api/articles/a1", "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if _, ok := env.store.articles["a1"]; ok {
		t.Error("article still present after delete")
	}

	w = env.request(t, http.MethodDelete, "/api/articles/a1", "alice", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}

func TestOwnerScopingAtTheAPI(t *testing.T) {
	env := newTestEnv("")
	env.store.articles["a1"] = &types.Article{ID: "a1", OwnerID: "alice"}

	w := env.request(t, http.MethodGet, "/api/articles/a1", "bob", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("bob reading alice's article = %d, want 404", w.Code)
	}
}

func TestSummarizeUsesOwnerPrompt(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPost, "/api/summarize", "alice", gin.H{"text": "some long text"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["summary"] != "tl;dr" {
		t.Errorf("summary = %v", body["summary"])
	}
}

func TestUpdateSettingsUnknownAction(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPatch, "/api/settings", "alice", gin.H{"action": "toggle", "summary_prompt": "p"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestUpdateSettingsDefaultsToSave(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPatch, "/api/settings", "alice", gin.H{"summary_prompt": "new prompt"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if env.store.settings.SummaryPrompt != "new prompt" {
		t.Errorf("prompt = %q, want new prompt", env.store.settings.SummaryPrompt)
	}
}

func TestUpdateSettingsEmptyPrompt(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodPatch, "/api/settings", "alice", gin.H{"action": "save", "summary_prompt": "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestExportHeadersAndShape(t *testing.T) {
	env := newTestEnv("")
	env.store.articles["a1"] = &types.Article{ID: "a1", OwnerID: "alice", Title: "Kept"}

	w := env.request(t, http.MethodGet, "/api/export", "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	disposition := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment;") || !strings.Contains(disposition, "knowledge-base-export-") {
		t.Errorf("Content-Disposition = %q", disposition)
	}

	body := decodeBody(t, w)
	if body["exported_at"] == nil {
		t.Error("export has no exported_at")
	}
	articles, ok := body["articles"].([]any)
	if !ok || len(articles) != 1 {
		t.Errorf("export articles = %v", body["articles"])
	}
}

func TestFeedRequiresURL(t *testing.T) {
	env := newTestEnv("")
	w := env.request(t, http.MethodGet, "/api/feed", "alice", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
