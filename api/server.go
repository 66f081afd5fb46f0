package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"knowledgebase/extract"
	"knowledgebase/ingest"
	"knowledgebase/store"
	"knowledgebase/types"
)

// ArticleStore is the slice of the store the controllers need.
type ArticleStore interface {
	ListArticles(ctx context.Context, owner, searchQuery string) ([]types.Article, error)
	GetArticle(ctx context.Context, owner, id string) (*types.Article, error)
	UpdateArticle(ctx context.Context, owner, id string, patch store.ArticlePatch) (*types.Article, error)
	DeleteArticle(ctx context.Context, owner, id string) error
	GetSettings(ctx context.Context, owner string) (*types.Settings, error)
	ApplySettings(ctx context.Context, owner string, action store.SettingsAction, prompt string) (*types.Settings, error)
	CurrentPrompt(ctx context.Context, owner string) (string, error)
}

// Ingestor runs the two-step add-article pipeline.
type Ingestor interface {
	Prepare(ctx context.Context, owner, rawURL string, force bool) (*types.Draft, error)
	Confirm(ctx context.Context, owner string, draft types.Draft, force bool) (*types.Article, error)
}

// Extractor runs the extraction adapter alone.
type Extractor interface {
	Extract(ctx context.Context, url string) (*types.ExtractedArticle, error)
}

// Summarizer runs the summarization adapter alone.
type Summarizer interface {
	Summarize(ctx context.Context, text, prompt string) (string, error)
}

// Archiver mirrors records to object storage, best-effort.
type Archiver interface {
	ArchiveArticle(ctx context.Context, article *types.Article) error
	RemoveArticle(ctx context.Context, owner, id string) error
	ArchiveExport(ctx context.Context, owner string, export types.Export) error
}

// Server holds the collaborators the HTTP handlers dispatch to.
type Server struct {
	store      ArticleStore
	ingestor   Ingestor
	extractor  Extractor
	summarizer Summarizer
	archiver   Archiver

	// devOwnerID, when non-empty, stands in for a missing X-Owner-ID
	// header so the app is usable before auth is wired up.
	devOwnerID string
}

// NewServer wires the controllers' collaborators together.
func NewServer(st ArticleStore, ing Ingestor, ex Extractor, sum Summarizer, arch Archiver, devOwnerID string) *Server {
	return &Server{
		store:      st,
		ingestor:   ing,
		extractor:  ex,
		summarizer: sum,
		archiver:   arch,
		devOwnerID: devOwnerID,
	}
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)

	authed := r.Group("/api", s.ownerRequired)
	s.RegisterArticleRoutes(authed)
	s.RegisterIngestRoutes(authed)
	s.RegisterSettingsRoutes(authed)
	s.RegisterExportRoutes(authed)
	s.RegisterFeedRoutes(authed)
	return r
}

const ownerContextKey = "owner"

// ownerRequired resolves the owner identity before any domain logic
// runs. Requests with no identity are rejected with 401.
func (s *Server) ownerRequired(c *gin.Context) {
	owner := strings.TrimSpace(c.GetHeader("X-Owner-ID"))
	if owner == "" {
		owner = s.devOwnerID
	}
	if owner == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Set(ownerContextKey, owner)
	c.Next()
}

func ownerFrom(c *gin.Context) string {
	return c.GetString(ownerContextKey)
}

// respondError maps domain errors onto HTTP statuses. Duplicate
// findings are a 409 carrying the existing article so the client can
// offer "view existing" or "re-process anyway".
func respondError(c *gin.Context, err error) {
	var dup *ingest.DuplicateError
	if errors.As(err, &dup) {
		c.JSON(http.StatusConflict, gin.H{"error": dup.Error(), "existing": dup.Existing})
		return
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrPromptRequired),
		errors.Is(err, store.ErrUnknownAction),
		errors.Is(err, extract.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
