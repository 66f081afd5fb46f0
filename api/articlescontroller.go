package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"knowledgebase/store"
	"knowledgebase/types"
)

// RegisterArticleRoutes registers article CRUD endpoints.
func (s *Server) RegisterArticleRoutes(g *gin.RouterGroup) {
	g.GET("/articles", s.handleListArticles)
	g.POST("/articles", s.handleCreateArticle)
	g.GET("/articles/:id", s.handleGetArticle)
	g.PATCH("/articles/:id", s.handleUpdateArticle)
	g.DELETE("/articles/:id", s.handleDeleteArticle)
}

// CreateArticleRequest is a confirmed draft plus the force flag that
// bypasses the duplicate check ("save anyway").
type CreateArticleRequest struct {
	Title           string `json:"title"`
	PublicationName string `json:"publication_name"`
	SourceURL       string `json:"source_url"`
	FullText        string `json:"full_text"`
	Summary         string `json:"summary"`
	Force           bool   `json:"force"`
}

// UpdateArticleRequest carries the patchable fields; absent fields are
// left untouched.
type UpdateArticleRequest struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
}

func (s *Server) handleListArticles(c *gin.Context) {
	articles, err := s.store.ListArticles(c.Request.Context(), ownerFrom(c), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) handleGetArticle(c *gin.Context) {
	article, err := s.store.GetArticle(c.Request.Context(), ownerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) handleCreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" || req.SourceURL == "" || req.FullText == "" || req.Summary == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	owner := ownerFrom(c)
	draft := types.Draft{
		Title:           req.Title,
		PublicationName: req.PublicationName,
		SourceURL:       req.SourceURL,
		FullText:        req.FullText,
		Summary:         req.Summary,
	}

	article, err := s.ingestor.Confirm(c.Request.Context(), owner, draft, req.Force)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.archiver.ArchiveArticle(c.Request.Context(), article); err != nil {
		log.Printf("Warning: failed to archive article %s: %v", article.ID, err)
	}

	c.JSON(http.StatusCreated, article)
}

func (s *Server) handleUpdateArticle(c *gin.Context) {
	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	owner := ownerFrom(c)
	article, err := s.store.UpdateArticle(c.Request.Context(), owner, c.Param("id"), store.ArticlePatch{
		Title:   req.Title,
		Summary: req.Summary,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := s.archiver.ArchiveArticle(c.Request.Context(), article); err != nil {
		log.Printf("Warning: failed to archive article %s: %v", article.ID, err)
	}

	c.JSON(http.StatusOK, article)
}

func (s *Server) handleDeleteArticle(c *gin.Context) {
	owner := ownerFrom(c)
	id := c.Param("id")

	if err := s.store.DeleteArticle(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}

	if err := s.archiver.RemoveArticle(c.Request.Context(), owner, id); err != nil {
		log.Printf("Warning: failed to remove archived article %s: %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
