package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterIngestRoutes registers the pipeline endpoints: the full
// preview plus the standalone extract and summarize steps.
func (s *Server) RegisterIngestRoutes(g *gin.RouterGroup) {
	g.POST("/ingest", s.handleIngest)
	g.POST("/extract", s.handleExtract)
	g.POST("/summarize", s.handleSummarize)
}

// IngestRequest submits a URL for the extract+summarize preview.
// Force bypasses the duplicate check ("re-process anyway").
type IngestRequest struct {
	URL   string `json:"url"`
	Force bool   `json:"force"`
}

// ExtractRequest runs extraction only.
type ExtractRequest struct {
	URL string `json:"url"`
}

// SummarizeRequest summarizes text with the owner's current prompt.
type SummarizeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleIngest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	draft, err := s.ingestor.Prepare(c.Request.Context(), ownerFrom(c), req.URL, req.Force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (s *Server) handleExtract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	extracted, err := s.extractor.Extract(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, extracted)
}

func (s *Server) handleSummarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Article text is required"})
		return
	}

	owner := ownerFrom(c)
	prompt, err := s.store.CurrentPrompt(c.Request.Context(), owner)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := s.summarizer.Summarize(c.Request.Context(), req.Text, prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
