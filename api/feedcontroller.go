package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"knowledgebase/config"
	"knowledgebase/feed"
)

// RegisterFeedRoutes registers the feed import preview endpoint.
func (s *Server) RegisterFeedRoutes(g *gin.RouterGroup) {
	g.GET("/feed", s.handleFeedPreview)
}

// handleFeedPreview lists candidate links from an RSS/Atom feed and
// marks the ones the owner has already saved.
func (s *Server) handleFeedPreview(c *gin.Context) {
	feedURL := c.Query("url")
	if feedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feed URL is required"})
		return
	}

	count := config.DefaultFeedCount
	if v := c.Query("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = min(n, config.MaxFeedCount)
	}

	owner := ownerFrom(c)
	existing, err := s.store.ListArticles(c.Request.Context(), owner, "")
	if err != nil {
		respondError(c, err)
		return
	}

	candidates, err := feed.FetchCandidates(c.Request.Context(), feedURL, count, existing)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feed_url": feedURL, "candidates": candidates})
}
