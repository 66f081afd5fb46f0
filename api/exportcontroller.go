package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"knowledgebase/types"
)

// RegisterExportRoutes registers the JSON export download.
func (s *Server) RegisterExportRoutes(g *gin.RouterGroup) {
	g.GET("/export", s.handleExport)
}

// handleExport streams the owner's full article list as a downloadable
// JSON document, and mirrors the snapshot to the archive if configured.
func (s *Server) handleExport(c *gin.Context) {
	owner := ownerFrom(c)
	articles, err := s.store.ListArticles(c.Request.Context(), owner, "")
	if err != nil {
		respondError(c, err)
		return
	}

	export := types.Export{
		ExportedAt: time.Now().UTC(),
		Articles:   articles,
	}

	if err := s.archiver.ArchiveExport(c.Request.Context(), owner, export); err != nil {
		log.Printf("Warning: failed to archive export for owner %s: %v", owner, err)
	}

	filename := fmt.Sprintf("knowledge-base-export-%s.json", export.ExportedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.IndentedJSON(http.StatusOK, export)
}
