package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"knowledgebase/store"
)

// RegisterSettingsRoutes registers the per-owner settings endpoints.
func (s *Server) RegisterSettingsRoutes(g *gin.RouterGroup) {
	g.GET("/settings", s.handleGetSettings)
	g.PATCH("/settings", s.handleUpdateSettings)
}

// UpdateSettingsRequest carries a tagged settings action. An empty
// action means plain save.
type UpdateSettingsRequest struct {
	Action        string `json:"action"`
	SummaryPrompt string `json:"summary_prompt"`
}

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.store.GetSettings(c.Request.Context(), ownerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	action := store.SettingsAction(req.Action)
	if req.Action == "" {
		action = store.ActionSave
	}

	settings, err := s.store.ApplySettings(c.Request.Context(), ownerFrom(c), action, req.SummaryPrompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
