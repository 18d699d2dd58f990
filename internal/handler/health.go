package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Description  Returns service health plus tracked wallet and flagged token counts
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	tracked := 0
	flagged := 0
	if h.engine != nil {
		tracked = h.engine.TrackedCount()
		flagged = len(h.engine.FlaggedTokens(c.Request.Context()))
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"tracked_wallets": tracked,
		"flagged_tokens":  flagged,
	})
}
