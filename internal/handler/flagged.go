package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFlaggedTokens godoc
// @Summary      List flagged consensus tokens
// @Description  Returns the most recent scan's tokens held by at least min_holders distinct wallets, ordered by holder count
// @Tags         tokens
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/tokens/flagged [get]
func (h *Handler) GetFlaggedTokens(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scan engine unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-flagged-tokens")
	defer span.End()

	flagged := h.engine.FlaggedTokens(ctx)
	c.JSON(http.StatusOK, gin.H{
		"tokens": flagged,
		"count":  len(flagged),
	})
}
