package handler

import (
	"net/http"

	"github.com/skuubrain/Solscanner/internal/domain"

	"github.com/gin-gonic/gin"
)

// TriggerScan godoc
// @Summary      Run one wallet scan cycle
// @Description  Discovers seed wallets, normalizes their holdings, and returns tokens held by at least min_holders distinct wallets
// @Tags         scan
// @Accept       json
// @Produce      json
// @Param        params  body  domain.ScanParams  false  "Overrides for discovery mode, breadth, and min_holders"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/scan [post]
func (h *Handler) TriggerScan(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scan engine unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trigger-scan")
	defer span.End()

	var params domain.ScanParams
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scan params: " + err.Error()})
			return
		}
	}

	result, err := h.engine.Run(ctx, params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"discovered":     result.Discovered,
		"scanned":        result.Scanned,
		"skipped":        result.Skipped,
		"flagged_tokens": result.Flagged,
		"count":          len(result.Flagged),
		"errors":         result.Errors,
	})
}
