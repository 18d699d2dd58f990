package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetWallets godoc
// @Summary      List tracked wallets
// @Description  Returns every wallet observed since the last scan reset, with latest snapshot and position delta
// @Tags         wallets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]string
// @Router       /api/wallets [get]
func (h *Handler) GetWallets(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scan engine unavailable"})
		return
	}

	_, span := h.tracer.Start(c.Request.Context(), "handler.get-wallets")
	defer span.End()

	wallets := h.engine.TrackedWallets()
	c.JSON(http.StatusOK, gin.H{
		"wallets": wallets,
		"count":   len(wallets),
	})
}

// RefreshWallet godoc
// @Summary      Re-observe a single wallet
// @Description  Fetches the wallet's current holdings and classifies the delta against its previous observation
// @Tags         wallets
// @Produce      json
// @Param        address  path  string  true  "Wallet address"
// @Success      200  {object}  domain.WalletRecord
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/wallets/{address}/refresh [post]
func (h *Handler) RefreshWallet(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scan engine unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.refresh-wallet")
	defer span.End()

	address := strings.TrimSpace(c.Param("address"))
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wallet address required"})
		return
	}
	span.SetAttributes(attribute.String("wallet", address))

	record, err := h.engine.TrackWallet(ctx, address)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}
