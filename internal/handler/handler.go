package handler

import (
	"context"

	"github.com/skuubrain/Solscanner/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// ScanEngine is the core surface the HTTP layer consumes.
type ScanEngine interface {
	Run(ctx context.Context, params domain.ScanParams) (domain.ScanResult, error)
	TrackWallet(ctx context.Context, wallet string) (domain.WalletRecord, error)
	TrackedWallets() []domain.WalletRecord
	TrackedCount() int
	FlaggedTokens(ctx context.Context) []domain.ConsensusEntry
}

type Handler struct {
	tracer trace.Tracer
	engine ScanEngine
	apiKey string
}

func New(tracer trace.Tracer, engine ScanEngine, apiKey string) *Handler {
	return &Handler{
		tracer: tracer,
		engine: engine,
		apiKey: apiKey,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(h.apiKey))
	api.POST("/scan", h.TriggerScan)
	api.GET("/wallets", h.GetWallets)
	api.POST("/wallets/:address/refresh", h.RefreshWallet)
	api.GET("/tokens/flagged", h.GetFlaggedTokens)
}
