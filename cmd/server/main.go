package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skuubrain/Solscanner/internal/bot"
	"github.com/skuubrain/Solscanner/internal/cache"
	"github.com/skuubrain/Solscanner/internal/config"
	"github.com/skuubrain/Solscanner/internal/domain"
	"github.com/skuubrain/Solscanner/internal/handler"
	"github.com/skuubrain/Solscanner/internal/job"
	"github.com/skuubrain/Solscanner/internal/provider"
	"github.com/skuubrain/Solscanner/internal/tracker"
	"github.com/skuubrain/Solscanner/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/skuubrain/Solscanner/docs"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initRedisFunc  = cache.InitRedis
	initTracerFunc = tracing.InitTracer
	newTrackerFunc = func(tracer trace.Tracer, apiKey string) *provider.SolanaTrackerProvider {
		return provider.NewSolanaTrackerProvider(tracer, apiKey)
	}
	newHeliusFunc = func(tracer trace.Tracer, apiKey string) *provider.HeliusProvider {
		return provider.NewHeliusProvider(tracer, apiKey)
	}
	newEngineFunc          = tracker.NewEngine
	newScanJobFunc         = job.NewScanJob
	startScanJobFunc       = func(j *job.ScanJob, ctx context.Context) { go j.Start(ctx) }
	startTelegramBotFunc   = func(engine *tracker.Engine) { bot.StartTelegramBot(engine) }
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Solscanner API
// @version         1.0
// @description     Wallet holdings aggregation and consensus scanning with OpenTelemetry tracing.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Redis
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Create providers and the scan engine
	st := newTrackerFunc(tracer, cfg.SolanaTrackerAPIKey)
	helius := newHeliusFunc(tracer, cfg.HeliusAPIKey)

	var redisClient tracker.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	engine := newEngineFunc(tracer, st, st, st, st, helius, st, redisClient, tracker.Defaults{
		Discovery:       domain.DiscoveryMode(cfg.ScanDiscoveryMode),
		Source:          domain.SourceMode(cfg.ScanSourceMode),
		NumTraders:      cfg.ScanNumTraders,
		TrendingLimit:   cfg.ScanTrendingLimit,
		TradersPerToken: cfg.ScanTradersPerToken,
		MaxWallets:      cfg.ScanMaxWallets,
		MinHolders:      cfg.ScanMinHolders,
		FlaggedCacheTTL: time.Duration(cfg.FlaggedCacheTTLSecs) * time.Second,
	})

	// Start scheduled scans (background goroutine, stopped by ctx cancel)
	if cfg.SchedulerEnabled {
		scanJob := newScanJobFunc(tracer, engine, time.Duration(cfg.ScanIntervalSecs)*time.Second)
		startScanJobFunc(scanJob, ctx)
	} else {
		log.Println("Scheduler disabled, scans run on demand only")
	}

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(engine)

	// Create handlers and routes
	h := newHandlerFunc(tracer, engine, cfg.APIAuthKey)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("solscanner"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
