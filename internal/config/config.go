package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	SolanaTrackerAPIKey string
	HeliusAPIKey        string
	RedisURL            string
	TelegramBotToken    string
	APIAuthKey          string
	Port                int

	SchedulerEnabled bool
	ScanIntervalSecs int

	ScanDiscoveryMode   string
	ScanSourceMode      string
	ScanNumTraders      int
	ScanTrendingLimit   int
	ScanTradersPerToken int
	ScanMaxWallets      int
	ScanMinHolders      int
	FlaggedCacheTTLSecs int
}

func Load() *Config {
	cfg := &Config{
		SolanaTrackerAPIKey: os.Getenv("SOLANA_TRACKER_API_KEY"),
		HeliusAPIKey:        os.Getenv("HELIUS_API_KEY"),
		RedisURL:            os.Getenv("REDIS_URL"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		APIAuthKey:          os.Getenv("API_AUTH_KEY"),
	}

	if cfg.SolanaTrackerAPIKey == "" {
		log.Println("Warning: SOLANA_TRACKER_API_KEY not set, discovery will return no data")
	}
	if cfg.HeliusAPIKey == "" {
		log.Println("Warning: HELIUS_API_KEY not set, balance fetches will return no data")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}

	cfg.Port = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}

	cfg.SchedulerEnabled = true
	if v := strings.TrimSpace(os.Getenv("SCHEDULER_ENABLED")); v != "" {
		cfg.SchedulerEnabled = strings.EqualFold(v, "true")
	}

	cfg.ScanIntervalSecs = 900
	if v := strings.TrimSpace(os.Getenv("SCAN_INTERVAL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanIntervalSecs = n
		}
	}

	cfg.ScanDiscoveryMode = strings.ToLower(strings.TrimSpace(os.Getenv("SCAN_DISCOVERY_MODE")))
	if cfg.ScanDiscoveryMode == "" {
		cfg.ScanDiscoveryMode = "top-traders"
	}
	if cfg.ScanDiscoveryMode != "top-traders" && cfg.ScanDiscoveryMode != "trending" {
		log.Printf("Warning: unsupported SCAN_DISCOVERY_MODE=%q, defaulting to top-traders", cfg.ScanDiscoveryMode)
		cfg.ScanDiscoveryMode = "top-traders"
	}

	cfg.ScanSourceMode = strings.ToLower(strings.TrimSpace(os.Getenv("SCAN_SOURCE_MODE")))
	if cfg.ScanSourceMode == "" {
		cfg.ScanSourceMode = "balances"
	}
	if cfg.ScanSourceMode != "balances" && cfg.ScanSourceMode != "pnl" {
		log.Printf("Warning: unsupported SCAN_SOURCE_MODE=%q, defaulting to balances", cfg.ScanSourceMode)
		cfg.ScanSourceMode = "balances"
	}

	cfg.ScanNumTraders = 50
	if v := strings.TrimSpace(os.Getenv("SCAN_NUM_TRADERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanNumTraders = n
		}
	}

	cfg.ScanTrendingLimit = 5
	if v := strings.TrimSpace(os.Getenv("SCAN_TRENDING_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanTrendingLimit = n
		}
	}

	cfg.ScanTradersPerToken = 10
	if v := strings.TrimSpace(os.Getenv("SCAN_TRADERS_PER_TOKEN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanTradersPerToken = n
		}
	}

	cfg.ScanMaxWallets = 100
	if v := strings.TrimSpace(os.Getenv("SCAN_MAX_WALLETS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanMaxWallets = n
		}
	}

	cfg.ScanMinHolders = 2
	if v := strings.TrimSpace(os.Getenv("SCAN_MIN_HOLDERS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScanMinHolders = n
		}
	}

	cfg.FlaggedCacheTTLSecs = 3600
	if v := strings.TrimSpace(os.Getenv("FLAGGED_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FlaggedCacheTTLSecs = n
		}
	}

	return cfg
}
