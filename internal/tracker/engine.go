package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/skuubrain/Solscanner/internal/domain"
	"github.com/skuubrain/Solscanner/internal/provider"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const flaggedCacheKey = "scan:flagged"

// Provider capabilities consumed by the engine. Every call may fail; the
// engine treats a failed call and an empty result the same way, as "no
// data", and never aborts a scan over one.
type TrendingReader interface {
	TrendingTokens(ctx context.Context, limit int) ([]provider.TrendingToken, error)
}

type TraderReader interface {
	TopTraders(ctx context.Context, limit int) ([]provider.TraderRank, error)
}

type TokenTraderReader interface {
	TokenTopTraders(ctx context.Context, mint string, limit int) ([]provider.TraderRank, error)
}

type HolderReader interface {
	TokenHolders(ctx context.Context, mint string, limit int) ([]provider.HolderRef, error)
}

type BalanceReader interface {
	WalletBalances(ctx context.Context, wallet string) ([]byte, error)
}

type PnLReader interface {
	WalletPnL(ctx context.Context, wallet string) ([]byte, error)
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Defaults fills in scan parameters the caller leaves zero.
type Defaults struct {
	Discovery       domain.DiscoveryMode
	Source          domain.SourceMode
	NumTraders      int
	TrendingLimit   int
	TradersPerToken int
	MaxWallets      int
	MinHolders      int
	FlaggedCacheTTL time.Duration
}

// Engine drives scan cycles: discover seed wallets, fetch and normalize each
// wallet's positions, track per-wallet state, and aggregate cross-wallet
// consensus. One engine owns one WalletStore and one ConsensusAggregator;
// only one scan runs at a time.
type Engine struct {
	tracer trace.Tracer

	trending     TrendingReader
	traders      TraderReader
	tokenTraders TokenTraderReader
	holders      HolderReader
	balances     BalanceReader
	pnl          PnLReader
	redis        RedisClient

	store *WalletStore
	agg   *ConsensusAggregator
	cfg   Defaults

	scanMu sync.Mutex

	flaggedMu   sync.RWMutex
	lastFlagged []domain.ConsensusEntry
}

func NewEngine(
	tracer trace.Tracer,
	trending TrendingReader,
	traders TraderReader,
	tokenTraders TokenTraderReader,
	holders HolderReader,
	balances BalanceReader,
	pnl PnLReader,
	redisClient RedisClient,
	cfg Defaults,
) *Engine {
	if cfg.Discovery == "" {
		cfg.Discovery = domain.DiscoverTopTraders
	}
	if cfg.Source == "" {
		cfg.Source = domain.SourceBalances
	}
	if cfg.NumTraders <= 0 {
		cfg.NumTraders = 50
	}
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = 5
	}
	if cfg.TradersPerToken <= 0 {
		cfg.TradersPerToken = 10
	}
	if cfg.MaxWallets <= 0 {
		cfg.MaxWallets = 100
	}
	if cfg.MinHolders <= 0 {
		cfg.MinHolders = 2
	}
	if cfg.FlaggedCacheTTL <= 0 {
		cfg.FlaggedCacheTTL = time.Hour
	}

	return &Engine{
		tracer:       tracer,
		trending:     trending,
		traders:      traders,
		tokenTraders: tokenTraders,
		holders:      holders,
		balances:     balances,
		pnl:          pnl,
		redis:        redisClient,
		store:        NewWalletStore(),
		agg:          NewConsensusAggregator(),
		cfg:          cfg,
	}
}

type seedWallet struct {
	wallet    string
	seedToken string
}

// Run executes one full scan cycle and returns the flagged consensus set.
// Per-wallet failures are recorded as warnings and skipped; the only error
// returns are contract violations in params. An empty discovery is a normal
// outcome: empty result, nil error, empty store.
func (e *Engine) Run(ctx context.Context, params domain.ScanParams) (domain.ScanResult, error) {
	ctx, span := e.tracer.Start(ctx, "tracker.run-scan")
	defer span.End()

	e.scanMu.Lock()
	defer e.scanMu.Unlock()

	params = e.applyDefaults(params)
	if err := validateParams(params); err != nil {
		return domain.ScanResult{}, err
	}
	span.SetAttributes(
		attribute.String("discovery", string(params.Discovery)),
		attribute.String("source", string(params.Source)),
		attribute.Int("min_holders", params.MinHolders),
	)

	e.store.Reset()
	e.agg.Reset()

	result := domain.ScanResult{Flagged: []domain.ConsensusEntry{}}

	seeds := e.discover(ctx, params, &result)
	if len(seeds) == 0 {
		log.Println("Scan found no seed wallets")
		e.setFlagged(ctx, result.Flagged)
		return result, nil
	}
	result.Discovered = len(seeds)

	if len(seeds) > params.MaxWallets {
		seeds = seeds[:params.MaxWallets]
	}

	for _, seed := range seeds {
		snapshot, err := e.observeWallet(ctx, seed.wallet, params.Source)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("wallet %s: %v", seed.wallet, err))
			result.Skipped++
			continue
		}
		e.store.Put(seed.wallet, snapshot, seed.seedToken)
		e.agg.Record(seed.wallet, snapshot)
		result.Scanned++
	}

	result.Flagged = e.agg.Finalize(params.MinHolders)
	e.setFlagged(ctx, result.Flagged)

	log.Printf("Scan complete: discovered=%d scanned=%d skipped=%d flagged=%d warnings=%d",
		result.Discovered, result.Scanned, result.Skipped, len(result.Flagged), len(result.Errors))
	return result, nil
}

// TrackWallet observes a single wallet without resetting scan state. Calling
// it repeatedly for the same wallet classifies the position delta between
// observations.
func (e *Engine) TrackWallet(ctx context.Context, wallet string) (domain.WalletRecord, error) {
	ctx, span := e.tracer.Start(ctx, "tracker.track-wallet")
	defer span.End()
	span.SetAttributes(attribute.String("wallet", wallet))

	snapshot, err := e.observeWallet(ctx, wallet, e.cfg.Source)
	if err != nil {
		return domain.WalletRecord{}, fmt.Errorf("track wallet %s: %w", wallet, err)
	}
	return e.store.Put(wallet, snapshot, ""), nil
}

// TrackedWallets returns the current store contents in insertion order.
func (e *Engine) TrackedWallets() []domain.WalletRecord {
	return e.store.All()
}

// TrackedCount returns the number of wallets in the store.
func (e *Engine) TrackedCount() int {
	return e.store.Len()
}

// FlaggedTokens returns the most recent scan's consensus set, falling back
// to the redis cache when this process has not completed a scan yet.
func (e *Engine) FlaggedTokens(ctx context.Context) []domain.ConsensusEntry {
	e.flaggedMu.RLock()
	flagged := e.lastFlagged
	e.flaggedMu.RUnlock()
	if flagged != nil {
		return flagged
	}

	if e.redis == nil {
		return []domain.ConsensusEntry{}
	}
	data, err := e.redis.Get(ctx, flaggedCacheKey).Bytes()
	if err == redis.Nil {
		return []domain.ConsensusEntry{}
	}
	if err != nil {
		log.Printf("redis flagged cache read error: %v", err)
		return []domain.ConsensusEntry{}
	}
	var cached []domain.ConsensusEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		log.Printf("redis flagged cache decode error: %v", err)
		return []domain.ConsensusEntry{}
	}
	return cached
}

func (e *Engine) observeWallet(ctx context.Context, wallet string, source domain.SourceMode) (domain.WalletSnapshot, error) {
	var raw []byte
	var err error
	switch source {
	case domain.SourcePnL:
		if e.pnl == nil {
			return domain.WalletSnapshot{}, fmt.Errorf("pnl source not configured")
		}
		raw, err = e.pnl.WalletPnL(ctx, wallet)
	default:
		if e.balances == nil {
			return domain.WalletSnapshot{}, fmt.Errorf("balances source not configured")
		}
		raw, err = e.balances.WalletBalances(ctx, wallet)
	}
	if err != nil {
		return domain.WalletSnapshot{}, err
	}

	return domain.WalletSnapshot{
		Positions:  NormalizePositions(raw, source),
		ObservedAt: time.Now().UTC(),
	}, nil
}

// discover builds the deduplicated seed wallet set. Provider failures are
// downgraded to warnings; each collapses to "no data" for its slice of the
// discovery.
func (e *Engine) discover(ctx context.Context, params domain.ScanParams, result *domain.ScanResult) []seedWallet {
	if params.Discovery == domain.DiscoverTrending {
		return e.discoverViaTrending(ctx, params, result)
	}

	if e.traders == nil {
		result.Errors = append(result.Errors, "discovery: top-trader source not configured")
		return nil
	}
	ranked, err := e.traders.TopTraders(ctx, params.NumTraders)
	if err != nil {
		result.Errors = append(result.Errors, "discovery: "+err.Error())
		return nil
	}

	seeds := make([]seedWallet, 0, len(ranked))
	seen := make(map[string]bool, len(ranked))
	for _, trader := range ranked {
		if trader.Wallet == "" || seen[trader.Wallet] {
			continue
		}
		seen[trader.Wallet] = true
		seeds = append(seeds, seedWallet{wallet: trader.Wallet})
	}
	return seeds
}

// discoverViaTrending seeds from trending tokens, pulling each token's top
// traders and falling back to its holder list when no trader data exists.
// The first discovery of a wallet wins; later sightings under other seed
// tokens are dropped.
func (e *Engine) discoverViaTrending(ctx context.Context, params domain.ScanParams, result *domain.ScanResult) []seedWallet {
	if e.trending == nil {
		result.Errors = append(result.Errors, "discovery: trending source not configured")
		return nil
	}
	tokens, err := e.trending.TrendingTokens(ctx, params.TrendingLimit)
	if err != nil {
		result.Errors = append(result.Errors, "discovery: "+err.Error())
		return nil
	}

	var seeds []seedWallet
	seen := make(map[string]bool)
	for _, token := range tokens {
		wallets := e.tokenWallets(ctx, token.Mint, params.TradersPerToken, result)
		for _, wallet := range wallets {
			if wallet == "" || seen[wallet] {
				continue
			}
			seen[wallet] = true
			seeds = append(seeds, seedWallet{wallet: wallet, seedToken: token.Mint})
		}
	}
	return seeds
}

func (e *Engine) tokenWallets(ctx context.Context, mint string, limit int, result *domain.ScanResult) []string {
	if e.tokenTraders != nil {
		ranked, err := e.tokenTraders.TokenTopTraders(ctx, mint, limit)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("discovery token %s: %v", mint, err))
		} else if len(ranked) > 0 {
			wallets := make([]string, 0, len(ranked))
			for _, trader := range ranked {
				wallets = append(wallets, trader.Wallet)
			}
			return wallets
		}
	}

	if e.holders == nil {
		return nil
	}
	refs, err := e.holders.TokenHolders(ctx, mint, limit)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("discovery holders %s: %v", mint, err))
		return nil
	}
	wallets := make([]string, 0, len(refs))
	for _, ref := range refs {
		wallets = append(wallets, ref.Wallet)
	}
	return wallets
}

func (e *Engine) applyDefaults(params domain.ScanParams) domain.ScanParams {
	if params.Discovery == "" {
		params.Discovery = e.cfg.Discovery
	}
	if params.Source == "" {
		params.Source = e.cfg.Source
	}
	if params.NumTraders <= 0 {
		params.NumTraders = e.cfg.NumTraders
	}
	if params.TrendingLimit <= 0 {
		params.TrendingLimit = e.cfg.TrendingLimit
	}
	if params.TradersPerToken <= 0 {
		params.TradersPerToken = e.cfg.TradersPerToken
	}
	if params.MaxWallets <= 0 {
		params.MaxWallets = e.cfg.MaxWallets
	}
	if params.MinHolders == 0 {
		params.MinHolders = e.cfg.MinHolders
	}
	return params
}

func validateParams(params domain.ScanParams) error {
	if params.MinHolders < 1 {
		return fmt.Errorf("min_holders must be at least 1, got %d", params.MinHolders)
	}
	switch params.Discovery {
	case domain.DiscoverTopTraders, domain.DiscoverTrending:
	default:
		return fmt.Errorf("unknown discovery mode %q", params.Discovery)
	}
	switch params.Source {
	case domain.SourceBalances, domain.SourcePnL:
	default:
		return fmt.Errorf("unknown source mode %q", params.Source)
	}
	return nil
}

func (e *Engine) setFlagged(ctx context.Context, flagged []domain.ConsensusEntry) {
	e.flaggedMu.Lock()
	e.lastFlagged = flagged
	e.flaggedMu.Unlock()

	if e.redis == nil {
		return
	}
	data, err := json.Marshal(flagged)
	if err != nil {
		return
	}
	if err := e.redis.Set(ctx, flaggedCacheKey, data, e.cfg.FlaggedCacheTTL).Err(); err != nil {
		log.Printf("redis flagged cache write error: %v", err)
	}
}
