package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/trace"
)

const solanaTrackerBaseURL = "https://data.solanatracker.io"

// SolanaTrackerProvider fetches trending tokens, ranked traders, and holder
// listings from the Solana Tracker data API. Responses have drifted across
// API versions, so list payloads are resolved through gjson against the
// known historical nestings instead of fixed structs.
type SolanaTrackerProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewSolanaTrackerProvider creates a provider with built-in rate limiting
// (one request per second sustained, bursts of 10).
func NewSolanaTrackerProvider(tracer trace.Tracer, apiKey string) *SolanaTrackerProvider {
	return &SolanaTrackerProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: solanaTrackerBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: NewRateLimiter(10, time.Second),
	}
}

// TrendingTokens returns up to limit tokens from the search endpoint,
// ordered by USD liquidity descending.
func (p *SolanaTrackerProvider) TrendingTokens(ctx context.Context, limit int) ([]TrendingToken, error) {
	_, span := p.tracer.Start(ctx, "solanatracker.trending-tokens")
	defer span.End()

	query := url.Values{}
	query.Set("query", "SOL")
	query.Set("sortBy", "volume_24h")
	query.Set("sortOrder", "desc")
	query.Set("limit", strconv.Itoa(maxOf(limit*4, 20)))

	body, err := p.doRequest(ctx, "/search?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch trending tokens: %w", err)
	}

	rows := listAt(body, "data", "tokens")
	tokens := make([]TrendingToken, 0, len(rows))
	for _, row := range rows {
		mint := firstString(row, "address", "mint", "poolAddress", "tokenAddress")
		if mint == "" {
			continue
		}
		symbol := firstString(row, "symbol", "token.symbol")
		if symbol == "" {
			symbol = "UNKNOWN"
		}
		tokens = append(tokens, TrendingToken{
			Mint:         mint,
			Symbol:       symbol,
			LiquidityUSD: row.Get("liquidityUsd").Float(),
			Volume24h:    row.Get("volume_24h").Float(),
		})
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].LiquidityUSD > tokens[j].LiquidityUSD
	})
	if limit > 0 && len(tokens) > limit {
		tokens = tokens[:limit]
	}
	return tokens, nil
}

// TopTraders returns the global ranked trader list.
func (p *SolanaTrackerProvider) TopTraders(ctx context.Context, limit int) ([]TraderRank, error) {
	_, span := p.tracer.Start(ctx, "solanatracker.top-traders")
	defer span.End()

	body, err := p.doRequest(ctx, "/top-traders/all")
	if err != nil {
		return nil, fmt.Errorf("fetch top traders: %w", err)
	}
	return parseTraders(body, limit), nil
}

// TokenTopTraders returns the ranked traders of one token.
func (p *SolanaTrackerProvider) TokenTopTraders(ctx context.Context, mint string, limit int) ([]TraderRank, error) {
	_, span := p.tracer.Start(ctx, "solanatracker.token-top-traders")
	defer span.End()

	body, err := p.doRequest(ctx, "/tokens/"+url.PathEscape(mint)+"/top-traders")
	if err != nil {
		return nil, fmt.Errorf("fetch top traders for %s: %w", mint, err)
	}
	return parseTraders(body, limit), nil
}

// TokenHolders returns up to limit holders of one token.
func (p *SolanaTrackerProvider) TokenHolders(ctx context.Context, mint string, limit int) ([]HolderRef, error) {
	_, span := p.tracer.Start(ctx, "solanatracker.token-holders")
	defer span.End()

	body, err := p.doRequest(ctx, "/holders/"+url.PathEscape(mint))
	if err != nil {
		return nil, fmt.Errorf("fetch holders for %s: %w", mint, err)
	}

	rows := listAt(body, "data", "accounts")
	holders := make([]HolderRef, 0, len(rows))
	for _, row := range rows {
		wallet := firstString(row, "owner", "address", "wallet")
		if wallet == "" {
			continue
		}
		holders = append(holders, HolderRef{Wallet: wallet})
		if limit > 0 && len(holders) >= limit {
			break
		}
	}
	return holders, nil
}

// WalletPnL returns the raw PnL payload for one wallet. Normalization of the
// open/closed position lists happens downstream.
func (p *SolanaTrackerProvider) WalletPnL(ctx context.Context, wallet string) ([]byte, error) {
	_, span := p.tracer.Start(ctx, "solanatracker.wallet-pnl")
	defer span.End()

	body, err := p.doRequest(ctx, "/pnl/"+url.PathEscape(wallet))
	if err != nil {
		return nil, fmt.Errorf("fetch pnl for %s: %w", wallet, err)
	}
	return body, nil
}

func (p *SolanaTrackerProvider) doRequest(ctx context.Context, path string) ([]byte, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("SOLANA_TRACKER_API_KEY not configured")
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("solana tracker API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

func parseTraders(body []byte, limit int) []TraderRank {
	rows := listAt(body, "wallets", "data", "traders")
	traders := make([]TraderRank, 0, len(rows))
	for _, row := range rows {
		wallet := firstString(row, "wallet", "address", "owner")
		if wallet == "" {
			continue
		}
		pnl := row.Get("summary.total")
		if !pnl.Exists() {
			pnl = row.Get("pnl")
		}
		if !pnl.Exists() {
			pnl = row.Get("total")
		}
		traders = append(traders, TraderRank{Wallet: wallet, PnL: pnl.Float()})
		if limit > 0 && len(traders) >= limit {
			break
		}
	}
	return traders
}

// listAt resolves a JSON list that may sit at the document root or under
// one of the given keys, whichever matches first.
func listAt(body []byte, keys ...string) []gjson.Result {
	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return root.Array()
	}
	if !root.IsObject() {
		return nil
	}
	for _, key := range keys {
		if v := root.Get(key); v.IsArray() {
			return v.Array()
		}
	}
	return nil
}

// firstString resolves the first non-empty string among the given alias
// paths, in priority order.
func firstString(row gjson.Result, paths ...string) string {
	for _, path := range paths {
		if v := row.Get(path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
