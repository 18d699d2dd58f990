package domain

import "time"

// PositionStatus describes a wallet's relationship to a token position,
// either per-position (holding/sold, PnL sources only) or per-wallet as the
// delta against the previous observation.
type PositionStatus string

const (
	StatusHolding       PositionStatus = "holding"
	StatusSold          PositionStatus = "sold"
	StatusSoldPartially PositionStatus = "sold_partially"
	StatusSoldAll       PositionStatus = "sold_all"
)

// SourceMode declares the shape of the upstream wallet payload.
type SourceMode string

const (
	SourceBalances SourceMode = "balances"
	SourcePnL      SourceMode = "pnl"
)

// DiscoveryMode selects how seed wallets are found for a scan.
type DiscoveryMode string

const (
	// DiscoverTopTraders seeds directly from the ranked top-trader list.
	DiscoverTopTraders DiscoveryMode = "top-traders"
	// DiscoverTrending seeds from trending tokens, then pulls each token's
	// top traders (or holders when no trader data exists).
	DiscoverTrending DiscoveryMode = "trending"
)

const (
	UnknownSymbol = "UNKNOWN"
	UnknownName   = "Unknown Token"
)

// TokenPosition is one wallet's stake in one token at one observation.
type TokenPosition struct {
	Mint      string         `json:"mint"`
	Symbol    string         `json:"symbol"`
	Name      string         `json:"name"`
	Amount    float64        `json:"amount"`
	RawAmount float64        `json:"raw_amount"`
	Status    PositionStatus `json:"status,omitempty"`
	PnL       *float64       `json:"pnl,omitempty"`
	PnLPct    *float64       `json:"pnl_percent,omitempty"`
}

// WalletSnapshot is the full position list of one wallet at one observation.
type WalletSnapshot struct {
	Positions  []TokenPosition `json:"positions"`
	ObservedAt time.Time       `json:"observed_at"`
}

func (s WalletSnapshot) IsActive() bool {
	return len(s.Positions) > 0
}

// AmountByMint keys the snapshot's positions by mint for delta comparison.
func (s WalletSnapshot) AmountByMint() map[string]float64 {
	out := make(map[string]float64, len(s.Positions))
	for _, p := range s.Positions {
		out[p.Mint] = p.Amount
	}
	return out
}

// WalletRecord is the tracked state of one wallet: its latest snapshot, the
// snapshot it replaced, and the delta classification between the two.
type WalletRecord struct {
	Wallet    string          `json:"wallet"`
	Latest    WalletSnapshot  `json:"latest"`
	Previous  *WalletSnapshot `json:"previous,omitempty"`
	Delta     PositionStatus  `json:"delta"`
	SeedToken string          `json:"seed_token,omitempty"`
}

// HolderRecord is one wallet's contribution to a consensus entry.
type HolderRecord struct {
	Wallet string         `json:"wallet"`
	Amount float64        `json:"amount"`
	Status PositionStatus `json:"status,omitempty"`
	PnL    *float64       `json:"pnl,omitempty"`
}

// ConsensusEntry is a token flagged because at least the configured minimum
// number of distinct wallets hold it within one scan.
type ConsensusEntry struct {
	Mint        string         `json:"mint"`
	Symbol      string         `json:"symbol"`
	Name        string         `json:"name"`
	Holders     []HolderRecord `json:"holders"`
	HolderCount int            `json:"holder_count"`
	AvgAmount   float64        `json:"avg_amount"`
	AvgPnL      *float64       `json:"avg_pnl,omitempty"`
}

// ScanParams configures one scan cycle. Zero values fall back to the
// engine's configured defaults.
type ScanParams struct {
	Discovery       DiscoveryMode `json:"discovery_mode,omitempty"`
	Source          SourceMode    `json:"source_mode,omitempty"`
	NumTraders      int           `json:"num_traders,omitempty"`
	TrendingLimit   int           `json:"trending_limit,omitempty"`
	TradersPerToken int           `json:"traders_per_token,omitempty"`
	MaxWallets      int           `json:"max_wallets,omitempty"`
	MinHolders      int           `json:"min_holders,omitempty"`
}

// ScanResult carries the outcome of one scan cycle. Errors holds non-fatal
// per-wallet warnings; the scan itself only fails on contract violations.
type ScanResult struct {
	Discovered int              `json:"discovered"`
	Scanned    int              `json:"scanned"`
	Skipped    int              `json:"skipped"`
	Flagged    []ConsensusEntry `json:"flagged"`
	Errors     []string         `json:"errors,omitempty"`
}
