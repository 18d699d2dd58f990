package tracker

import (
	"sort"
	"sync"

	"github.com/skuubrain/Solscanner/internal/domain"
)

// ConsensusAggregator accumulates, over one scan, which wallets hold which
// token, and surfaces the tokens held by enough distinct wallets. State is
// scoped to a single scan and rebuilt from empty on Reset.
type ConsensusAggregator struct {
	mu      sync.Mutex
	entries map[string]*consensusState
	order   []string
}

type consensusState struct {
	symbol  string
	name    string
	holders []domain.HolderRecord
	seen    map[string]bool
}

func NewConsensusAggregator() *ConsensusAggregator {
	return &ConsensusAggregator{entries: make(map[string]*consensusState)}
}

// Record appends one holder record per open position in the snapshot.
// Positions marked sold are skipped; balances-mode positions carry no status
// and always count. A wallet contributes at most one record per mint per
// scan regardless of how often it is recorded.
func (a *ConsensusAggregator) Record(wallet string, snapshot domain.WalletSnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, pos := range snapshot.Positions {
		if pos.Status != "" && pos.Status != domain.StatusHolding {
			continue
		}
		state, ok := a.entries[pos.Mint]
		if !ok {
			state = &consensusState{symbol: pos.Symbol, name: pos.Name, seen: make(map[string]bool)}
			a.entries[pos.Mint] = state
			a.order = append(a.order, pos.Mint)
		}
		if state.seen[wallet] {
			continue
		}
		state.seen[wallet] = true
		state.holders = append(state.holders, domain.HolderRecord{
			Wallet: wallet,
			Amount: pos.Amount,
			Status: pos.Status,
			PnL:    pos.PnL,
		})
	}
}

// Finalize returns the tokens held by at least minHolders distinct wallets,
// sorted by holder count descending; ties keep first-discovery order.
func (a *ConsensusAggregator) Finalize(minHolders int) []domain.ConsensusEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	flagged := make([]domain.ConsensusEntry, 0)
	for _, mint := range a.order {
		state := a.entries[mint]
		if len(state.holders) < minHolders {
			continue
		}

		entry := domain.ConsensusEntry{
			Mint:        mint,
			Symbol:      state.symbol,
			Name:        state.name,
			Holders:     append([]domain.HolderRecord(nil), state.holders...),
			HolderCount: len(state.holders),
		}

		var amountSum, pnlSum float64
		pnlCount := 0
		for _, h := range state.holders {
			amountSum += h.Amount
			if h.PnL != nil {
				pnlSum += *h.PnL
				pnlCount++
			}
		}
		entry.AvgAmount = amountSum / float64(len(state.holders))
		if pnlCount > 0 {
			avg := pnlSum / float64(pnlCount)
			entry.AvgPnL = &avg
		}
		flagged = append(flagged, entry)
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].HolderCount > flagged[j].HolderCount
	})
	return flagged
}

// Reset drops all accumulated holder state.
func (a *ConsensusAggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = make(map[string]*consensusState)
	a.order = nil
}
