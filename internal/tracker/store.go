package tracker

import (
	"sync"

	"github.com/skuubrain/Solscanner/internal/domain"
)

// WalletStore holds the tracked state of every wallet observed since the
// last reset, in first-insertion order. It is the only owner of
// WalletRecords; callers receive copies.
type WalletStore struct {
	mu      sync.RWMutex
	records map[string]*domain.WalletRecord
	order   []string
}

func NewWalletStore() *WalletStore {
	return &WalletStore{records: make(map[string]*domain.WalletRecord)}
}

// Put stores snapshot as the wallet's latest observation, moving the old
// latest to previous and classifying the delta between the two. The first
// observation of a wallet classifies as holding.
func (s *WalletStore) Put(wallet string, snapshot domain.WalletSnapshot, seedToken string) domain.WalletRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[wallet]
	if !ok {
		rec = &domain.WalletRecord{Wallet: wallet, Delta: domain.StatusHolding, SeedToken: seedToken}
		s.records[wallet] = rec
		s.order = append(s.order, wallet)
	} else {
		prev := rec.Latest
		rec.Previous = &prev
		rec.Delta = ClassifyTransition(prev.AmountByMint(), snapshot.AmountByMint())
	}
	rec.Latest = snapshot
	return *rec
}

// Previous returns the wallet's most recent stored snapshot, or nil when the
// wallet has never been observed.
func (s *WalletStore) Previous(wallet string) *domain.WalletSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[wallet]
	if !ok {
		return nil
	}
	snap := rec.Latest
	return &snap
}

// All returns the tracked records in insertion order.
func (s *WalletStore) All() []domain.WalletRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.WalletRecord, 0, len(s.order))
	for _, wallet := range s.order {
		out = append(out, *s.records[wallet])
	}
	return out
}

func (s *WalletStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Reset drops all tracked state.
func (s *WalletStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*domain.WalletRecord)
	s.order = nil
}
