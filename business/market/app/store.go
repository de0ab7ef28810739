// Package app contains application services for the market context.
package app

import (
	"sync"

	"github.com/defisim/flashloan-bot/business/market/domain"
)

// DefaultCongestion is the congestion level a fresh market starts at.
const DefaultCongestion = 0.5

// Store owns the simulated pool set and the network congestion scalar.
// All engine access happens from the single tick goroutine; the lock exists
// so UI snapshots can be taken concurrently.
type Store struct {
	mu         sync.RWMutex
	seed       []*domain.Pool
	pools      []*domain.Pool
	congestion float64
	historyLen int
}

// NewStore creates a Store seeded with the default market.
func NewStore(historyLen int) *Store {
	return NewStoreWithPools(domain.DefaultPools(historyLen), historyLen)
}

// NewStoreWithPools creates a Store seeded with a custom market. Reset
// restores this seed, not the default one.
func NewStoreWithPools(pools []*domain.Pool, historyLen int) *Store {
	s := &Store{
		seed:       pools,
		congestion: DefaultCongestion,
		historyLen: historyLen,
	}
	s.pools = clonePools(pools)
	return s
}

// Reset reseeds the market to its initial state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools = clonePools(s.seed)
	s.congestion = DefaultCongestion
}

func clonePools(pools []*domain.Pool) []*domain.Pool {
	out := make([]*domain.Pool, len(pools))
	for i, p := range pools {
		out[i] = p.Clone()
	}
	return out
}

// Snapshot returns a deep copy of the current pool set.
func (s *Store) Snapshot() []*domain.Pool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePools(s.pools)
}

// Congestion returns the current network congestion in [0.1, 1.0].
func (s *Store) Congestion() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.congestion
}

// HistoryLen returns the price history capacity of each pool.
func (s *Store) HistoryLen() int {
	return s.historyLen
}

// mutate runs fn against the live pool set under the write lock and stores
// the congestion value it returns.
func (s *Store) mutate(fn func(pools []*domain.Pool, congestion float64) float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.congestion = fn(s.pools, s.congestion)
}
