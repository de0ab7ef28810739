package app

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/defisim/flashloan-bot/business/market/domain"
)

// Congestion bounds for the random walk.
const (
	congestionFloor = 0.1
	congestionCeil  = 1.0
)

// MutatorConfig holds the per-tick mutation tunables.
type MutatorConfig struct {
	DriftRate      float64 // total width of the multiplicative drift band, e.g. 0.001 for +/-0.05%
	MaxVolumeRate  float64 // fraction of reserveA traded externally per tick, at most
	CongestionStep float64 // total width of the congestion walk band, e.g. 0.2 for +/-0.1
}

// Mutator advances the market one step per tick: each pool's price drifts by
// a small multiplicative factor and absorbs one simulated external trade,
// both preserving the constant product; congestion random-walks within its
// bounds.
type Mutator struct {
	store *Store
	rng   *rand.Rand
	cfg   MutatorConfig
}

// NewMutator creates a Mutator over the given store.
func NewMutator(store *Store, rng *rand.Rand, cfg MutatorConfig) *Mutator {
	return &Mutator{store: store, rng: rng, cfg: cfg}
}

// Step advances every pool and the congestion scalar by one tick.
func (m *Mutator) Step() {
	m.store.mutate(func(pools []*domain.Pool, congestion float64) float64 {
		for _, p := range pools {
			m.driftPool(p)
			m.tradePool(p)
			p.RecordPrice(p.Price(), m.store.historyLen)
		}

		return m.walkCongestion(congestion)
	})
}

// driftPool applies a multiplicative price drift of +/- DriftRate/2 while
// keeping reserveA*reserveB unchanged: scaling reserveA by 1/sqrt(f) and
// reserveB by sqrt(f) moves the price by exactly f.
func (m *Mutator) driftPool(p *domain.Pool) {
	f := 1 + (m.rng.Float64()-0.5)*m.cfg.DriftRate
	scale := decimal.NewFromFloat(math.Sqrt(f))
	if scale.IsZero() {
		return
	}
	p.ReserveA = p.ReserveA.Div(scale)
	p.ReserveB = p.ReserveB.Mul(scale)
}

// tradePool absorbs one simulated external trade of up to MaxVolumeRate of
// reserveA in a random direction, recomputing reserveB from the invariant so
// the constant product is preserved.
func (m *Mutator) tradePool(p *domain.Pool) {
	k := p.ReserveA.Mul(p.ReserveB)
	volume := p.ReserveA.Mul(decimal.NewFromFloat(m.rng.Float64() * m.cfg.MaxVolumeRate))

	var newReserveA decimal.Decimal
	if m.rng.Float64() > 0.5 {
		newReserveA = p.ReserveA.Add(volume)
	} else {
		newReserveA = p.ReserveA.Sub(volume)
	}
	if !newReserveA.IsPositive() {
		return
	}

	p.ReserveA = newReserveA
	p.ReserveB = k.Div(newReserveA)
}

func (m *Mutator) walkCongestion(congestion float64) float64 {
	congestion += (m.rng.Float64() - 0.5) * m.cfg.CongestionStep
	return math.Max(congestionFloor, math.Min(congestionCeil, congestion))
}
