package app

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStepPreservesConstantProduct(t *testing.T) {
	store := NewStore(20)
	m := NewMutator(store, rand.New(rand.NewSource(7)), MutatorConfig{
		DriftRate:      0.001,
		MaxVolumeRate:  0.01,
		CongestionStep: 0.2,
	})

	before := map[string]decimal.Decimal{}
	for _, p := range store.Snapshot() {
		before[p.ID] = p.ReserveA.Mul(p.ReserveB)
	}

	tolerance := decimal.RequireFromString("0.000001") // relative

	for i := 0; i < 50; i++ {
		m.Step()
		for _, p := range store.Snapshot() {
			product := p.ReserveA.Mul(p.ReserveB)
			diff := product.Sub(before[p.ID]).Abs().Div(before[p.ID])
			if diff.GreaterThan(tolerance) {
				t.Fatalf("step %d pool %s: product drifted by %s", i, p.ID, diff)
			}
			before[p.ID] = product
		}
	}
}

func TestStepKeepsReservesPositive(t *testing.T) {
	store := NewStore(20)
	m := NewMutator(store, rand.New(rand.NewSource(3)), MutatorConfig{
		DriftRate:      0.001,
		MaxVolumeRate:  0.01,
		CongestionStep: 0.2,
	})

	for i := 0; i < 200; i++ {
		m.Step()
	}
	for _, p := range store.Snapshot() {
		if !p.ReserveA.IsPositive() || !p.ReserveB.IsPositive() {
			t.Fatalf("pool %s has non-positive reserves after mutation", p.ID)
		}
	}
}

func TestCongestionStaysBounded(t *testing.T) {
	store := NewStore(20)
	// An oversized step would leave the bounds immediately without clamping.
	m := NewMutator(store, rand.New(rand.NewSource(11)), MutatorConfig{CongestionStep: 4.0})

	for i := 0; i < 100; i++ {
		m.Step()
		c := store.Congestion()
		if c < 0.1 || c > 1.0 {
			t.Fatalf("congestion %f out of [0.1, 1.0]", c)
		}
	}
}

func TestStepCapsPriceHistory(t *testing.T) {
	store := NewStore(5)
	m := NewMutator(store, rand.New(rand.NewSource(1)), MutatorConfig{DriftRate: 0.001})

	for i := 0; i < 20; i++ {
		m.Step()
	}
	for _, p := range store.Snapshot() {
		if len(p.PriceHistory) != 5 {
			t.Fatalf("pool %s history length = %d, want 5", p.ID, len(p.PriceHistory))
		}
	}
}

func TestResetRestoresSeedMarket(t *testing.T) {
	store := NewStore(20)
	m := NewMutator(store, rand.New(rand.NewSource(9)), MutatorConfig{
		DriftRate:     0.001,
		MaxVolumeRate: 0.01,
	})

	initial := store.Snapshot()
	for i := 0; i < 10; i++ {
		m.Step()
	}
	store.Reset()

	after := store.Snapshot()
	for i, p := range after {
		if !p.ReserveA.Equal(initial[i].ReserveA) || !p.ReserveB.Equal(initial[i].ReserveB) {
			t.Fatalf("pool %s not restored by reset", p.ID)
		}
	}
	if store.Congestion() != DefaultCongestion {
		t.Fatalf("congestion = %f, want %f", store.Congestion(), DefaultCongestion)
	}
}
