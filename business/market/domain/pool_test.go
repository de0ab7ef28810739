package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSwapOut(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		reserveIn  string
		reserveOut string
		want       string
	}{
		{
			name: "symmetric pool half depth",
			in:   "1000", reserveIn: "1000", reserveOut: "1000",
			want: "500",
		},
		{
			name: "small trade approximates spot price",
			in:   "1", reserveIn: "1000000", reserveOut: "2500000000",
			want: "2499.9975000024999975",
		},
		{
			name: "zero input",
			in:   "0", reserveIn: "1000", reserveOut: "5000",
			want: "0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SwapOut(
				decimal.RequireFromString(tc.in),
				decimal.RequireFromString(tc.reserveIn),
				decimal.RequireFromString(tc.reserveOut),
			)
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Errorf("SwapOut = %s, want %s", got, want)
			}
		})
	}
}

func TestRecordPriceCapsHistory(t *testing.T) {
	p := &Pool{}
	for i := 0; i < 30; i++ {
		p.RecordPrice(decimal.NewFromInt(int64(i)), 20)
	}
	if len(p.PriceHistory) != 20 {
		t.Fatalf("history length = %d, want 20", len(p.PriceHistory))
	}
	if !p.PriceHistory[0].Equal(decimal.NewFromInt(10)) {
		t.Errorf("oldest retained = %s, want 10", p.PriceHistory[0])
	}
	if !p.PriceHistory[19].Equal(decimal.NewFromInt(29)) {
		t.Errorf("newest = %s, want 29", p.PriceHistory[19])
	}
}

func TestDefaultPools(t *testing.T) {
	pools := DefaultPools(20)
	if len(pools) != 8 {
		t.Fatalf("pool count = %d, want 8", len(pools))
	}

	if n := len(FilterByPair(pools, PairWETHUSDC)); n != 4 {
		t.Errorf("WETH/USDC pools = %d, want 4", n)
	}
	if n := len(FilterByPair(pools, PairUSDCDAI)); n != 2 {
		t.Errorf("USDC/DAI pools = %d, want 2", n)
	}
	if n := len(FilterByPair(pools, PairDAIWETH)); n != 2 {
		t.Errorf("DAI/WETH pools = %d, want 2", n)
	}

	for _, p := range pools {
		if !p.ReserveA.IsPositive() || !p.ReserveB.IsPositive() {
			t.Errorf("pool %s has non-positive reserves", p.ID)
		}
		if len(p.PriceHistory) != 20 {
			t.Errorf("pool %s history length = %d, want 20", p.ID, len(p.PriceHistory))
		}
	}

	uni := FindByID(pools, "1")
	if uni == nil {
		t.Fatal("pool 1 missing")
	}
	if !uni.Price().Equal(decimal.NewFromInt(2500)) {
		t.Errorf("pool 1 price = %s, want 2500", uni.Price())
	}

	// Fresh copies must not alias each other.
	other := DefaultPools(20)
	uni.ReserveA = decimal.NewFromInt(1)
	if other[0].ReserveA.Equal(decimal.NewFromInt(1)) {
		t.Error("DefaultPools returned aliased state")
	}
}
