package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/defisim/flashloan-bot/business/arbitrage/domain"
	marketDomain "github.com/defisim/flashloan-bot/business/market/domain"
	"github.com/defisim/flashloan-bot/internal/asset"
)

func testScannerConfig() ScannerConfig {
	return ScannerConfig{
		SpatialLoanUSDC:    decimal.NewFromInt(1_000_000),
		TriangularLoanWETH: decimal.NewFromInt(400),
		LoanFeeRate:        decimal.RequireFromString("0.0009"),
		ETHPriceUSD:        decimal.NewFromInt(2500),
	}
}

func pool(id, venue string, pair marketDomain.Pair, reserveA, reserveB string) *marketDomain.Pool {
	var a, b *asset.Asset
	switch pair {
	case marketDomain.PairWETHUSDC:
		a, b = asset.WETH, asset.USDC
	case marketDomain.PairUSDCDAI:
		a, b = asset.USDC, asset.DAI
	case marketDomain.PairDAIWETH:
		a, b = asset.DAI, asset.WETH
	}
	return &marketDomain.Pool{
		ID:       id,
		Venue:    venue,
		Pair:     pair,
		TokenA:   a,
		TokenB:   b,
		ReserveA: decimal.RequireFromString(reserveA),
		ReserveB: decimal.RequireFromString(reserveB),
	}
}

func TestScanSpatialPicksCheapBuyAndExpensiveSell(t *testing.T) {
	pools := []*marketDomain.Pool{
		pool("1", "Uniswap V3", marketDomain.PairWETHUSDC, "100000", "248000000"),
		pool("2", "Sushiswap", marketDomain.PairWETHUSDC, "100000", "252000000"),
	}

	s := NewScanner(testScannerConfig())
	opp := s.Scan(pools, 0.5, time.Now())
	if opp == nil {
		t.Fatal("expected an opportunity")
	}

	route, ok := opp.Route.(domain.SpatialRoute)
	if !ok {
		t.Fatalf("expected spatial route, got %T", opp.Route)
	}
	if route.From.ID != "1" || route.To.ID != "2" {
		t.Fatalf("expected buy on 1 and sell on 2, got %s -> %s", route.From.ID, route.To.ID)
	}

	if !opp.GrossProfit.IsPositive() {
		t.Errorf("gross profit = %s, want positive", opp.GrossProfit)
	}
	if !opp.NetProfit.GreaterThan(decimal.NewFromInt(50)) {
		t.Errorf("net profit = %s, want above the submission threshold", opp.NetProfit)
	}

	wantGas := decimal.NewFromInt(80)
	if !opp.GasFee.Equal(wantGas) {
		t.Errorf("gas fee = %s, want %s", opp.GasFee, wantGas)
	}
	wantLoanFee := decimal.NewFromInt(900)
	if !opp.LoanFee.Equal(wantLoanFee) {
		t.Errorf("loan fee = %s, want %s", opp.LoanFee, wantLoanFee)
	}
	wantNet := opp.GrossProfit.Sub(wantGas).Sub(wantLoanFee)
	if !opp.NetProfit.Equal(wantNet) {
		t.Errorf("net = %s, want gross - fees = %s", opp.NetProfit, wantNet)
	}
}

func TestScanSpatialDisqualified(t *testing.T) {
	tests := []struct {
		name  string
		pools []*marketDomain.Pool
	}{
		{
			name: "single venue",
			pools: []*marketDomain.Pool{
				pool("1", "Uniswap V3", marketDomain.PairWETHUSDC, "1000", "2500000"),
			},
		},
		{
			name:  "no venues",
			pools: nil,
		},
	}
	s := NewScanner(testScannerConfig())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if opp := s.scanSpatial(tc.pools, decimal.NewFromInt(80), time.Now()); opp != nil {
				t.Errorf("expected nil opportunity, got %+v", opp)
			}
		})
	}
}

func TestScanTriangularRequiresAllPairs(t *testing.T) {
	s := NewScanner(testScannerConfig())
	pools := []*marketDomain.Pool{
		pool("1", "Uniswap V3", marketDomain.PairWETHUSDC, "1000", "2500000"),
		pool("2", "Curve", marketDomain.PairUSDCDAI, "5000000", "5000000"),
	}
	if opp := s.scanTriangular(pools, decimal.NewFromInt(80), time.Now()); opp != nil {
		t.Errorf("expected nil without a DAI/WETH pool, got %+v", opp)
	}

	pools = append(pools, pool("3", "Balancer", marketDomain.PairDAIWETH, "2500000", "1000"))
	opp := s.scanTriangular(pools, decimal.NewFromInt(80), time.Now())
	if opp == nil {
		t.Fatal("expected an opportunity with all three pairs present")
	}
	wantLoan := decimal.NewFromInt(1_000_000)
	if !opp.LoanUSD.Equal(wantLoan) {
		t.Errorf("loan notional = %s, want %s", opp.LoanUSD, wantLoan)
	}
}

func TestScanReturnsNilWhenNothingQualifies(t *testing.T) {
	s := NewScanner(testScannerConfig())
	pools := []*marketDomain.Pool{
		pool("1", "Uniswap V3", marketDomain.PairWETHUSDC, "1000", "2500000"),
	}
	if opp := s.Scan(pools, 0.5, time.Now()); opp != nil {
		t.Errorf("expected nil, got %+v", opp)
	}
}

func TestRepriceMatchesScanGross(t *testing.T) {
	pools := []*marketDomain.Pool{
		pool("1", "Uniswap V3", marketDomain.PairWETHUSDC, "100000", "248000000"),
		pool("2", "Sushiswap", marketDomain.PairWETHUSDC, "100000", "252000000"),
	}
	s := NewScanner(testScannerConfig())
	opp := s.Scan(pools, 0.5, time.Now())
	if opp == nil {
		t.Fatal("expected an opportunity")
	}

	gross, ok := s.Reprice(opp.Route, pools)
	if !ok {
		t.Fatal("reprice against unchanged pools must succeed")
	}
	if !gross.Equal(opp.GrossProfit) {
		t.Errorf("repriced gross = %s, want %s", gross, opp.GrossProfit)
	}

	gross2, ok := s.Reprice(opp.Route, pools[:1])
	if ok {
		t.Errorf("reprice must fail when a route pool is missing, got %s", gross2)
	}
}
