// Package app contains application services for the arbitrage context.
package app

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/defisim/flashloan-bot/business/arbitrage/domain"
	marketDomain "github.com/defisim/flashloan-bot/business/market/domain"
)

// ScannerConfig holds the notionals and fee parameters for route evaluation.
type ScannerConfig struct {
	SpatialLoanUSDC    decimal.Decimal
	TriangularLoanWETH decimal.Decimal
	LoanFeeRate        decimal.Decimal
	ETHPriceUSD        decimal.Decimal
}

// Scanner finds the best arbitrage route in a market snapshot. It is a pure
// function of pool state and congestion; it holds no mutable state.
type Scanner struct {
	cfg ScannerConfig
}

// NewScanner creates a Scanner.
func NewScanner(cfg ScannerConfig) *Scanner {
	return &Scanner{cfg: cfg}
}

// Scan evaluates the best spatial and best triangular route against the given
// pools and returns the candidate with the higher estimated net profit, or
// nil when neither route can be formed. Ties favor the spatial route.
func (s *Scanner) Scan(pools []*marketDomain.Pool, congestion float64, now time.Time) *domain.Opportunity {
	gasFee := domain.GasFeeUSD(congestion)

	spatial := s.scanSpatial(pools, gasFee, now)
	triangular := s.scanTriangular(pools, gasFee, now)

	switch {
	case spatial == nil:
		return triangular
	case triangular == nil:
		return spatial
	case spatial.NetProfit.GreaterThanOrEqual(triangular.NetProfit):
		return spatial
	default:
		return triangular
	}
}

// scanSpatial picks the cheapest WETH/USDC venue as the buy side and the most
// expensive as the sell side. Fewer than two venues, or both legs landing on
// the same pool, disqualifies the route.
func (s *Scanner) scanSpatial(pools []*marketDomain.Pool, gasFee decimal.Decimal, now time.Time) *domain.Opportunity {
	candidates := marketDomain.FilterByPair(pools, marketDomain.PairWETHUSDC)
	if len(candidates) < 2 {
		return nil
	}

	from := minByPrice(candidates)
	to := maxByPrice(candidates)
	if from.ID == to.ID {
		return nil
	}

	gross := s.GrossSpatial(from, to)
	loanFee := domain.LoanFeeUSD(s.cfg.SpatialLoanUSDC, s.cfg.LoanFeeRate)

	return &domain.Opportunity{
		Route: domain.SpatialRoute{
			From: domain.PoolRef{ID: from.ID, Venue: from.Venue},
			To:   domain.PoolRef{ID: to.ID, Venue: to.Venue},
		},
		Timestamp:   now,
		LoanUSD:     s.cfg.SpatialLoanUSDC,
		GrossProfit: gross,
		GasFee:      gasFee,
		LoanFee:     loanFee,
		NetProfit:   gross.Sub(gasFee).Sub(loanFee),
	}
}

// scanTriangular chains the highest-priced venue of each pair. Any empty pair
// disqualifies the route.
func (s *Scanner) scanTriangular(pools []*marketDomain.Pool, gasFee decimal.Decimal, now time.Time) *domain.Opportunity {
	wethUsdc := marketDomain.FilterByPair(pools, marketDomain.PairWETHUSDC)
	usdcDai := marketDomain.FilterByPair(pools, marketDomain.PairUSDCDAI)
	daiWeth := marketDomain.FilterByPair(pools, marketDomain.PairDAIWETH)
	if len(wethUsdc) == 0 || len(usdcDai) == 0 || len(daiWeth) == 0 {
		return nil
	}

	leg1 := maxByPrice(wethUsdc)
	leg2 := maxByPrice(usdcDai)
	leg3 := maxByPrice(daiWeth)

	gross := s.GrossTriangular(leg1, leg2, leg3)
	loanUSD := s.cfg.TriangularLoanWETH.Mul(s.cfg.ETHPriceUSD)
	loanFee := domain.LoanFeeUSD(loanUSD, s.cfg.LoanFeeRate)

	return &domain.Opportunity{
		Route: domain.TriangularRoute{
			WETHUSDC: domain.PoolRef{ID: leg1.ID, Venue: leg1.Venue},
			USDCDAI:  domain.PoolRef{ID: leg2.ID, Venue: leg2.Venue},
			DAIWETH:  domain.PoolRef{ID: leg3.ID, Venue: leg3.Venue},
		},
		Timestamp:   now,
		LoanUSD:     loanUSD,
		GrossProfit: gross,
		GasFee:      gasFee,
		LoanFee:     loanFee,
		NetProfit:   gross.Sub(gasFee).Sub(loanFee),
	}
}

// GrossSpatial prices a spatial route: borrow USDC, buy WETH on the cheap
// venue, sell it on the expensive venue, all at constant-product output.
// Returns the USDC surplus over the loan notional.
func (s *Scanner) GrossSpatial(from, to *marketDomain.Pool) decimal.Decimal {
	loan := s.cfg.SpatialLoanUSDC
	wethBought := marketDomain.SwapOut(loan, from.ReserveB, from.ReserveA)
	usdcSold := marketDomain.SwapOut(wethBought, to.ReserveA, to.ReserveB)
	return usdcSold.Sub(loan)
}

// GrossTriangular prices a triangular route: chain the WETH notional through
// WETH->USDC, USDC->DAI and DAI->WETH, then convert the WETH delta to USD at
// the reference ETH price.
func (s *Scanner) GrossTriangular(wethUsdc, usdcDai, daiWeth *marketDomain.Pool) decimal.Decimal {
	start := s.cfg.TriangularLoanWETH
	usdc := marketDomain.SwapOut(start, wethUsdc.ReserveA, wethUsdc.ReserveB)
	dai := marketDomain.SwapOut(usdc, usdcDai.ReserveA, usdcDai.ReserveB)
	weth := marketDomain.SwapOut(dai, daiWeth.ReserveA, daiWeth.ReserveB)
	return weth.Sub(start).Mul(s.cfg.ETHPriceUSD)
}

// Reprice recomputes a route's gross profit against the current market state.
// The second return is false if any pool of the route no longer exists.
func (s *Scanner) Reprice(route domain.Route, pools []*marketDomain.Pool) (decimal.Decimal, bool) {
	legs := make([]*marketDomain.Pool, 0, 3)
	for _, id := range route.PoolIDs() {
		p := marketDomain.FindByID(pools, id)
		if p == nil {
			return decimal.Zero, false
		}
		legs = append(legs, p)
	}

	switch route.(type) {
	case domain.SpatialRoute:
		return s.GrossSpatial(legs[0], legs[1]), true
	case domain.TriangularRoute:
		return s.GrossTriangular(legs[0], legs[1], legs[2]), true
	default:
		return decimal.Zero, false
	}
}

func minByPrice(pools []*marketDomain.Pool) *marketDomain.Pool {
	best := pools[0]
	for _, p := range pools[1:] {
		if p.Price().LessThan(best.Price()) {
			best = p
		}
	}
	return best
}

func maxByPrice(pools []*marketDomain.Pool) *marketDomain.Pool {
	best := pools[0]
	for _, p := range pools[1:] {
		if p.Price().GreaterThan(best.Price()) {
			best = p
		}
	}
	return best
}
