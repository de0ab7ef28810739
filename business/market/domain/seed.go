package domain

import (
	"github.com/shopspring/decimal"

	"github.com/defisim/flashloan-bot/internal/asset"
)

// seedPool describes one entry of the default market.
type seedPool struct {
	id       string
	venue    string
	pair     Pair
	tokenA   *asset.Asset
	tokenB   *asset.Asset
	reserveA int64
	reserveB int64
	price    float64
}

// The default market: four WETH/USDC venues for the spatial pair, plus
// USDC/DAI and DAI/WETH venues completing the triangle.
var seeds = []seedPool{
	{"1", "Uniswap v3", PairWETHUSDC, asset.WETH, asset.USDC, 2_000, 5_000_000, 2500},
	{"2", "SushiSwap", PairWETHUSDC, asset.WETH, asset.USDC, 1_500, 3_757_500, 2505},
	{"3", "Curve", PairWETHUSDC, asset.WETH, asset.USDC, 2_500, 6_242_500, 2497},
	{"4", "Balancer", PairWETHUSDC, asset.WETH, asset.USDC, 1_800, 4_509_000, 2505},

	{"5", "Uniswap v3", PairUSDCDAI, asset.USDC, asset.DAI, 1_000_000, 1_001_000, 1.001},
	{"6", "Curve", PairUSDCDAI, asset.USDC, asset.DAI, 2_000_000, 1_998_000, 0.999},

	{"7", "SushiSwap", PairDAIWETH, asset.DAI, asset.WETH, 4_000_000, 1_600, 0.0004},
	{"8", "Balancer", PairDAIWETH, asset.DAI, asset.WETH, 3_000_000, 1_205, 0.0004016},
}

// DefaultPools builds a fresh copy of the default market. Each pool's history
// is pre-filled with its seed price.
func DefaultPools(historyLen int) []*Pool {
	pools := make([]*Pool, 0, len(seeds))
	for _, s := range seeds {
		history := make([]decimal.Decimal, historyLen)
		price := decimal.NewFromFloat(s.price)
		for i := range history {
			history[i] = price
		}

		pools = append(pools, &Pool{
			ID:           s.id,
			Venue:        s.venue,
			Pair:         s.pair,
			TokenA:       s.tokenA,
			TokenB:       s.tokenB,
			ReserveA:     decimal.NewFromInt(s.reserveA),
			ReserveB:     decimal.NewFromInt(s.reserveB),
			PriceHistory: history,
		})
	}
	return pools
}
