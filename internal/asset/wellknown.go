package asset

import "github.com/ethereum/go-ethereum/common"

// Well-known token addresses on Ethereum Mainnet
var (
	AddrWETH = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	AddrUSDC = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	AddrDAI  = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
)

// Well-known Assets (pre-created instances)
var (
	WETH = NewAsset("WETH", "Wrapped Ether", 18, AddrWETH)
	USDC = NewAsset("USDC", "USD Coin", 6, AddrUSDC)
	DAI  = NewAsset("DAI", "Dai Stablecoin", 18, AddrDAI)
	USD  = NewAsset("USD", "US Dollar", 2, common.Address{})
)

// Registry resolves assets by symbol.
type Registry struct {
	bySymbol map[string]*Asset
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{bySymbol: make(map[string]*Asset)}
}

// DefaultRegistry returns a Registry pre-populated with the simulator's assets.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, a := range []*Asset{WETH, USDC, DAI, USD} {
		r.Add(a)
	}
	return r
}

// Add registers an asset. Later registrations with the same symbol win.
func (r *Registry) Add(a *Asset) {
	r.bySymbol[a.Symbol()] = a
}

// BySymbol resolves an asset by its ticker symbol, or nil if unknown.
func (r *Registry) BySymbol(symbol string) *Asset {
	return r.bySymbol[symbol]
}
