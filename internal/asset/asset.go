// Package asset provides typed token metadata for the simulated market.
package asset

import "github.com/ethereum/go-ethereum/common"

// Asset represents the metadata of a crypto or fiat asset.
// The symbol is display metadata; identity is the mainnet address (or the
// symbol itself for fiat).
type Asset struct {
	symbol   string
	name     string
	decimals uint8
	address  common.Address
}

// NewAsset creates a new Asset with the given parameters.
func NewAsset(symbol, name string, decimals uint8, address common.Address) *Asset {
	if symbol == "" {
		panic("asset: empty symbol")
	}
	if decimals > 30 {
		panic("asset: suspicious decimals (>30)")
	}

	return &Asset{
		symbol:   symbol,
		name:     name,
		decimals: decimals,
		address:  address,
	}
}

// Symbol returns the ticker symbol (e.g., "WETH", "USDC").
func (a *Asset) Symbol() string {
	return a.symbol
}

// Name returns the human-readable name (e.g., "Wrapped Ether").
func (a *Asset) Name() string {
	if a.name == "" {
		return a.symbol
	}
	return a.name
}

// Decimals returns the number of decimal places.
func (a *Asset) Decimals() uint8 {
	return a.decimals
}

// Address returns the mainnet token contract address (zero for fiat).
func (a *Asset) Address() common.Address {
	return a.address
}

// String returns a human-readable representation.
func (a *Asset) String() string {
	return a.symbol
}

// Equals compares two Assets by address, falling back to symbol for fiat.
func (a *Asset) Equals(other *Asset) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.address != (common.Address{}) || other.address != (common.Address{}) {
		return a.address == other.address
	}
	return a.symbol == other.symbol
}
