// Package domain contains the core domain types for the market context.
package domain

import (
	"github.com/shopspring/decimal"

	"github.com/defisim/flashloan-bot/internal/asset"
)

// Pair identifies a token pair traded by a liquidity pool.
type Pair string

const (
	PairWETHUSDC Pair = "WETH/USDC"
	PairUSDCDAI  Pair = "USDC/DAI"
	PairDAIWETH  Pair = "DAI/WETH"
)

// Pool is a constant-product liquidity pool on a simulated venue.
// The instantaneous price of tokenA in tokenB terms is ReserveB / ReserveA.
type Pool struct {
	ID           string
	Venue        string
	Pair         Pair
	TokenA       *asset.Asset
	TokenB       *asset.Asset
	ReserveA     decimal.Decimal
	ReserveB     decimal.Decimal
	PriceHistory []decimal.Decimal // fixed capacity, oldest first
}

// Price returns the instantaneous price of tokenA denominated in tokenB.
func (p *Pool) Price() decimal.Decimal {
	if p.ReserveA.IsZero() {
		return decimal.Zero
	}
	return p.ReserveB.Div(p.ReserveA)
}

// RecordPrice appends a price observation, discarding the oldest entry once
// the history is at capacity.
func (p *Pool) RecordPrice(price decimal.Decimal, capacity int) {
	p.PriceHistory = append(p.PriceHistory, price)
	if len(p.PriceHistory) > capacity {
		p.PriceHistory = p.PriceHistory[len(p.PriceHistory)-capacity:]
	}
}

// Clone returns a deep copy of the pool.
func (p *Pool) Clone() *Pool {
	history := make([]decimal.Decimal, len(p.PriceHistory))
	copy(history, p.PriceHistory)

	clone := *p
	clone.PriceHistory = history
	return &clone
}

// SwapOut returns the constant-product AMM output for a given input:
// out = reserveOut * in / (reserveIn + in).
func SwapOut(in, reserveIn, reserveOut decimal.Decimal) decimal.Decimal {
	denom := reserveIn.Add(in)
	if denom.IsZero() {
		return decimal.Zero
	}
	return reserveOut.Mul(in).Div(denom)
}

// FindByID returns the pool with the given id, or nil.
func FindByID(pools []*Pool, id string) *Pool {
	for _, p := range pools {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FilterByPair returns the pools trading the given pair.
func FilterByPair(pools []*Pool, pair Pair) []*Pool {
	var out []*Pool
	for _, p := range pools {
		if p.Pair == pair {
			out = append(out, p)
		}
	}
	return out
}
