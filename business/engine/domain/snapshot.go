package domain

import (
	"github.com/shopspring/decimal"
)

// PoolView is a read-only projection of one liquidity pool for display.
type PoolView struct {
	ID           string
	Venue        string
	Pair         string
	ReserveA     decimal.Decimal
	ReserveB     decimal.Decimal
	Price        decimal.Decimal
	PriceHistory []decimal.Decimal
}

// Snapshot is the engine's full queryable state at one instant. All slices
// are copies; a Snapshot never aliases live engine state.
type Snapshot struct {
	Status      BotStatus
	Block       uint64
	TotalProfit decimal.Decimal
	GasTankETH  decimal.Decimal
	Congestion  float64

	Trades    []Trade
	Checklist Checklist
	Events    []Event
	Pools     []PoolView

	SuccessCount int
	FailureCount int
	WinRate      float64

	PendingID string
}
