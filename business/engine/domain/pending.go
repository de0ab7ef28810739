package domain

import (
	"time"

	"github.com/shopspring/decimal"

	arbDomain "github.com/defisim/flashloan-bot/business/arbitrage/domain"
)

// PendingTransaction is the single in-flight slot. At most one exists
// system-wide; it is cleared the instant resolution begins.
type PendingTransaction struct {
	ID        string
	ResolveAt time.Time
	Route     arbDomain.Route
	AmountUSD decimal.Decimal

	// Fees fixed at submission time; resolution never recomputes them.
	GasFee  decimal.Decimal
	LoanFee decimal.Decimal

	// EstimatedNet is the net profit projected at submission, used as the
	// slippage baseline at resolution.
	EstimatedNet decimal.Decimal
}

// Due reports whether the transaction is eligible for settlement.
func (p *PendingTransaction) Due(now time.Time) bool {
	return !now.Before(p.ResolveAt)
}
