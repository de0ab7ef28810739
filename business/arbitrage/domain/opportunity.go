package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Opportunity represents the best arbitrage candidate found in one scan.
// Profit figures are estimates against the scanned market snapshot; the
// realized outcome is recomputed at settlement time.
type Opportunity struct {
	Route     Route
	Timestamp time.Time

	// LoanUSD is the flash-loan notional in USD-equivalent units.
	LoanUSD decimal.Decimal

	GrossProfit decimal.Decimal
	GasFee      decimal.Decimal
	LoanFee     decimal.Decimal
	NetProfit   decimal.Decimal
}

// IsProfitable returns true if the estimated net profit clears the given
// submission threshold.
func (o *Opportunity) IsProfitable(threshold decimal.Decimal) bool {
	return o != nil && o.NetProfit.GreaterThan(threshold)
}
