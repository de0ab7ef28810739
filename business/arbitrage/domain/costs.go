package domain

import "github.com/shopspring/decimal"

// Fee model constants. Gas is quoted in USD-equivalent units and scales
// linearly with network congestion; the flash-loan provider charges a fixed
// premium on the notional.
var (
	GasBaseUSD         = decimal.NewFromInt(30)
	GasCongestionScale = decimal.NewFromInt(100)
	DefaultLoanFeeRate = decimal.NewFromFloat(0.0009) // 0.09%, Aave V3 premium
)

// GasFeeUSD returns the gas fee for the given congestion level:
// 30 + 100 * congestion.
func GasFeeUSD(congestion float64) decimal.Decimal {
	return GasBaseUSD.Add(GasCongestionScale.Mul(decimal.NewFromFloat(congestion)))
}

// LoanFeeUSD returns the flash-loan provider fee on a USD notional.
func LoanFeeUSD(loanUSD, feeRate decimal.Decimal) decimal.Decimal {
	return loanUSD.Mul(feeRate)
}
