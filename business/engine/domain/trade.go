package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeStatus is the lifecycle state of a trade record.
type TradeStatus string

const (
	TradePending TradeStatus = "Pending"
	TradeSuccess TradeStatus = "Success"
	TradeFailed  TradeStatus = "Failed"
)

// MaxTrades is the number of trade records retained, newest first.
const MaxTrades = 100

// Failure reasons recorded on failed trades.
const (
	ReasonFrontRun = "Front-run by competing bot"
	ReasonSlippage = "Price moved against trade (Slippage)"
)

// Synthetic counterparty addresses shown on every trade record.
const (
	BotAddress  = "0xBOT...dE4d"
	AaveAddress = "0xAAVE...v3"
)

// Trade is one submitted arbitrage attempt. It is created in Pending state
// at submission and mutated exactly once, to Success or Failed, at
// settlement. After that it is immutable history.
type Trade struct {
	ID        string
	Timestamp time.Time
	Pair      string
	Venues    []string
	AmountUSD decimal.Decimal

	Status TradeStatus

	GrossProfit decimal.Decimal
	GasFee      decimal.Decimal
	Slippage    decimal.Decimal
	LoanFee     decimal.Decimal
	NetProfit   decimal.Decimal

	FailureReason string

	FromAddress string
	ToAddress   string
	TokenFlow   []string
}

// PrependTrade puts t at the head of trades, discarding the oldest record
// once MaxTrades is reached.
func PrependTrade(trades []Trade, t Trade) []Trade {
	if len(trades) >= MaxTrades {
		trades = trades[:MaxTrades-1]
	}
	return append([]Trade{t}, trades...)
}
