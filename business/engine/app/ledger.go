package app

import (
	"github.com/shopspring/decimal"

	"github.com/defisim/flashloan-bot/business/engine/domain"
)

// Settlement carries the terminal outcome applied to a pending trade.
type Settlement struct {
	ID            string
	Status        domain.TradeStatus
	NetProfit     decimal.Decimal
	GrossProfit   decimal.Decimal
	Slippage      decimal.Decimal
	FailureReason string
}

// Ledger accumulates trade records, running profit and the checklist flags.
// It is not safe for concurrent use; the engine serializes access behind its
// tick mutex.
type Ledger struct {
	trades      []domain.Trade
	totalProfit decimal.Decimal
	successes   int
	failures    int
	streak      int
	checklist   domain.Checklist
}

// NewLedger creates an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{totalProfit: decimal.Zero}
}

// Reset discards all accumulated state, including the checklist.
func (l *Ledger) Reset() {
	l.trades = nil
	l.totalProfit = decimal.Zero
	l.successes = 0
	l.failures = 0
	l.streak = 0
	l.checklist = domain.Checklist{}
}

// ClearTrades drops the trade history and profit but keeps the checklist.
func (l *Ledger) ClearTrades() {
	l.trades = nil
	l.totalProfit = decimal.Zero
	l.successes = 0
	l.failures = 0
	l.streak = 0
}

// Submit records a new trade in Pending state at the head of the history.
func (l *Ledger) Submit(t domain.Trade) {
	l.trades = domain.PrependTrade(l.trades, t)
}

// Settle applies a terminal outcome to the trade with the matching ID.
// Success adds the net profit to the running total and resets the failure
// streak; failure leaves the total untouched and extends the streak. Returns
// false when no trade carries the ID.
func (l *Ledger) Settle(s Settlement) bool {
	for i := range l.trades {
		if l.trades[i].ID != s.ID {
			continue
		}
		t := &l.trades[i]
		t.Status = s.Status
		t.NetProfit = s.NetProfit
		t.GrossProfit = s.GrossProfit
		t.Slippage = s.Slippage
		t.FailureReason = s.FailureReason

		if s.Status == domain.TradeSuccess {
			l.totalProfit = l.totalProfit.Add(s.NetProfit)
			l.successes++
			l.streak = 0
		} else {
			l.failures++
			l.streak++
		}
		return true
	}
	return false
}

// Trades returns a copy of the trade history, newest first.
func (l *Ledger) Trades() []domain.Trade {
	out := make([]domain.Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// TotalProfit is the sum of net profit over successful trades.
func (l *Ledger) TotalProfit() decimal.Decimal {
	return l.totalProfit
}

// Successes returns the number of successfully settled trades.
func (l *Ledger) Successes() int {
	return l.successes
}

// Failures returns the number of failed trades.
func (l *Ledger) Failures() int {
	return l.failures
}

// Streak returns the current consecutive-failure count.
func (l *Ledger) Streak() int {
	return l.streak
}

// WinRate is successes over settled trades. Pending trades do not count
// toward the denominator.
func (l *Ledger) WinRate() float64 {
	settled := l.successes + l.failures
	if settled == 0 {
		return 0
	}
	return float64(l.successes) / float64(settled)
}

// Checklist exposes the flags for the engine to mark. Flags must only move
// false to true outside Reset.
func (l *Ledger) Checklist() *domain.Checklist {
	return &l.checklist
}
