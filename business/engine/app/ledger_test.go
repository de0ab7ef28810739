package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defisim/flashloan-bot/business/engine/domain"
)

func pendingTrade(id string) domain.Trade {
	return domain.Trade{
		ID:        id,
		Timestamp: time.Now(),
		Pair:      "WETH/USDC",
		Status:    domain.TradePending,
		GasFee:    decimal.NewFromInt(80),
	}
}

func TestLedgerProfitOnlyGrowsOnSuccess(t *testing.T) {
	l := NewLedger()

	l.Submit(pendingTrade("a"))
	ok := l.Settle(Settlement{ID: "a", Status: domain.TradeSuccess, NetProfit: decimal.NewFromInt(120)})
	require.True(t, ok)
	assert.True(t, l.TotalProfit().Equal(decimal.NewFromInt(120)))

	l.Submit(pendingTrade("b"))
	ok = l.Settle(Settlement{ID: "b", Status: domain.TradeFailed, NetProfit: decimal.NewFromInt(-80), FailureReason: domain.ReasonSlippage})
	require.True(t, ok)
	assert.True(t, l.TotalProfit().Equal(decimal.NewFromInt(120)), "failures must not move the total")

	assert.Equal(t, 1, l.Successes())
	assert.Equal(t, 1, l.Failures())
	assert.Equal(t, 0.5, l.WinRate())
}

func TestLedgerStreakResetsOnSuccess(t *testing.T) {
	l := NewLedger()

	for i := 0; i < 2; i++ {
		id := fmt.Sprintf("f%d", i)
		l.Submit(pendingTrade(id))
		require.True(t, l.Settle(Settlement{ID: id, Status: domain.TradeFailed, NetProfit: decimal.NewFromInt(-80)}))
		assert.Equal(t, i+1, l.Streak())
	}

	l.Submit(pendingTrade("s"))
	require.True(t, l.Settle(Settlement{ID: "s", Status: domain.TradeSuccess, NetProfit: decimal.NewFromInt(60)}))
	assert.Equal(t, 0, l.Streak())
}

func TestLedgerWinRateExcludesPending(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, 0.0, l.WinRate())

	l.Submit(pendingTrade("a"))
	l.Submit(pendingTrade("b"))
	assert.Equal(t, 0.0, l.WinRate(), "pending trades must not count")

	require.True(t, l.Settle(Settlement{ID: "a", Status: domain.TradeSuccess, NetProfit: decimal.NewFromInt(75)}))
	assert.Equal(t, 1.0, l.WinRate())
}

func TestLedgerCapsHistoryNewestFirst(t *testing.T) {
	l := NewLedger()

	for i := 0; i < domain.MaxTrades+10; i++ {
		l.Submit(pendingTrade(fmt.Sprintf("t%d", i)))
	}

	trades := l.Trades()
	require.Len(t, trades, domain.MaxTrades)
	assert.Equal(t, fmt.Sprintf("t%d", domain.MaxTrades+9), trades[0].ID)
	assert.Equal(t, "t10", trades[len(trades)-1].ID)
}

func TestLedgerSettleUnknownID(t *testing.T) {
	l := NewLedger()
	assert.False(t, l.Settle(Settlement{ID: "missing", Status: domain.TradeFailed}))
}
