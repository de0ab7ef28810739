package app

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	arbApp "github.com/defisim/flashloan-bot/business/arbitrage/app"
	"github.com/defisim/flashloan-bot/business/engine/domain"
	marketApp "github.com/defisim/flashloan-bot/business/market/app"
	marketDomain "github.com/defisim/flashloan-bot/business/market/domain"
	"github.com/defisim/flashloan-bot/internal/apperror"
	"github.com/defisim/flashloan-bot/internal/asset"
	"github.com/defisim/flashloan-bot/internal/config"
	"github.com/defisim/flashloan-bot/internal/logger"
)

func testSimConfig() config.SimulatorConfig {
	return config.SimulatorConfig{
		TickInterval:        time.Millisecond,
		ResolveDelay:        0,
		SubmitThresholdUSD:  50,
		MinGasUSD:           100,
		FrontRunProbability: 0,
		SpatialLoanUSDC:     1_000_000,
		TriangularLoanWETH:  400,
		LoanFeeRate:         0.0009,
		ETHPriceUSD:         2500,
		InitialGasETH:       0.5,
		FaucetAmountETH:     0.5,
		FaucetPerMinute:     6,
		InitialBlock:        19_845_321,
	}
}

// deepMarket seeds two WETH/USDC venues deep enough that the price gap beats
// the swap impact of the full loan notional, so every scan finds a
// submittable opportunity.
func deepMarket() []*marketDomain.Pool {
	return []*marketDomain.Pool{
		{
			ID: "1", Venue: "Uniswap v3", Pair: marketDomain.PairWETHUSDC,
			TokenA: asset.WETH, TokenB: asset.USDC,
			ReserveA: decimal.NewFromInt(100_000),
			ReserveB: decimal.NewFromInt(248_000_000),
		},
		{
			ID: "2", Venue: "SushiSwap", Pair: marketDomain.PairWETHUSDC,
			TokenA: asset.WETH, TokenB: asset.USDC,
			ReserveA: decimal.NewFromInt(100_000),
			ReserveB: decimal.NewFromInt(252_000_000),
		},
	}
}

func newTestEngine(t *testing.T, cfg config.SimulatorConfig, seed int64) *Engine {
	t.Helper()

	store := marketApp.NewStoreWithPools(deepMarket(), 20)
	rng := rand.New(rand.NewSource(seed))
	// Zero rates keep the market static tick to tick.
	mutator := marketApp.NewMutator(store, rng, marketApp.MutatorConfig{})
	scanner := arbApp.NewScanner(arbApp.ScannerConfig{
		SpatialLoanUSDC:    cfg.SpatialLoanDecimal(),
		TriangularLoanWETH: cfg.TriangularLoanDecimal(),
		LoanFeeRate:        cfg.LoanFeeRateDecimal(),
		ETHPriceUSD:        cfg.ETHPriceDecimal(),
	})
	log := logger.New(io.Discard, logger.LevelError, "test", nil)

	e, err := New(cfg, store, mutator, scanner, rng, log)
	require.NoError(t, err)
	return e
}

func countEvents(events []domain.Event, substr string) int {
	n := 0
	for _, e := range events {
		if strings.Contains(e.Message, substr) {
			n++
		}
	}
	return n
}

func TestStartLiveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.StartLive(ctx))
	require.NoError(t, e.StartLive(ctx))
	assert.Equal(t, domain.StatusLive, e.Snapshot().Status)

	require.NoError(t, e.StopLive(ctx))
	require.NoError(t, e.StopLive(ctx))
	assert.Equal(t, domain.StatusStopped, e.Snapshot().Status)
}

func TestSinglePendingSlot(t *testing.T) {
	ctx := context.Background()
	cfg := testSimConfig()
	cfg.ResolveDelay = time.Hour
	e := newTestEngine(t, cfg, 1)

	require.NoError(t, e.StartLive(ctx))
	e.Tick(ctx)

	snap := e.Snapshot()
	require.Len(t, snap.Trades, 1)
	assert.Equal(t, domain.TradePending, snap.Trades[0].Status)
	assert.NotEmpty(t, snap.PendingID)

	// Further ticks must not submit while one transaction is in flight.
	e.Tick(ctx)
	e.Tick(ctx)
	snap = e.Snapshot()
	assert.Len(t, snap.Trades, 1)
	assert.Equal(t, snap.Trades[0].ID, snap.PendingID)
}

func TestResolveSuccessAgainstStaticMarket(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.StartLive(ctx))
	e.Tick(ctx) // submit
	e.Tick(ctx) // resolve, market unchanged

	snap := e.Snapshot()
	require.Len(t, snap.Trades, 1)
	trade := snap.Trades[0]

	assert.Equal(t, domain.TradeSuccess, trade.Status)
	assert.Empty(t, trade.FailureReason)
	assert.True(t, trade.NetProfit.GreaterThan(decimal.NewFromInt(50)))
	assert.True(t, snap.TotalProfit.Equal(trade.NetProfit))
	assert.Equal(t, 1, snap.SuccessCount)
	assert.Equal(t, 0, snap.FailureCount)
	assert.Equal(t, 1.0, snap.WinRate)
	assert.Empty(t, snap.PendingID)

	assert.True(t, snap.Checklist.ProfitableTrade)
	assert.True(t, snap.Checklist.CalculatesNetProfit)
	assert.False(t, snap.Checklist.TriangularArbitrage)
}

func TestForcedFrontRun(t *testing.T) {
	ctx := context.Background()
	cfg := testSimConfig()
	cfg.FrontRunProbability = 1.0
	e := newTestEngine(t, cfg, 1)

	require.NoError(t, e.StartLive(ctx))
	e.Tick(ctx) // submit at congestion 0.5, gas fee 80
	e.Tick(ctx) // resolve as front-run

	snap := e.Snapshot()
	require.Len(t, snap.Trades, 1)
	trade := snap.Trades[0]

	assert.Equal(t, domain.TradeFailed, trade.Status)
	assert.Equal(t, domain.ReasonFrontRun, trade.FailureReason)
	assert.True(t, trade.NetProfit.Equal(decimal.NewFromInt(-80)),
		"net profit = %s, want exactly -80", trade.NetProfit)
	assert.True(t, snap.TotalProfit.IsZero())
	assert.True(t, snap.Checklist.HandlesFrontRunning)
	assert.True(t, snap.Checklist.RevertsUnprofitable)
}

func TestSlippageClassification(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.StartLive(ctx))
	e.Tick(ctx) // submit at congestion 0.5, gas fee 80
	require.NotNil(t, e.pending)

	// Inflate the submission-time estimate so the recomputed net, unchanged
	// against the static market, lands below half of it.
	e.pending.EstimatedNet = decimal.NewFromInt(100_000)
	e.Tick(ctx) // resolve

	snap := e.Snapshot()
	require.Len(t, snap.Trades, 1)
	trade := snap.Trades[0]

	assert.Equal(t, domain.TradeFailed, trade.Status)
	assert.Equal(t, domain.ReasonSlippage, trade.FailureReason)
	assert.True(t, trade.NetProfit.Equal(decimal.NewFromInt(-80)),
		"net profit = %s, want the sunk gas cost", trade.NetProfit)
	assert.True(t, trade.Slippage.IsPositive(), "slippage = estimate minus realized net")
	assert.True(t, snap.TotalProfit.IsZero())
	assert.True(t, snap.Checklist.HandlesPriceSlippage)
	assert.True(t, snap.Checklist.RevertsUnprofitable)
}

func TestGasExhaustionHalts(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.StartLive(ctx))
	e.gasETH = decimal.RequireFromString("0.039") // $97.50 at 2500, below the $100 floor

	e.Tick(ctx)

	snap := e.Snapshot()
	assert.Equal(t, domain.StatusStopped, snap.Status)
	assert.Empty(t, snap.Trades, "no scan may run on the halting tick")
	assert.Equal(t, 1, countEvents(snap.Events, "critically low"))
	assert.False(t, snap.Checklist.KillSwitch, "automatic halt must not mark the kill switch")
}

func TestAlertFiresOnceOnThirdFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testSimConfig()
	cfg.FrontRunProbability = 1.0 // every resolution fails
	e := newTestEngine(t, cfg, 1)

	require.NoError(t, e.StartLive(ctx))

	// Each failure takes a submit tick and a resolve tick.
	for i := 0; i < 4; i++ {
		e.Tick(ctx)
		e.Tick(ctx)
	}

	snap := e.Snapshot()
	assert.Equal(t, 4, snap.FailureCount)
	assert.True(t, snap.Checklist.SendsAlerts)
	assert.Equal(t, 1, countEvents(snap.Events, "CRITICAL ALERT"),
		"alert must fire exactly once per failure streak")
}

func TestStopDiscardsPendingWithoutScoring(t *testing.T) {
	ctx := context.Background()
	cfg := testSimConfig()
	cfg.ResolveDelay = time.Hour
	e := newTestEngine(t, cfg, 1)

	require.NoError(t, e.StartLive(ctx))
	e.Tick(ctx)
	require.NotEmpty(t, e.Snapshot().PendingID)

	require.NoError(t, e.StopLive(ctx))

	snap := e.Snapshot()
	assert.Equal(t, domain.StatusStopped, snap.Status)
	assert.Empty(t, snap.PendingID)
	require.Len(t, snap.Trades, 1)
	assert.Equal(t, domain.TradePending, snap.Trades[0].Status)
	assert.Equal(t, 0, snap.SuccessCount)
	assert.Equal(t, 0, snap.FailureCount)
}

func TestKillSwitchSetsFlag(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.StartLive(ctx))
	require.NoError(t, e.KillSwitch(ctx))

	snap := e.Snapshot()
	assert.Equal(t, domain.StatusStopped, snap.Status)
	assert.True(t, snap.Checklist.KillSwitch)
	assert.Equal(t, 1, countEvents(snap.Events, "KILL SWITCH ENGAGED"))
}

func TestKillSwitchWhileStoppedIsNoOp(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.KillSwitch(ctx))

	snap := e.Snapshot()
	assert.Equal(t, domain.StatusStopped, snap.Status)
	assert.False(t, snap.Checklist.KillSwitch)
	assert.Equal(t, 0, countEvents(snap.Events, "KILL SWITCH ENGAGED"))
}

func TestKillSwitchCancelsBacktest(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.RunBacktest(ctx))
	require.NoError(t, e.KillSwitch(ctx))
	assert.Equal(t, domain.StatusStopped, e.Snapshot().Status)

	require.Never(t, func() bool {
		return countEvents(e.Snapshot().Events, "Backtest complete") > 0
	}, 3*time.Second, 100*time.Millisecond,
		"a cancelled backtest must not narrate completion")
}

func TestFaucetRules(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.StartLive(ctx))
	err := e.RequestFaucet(ctx)
	assert.True(t, apperror.IsCode(err, apperror.CodeFaucetWhileLive))

	require.NoError(t, e.StopLive(ctx))
	before := e.Snapshot().GasTankETH
	require.NoError(t, e.RequestFaucet(ctx))
	after := e.Snapshot().GasTankETH
	assert.True(t, after.Sub(before).Equal(decimal.RequireFromString("0.5")))

	err = e.RequestFaucet(ctx)
	assert.True(t, apperror.IsCode(err, apperror.CodeFaucetRateLimited))
}

func TestBacktestLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(t, testSimConfig(), 1)

	require.NoError(t, e.RunBacktest(ctx))
	assert.Equal(t, domain.StatusBacktesting, e.Snapshot().Status)

	err := e.RunBacktest(ctx)
	assert.True(t, apperror.IsCode(err, apperror.CodeBacktestInProgress))

	require.Eventually(t, func() bool {
		return e.Snapshot().Status == domain.StatusStopped
	}, 5*time.Second, 100*time.Millisecond)

	assert.Equal(t, 1, countEvents(e.Snapshot().Events, "Backtest complete"))
}

func TestRunsAreReproducibleForFixedSeed(t *testing.T) {
	ctx := context.Background()

	run := func() domain.Snapshot {
		cfg := testSimConfig()
		cfg.FrontRunProbability = 0.1
		e := newTestEngine(t, cfg, 42)
		require.NoError(t, e.StartLive(ctx))
		for i := 0; i < 20; i++ {
			e.Tick(ctx)
		}
		return e.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Block, b.Block)
	assert.Equal(t, len(a.Trades), len(b.Trades))
	assert.True(t, a.TotalProfit.Equal(b.TotalProfit),
		"profit %s vs %s", a.TotalProfit, b.TotalProfit)
	assert.Equal(t, a.Checklist, b.Checklist)
}
