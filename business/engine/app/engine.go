package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	arbApp "github.com/defisim/flashloan-bot/business/arbitrage/app"
	arbDomain "github.com/defisim/flashloan-bot/business/arbitrage/domain"
	"github.com/defisim/flashloan-bot/business/engine/domain"
	marketApp "github.com/defisim/flashloan-bot/business/market/app"
	"github.com/defisim/flashloan-bot/internal/apperror"
	"github.com/defisim/flashloan-bot/internal/config"
	"github.com/defisim/flashloan-bot/internal/logger"
	"github.com/defisim/flashloan-bot/internal/ratelimit"
)

const (
	meterName  = "flashloan-bot/engine"
	tracerName = "flashloan-bot/engine"
)

// engineMetrics holds OTEL metric instruments.
type engineMetrics struct {
	ticks       metric.Int64Counter
	submissions metric.Int64Counter
	settlements metric.Int64Counter
	totalProfit metric.Float64Gauge
	gasTank     metric.Float64Gauge
}

// Engine drives the simulation: one tick advances the market, then either
// resolves the pending transaction or scans for a new opportunity. All state
// transitions happen behind a single mutex, so a tick is atomic with respect
// to operator commands and snapshot reads.
type Engine struct {
	mu sync.Mutex

	cfg config.SimulatorConfig
	log logger.LoggerInterface

	store   *marketApp.Store
	mutator *marketApp.Mutator
	scanner *arbApp.Scanner
	ledger  *Ledger
	rng     *rand.Rand

	reporter Reporter
	faucet   *ratelimit.Limiter

	status  domain.BotStatus
	block   uint64
	gasETH  decimal.Decimal
	pending *domain.PendingTransaction
	events  []domain.Event

	// alerted arms at most one critical alert per failure streak.
	alerted bool

	ethPrice        decimal.Decimal
	submitThreshold decimal.Decimal
	minGasUSD       decimal.Decimal

	now func() time.Time

	tracer  trace.Tracer
	metrics *engineMetrics
}

// New creates an Engine in Stopped state.
func New(
	cfg config.SimulatorConfig,
	store *marketApp.Store,
	mutator *marketApp.Mutator,
	scanner *arbApp.Scanner,
	rng *rand.Rand,
	log logger.LoggerInterface,
) (*Engine, error) {
	e := &Engine{
		cfg:     cfg,
		log:     log,
		store:   store,
		mutator: mutator,
		scanner: scanner,
		ledger:  NewLedger(),
		rng:     rng,
		faucet:  ratelimit.New(cfg.FaucetPerMinute),

		status: domain.StatusStopped,
		block:  cfg.InitialBlock,
		gasETH: cfg.InitialGasDecimal(),

		ethPrice:        cfg.ETHPriceDecimal(),
		submitThreshold: cfg.SubmitThresholdDecimal(),
		minGasUSD:       cfg.MinGasDecimal(),

		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}

	if err := e.initMetrics(); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	return e, nil
}

// initMetrics initializes OTEL metric instruments.
func (e *Engine) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	e.metrics = &engineMetrics{}

	e.metrics.ticks, err = meter.Int64Counter(
		"sim_ticks_total",
		metric.WithDescription("Total simulation ticks executed"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return err
	}

	e.metrics.submissions, err = meter.Int64Counter(
		"sim_submissions_total",
		metric.WithDescription("Total transactions submitted"),
		metric.WithUnit("{tx}"),
	)
	if err != nil {
		return err
	}

	e.metrics.settlements, err = meter.Int64Counter(
		"sim_settlements_total",
		metric.WithDescription("Total transactions settled"),
		metric.WithUnit("{tx}"),
	)
	if err != nil {
		return err
	}

	e.metrics.totalProfit, err = meter.Float64Gauge(
		"sim_total_profit_usd",
		metric.WithDescription("Accumulated net profit in USD"),
		metric.WithUnit("USD"),
	)
	if err != nil {
		return err
	}

	e.metrics.gasTank, err = meter.Float64Gauge(
		"sim_gas_tank_eth",
		metric.WithDescription("Gas tank balance in ETH"),
		metric.WithUnit("ETH"),
	)
	if err != nil {
		return err
	}

	return nil
}

// SetReporter attaches the front end. Must be called before Run.
func (e *Engine) SetReporter(r Reporter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reporter = r
}

// Run drives the tick loop until ctx is cancelled. Ticks are no-ops unless
// the engine is live, so Run can be started once at process startup.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick(ctx)
		}
	}
}

// Tick executes one simulation step: advance the market and block counter,
// then settle the due pending transaction if one exists, otherwise check the
// gas tank and scan for a new opportunity. The order is fixed; resolution
// and scanning never happen in the same tick.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != domain.StatusLive {
		return
	}

	ctx, span := e.tracer.Start(ctx, "engine.tick")
	defer span.End()

	e.mutator.Step()
	e.block++
	e.metrics.ticks.Add(ctx, 1)
	span.SetAttributes(attribute.Int64("block", int64(e.block)))

	if e.pending != nil {
		if e.pending.Due(e.now()) {
			tx := e.pending
			e.pending = nil
			e.resolve(ctx, tx)
		}
		e.recordGaugesLocked(ctx)
		e.publishLocked()
		return
	}

	if e.gasETH.Mul(e.ethPrice).LessThan(e.minGasUSD) {
		e.haltLocked(ctx, "Gas tank balance critically low. Simulation halted.", domain.SeverityError)
		e.recordGaugesLocked(ctx)
		e.publishLocked()
		return
	}

	e.eventLocked(ctx, fmt.Sprintf("New block mined: %d. Congestion: %.0f%%. Scanning...",
		e.block, e.store.Congestion()*100), domain.SeverityInfo)

	opp := e.scanner.Scan(e.store.Snapshot(), e.store.Congestion(), e.now())
	if opp.IsProfitable(e.submitThreshold) {
		e.submit(ctx, opp)
	}

	e.recordGaugesLocked(ctx)
	e.publishLocked()
}

// submit debits the gas fee, fills the pending slot and records the Pending
// trade.
func (e *Engine) submit(ctx context.Context, opp *arbDomain.Opportunity) {
	id := e.newTxID()
	now := e.now()

	e.gasETH = e.gasETH.Sub(opp.GasFee.Div(e.ethPrice))

	e.pending = &domain.PendingTransaction{
		ID:           id,
		ResolveAt:    now.Add(e.cfg.ResolveDelay),
		Route:        opp.Route,
		AmountUSD:    opp.LoanUSD,
		GasFee:       opp.GasFee,
		LoanFee:      opp.LoanFee,
		EstimatedNet: opp.NetProfit,
	}

	e.ledger.Submit(domain.Trade{
		ID:          id,
		Timestamp:   now,
		Pair:        pairLabel(opp.Route),
		Venues:      opp.Route.Venues(),
		AmountUSD:   opp.LoanUSD,
		Status:      domain.TradePending,
		GasFee:      opp.GasFee,
		LoanFee:     opp.LoanFee,
		FromAddress: domain.BotAddress,
		ToAddress:   domain.AaveAddress,
		TokenFlow:   tokenFlow(opp),
	})

	checklist := e.ledger.Checklist()
	checklist.ProfitableTrade = true
	checklist.CalculatesNetProfit = true
	if opp.Route.Kind() == arbDomain.RouteTriangular {
		checklist.TriangularArbitrage = true
	}

	e.metrics.submissions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("route", string(opp.Route.Kind()))))
	e.eventLocked(ctx, fmt.Sprintf("Opportunity found! Submitting transaction %s... (Pending)",
		shortID(id)), domain.SeverityInfo)
}

// resolve settles a due transaction. The pending slot is already cleared, so
// whatever the outcome a new opportunity may be submitted next tick.
func (e *Engine) resolve(ctx context.Context, tx *domain.PendingTransaction) {
	checklist := e.ledger.Checklist()

	var finalNet, gross, slippage decimal.Decimal
	var reason string

	if e.rng.Float64() < e.cfg.FrontRunProbability {
		reason = domain.ReasonFrontRun
		checklist.HandlesFrontRunning = true
		finalNet = tx.GasFee.Neg()
	} else {
		// Re-price the same route and notional against current reserves to
		// capture the drift that happened during the delay.
		repriced, ok := e.scanner.Reprice(tx.Route, e.store.Snapshot())
		if ok {
			gross = repriced
		}
		finalNet = gross.Sub(tx.GasFee).Sub(tx.LoanFee)
		if finalNet.LessThan(tx.EstimatedNet.Mul(decimal.NewFromFloat(0.5))) {
			reason = domain.ReasonSlippage
			checklist.HandlesPriceSlippage = true
			slippage = tx.EstimatedNet.Sub(finalNet)
		}
	}

	if finalNet.GreaterThan(e.submitThreshold) && reason == "" {
		e.ledger.Settle(Settlement{
			ID:          tx.ID,
			Status:      domain.TradeSuccess,
			NetProfit:   finalNet,
			GrossProfit: gross,
		})
		e.alerted = false
		e.metrics.settlements.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", "success")))
		e.eventLocked(ctx, fmt.Sprintf("Trade %s... SUCCESS. Net Profit: $%s",
			shortID(tx.ID), finalNet.StringFixed(2)), domain.SeveritySuccess)
		return
	}

	checklist.RevertsUnprofitable = true

	// Failed trades record the sunk gas cost, not the recomputed net.
	e.ledger.Settle(Settlement{
		ID:            tx.ID,
		Status:        domain.TradeFailed,
		NetProfit:     tx.GasFee.Neg(),
		GrossProfit:   gross,
		Slippage:      slippage,
		FailureReason: reason,
	})

	display := reason
	if display == "" {
		display = "Not profitable"
	}
	e.metrics.settlements.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", "failed")))
	e.eventLocked(ctx, fmt.Sprintf("Trade %s... FAILED. Reason: %s. Lost $%s gas.",
		shortID(tx.ID), display, tx.GasFee.StringFixed(2)), domain.SeverityError)

	if e.ledger.Streak() >= 3 && !e.alerted {
		e.alerted = true
		checklist.SendsAlerts = true
		e.eventLocked(ctx, "CRITICAL ALERT (Simulated): 3 consecutive transactions failed.",
			domain.SeverityError)
	}
}

// StartLive resets all run state and begins ticking. Starting while already
// live is a no-op; the block counter survives restarts.
func (e *Engine) StartLive(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case domain.StatusLive:
		return nil
	case domain.StatusBacktesting:
		return apperror.New(apperror.CodeBacktestInProgress)
	}

	e.store.Reset()
	e.ledger.Reset()
	e.events = nil
	e.pending = nil
	e.alerted = false
	e.gasETH = e.cfg.InitialGasDecimal()
	e.status = domain.StatusLive

	e.eventLocked(ctx, "Pre-flight check complete. Starting live simulation...", domain.SeverityInfo)
	e.eventLocked(ctx, "Subscribed to new block headers via WebSocket.", domain.SeveritySuccess)
	e.publishLocked()
	return nil
}

// StopLive halts ticking and discards the pending transaction without
// settling it. Stopping while stopped is a no-op.
func (e *Engine) StopLive(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != domain.StatusLive {
		return nil
	}
	e.haltLocked(ctx, "Simulation stopped by user.", domain.SeverityWarning)
	e.publishLocked()
	return nil
}

// KillSwitch halts immediately and marks the kill-switch checklist flag.
// Unlike the automatic gas-exhaustion halt, this is the only path that sets
// the flag. Engaging while already stopped is a no-op.
func (e *Engine) KillSwitch(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == domain.StatusStopped {
		return nil
	}

	e.haltLocked(ctx, "KILL SWITCH ENGAGED! Simulation halted immediately by user.", domain.SeverityError)
	e.ledger.Checklist().KillSwitch = true
	e.publishLocked()
	return nil
}

// RunBacktest runs the scripted validation narration outside the live tick
// loop, then returns the engine to Stopped.
func (e *Engine) RunBacktest(ctx context.Context) error {
	e.mu.Lock()
	switch e.status {
	case domain.StatusLive:
		e.mu.Unlock()
		return apperror.New(apperror.CodeSimulationAlreadyRunning)
	case domain.StatusBacktesting:
		e.mu.Unlock()
		return apperror.New(apperror.CodeBacktestInProgress)
	}

	e.status = domain.StatusBacktesting
	e.ledger.ClearTrades()
	e.events = nil
	e.eventLocked(ctx, "Starting backtest... This process validates the checklist criteria against historical data.", domain.SeverityInfo)
	e.publishLocked()
	e.mu.Unlock()

	go e.backtest(ctx)
	return nil
}

func (e *Engine) backtest(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(2 * time.Second):
	}

	e.mu.Lock()
	// A kill switch or halt during the backtest discards the narration.
	if e.status != domain.StatusBacktesting {
		e.mu.Unlock()
		return
	}
	e.eventLocked(ctx, "Backtest complete. View checklist for validation proof.", domain.SeveritySuccess)
	e.publishLocked()
	e.mu.Unlock()

	select {
	case <-ctx.Done():
		return
	case <-time.After(500 * time.Millisecond):
	}

	e.mu.Lock()
	if e.status == domain.StatusBacktesting {
		e.status = domain.StatusStopped
	}
	e.publishLocked()
	e.mu.Unlock()
}

// RequestFaucet credits the gas tank. Rejected while live and rate limited
// to discourage leaning on free gas instead of profitable trading.
func (e *Engine) RequestFaucet(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == domain.StatusLive {
		return apperror.New(apperror.CodeFaucetWhileLive)
	}
	if !e.faucet.Allow() {
		return apperror.New(apperror.CodeFaucetRateLimited)
	}

	amount := e.cfg.FaucetAmountDecimal()
	e.gasETH = e.gasETH.Add(amount)
	e.eventLocked(ctx, fmt.Sprintf("Received %s ETH from simulated faucet.", amount.String()), domain.SeveritySuccess)
	e.publishLocked()
	return nil
}

// Snapshot returns a copy of the engine's full queryable state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	pools := e.store.Snapshot()
	views := make([]domain.PoolView, len(pools))
	for i, p := range pools {
		views[i] = domain.PoolView{
			ID:           p.ID,
			Venue:        p.Venue,
			Pair:         string(p.Pair),
			ReserveA:     p.ReserveA,
			ReserveB:     p.ReserveB,
			Price:        p.Price(),
			PriceHistory: p.PriceHistory,
		}
	}

	events := make([]domain.Event, len(e.events))
	copy(events, e.events)

	var pendingID string
	if e.pending != nil {
		pendingID = e.pending.ID
	}

	return domain.Snapshot{
		Status:       e.status,
		Block:        e.block,
		TotalProfit:  e.ledger.TotalProfit(),
		GasTankETH:   e.gasETH,
		Congestion:   e.store.Congestion(),
		Trades:       e.ledger.Trades(),
		Checklist:    *e.ledger.Checklist(),
		Events:       events,
		Pools:        views,
		SuccessCount: e.ledger.Successes(),
		FailureCount: e.ledger.Failures(),
		WinRate:      e.ledger.WinRate(),
		PendingID:    pendingID,
	}
}

// haltLocked stops ticking, discards the pending slot and narrates the
// reason. The ledger is untouched; a discarded pending trade is never scored.
func (e *Engine) haltLocked(ctx context.Context, msg string, sev domain.Severity) {
	e.pending = nil
	e.status = domain.StatusStopped
	e.eventLocked(ctx, msg, sev)
}

func (e *Engine) eventLocked(ctx context.Context, msg string, sev domain.Severity) {
	ev := domain.Event{Timestamp: e.now(), Message: msg, Severity: sev}
	e.events = domain.AppendEvent(e.events, ev)

	switch sev {
	case domain.SeverityError:
		e.log.Error(ctx, msg)
	case domain.SeverityWarning:
		e.log.Warn(ctx, msg)
	default:
		e.log.Info(ctx, msg)
	}

	if e.reporter != nil {
		e.reporter.Event(ev)
	}
}

func (e *Engine) publishLocked() {
	if e.reporter != nil {
		e.reporter.Update(e.snapshotLocked())
	}
}

func (e *Engine) recordGaugesLocked(ctx context.Context) {
	profit, _ := e.ledger.TotalProfit().Float64()
	gas, _ := e.gasETH.Float64()
	e.metrics.totalProfit.Record(ctx, profit)
	e.metrics.gasTank.Record(ctx, gas)
}

// newTxID produces a synthetic transaction hash: 0x plus ten hex digits.
func (e *Engine) newTxID() string {
	return fmt.Sprintf("0x%010x", e.rng.Int63n(1<<40))
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

func pairLabel(route arbDomain.Route) string {
	if route.Kind() == arbDomain.RouteTriangular {
		return "WETH/USDC/DAI"
	}
	return "WETH/USDC"
}

// tokenFlow narrates the leg-by-leg token movement shown on the trade detail.
func tokenFlow(opp *arbDomain.Opportunity) []string {
	switch r := opp.Route.(type) {
	case arbDomain.SpatialRoute:
		return []string{
			fmt.Sprintf("Flash Loan: $%s USDC", opp.LoanUSD.StringFixed(2)),
			fmt.Sprintf("Buy WETH on %s", r.From.Venue),
			fmt.Sprintf("Sell WETH on %s", r.To.Venue),
			"Repay Loan + Fee",
		}
	case arbDomain.TriangularRoute:
		return []string{
			fmt.Sprintf("Flash Loan: $%s WETH", opp.LoanUSD.StringFixed(2)),
			fmt.Sprintf("Swap WETH for USDC on %s", r.WETHUSDC.Venue),
			fmt.Sprintf("Swap USDC for DAI on %s", r.USDCDAI.Venue),
			fmt.Sprintf("Swap DAI for WETH on %s", r.DAIWETH.Venue),
			"Repay Loan + Fee",
		}
	default:
		return nil
	}
}
