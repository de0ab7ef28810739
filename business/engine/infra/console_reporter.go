// Package infra provides the engine's outbound adapters: the console and
// TUI reporters.
package infra

import (
	"context"
	"sync/atomic"

	"github.com/defisim/flashloan-bot/business/engine/app"
	"github.com/defisim/flashloan-bot/business/engine/domain"
	"github.com/defisim/flashloan-bot/internal/logger"
)

// ConsoleReporter narrates engine events through the structured logger. It
// is the front end for CLI mode; snapshots are summarized on a coarse cadence
// so the log stays readable.
type ConsoleReporter struct {
	log logger.LoggerInterface

	// every Nth snapshot gets a summary line
	every   uint64
	updates atomic.Uint64
}

// NewConsoleReporter creates a ConsoleReporter summarizing every n updates.
func NewConsoleReporter(log logger.LoggerInterface, every uint64) *ConsoleReporter {
	if every == 0 {
		every = 10
	}
	return &ConsoleReporter{log: log, every: every}
}

// Start implements app.Reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	return nil
}

// Event logs one narration line at the severity's level. The engine already
// logs its own events, so the console reporter only carries the event tag
// for downstream filtering.
func (r *ConsoleReporter) Event(e domain.Event) {
	ctx := context.Background()
	switch e.Severity {
	case domain.SeverityError:
		r.log.Error(ctx, e.Message, "event", true)
	case domain.SeverityWarning:
		r.log.Warn(ctx, e.Message, "event", true)
	default:
		r.log.Info(ctx, e.Message, "event", true)
	}
}

// Update logs a state summary on the configured cadence.
func (r *ConsoleReporter) Update(s domain.Snapshot) {
	if r.updates.Add(1)%r.every != 0 {
		return
	}
	r.log.Info(context.Background(), "simulation state",
		"status", s.Status.String(),
		"block", s.Block,
		"total_profit", s.TotalProfit.StringFixed(2),
		"gas_eth", s.GasTankETH.StringFixed(4),
		"congestion", s.Congestion,
		"trades", len(s.Trades),
		"win_rate", s.WinRate,
	)
}

// Stop implements app.Reporter.
func (r *ConsoleReporter) Stop() {}

var _ app.Reporter = (*ConsoleReporter)(nil)
