package infra

import (
	"context"

	"github.com/defisim/flashloan-bot/business/engine/app"
	"github.com/defisim/flashloan-bot/business/engine/domain"
	"github.com/defisim/flashloan-bot/pkg/ui"
)

// TUIReporter forwards engine events and snapshots to the Bubble Tea
// program. Sends are fire-and-forget; if the program is not running they are
// dropped.
type TUIReporter struct{}

// NewTUIReporter creates a TUIReporter.
func NewTUIReporter() *TUIReporter {
	return &TUIReporter{}
}

// Start implements app.Reporter.
func (r *TUIReporter) Start(ctx context.Context) error {
	return nil
}

// Event forwards one narration line to the TUI console panel.
func (r *TUIReporter) Event(e domain.Event) {
	ui.Send(ui.EventMsg{Event: e})
}

// Update forwards the full state snapshot to the dashboard.
func (r *TUIReporter) Update(s domain.Snapshot) {
	ui.Send(ui.SnapshotMsg{Snapshot: s})
}

// Stop implements app.Reporter.
func (r *TUIReporter) Stop() {}

var _ app.Reporter = (*TUIReporter)(nil)
