package app

import (
	"context"

	"github.com/defisim/flashloan-bot/business/engine/domain"
)

// Reporter consumes the engine's narration stream and state snapshots. The
// console and TUI front ends implement it; the engine never blocks on it.
type Reporter interface {
	Start(ctx context.Context) error
	Event(e domain.Event)
	Update(s domain.Snapshot)
	Stop()
}
