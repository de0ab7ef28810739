// Package ui provides the Bubble Tea TUI for the flash-loan simulator.
package ui

import (
	"github.com/defisim/flashloan-bot/business/engine/domain"
)

// Message types for TUI updates

// SnapshotMsg carries the engine's full queryable state after a tick or an
// operator command.
type SnapshotMsg struct {
	Snapshot domain.Snapshot
}

// EventMsg carries one narration line for the console panel.
type EventMsg struct {
	Event domain.Event
}

// ErrorMsg is sent when an operator command is rejected.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI animations.
type TickMsg struct{}
