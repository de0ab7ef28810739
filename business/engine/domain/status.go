// Package domain contains the engine's core types: bot status, trades,
// pending transactions, the checklist and the event log.
package domain

// BotStatus is the engine's run state. The three states are mutually
// exclusive.
type BotStatus int

const (
	StatusStopped BotStatus = iota
	StatusLive
	StatusBacktesting
)

// String implements fmt.Stringer.
func (s BotStatus) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusLive:
		return "Live"
	case StatusBacktesting:
		return "Backtesting"
	default:
		return "Unknown"
	}
}
