package domain

import "time"

// Severity classifies an event for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MaxEvents is the number of log events retained, oldest discarded first.
const MaxEvents = 200

// Event is one line of human-readable narration emitted by the engine.
type Event struct {
	Timestamp time.Time
	Message   string
	Severity  Severity
}

// AppendEvent appends e, discarding the oldest entries beyond MaxEvents.
func AppendEvent(events []Event, e Event) []Event {
	if len(events) >= MaxEvents {
		events = events[len(events)-MaxEvents+1:]
	}
	return append(events, e)
}
