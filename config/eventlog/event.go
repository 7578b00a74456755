package eventlog

import "time"

// EventKind identifies the type of diagnostic event.
type EventKind string

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}

// Channel lifecycle events.
const (
	EventChannelConnected  EventKind = "channel_connected"
	EventChannelClosed     EventKind = "channel_closed"
	EventReconnectScheduled EventKind = "reconnect_scheduled"
	EventAttemptsExhausted  EventKind = "attempts_exhausted"
	EventManualRetry        EventKind = "manual_retry"
)

// Protocol events.
const (
	EventMalformedFrame   EventKind = "malformed_frame"
	EventUnknownFrameType EventKind = "unknown_frame_type"
	EventMalformedSnapshot EventKind = "malformed_snapshot"
)

// Data events.
const (
	EventSnapshotApplied EventKind = "snapshot_applied"
	EventSnapshotSkipped EventKind = "snapshot_skipped"
	EventRequestFailed   EventKind = "request_failed"
	EventError           EventKind = "error"
)

// Event is a single diagnostic log entry.
type Event struct {
	ID        int64
	Kind      EventKind
	Timestamp time.Time
	Channel   string // chat or task, "" for REST and app-level events
	Attempt   int    // reconnect attempt number, 0 when not applicable
	Message   string
	Detail    string // JSON-encoded extra data
	Level     string // info, warning, error
}
