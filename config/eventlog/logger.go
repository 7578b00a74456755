package eventlog

import "time"

// QueryFilter specifies criteria for querying diagnostic events.
type QueryFilter struct {
	Channel string
	Kinds   []EventKind
	Limit   int
	Before  time.Time
	After   time.Time
}

// Logger is the interface for emitting and querying diagnostic events.
type Logger interface {
	Emit(event Event)
	Query(filter QueryFilter) ([]Event, error)
	Close() error
}

// EventOption is a functional option for configuring optional Event fields.
type EventOption func(*Event)

// WithChannel sets the Channel field on the event.
func WithChannel(channel string) EventOption {
	return func(e *Event) { e.Channel = channel }
}

// WithAttempt sets the Attempt field on the event.
func WithAttempt(attempt int) EventOption {
	return func(e *Event) { e.Attempt = attempt }
}

// WithDetail sets the Detail field on the event (JSON-encoded extra data).
func WithDetail(detail string) EventOption {
	return func(e *Event) { e.Detail = detail }
}

// WithLevel sets the Level field on the event (info, warning, error).
func WithLevel(level string) EventOption {
	return func(e *Event) { e.Level = level }
}

// New builds an Event of the given kind with options applied.
func New(kind EventKind, message string, opts ...EventOption) Event {
	e := Event{Kind: kind, Message: message}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// nopLogger is a no-op Logger used when the event log is disabled.
type nopLogger struct{}

// NopLogger returns a Logger that discards all events.
func NopLogger() Logger {
	return &nopLogger{}
}

func (n *nopLogger) Emit(_ Event) {}

func (n *nopLogger) Query(_ QueryFilter) ([]Event, error) {
	return nil, nil
}

func (n *nopLogger) Close() error {
	return nil
}
