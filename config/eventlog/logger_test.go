package eventlog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskflow/config/eventlog"
)

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "channel_connected", eventlog.EventChannelConnected.String())
	assert.Equal(t, "reconnect_scheduled", eventlog.EventReconnectScheduled.String())
}

func TestNew_AppliesOptions(t *testing.T) {
	e := eventlog.New(eventlog.EventReconnectScheduled, "reconnecting",
		eventlog.WithChannel("task"),
		eventlog.WithAttempt(3),
		eventlog.WithLevel("warn"),
	)
	assert.Equal(t, "task", e.Channel)
	assert.Equal(t, 3, e.Attempt)
	assert.Equal(t, "warn", e.Level)
	assert.Equal(t, "reconnecting", e.Message)
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	l := eventlog.NopLogger()
	assert.NotPanics(t, func() {
		l.Emit(eventlog.Event{Kind: eventlog.EventChannelConnected})
	})
}
