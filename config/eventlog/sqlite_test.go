package eventlog_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/config/eventlog"
)

func TestSQLiteLogger_EmitAndQuery(t *testing.T) {
	logger, err := eventlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	defer logger.Close()

	logger.Emit(eventlog.Event{
		Kind:    eventlog.EventChannelConnected,
		Channel: "chat",
		Message: "chat channel connected",
	})

	events, err := logger.Query(eventlog.QueryFilter{Channel: "chat", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, eventlog.EventChannelConnected, events[0].Kind)
	assert.Equal(t, "chat", events[0].Channel)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestSQLiteLogger_QueryFilterByChannel(t *testing.T) {
	logger, err := eventlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	defer logger.Close()

	logger.Emit(eventlog.Event{Kind: eventlog.EventChannelConnected, Channel: "chat"})
	logger.Emit(eventlog.Event{Kind: eventlog.EventChannelConnected, Channel: "task"})

	events, err := logger.Query(eventlog.QueryFilter{Channel: "task", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestSQLiteLogger_QueryFilterByKind(t *testing.T) {
	logger, err := eventlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	defer logger.Close()

	logger.Emit(eventlog.Event{Kind: eventlog.EventChannelConnected, Channel: "task"})
	logger.Emit(eventlog.Event{Kind: eventlog.EventReconnectScheduled, Channel: "task", Attempt: 1})

	events, err := logger.Query(eventlog.QueryFilter{
		Channel: "task",
		Kinds:   []eventlog.EventKind{eventlog.EventReconnectScheduled},
		Limit:   10,
	})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, eventlog.EventReconnectScheduled, events[0].Kind)
	assert.Equal(t, 1, events[0].Attempt)
}

func TestSQLiteLogger_QueryOrderDesc(t *testing.T) {
	logger, err := eventlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	defer logger.Close()

	logger.Emit(eventlog.Event{Kind: eventlog.EventChannelConnected, Channel: "chat", Message: "first"})
	time.Sleep(time.Millisecond)
	logger.Emit(eventlog.Event{Kind: eventlog.EventChannelClosed, Channel: "chat", Message: "second"})

	events, err := logger.Query(eventlog.QueryFilter{Channel: "chat", Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "second", events[0].Message) // newest first
}

func TestSQLiteLogger_DefaultLevel(t *testing.T) {
	logger, err := eventlog.NewSQLiteLogger(":memory:")
	require.NoError(t, err)
	defer logger.Close()

	logger.Emit(eventlog.Event{Kind: eventlog.EventMalformedFrame, Channel: "chat"})

	events, err := logger.Query(eventlog.QueryFilter{Channel: "chat", Limit: 1})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "info", events[0].Level)
}

func TestSQLiteLogger_FileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "events.db")

	logger, err := eventlog.NewSQLiteLogger(dbPath)
	require.NoError(t, err)
	logger.Emit(eventlog.Event{Kind: eventlog.EventManualRetry, Channel: "task", Message: "retry"})
	require.NoError(t, logger.Close())

	// Reopen and verify the event survived.
	reopened, err := eventlog.NewSQLiteLogger(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	events, err := reopened.Query(eventlog.QueryFilter{Channel: "task", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
