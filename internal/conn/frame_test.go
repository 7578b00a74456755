package conn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	t.Run("json envelope", func(t *testing.T) {
		f, err := ParseFrame([]byte(`{"type":"chat_response","data":{"response":"hi"}}`))
		require.NoError(t, err)
		assert.Equal(t, TypeChatResponse, f.Type)

		d, err := f.ChatResponse()
		require.NoError(t, err)
		assert.Equal(t, "hi", d.Response)
	})

	t.Run("bare ping", func(t *testing.T) {
		f, err := ParseFrame([]byte("ping"))
		require.NoError(t, err)
		assert.Equal(t, TypePing, f.Type)
	})

	t.Run("bare pong with whitespace", func(t *testing.T) {
		f, err := ParseFrame([]byte(" pong\n"))
		require.NoError(t, err)
		assert.Equal(t, TypePong, f.Type)
	})

	t.Run("json ping", func(t *testing.T) {
		f, err := ParseFrame([]byte(`{"type":"ping"}`))
		require.NoError(t, err)
		assert.Equal(t, TypePing, f.Type)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseFrame([]byte("garbage{{{"))
		assert.Error(t, err)
	})

	t.Run("missing type", func(t *testing.T) {
		_, err := ParseFrame([]byte(`{"data":{"response":"hi"}}`))
		assert.Error(t, err)
	})
}

func TestFrame_Connection(t *testing.T) {
	f := Frame{
		Type: TypeConnection,
		Data: json.RawMessage(`{"session_id":"s-42","message":"welcome"}`),
	}
	d, err := f.Connection()
	require.NoError(t, err)
	assert.Equal(t, "s-42", d.SessionID)
	assert.Equal(t, "welcome", d.Message)
}

func TestFrame_ErrorMessage(t *testing.T) {
	f := Frame{Type: TypeError, Data: json.RawMessage(`{"message":"agent unavailable"}`)}
	assert.Equal(t, "agent unavailable", f.ErrorMessage())

	empty := Frame{Type: TypeError, Data: json.RawMessage(`{}`)}
	assert.Equal(t, "Unknown error", empty.ErrorMessage())

	broken := Frame{Type: TypeError}
	assert.Equal(t, "Unknown error", broken.ErrorMessage())
}

func TestFrame_TaskUpdate(t *testing.T) {
	t.Run("well-formed array", func(t *testing.T) {
		f := Frame{Type: TypeTaskUpdate, Data: json.RawMessage(`{"tasks":[{"id":1,"title":"a"},{"id":2,"title":"b"}]}`)}
		tasks, ok := f.TaskUpdate()
		require.True(t, ok)
		require.Len(t, tasks, 2)
		assert.Equal(t, 2, tasks[1].ID)
	})

	t.Run("empty array still applies", func(t *testing.T) {
		f := Frame{Type: TypeTaskUpdate, Data: json.RawMessage(`{"tasks":[]}`)}
		tasks, ok := f.TaskUpdate()
		assert.True(t, ok)
		assert.Empty(t, tasks)
	})

	t.Run("missing tasks field", func(t *testing.T) {
		f := Frame{Type: TypeTaskUpdate, Data: json.RawMessage(`{"message":"no tasks here"}`)}
		_, ok := f.TaskUpdate()
		assert.False(t, ok)
	})

	t.Run("tasks not an array", func(t *testing.T) {
		f := Frame{Type: TypeTaskUpdate, Data: json.RawMessage(`{"tasks":"oops"}`)}
		_, ok := f.TaskUpdate()
		assert.False(t, ok)
	})

	t.Run("no data payload", func(t *testing.T) {
		f := Frame{Type: TypeTaskUpdate}
		_, ok := f.TaskUpdate()
		assert.False(t, ok)
	})
}
