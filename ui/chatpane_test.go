package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/store"
)

func chatMessages() []store.ChatMessage {
	return []store.ChatMessage{
		{ID: "1", Type: store.MessageUser, Message: "add a task to buy milk"},
		{ID: "2", Type: store.MessageAgent, Message: "Done. I created **buy milk**."},
	}
}

func TestChatPane_RendersTranscript(t *testing.T) {
	p := NewChatPane()
	p.SetSize(80, 24)
	p.SetMessages(chatMessages(), false)

	out := p.String()
	assert.Contains(t, out, "add a task to buy milk")
	assert.Contains(t, out, "buy milk")
}

func TestChatPane_EmptyState(t *testing.T) {
	p := NewChatPane()
	p.SetSize(80, 24)
	p.SetMessages(nil, false)

	assert.Contains(t, p.String(), "No messages yet")
}

func TestChatPane_TypingIndicator(t *testing.T) {
	p := NewChatPane()
	p.SetSize(80, 24)
	p.SetMessages(chatMessages(), true)

	assert.Contains(t, p.String(), "agent is typing")

	p.SetMessages(chatMessages(), false)
	assert.NotContains(t, p.String(), "agent is typing")
}

func TestChatPane_InputFocus(t *testing.T) {
	p := NewChatPane()
	p.SetSize(80, 24)

	assert.False(t, p.Focused())
	p.Focus()
	assert.True(t, p.Focused())

	p.UpdateInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	assert.Equal(t, "hi", p.Value())

	p.Reset()
	assert.Empty(t, p.Value())

	p.Blur()
	assert.False(t, p.Focused())
}

func TestChatPane_LastAgentMessage(t *testing.T) {
	p := NewChatPane()
	p.SetSize(80, 24)

	assert.Empty(t, p.LastAgentMessage())

	msgs := append(chatMessages(), store.ChatMessage{
		ID: "3", Type: store.MessageUser, Message: "thanks",
	})
	p.SetMessages(msgs, false)
	require.Equal(t, "Done. I created **buy milk**.", p.LastAgentMessage())
}
