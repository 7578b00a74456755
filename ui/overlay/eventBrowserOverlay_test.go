package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/config/eventlog"
)

func sampleEvents() []eventlog.Event {
	now := time.Now()
	return []eventlog.Event{
		{Kind: eventlog.EventChannelConnected, Timestamp: now.Add(-time.Minute), Channel: "chat", Message: "connected", Level: "info"},
		{Kind: eventlog.EventReconnectScheduled, Timestamp: now.Add(-10 * time.Minute), Channel: "task", Attempt: 2, Message: "retry in 4s", Level: "warning"},
		{Kind: eventlog.EventMalformedFrame, Timestamp: now.Add(-3 * time.Hour), Channel: "task", Message: "bad payload", Level: "error"},
	}
}

func TestEventBrowser_Basic(t *testing.T) {
	b := NewEventBrowserOverlay(sampleEvents())
	require.NotNil(t, b)

	rendered := b.Render()
	assert.Contains(t, rendered, "sync events")
	assert.Contains(t, rendered, "connected")
	assert.Contains(t, rendered, "retry in 4s")
}

func TestEventBrowser_Navigation(t *testing.T) {
	b := NewEventBrowserOverlay(sampleEvents())

	assert.Equal(t, 0, b.selectedIdx)

	b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, b.selectedIdx)

	b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, b.selectedIdx)

	b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, b.selectedIdx)
}

func TestEventBrowser_SearchFilter(t *testing.T) {
	b := NewEventBrowserOverlay(sampleEvents())

	for _, r := range "chat" {
		b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	require.Len(t, b.filtered, 1)
	assert.Equal(t, eventlog.EventChannelConnected, b.SelectedEvent().Kind)
}

func TestEventBrowser_EscClearsSearchBeforeDismiss(t *testing.T) {
	b := NewEventBrowserOverlay(sampleEvents())

	b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	action := b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, BrowserNone, action)
	assert.Empty(t, b.searchQuery)

	action = b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, BrowserDismiss, action)
}

func TestEventBrowser_YankRequiresEmptySearch(t *testing.T) {
	b := NewEventBrowserOverlay(sampleEvents())

	action := b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Equal(t, BrowserYank, action)

	b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	action = b.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	assert.Equal(t, BrowserNone, action)
	assert.Equal(t, "cy", b.searchQuery)
}

func TestEventBrowser_Empty(t *testing.T) {
	b := NewEventBrowserOverlay(nil)
	assert.True(t, b.IsEmpty())
	assert.Contains(t, b.Render(), "no events")
	assert.Equal(t, eventlog.Event{}, b.SelectedEvent())
}
