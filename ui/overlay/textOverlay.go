package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextOverlay is a modal that displays static text until any key is pressed.
type TextOverlay struct {
	content string
	width   int

	// OnDismiss is called when the overlay closes.
	OnDismiss func()
}

// NewTextOverlay creates a text overlay with the given content.
func NewTextOverlay(content string) *TextOverlay {
	return &TextOverlay{content: content}
}

// SetWidth sets the overlay width.
func (t *TextOverlay) SetWidth(width int) {
	t.width = width
}

// HandleKeyPress processes a key press. Any key dismisses the overlay.
func (t *TextOverlay) HandleKeyPress(tea.KeyMsg) bool {
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// Render renders the text overlay.
func (t *TextOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorIris).
		Padding(1, 2)
	if t.width > 0 {
		style = style.Width(t.width)
	}

	hint := lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1).
		Render("press any key to close")

	return style.Render(t.content + "\n" + hint)
}
