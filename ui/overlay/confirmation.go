package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationOverlay is a y/n modal for destructive actions.
type ConfirmationOverlay struct {
	message   string
	width     int
	Confirmed bool

	// OnConfirm runs when the user presses y.
	OnConfirm func()
}

// NewConfirmationOverlay creates a confirmation modal with the given message.
func NewConfirmationOverlay(message string) *ConfirmationOverlay {
	return &ConfirmationOverlay{message: message, width: 50}
}

// SetWidth sets the overlay width.
func (c *ConfirmationOverlay) SetWidth(width int) {
	c.width = width
}

// HandleKeyPress processes a key press and returns true when the overlay
// should close. y confirms, anything else cancels.
func (c *ConfirmationOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y", "Y":
		c.Confirmed = true
		if c.OnConfirm != nil {
			c.OnConfirm()
		}
		return true
	case "n", "N", "esc", "q":
		return true
	}
	return false
}

// Render renders the confirmation modal.
func (c *ConfirmationOverlay) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorLove).
		Padding(1, 2).
		Width(c.width)

	msgStyle := lipgloss.NewStyle().Foreground(colorText)
	hintStyle := lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)

	return style.Render(msgStyle.Render(c.message) + "\n" + hintStyle.Render("y confirm · n cancel"))
}
