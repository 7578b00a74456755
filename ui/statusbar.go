package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskflow/store"
)

// StatusBarData holds the contextual information displayed in the status bar.
type StatusBarData struct {
	ChatConn  store.ConnectionState
	TaskConn  store.ConnectionState
	SessionID string
	TaskCount int
	DoneCount int
	Filter    string // active filter label, "" = all
	Search    string // active search term, "" = none
}

// StatusBar is the top status bar component.
type StatusBar struct {
	width int
	data  StatusBarData
}

// NewStatusBar creates a new StatusBar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetSize sets the terminal width for the status bar.
func (s *StatusBar) SetSize(width int) {
	s.width = width
}

// SetData updates the status bar content.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

const statusBarSep = " │ "

// channelIndicator renders a "chat ●" style segment colored by connection
// state: foam when connected, gold while reconnecting, love when offline.
func channelIndicator(name string, cs store.ConnectionState) string {
	var fg lipgloss.TerminalColor
	var glyph string
	switch {
	case cs.Connected:
		fg, glyph = ColorFoam, "●"
	case cs.Reconnecting:
		fg, glyph = ColorGold, "◌"
	default:
		fg, glyph = ColorLove, "○"
	}
	label := lipgloss.NewStyle().Foreground(ColorSubtle).Background(ColorSurface).Render(name + " ")
	return label + lipgloss.NewStyle().Foreground(fg).Background(ColorSurface).Render(glyph)
}

func (s *StatusBar) String() string {
	if s.width < 10 {
		return ""
	}

	barStyle := lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorText).
		Padding(0, 1)
	appNameStyle := lipgloss.NewStyle().
		Foreground(ColorIris).
		Background(ColorSurface).
		Bold(true)
	textStyle := lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorSurface)
	mutedStyle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Background(ColorSurface)
	errStyle := lipgloss.NewStyle().
		Foreground(ColorLove).
		Background(ColorSurface)

	parts := make([]string, 0, 6)
	parts = append(parts, appNameStyle.Render("taskflow"))
	parts = append(parts, channelIndicator("chat", s.data.ChatConn))
	parts = append(parts, channelIndicator("tasks", s.data.TaskConn))

	if s.data.TaskCount > 0 {
		parts = append(parts, textStyle.Render(fmt.Sprintf("%d/%d done", s.data.DoneCount, s.data.TaskCount)))
	}
	if s.data.Filter != "" {
		parts = append(parts, mutedStyle.Render("filter: "+s.data.Filter))
	}
	if s.data.Search != "" {
		parts = append(parts, mutedStyle.Render("search: "+s.data.Search))
	}
	if s.data.SessionID != "" {
		parts = append(parts, mutedStyle.Render("session "+s.data.SessionID))
	}

	// The most urgent error wins the remaining space.
	if err := firstError(s.data.ChatConn, s.data.TaskConn); err != "" {
		parts = append(parts, errStyle.Render(err))
	}

	sep := lipgloss.NewStyle().Foreground(ColorOverlay).Background(ColorSurface).Render(statusBarSep)
	content := strings.Join(parts, sep)

	return barStyle.Width(s.width).Render(content)
}

func firstError(states ...store.ConnectionState) string {
	for _, cs := range states {
		if cs.Error != "" {
			return cs.Error
		}
	}
	return ""
}
