package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/config/eventlog"
)

// BrowserAction represents what the user chose in the event browser.
type BrowserAction int

const (
	BrowserNone    BrowserAction = iota
	BrowserDismiss               // esc
	BrowserYank                  // y (search empty)
)

var browserBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorIris).
	Padding(1, 2)

var browserTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorIris).
	MarginBottom(1)

var browserSearchStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorFoam).
	Padding(0, 1).
	MarginBottom(1)

var browserItemStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(colorText)

var browserSelectedStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Background(colorFoam).
	Foreground(colorBase)

var browserMutedStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

var browserWarnStyle = lipgloss.NewStyle().
	Foreground(colorGold)

var browserErrorStyle = lipgloss.NewStyle().
	Foreground(colorLove)

var browserHintStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	MarginTop(1)

// EventBrowserOverlay shows recent sync events with a type-to-filter search.
type EventBrowserOverlay struct {
	events      []eventlog.Event
	filtered    []int // indices into events
	selectedIdx int
	searchQuery string
	width       int
	maxRows     int
}

// NewEventBrowserOverlay creates a browser overlay from logged sync events,
// newest first as the query layer returns them.
func NewEventBrowserOverlay(events []eventlog.Event) *EventBrowserOverlay {
	b := &EventBrowserOverlay{
		events:  events,
		width:   72,
		maxRows: 12,
	}
	b.applyFilter()
	return b
}

func (b *EventBrowserOverlay) applyFilter() {
	b.filtered = nil
	query := strings.ToLower(b.searchQuery)
	for i, ev := range b.events {
		if query == "" ||
			strings.Contains(strings.ToLower(string(ev.Kind)), query) ||
			strings.Contains(strings.ToLower(ev.Message), query) ||
			strings.Contains(strings.ToLower(ev.Channel), query) {
			b.filtered = append(b.filtered, i)
		}
	}
	if b.selectedIdx >= len(b.filtered) {
		b.selectedIdx = len(b.filtered) - 1
	}
	if b.selectedIdx < 0 {
		b.selectedIdx = 0
	}
}

// HandleKeyPress processes input and returns the action to take.
func (b *EventBrowserOverlay) HandleKeyPress(msg tea.KeyMsg) BrowserAction {
	switch msg.Type {
	case tea.KeyEsc:
		if b.searchQuery != "" {
			b.searchQuery = ""
			b.applyFilter()
			return BrowserNone
		}
		return BrowserDismiss
	case tea.KeyEnter:
		return BrowserDismiss
	case tea.KeyUp:
		if b.selectedIdx > 0 {
			b.selectedIdx--
		}
		return BrowserNone
	case tea.KeyDown:
		if b.selectedIdx < len(b.filtered)-1 {
			b.selectedIdx++
		}
		return BrowserNone
	case tea.KeyBackspace:
		if len(b.searchQuery) > 0 {
			runes := []rune(b.searchQuery)
			b.searchQuery = string(runes[:len(runes)-1])
			b.applyFilter()
		}
		return BrowserNone
	case tea.KeyRunes:
		r := string(msg.Runes)
		// Action keys only fire when search is empty
		if b.searchQuery == "" && r == "y" {
			if len(b.filtered) > 0 {
				return BrowserYank
			}
			return BrowserNone
		}
		// All other runes type into search
		b.searchQuery += r
		b.applyFilter()
		return BrowserNone
	}
	return BrowserNone
}

// SelectedEvent returns the currently highlighted event, or a zero value if empty.
func (b *EventBrowserOverlay) SelectedEvent() eventlog.Event {
	if len(b.filtered) == 0 || b.selectedIdx >= len(b.filtered) {
		return eventlog.Event{}
	}
	return b.events[b.filtered[b.selectedIdx]]
}

// IsEmpty returns true if there are no events to display.
func (b *EventBrowserOverlay) IsEmpty() bool {
	return len(b.events) == 0
}

// Render draws the browser overlay.
func (b *EventBrowserOverlay) Render() string {
	var s strings.Builder

	s.WriteString(browserTitleStyle.Render("sync events"))
	s.WriteString("\n")

	// Search bar
	innerWidth := b.width - 8
	if innerWidth < 10 {
		innerWidth = 10
	}
	searchText := b.searchQuery
	if searchText == "" {
		searchText = browserMutedStyle.Render(" type to filter...")
	}
	s.WriteString(browserSearchStyle.Width(innerWidth).Render(searchText))
	s.WriteString("\n")

	// Rows
	if len(b.filtered) == 0 {
		s.WriteString(browserMutedStyle.Render("  no events"))
		s.WriteString("\n")
	} else {
		start := 0
		if b.selectedIdx >= b.maxRows {
			start = b.selectedIdx - b.maxRows + 1
		}
		for i := start; i < len(b.filtered) && i < start+b.maxRows; i++ {
			ev := b.events[b.filtered[i]]

			channel := ev.Channel
			if channel == "" {
				channel = "-"
			}
			label := fmt.Sprintf("%8s  %-5s %-22s %s",
				relativeTime(ev.Timestamp), channel,
				truncateStr(string(ev.Kind), 22), truncateStr(ev.Message, 28))

			if i == b.selectedIdx {
				s.WriteString(browserSelectedStyle.Width(innerWidth).Render("▸ " + label))
			} else {
				s.WriteString(levelStyle(ev.Level).Width(innerWidth).Render("  " + label))
			}
			s.WriteString("\n")
		}
	}

	hint := "↑↓ navigate · y copy detail · type to filter · esc close"
	s.WriteString(browserHintStyle.Render(hint))

	return browserBorderStyle.Width(b.width).Render(s.String())
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case "error":
		return browserErrorStyle
	case "warning":
		return browserWarnStyle
	default:
		return browserItemStyle
	}
}

// SetSize updates the overlay width.
func (b *EventBrowserOverlay) SetSize(width, height int) {
	b.width = width
}

// truncateStr truncates s to maxLen runes, appending "…" if truncated.
func truncateStr(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// relativeTime returns a human-readable relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
