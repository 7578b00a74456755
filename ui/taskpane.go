package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	zone "github.com/lrstanley/bubblezone"

	"taskflow/task"
)

// TaskPane is the right pane: the live task table. The rows it shows are
// whatever the caller hands it; filtering and search happen upstream so the
// pane stays a pure renderer over the cached snapshot.
type TaskPane struct {
	width, height int

	tasks    []task.Task
	selected int
	focused  bool

	now func() time.Time
}

// NewTaskPane creates an empty task pane.
func NewTaskPane() *TaskPane {
	return &TaskPane{now: time.Now}
}

// SetSize updates the pane dimensions.
func (p *TaskPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetTasks replaces the displayed rows. The selection is clamped so a
// shrinking snapshot never leaves the cursor past the end.
func (p *TaskPane) SetTasks(tasks []task.Task) {
	p.tasks = tasks
	if p.selected >= len(tasks) {
		p.selected = len(tasks) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// Focus marks the pane as having keyboard focus.
func (p *TaskPane) Focus() { p.focused = true }

// Blur removes keyboard focus.
func (p *TaskPane) Blur() { p.focused = false }

// Focused reports whether the pane has keyboard focus.
func (p *TaskPane) Focused() bool { return p.focused }

// Selected returns the task under the cursor, nil when the table is empty.
func (p *TaskPane) Selected() *task.Task {
	if len(p.tasks) == 0 {
		return nil
	}
	t := p.tasks[p.selected]
	return &t
}

// SelectedIndex returns the cursor position.
func (p *TaskPane) SelectedIndex() int { return p.selected }

// Select moves the cursor to idx if it is in range.
func (p *TaskPane) Select(idx int) {
	if idx >= 0 && idx < len(p.tasks) {
		p.selected = idx
	}
}

// MoveUp moves the cursor up one row.
func (p *TaskPane) MoveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

// MoveDown moves the cursor down one row.
func (p *TaskPane) MoveDown() {
	if p.selected < len(p.tasks)-1 {
		p.selected++
	}
}

// Count returns the number of displayed rows.
func (p *TaskPane) Count() int { return len(p.tasks) }

func statusGlyph(s task.Status) string {
	switch s {
	case task.StatusDone:
		return "✓"
	case task.StatusInProgress:
		return "◐"
	default:
		return "○"
	}
}

func statusColor(s task.Status) lipgloss.Color {
	switch s {
	case task.StatusDone:
		return ColorFoam
	case task.StatusInProgress:
		return ColorGold
	default:
		return ColorSubtle
	}
}

func priorityColor(pr task.Priority) lipgloss.Color {
	switch pr {
	case task.PriorityHigh:
		return ColorLove
	case task.PriorityMedium:
		return ColorGold
	default:
		return ColorSubtle
	}
}

// dueLabel compacts an RFC 3339 due date to its calendar day. Unparseable
// dates render as stored so the row never hides server data.
func dueLabel(t task.Task) string {
	if t.DueDate == "" {
		return ""
	}
	due, ok := t.Due()
	if !ok {
		return t.DueDate
	}
	return due.Format("Jan 02")
}

// String renders the task table: a header row, then one zone-marked row per
// task, scrolled so the cursor stays visible.
func (p *TaskPane) String() string {
	if p.width < 20 || p.height < 3 {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(ColorMuted).Bold(true)
	titleWidth := p.width - 24
	if titleWidth < 8 {
		titleWidth = 8
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %-11s %-6s %s",
		titleWidth, "TITLE", "STATUS", "PRI", "DUE")))
	b.WriteString("\n")

	rows := p.height - 1
	start := 0
	if p.selected >= rows {
		start = p.selected - rows + 1
	}

	if len(p.tasks) == 0 {
		empty := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
		b.WriteString(empty.Render("  No tasks. Press n to create one."))
		return b.String()
	}

	now := p.now()
	for i := start; i < len(p.tasks) && i < start+rows; i++ {
		b.WriteString(zone.Mark(TaskRowZoneID(i), p.renderRow(p.tasks[i], i == p.selected, titleWidth, now)))
		if i < len(p.tasks)-1 && i < start+rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (p *TaskPane) renderRow(t task.Task, selected bool, titleWidth int, now time.Time) string {
	title := runewidth.Truncate(t.Title, titleWidth, "…")
	title = runewidth.FillRight(title, titleWidth)

	due := dueLabel(t)
	overdue := t.Overdue(now)
	if overdue {
		due += " !"
	}

	if selected {
		// One style for the whole row: per-cell colors would reset the
		// selection background mid-row.
		row := fmt.Sprintf("❯ %s %s %-9s %-6s %s",
			title, statusGlyph(t.Status), string(t.Status), string(t.Priority), due)
		return lipgloss.NewStyle().
			Background(ColorOverlay).
			Foreground(ColorText).
			Bold(true).
			Render(row)
	}

	titleStyle := lipgloss.NewStyle().Foreground(ColorText)
	if t.Status == task.StatusDone {
		titleStyle = titleStyle.Foreground(ColorMuted).Strikethrough(true)
	}

	status := lipgloss.NewStyle().Foreground(statusColor(t.Status)).
		Render(fmt.Sprintf("%s %-9s", statusGlyph(t.Status), string(t.Status)))

	pri := lipgloss.NewStyle().Foreground(priorityColor(t.Priority)).
		Render(fmt.Sprintf("%-6s", string(t.Priority)))

	dueStyle := lipgloss.NewStyle().Foreground(ColorSubtle)
	if overdue {
		dueStyle = dueStyle.Foreground(ColorLove).Bold(true)
	}

	return "  " + titleStyle.Render(title) + " " + status + " " + pri + " " + dueStyle.Render(due)
}
