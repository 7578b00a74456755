package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"taskflow/task"
)

// DetailPane renders the full record of the selected task: everything the
// table row truncates away.
type DetailPane struct {
	width, height int
	task          task.Task
	hasTask       bool
	viewport      viewport.Model
	now           func() time.Time
}

// NewDetailPane creates a new DetailPane.
func NewDetailPane() *DetailPane {
	return &DetailPane{viewport: viewport.New(0, 0), now: time.Now}
}

// SetSize updates the pane dimensions.
func (p *DetailPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height
	p.viewport.SetContent(p.render())
}

// SetTask updates the task to render.
func (p *DetailPane) SetTask(t task.Task) {
	p.task = t
	p.hasTask = true
	p.viewport.SetContent(p.render())
	p.viewport.GotoTop()
}

// Clear empties the pane.
func (p *DetailPane) Clear() {
	p.hasTask = false
	p.viewport.SetContent(p.render())
}

// ScrollUp scrolls the viewport up.
func (p *DetailPane) ScrollUp() {
	p.viewport.LineUp(1)
}

// ScrollDown scrolls the viewport down.
func (p *DetailPane) ScrollDown() {
	p.viewport.LineDown(1)
}

// String renders the detail pane content.
func (p *DetailPane) String() string {
	if !p.hasTask {
		return "no task selected"
	}
	return p.viewport.View()
}

func (p *DetailPane) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(12)
	valueWidth := p.width - 12
	if valueWidth < 10 {
		valueWidth = 10
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		lipgloss.NewStyle().Foreground(ColorText).Width(valueWidth).Render(value),
	)
}

func (p *DetailPane) renderColoredRow(label, value string, fg lipgloss.TerminalColor) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorMuted).Width(12)
	valueWidth := p.width - 12
	if valueWidth < 10 {
		valueWidth = 10
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		lipgloss.NewStyle().Foreground(fg).Width(valueWidth).Render(value),
	)
}

func (p *DetailPane) renderDivider() string {
	w := p.width - 4
	if w < 10 {
		w = 10
	}
	return lipgloss.NewStyle().Foreground(ColorOverlay).Render(strings.Repeat("-", w))
}

// localTimestamp reformats a wire timestamp for display, passing unparseable
// values through untouched.
func localTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

func (p *DetailPane) render() string {
	if !p.hasTask {
		return "no task selected"
	}

	sectionStyle := lipgloss.NewStyle().Foreground(ColorFoam).Bold(true)
	t := p.task

	lines := []string{
		sectionStyle.Render("task"),
		p.renderDivider(),
		p.renderRow("title", t.Title),
		p.renderColoredRow("status", string(t.Status), statusColor(t.Status)),
		p.renderColoredRow("priority", string(t.Priority), priorityColor(t.Priority)),
	}

	if t.DueDate != "" {
		due := localTimestamp(t.DueDate)
		if t.Overdue(p.now()) {
			lines = append(lines, p.renderColoredRow("due", due+" (overdue)", ColorLove))
		} else {
			lines = append(lines, p.renderRow("due", due))
		}
	}
	if t.CreatedAt != "" {
		lines = append(lines, p.renderRow("created", localTimestamp(t.CreatedAt)))
	}
	if t.UpdatedAt != "" {
		lines = append(lines, p.renderRow("updated", localTimestamp(t.UpdatedAt)))
	}

	if t.Description != "" {
		w := p.width - 2
		if w < 10 {
			w = 10
		}
		lines = append(lines,
			"",
			sectionStyle.Render("description"),
			p.renderDivider(),
			lipgloss.NewStyle().Foreground(ColorText).Render(wordwrap.String(t.Description, w)),
		)
	}

	return strings.Join(lines, "\n")
}
