package ui

import (
	"testing"
	"time"

	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/task"
)

func init() {
	zone.NewGlobal()
}

func paneTasks() []task.Task {
	return []task.Task{
		{ID: 1, Title: "write report", Status: task.StatusPending, Priority: task.PriorityHigh, DueDate: "2026-08-01T00:00:00Z"},
		{ID: 2, Title: "review code", Status: task.StatusInProgress, Priority: task.PriorityMedium},
		{ID: 3, Title: "ship release", Status: task.StatusDone, Priority: task.PriorityLow},
	}
}

func TestTaskPane_RendersRows(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)
	p.SetTasks(paneTasks())

	out := zone.Scan(p.String())
	assert.Contains(t, out, "write report")
	assert.Contains(t, out, "review code")
	assert.Contains(t, out, "ship release")
	assert.Contains(t, out, "TITLE")
}

func TestTaskPane_EmptyState(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)

	out := zone.Scan(p.String())
	assert.Contains(t, out, "No tasks")
	assert.Nil(t, p.Selected())
}

func TestTaskPane_CursorMovement(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)
	p.SetTasks(paneTasks())

	require.Equal(t, 0, p.SelectedIndex())

	p.MoveDown()
	assert.Equal(t, 1, p.SelectedIndex())
	assert.Equal(t, 2, p.Selected().ID)

	p.MoveDown()
	p.MoveDown() // clamped at the last row
	assert.Equal(t, 2, p.SelectedIndex())

	p.MoveUp()
	assert.Equal(t, 1, p.SelectedIndex())
}

func TestTaskPane_SelectionClampsOnShrink(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)
	p.SetTasks(paneTasks())
	p.Select(2)

	p.SetTasks(paneTasks()[:1])
	assert.Equal(t, 0, p.SelectedIndex())
	require.NotNil(t, p.Selected())
	assert.Equal(t, 1, p.Selected().ID)
}

func TestTaskPane_OverdueMarker(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)
	p.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }
	p.SetTasks(paneTasks())

	// Task 1 is pending with a 2026-08-01 due date, so it is overdue. Move
	// the cursor off it so the row keeps its per-cell styling.
	p.MoveDown()
	out := zone.Scan(p.String())
	assert.Contains(t, out, "Aug 01 !")
}

func TestTaskPane_DoneRowNeverOverdue(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)
	p.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }
	p.SetTasks([]task.Task{
		{ID: 9, Title: "archived", Status: task.StatusDone, DueDate: "2026-08-01T00:00:00Z"},
	})

	p.MoveDown()
	out := zone.Scan(p.String())
	assert.NotContains(t, out, "!")
}

func TestTaskPane_RowZonesMarked(t *testing.T) {
	p := NewTaskPane()
	p.SetSize(80, 10)
	p.SetTasks(paneTasks())

	raw := p.String()
	// zone.Scan strips the markers; their presence in the raw output is what
	// the mouse handler relies on.
	assert.NotEqual(t, raw, zone.Scan(raw))
}
