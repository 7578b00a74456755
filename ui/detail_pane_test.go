package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskflow/task"
)

func TestDetailPane_NoTask(t *testing.T) {
	p := NewDetailPane()
	p.SetSize(80, 24)
	assert.Contains(t, p.String(), "no task selected")
}

func TestDetailPane_FullRecord(t *testing.T) {
	p := NewDetailPane()
	p.SetSize(80, 24)
	p.SetTask(task.Task{
		ID:          4,
		Title:       "write quarterly report",
		Description: "include the churn numbers from finance",
		Status:      task.StatusInProgress,
		Priority:    task.PriorityHigh,
		DueDate:     "2026-09-30T00:00:00Z",
		CreatedAt:   "2026-09-01T08:00:00Z",
		UpdatedAt:   "2026-09-01T09:30:00Z",
	})

	output := p.String()
	assert.Contains(t, output, "write quarterly report")
	assert.Contains(t, output, "in_progress")
	assert.Contains(t, output, "high")
	assert.Contains(t, output, "churn numbers")
	assert.Contains(t, output, "description")
}

func TestDetailPane_OverdueLabel(t *testing.T) {
	p := NewDetailPane()
	p.SetSize(80, 24)
	p.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }
	p.SetTask(task.Task{
		Title:    "expired",
		Status:   task.StatusPending,
		Priority: task.PriorityLow,
		DueDate:  "2026-08-15T00:00:00Z",
	})

	assert.Contains(t, p.String(), "(overdue)")
}

func TestDetailPane_NoDescriptionOmitsSection(t *testing.T) {
	p := NewDetailPane()
	p.SetSize(80, 24)
	p.SetTask(task.Task{
		Title:    "bare",
		Status:   task.StatusPending,
		Priority: task.PriorityLow,
	})

	assert.NotContains(t, p.String(), "description")
}

func TestDetailPane_ClearResets(t *testing.T) {
	p := NewDetailPane()
	p.SetSize(80, 24)
	p.SetTask(task.Task{Title: "something", Status: task.StatusPending, Priority: task.PriorityLow})
	p.Clear()

	assert.Contains(t, p.String(), "no task selected")
}
