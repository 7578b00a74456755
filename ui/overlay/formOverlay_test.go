package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/task"
)

func typeRunes(f *TaskFormOverlay, s string) {
	for _, r := range s {
		f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTaskForm_SubmitWithTitle(t *testing.T) {
	f := NewTaskFormOverlay(60)
	typeRunes(f, "buy milk")

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, closed)
	assert.True(t, f.IsSubmitted())

	req := f.TaskCreate()
	assert.Equal(t, "buy milk", req.Title)
	assert.Equal(t, "", req.Description)
	assert.Equal(t, task.StatusPending, req.Status)
	assert.Equal(t, task.PriorityMedium, req.Priority)
	assert.Equal(t, "", req.DueDate)
}

func TestTaskForm_SubmitWithDescription(t *testing.T) {
	f := NewTaskFormOverlay(60)
	typeRunes(f, "groceries")

	f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyTab})
	typeRunes(f, "milk and eggs")

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, closed)

	req := f.TaskCreate()
	assert.Equal(t, "groceries", req.Title)
	assert.Equal(t, "milk and eggs", req.Description)
}

func TestTaskForm_EmptyTitleDoesNotSubmit(t *testing.T) {
	f := NewTaskFormOverlay(60)

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, closed)
	assert.False(t, f.IsSubmitted())
}

func TestTaskForm_EscCancels(t *testing.T) {
	f := NewTaskFormOverlay(60)

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, closed)
	assert.False(t, f.IsSubmitted())
	assert.True(t, f.IsCanceled())
}

func TestTaskForm_InvalidDueDateBlocksSubmit(t *testing.T) {
	f := NewTaskFormOverlay(60)
	f.titleVal = "report"
	f.dueVal = "next tuesday"

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, closed)
	assert.False(t, f.IsSubmitted())
}

func TestTaskForm_DueDateConvertsToTimestamp(t *testing.T) {
	f := NewTaskFormOverlay(60)
	f.titleVal = "report"
	f.dueVal = "2026-09-15"

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, closed)
	assert.Equal(t, "2026-09-15T00:00:00Z", f.TaskCreate().DueDate)
}

func TestTaskForm_EditPrefillsFields(t *testing.T) {
	f := NewTaskEditOverlay(60, task.Task{
		ID:          7,
		Title:       "ship release",
		Description: "tag and publish",
		Status:      task.StatusInProgress,
		Priority:    task.PriorityHigh,
		DueDate:     "2026-09-10T00:00:00Z",
	})

	closed := f.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, closed)

	upd := f.TaskUpdate()
	require.NotNil(t, upd.Title)
	assert.Equal(t, "ship release", *upd.Title)
	require.NotNil(t, upd.Status)
	assert.Equal(t, task.StatusInProgress, *upd.Status)
	require.NotNil(t, upd.Priority)
	assert.Equal(t, task.PriorityHigh, *upd.Priority)
	require.NotNil(t, upd.DueDate)
	assert.Equal(t, "2026-09-10T00:00:00Z", *upd.DueDate)
}

func TestTaskForm_Render(t *testing.T) {
	f := NewTaskFormOverlay(60)

	output := f.Render()
	assert.NotEmpty(t, output)
	assert.Contains(t, output, "New task")
}
