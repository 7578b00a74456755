package ui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func stripMenuANSI(s string) string {
	return ansi.Strip(s)
}

func TestMenu_TasksStateShowsTaskActions(t *testing.T) {
	m := NewMenu()
	m.SetSize(160, 1)
	m.SetState(StateTasks)

	out := stripMenuANSI(m.String())
	assert.Contains(t, out, "new task")
	assert.Contains(t, out, "edit task")
	assert.Contains(t, out, "delete task")
	assert.Contains(t, out, "cycle status")
	assert.Contains(t, out, "quit")
}

func TestMenu_ChatStateShowsSendOnly(t *testing.T) {
	m := NewMenu()
	m.SetSize(160, 1)
	m.SetState(StateChat)

	out := stripMenuANSI(m.String())
	assert.Contains(t, out, "send")
	assert.NotContains(t, out, "new task")
}

func TestMenu_TerminalErrorShowsRetryRail(t *testing.T) {
	m := NewMenu()
	m.SetSize(160, 1)
	m.SetState(StateTasks)
	m.SetTerminalError(true)

	out := stripMenuANSI(m.String())
	assert.Contains(t, out, "retry connection")
	assert.NotContains(t, out, "new task")

	m.SetTerminalError(false)
	out = stripMenuANSI(m.String())
	assert.Contains(t, out, "new task")
	assert.NotContains(t, out, "retry connection")
}

func TestMenu_TerminalErrorOnlyAffectsTasksState(t *testing.T) {
	m := NewMenu()
	m.SetSize(160, 1)
	m.SetTerminalError(true)
	m.SetState(StateChat)

	out := stripMenuANSI(m.String())
	assert.Contains(t, out, "send")
	assert.NotContains(t, out, "retry connection")
}
