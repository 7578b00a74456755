package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.True(t, StatusDone.Valid())
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityLow.Valid())
	assert.True(t, PriorityHigh.Valid())
	assert.False(t, Priority("urgent").Valid())
}

func TestDue(t *testing.T) {
	tk := Task{DueDate: "2026-03-01T12:00:00Z"}
	due, ok := tk.Due()
	require.True(t, ok)
	assert.Equal(t, 2026, due.Year())

	_, ok = Task{}.Due()
	assert.False(t, ok)

	_, ok = Task{DueDate: "next tuesday"}.Due()
	assert.False(t, ok)
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due pending", Task{Status: StatusPending, DueDate: "2026-03-01T12:00:00Z"}, true},
		{"past due in progress", Task{Status: StatusInProgress, DueDate: "2026-03-01T12:00:00Z"}, true},
		{"past due but done", Task{Status: StatusDone, DueDate: "2026-03-01T12:00:00Z"}, false},
		{"future due", Task{Status: StatusPending, DueDate: "2026-03-03T12:00:00Z"}, false},
		{"no due date", Task{Status: StatusPending}, false},
		{"unparseable due date", Task{Status: StatusPending, DueDate: "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Overdue(now))
		})
	}
}

func TestMatchesSearch(t *testing.T) {
	tk := Task{Title: "Write release notes", Description: "Cover the sync fixes"}

	assert.True(t, tk.MatchesSearch(""))
	assert.True(t, tk.MatchesSearch("release"))
	assert.True(t, tk.MatchesSearch("RELEASE"))
	assert.True(t, tk.MatchesSearch("sync fix"))
	assert.False(t, tk.MatchesSearch("deploy"))
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Status: StatusDone}.IsZero())
	assert.False(t, Filter{DueBefore: "2026-01-01T00:00:00Z"}.IsZero())
}
