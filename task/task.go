// Package task defines the task data model shared by the REST client, the
// sync channels, and the UI. Tasks are owned by the server; the client only
// ever holds cached copies that are replaced wholesale by snapshots.
package task

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Statuses lists all statuses in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// Priorities lists all priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Valid reports whether p is a recognized priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a server-assigned task record. Timestamps are RFC 3339 strings as
// delivered on the wire; they are parsed lazily where needed so a malformed
// timestamp never rejects an otherwise valid snapshot.
type Task struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Create is the request body for creating a task.
type Create struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
}

// Update is the request body for a partial task update. Nil fields are
// omitted from the payload and left unchanged by the server.
type Update struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}

// Filter narrows a server-side task listing.
type Filter struct {
	Status    Status
	Priority  Priority
	DueBefore string
	DueAfter  string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.Priority == "" && f.DueBefore == "" && f.DueAfter == ""
}

// Due parses the task's due date. The second return is false when the task
// has no due date or it cannot be parsed.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Overdue reports whether the task's due date has passed and the task is not
// done. Tasks without a (parseable) due date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == StatusDone {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	return now.After(due)
}

// MatchesSearch reports whether the task's title or description contains the
// term, case-insensitively. An empty term matches everything.
func (t Task) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}
