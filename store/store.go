// Package store holds the client-side state the UI renders: the chat
// transcript, the task collection, per-channel connection status, and the
// dark-mode preference. Everything except dark mode is rebuilt from scratch
// on every run.
//
// The store is not safe for concurrent use. All mutations happen inside the
// single update loop; channel goroutines deliver events into that loop
// instead of touching the store directly.
package store

import (
	"strconv"
	"time"

	"taskflow/config"
	"taskflow/task"
)

// MessageType distinguishes who authored a chat message.
type MessageType string

const (
	MessageUser  MessageType = "user"
	MessageAgent MessageType = "agent"
)

// ChatMessage is one entry in the append-only chat transcript.
type ChatMessage struct {
	ID        string      `json:"id"`
	Message   string      `json:"message"`
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"`
	SessionID string      `json:"session_id,omitempty"`
}

// ConnectionState is one channel's connection status as shown to the user.
type ConnectionState struct {
	Connected    bool
	Reconnecting bool
	Error        string
	Attempts     int
}

// Store is the per-session holder of UI state.
type Store struct {
	messages []ChatMessage
	tasks    []task.Task

	chatConn ConnectionState
	taskConn ConnectionState

	sessionID string
	typing    bool

	prefs *config.State

	// now is stubbed in tests to make message IDs deterministic.
	now func() time.Time
}

// New creates a Store with defaults, loading the dark-mode preference from
// prefs. prefs may be nil, in which case dark mode starts false and toggles
// are not persisted.
func New(prefs *config.State) *Store {
	return &Store{
		prefs: prefs,
		now:   time.Now,
	}
}

// Messages returns the chat transcript in append order.
func (s *Store) Messages() []ChatMessage {
	return s.messages
}

// Tasks returns the currently displayed task collection.
func (s *Store) Tasks() []task.Task {
	return s.tasks
}

// SessionID returns the server-assigned chat session id, "" before the
// first connection frame.
func (s *Store) SessionID() string {
	return s.sessionID
}

// SetSessionID records the server-assigned session id.
func (s *Store) SetSessionID(id string) {
	s.sessionID = id
}

// IsTyping reports whether the agent-is-typing indicator is on.
func (s *Store) IsTyping() bool {
	return s.typing
}

// SetTyping sets the agent-is-typing indicator.
func (s *Store) SetTyping(v bool) {
	s.typing = v
}

// IsDarkMode reports the current theme preference.
func (s *Store) IsDarkMode() bool {
	if s.prefs == nil {
		return false
	}
	return s.prefs.DarkMode
}

// ToggleDarkMode flips the theme preference and persists it immediately.
func (s *Store) ToggleDarkMode() {
	if s.prefs == nil {
		return
	}
	s.prefs.SetDarkMode(!s.prefs.DarkMode)
}

// ChatConn returns the chat channel's connection status.
func (s *Store) ChatConn() ConnectionState {
	return s.chatConn
}

// TaskConn returns the task channel's connection status.
func (s *Store) TaskConn() ConnectionState {
	return s.taskConn
}

// SetChatConn replaces the chat channel's connection status.
func (s *Store) SetChatConn(cs ConnectionState) {
	s.chatConn = cs
}

// SetTaskConn replaces the task channel's connection status.
func (s *Store) SetTaskConn(cs ConnectionState) {
	s.taskConn = cs
}

// AppendMessage appends to the transcript. Messages are never mutated or
// removed once appended.
func (s *Store) AppendMessage(m ChatMessage) {
	s.messages = append(s.messages, m)
}

// AppendUserMessage appends a user-authored message and returns it.
func (s *Store) AppendUserMessage(text string) ChatMessage {
	m := s.newMessage(text, MessageUser)
	s.AppendMessage(m)
	return m
}

// AppendAgentMessage appends an agent-authored message and returns it.
func (s *Store) AppendAgentMessage(text string) ChatMessage {
	m := s.newMessage(text, MessageAgent)
	s.AppendMessage(m)
	return m
}

// ReplaceTasks swaps in a complete task collection. The store never merges
// individual tasks; the server is the sole arbiter of list content.
func (s *Store) ReplaceTasks(tasks []task.Task) {
	s.tasks = tasks
}

// newMessage builds a ChatMessage with a time-derived id. IDs are unique
// enough for rendering keys, not globally.
func (s *Store) newMessage(text string, mt MessageType) ChatMessage {
	now := s.now()
	return ChatMessage{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Message:   text,
		Type:      mt,
		Timestamp: now.UTC().Format(time.RFC3339),
		SessionID: s.sessionID,
	}
}
