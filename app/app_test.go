package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/config"
	"taskflow/internal/api"
	"taskflow/internal/conn"
	"taskflow/task"
)

func init() {
	zone.NewGlobal()
}

// newTestHome builds a home wired to unreachable endpoints. Nothing here
// dials: Connect only happens in Init, which these tests never call.
func newTestHome(t *testing.T) *home {
	t.Helper()
	cfg := &config.Config{
		APIBaseURL: "http://127.0.0.1:1",
		WSBaseURL:  "ws://127.0.0.1:1",
	}
	return newHome(context.Background(), cfg, config.DefaultState(), nil)
}

func frame(typ, data string) conn.Frame {
	f := conn.Frame{Type: typ}
	if data != "" {
		f.Data = json.RawMessage(data)
	}
	return f
}

func snapshot(titles ...string) []task.Task {
	tasks := make([]task.Task, len(titles))
	for i, title := range titles {
		tasks[i] = task.Task{
			ID:       i + 1,
			Title:    title,
			Status:   task.StatusPending,
			Priority: task.PriorityMedium,
		}
	}
	return tasks
}

func TestChatFrame_ConnectionSetsSessionAndGreeting(t *testing.T) {
	m := newTestHome(t)

	m.routeChatFrame(frame(conn.TypeConnection,
		`{"session_id":"sess-1","message":"Hello! How can I help?"}`))

	assert.Equal(t, "sess-1", m.store.SessionID())
	msgs := m.store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Hello! How can I help?", msgs[0].Message)
}

func TestChatFrame_GreetingOnlyOnEmptyTranscript(t *testing.T) {
	m := newTestHome(t)
	m.store.AppendUserMessage("hi")

	m.routeChatFrame(frame(conn.TypeConnection,
		`{"session_id":"sess-2","message":"Hello again"}`))

	// Session id still updates on reconnect, but no duplicate greeting.
	assert.Equal(t, "sess-2", m.store.SessionID())
	assert.Len(t, m.store.Messages(), 1)
}

func TestChatFrame_ResponseAppendsAndClearsTyping(t *testing.T) {
	m := newTestHome(t)
	m.store.SetTyping(true)

	m.routeChatFrame(frame(conn.TypeChatResponse, `{"response":"Created the task."}`))

	assert.False(t, m.store.IsTyping())
	msgs := m.store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Created the task.", msgs[0].Message)
}

func TestChatFrame_ErrorSetsConnErrorAndClearsTyping(t *testing.T) {
	m := newTestHome(t)
	m.store.SetTyping(true)

	m.routeChatFrame(frame(conn.TypeError, `{"message":"agent unavailable"}`))

	assert.False(t, m.store.IsTyping())
	assert.Equal(t, "agent unavailable", m.store.ChatConn().Error)
}

func TestChatFrame_UnknownTypeIsIgnored(t *testing.T) {
	m := newTestHome(t)
	m.routeChatFrame(frame("presence", `{}`))
	assert.Empty(t, m.store.Messages())
}

func TestTaskFrame_PushSnapshotReplacesTasks(t *testing.T) {
	m := newTestHome(t)
	m.reconciler.ApplyPushSnapshot(snapshot("old"))

	m.routeTaskFrame(frame(conn.TypeTaskUpdate,
		`{"tasks":[{"id":7,"title":"new","status":"pending","priority":"high"}]}`))

	tasks := m.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, 7, tasks[0].ID)
	assert.Equal(t, "new", tasks[0].Title)
}

func TestTaskFrame_MalformedSnapshotIsDiscarded(t *testing.T) {
	m := newTestHome(t)
	m.reconciler.ApplyPushSnapshot(snapshot("keep me"))

	m.routeTaskFrame(frame(conn.TypeTaskUpdate, `{"count":3}`))

	tasks := m.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep me", tasks[0].Title)
}

func TestTaskFrame_ErrorSetsTaskConnError(t *testing.T) {
	m := newTestHome(t)
	m.routeTaskFrame(frame(conn.TypeError, `{"message":"boom"}`))
	assert.Equal(t, "boom", m.store.TaskConn().Error)
}

func TestTasksFetched_InitialAppliesWhenNoPushSeen(t *testing.T) {
	m := newTestHome(t)

	m.handleTasksFetched(tasksFetchedMsg{tasks: snapshot("a", "b"), mode: fetchInitial})

	assert.Len(t, m.store.Tasks(), 2)
}

func TestTasksFetched_InitialLosesToEarlierPush(t *testing.T) {
	m := newTestHome(t)
	m.routeTaskFrame(frame(conn.TypeTaskUpdate,
		`{"tasks":[{"id":1,"title":"pushed","status":"pending","priority":"low"}]}`))

	m.handleTasksFetched(tasksFetchedMsg{tasks: snapshot("stale", "rest"), mode: fetchInitial})

	tasks := m.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "pushed", tasks[0].Title)
}

func TestTasksFetched_RefreshAlwaysApplies(t *testing.T) {
	m := newTestHome(t)
	m.routeTaskFrame(frame(conn.TypeTaskUpdate,
		`{"tasks":[{"id":1,"title":"pushed","status":"pending","priority":"low"}]}`))

	m.handleTasksFetched(tasksFetchedMsg{tasks: snapshot("fresh"), mode: fetchRefresh})

	tasks := m.store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "fresh", tasks[0].Title)
}

func TestTasksFetched_InitialErrorDoesNotToast(t *testing.T) {
	m := newTestHome(t)
	_, cmd := m.handleTasksFetched(tasksFetchedMsg{mode: fetchInitial, err: assert.AnError})
	assert.Nil(t, cmd)
	assert.False(t, m.toastManager.HasActiveToasts())
}

func TestChatRestFallback_AppendsReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"done via fallback","session_id":"sess-9"}`))
	}))
	defer srv.Close()

	m := newTestHome(t)
	m.client = api.NewClient(srv.URL)
	m.store.SetTyping(true)

	msg := m.sendChatFallback("add a task")()
	reply, ok := msg.(chatRestReplyMsg)
	require.True(t, ok)

	m.Update(reply)
	msgs := m.store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "done via fallback", msgs[0].Message)
	assert.Equal(t, "sess-9", m.store.SessionID())
	assert.False(t, m.store.IsTyping())
}

func TestOfflineReply_OnlyWhileTyping(t *testing.T) {
	m := newTestHome(t)

	m.Update(offlineReplyMsg{})
	assert.Empty(t, m.store.Messages())

	m.store.SetTyping(true)
	m.Update(offlineReplyMsg{})
	msgs := m.store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, offlineReplyText, msgs[0].Message)
	assert.False(t, m.store.IsTyping())
}

func TestCycleFilter(t *testing.T) {
	m := newTestHome(t)

	want := []task.Status{task.StatusPending, task.StatusInProgress, task.StatusDone, ""}
	for _, expected := range want {
		m.cycleFilter()
		assert.Equal(t, expected, m.filter)
	}
}

func TestVisibleTasks_FilterAndSearch(t *testing.T) {
	m := newTestHome(t)
	m.reconciler.ApplyPushSnapshot([]task.Task{
		{ID: 1, Title: "Write report", Status: task.StatusPending},
		{ID: 2, Title: "Ship release", Status: task.StatusDone},
		{ID: 3, Title: "Review report draft", Status: task.StatusDone},
	})

	m.filter = task.StatusDone
	got := m.visibleTasks()
	assert.Len(t, got, 2)

	m.search = "report"
	got = m.visibleTasks()
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}

func TestCyclePriorityFilter(t *testing.T) {
	m := newTestHome(t)

	want := []task.Priority{task.PriorityLow, task.PriorityMedium, task.PriorityHigh, ""}
	for _, expected := range want {
		m.cyclePriorityFilter()
		assert.Equal(t, expected, m.priorityFilter)
	}
}

func TestVisibleTasks_PriorityFilter(t *testing.T) {
	m := newTestHome(t)
	m.reconciler.ApplyPushSnapshot([]task.Task{
		{ID: 1, Title: "urgent", Status: task.StatusPending, Priority: task.PriorityHigh},
		{ID: 2, Title: "later", Status: task.StatusPending, Priority: task.PriorityLow},
	})

	m.priorityFilter = task.PriorityHigh
	got := m.visibleTasks()
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "high", m.filterLabel())

	m.filter = task.StatusPending
	assert.Equal(t, "pending+high", m.filterLabel())
}

func TestChatStateTransitions(t *testing.T) {
	m := newTestHome(t)
	require.Equal(t, stateTasks, m.state)

	m.enterChatState()
	assert.Equal(t, stateChat, m.state)

	m.exitChatState()
	assert.Equal(t, stateTasks, m.state)
}

func TestViewRendersAfterResize(t *testing.T) {
	m := newTestHome(t)
	m.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.reconciler.ApplyPushSnapshot(snapshot("first", "second"))
	m.store.AppendAgentMessage("hello")
	m.syncPanes()

	view := m.View()
	assert.Contains(t, view, "first")
	assert.Contains(t, view, "hello")
}
