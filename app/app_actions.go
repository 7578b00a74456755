package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"taskflow/config/eventlog"
	"taskflow/internal/api"
	"taskflow/log"
	"taskflow/task"
	"taskflow/ui"
	"taskflow/ui/overlay"
)

// offlineReplyText is the canned agent reply shown when the chat channel is
// down and a message cannot be delivered.
const offlineReplyText = "I'm currently offline. Please check your connection and try again, " +
	"or press n to create the task manually."

const taskPageLimit = 200

type fetchMode int

const (
	// fetchInitial is the startup REST snapshot. It loses to any push
	// snapshot that arrived first.
	fetchInitial fetchMode = iota
	// fetchRefresh re-reads the table after a local mutation and always
	// applies.
	fetchRefresh
)

// tasksFetchedMsg delivers a REST snapshot back to the update loop.
type tasksFetchedMsg struct {
	tasks []task.Task
	mode  fetchMode
	err   error
}

// taskMutatedMsg delivers the result of a create/update/delete call.
type taskMutatedMsg struct {
	verb    string
	toastID string
	err     error
}

// offlineReplyMsg fires the canned agent reply while the chat channel is down.
type offlineReplyMsg struct{}

// chatRestReplyMsg carries an agent reply obtained over the REST fallback
// path while the chat socket is down.
type chatRestReplyMsg struct {
	resp *api.ChatResponse
}

// eventsLoadedMsg delivers queried sync events for the event browser.
type eventsLoadedMsg struct {
	events []eventlog.Event
	err    error
}

func (m *home) fetchTasksCmd(mode fetchMode) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.client.GetTasks(m.ctx, 0, taskPageLimit)
		return tasksFetchedMsg{tasks: tasks, mode: mode, err: err}
	}
}

func (m *home) handleTasksFetched(msg tasksFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.WarningLog.Printf("task fetch failed: %v", msg.err)
		m.events.Emit(eventlog.New(eventlog.EventRequestFailed, msg.err.Error(),
			eventlog.WithLevel("warning")))
		// The pushed snapshot stream still covers us; don't toast on the
		// initial fetch racing a dead server.
		if msg.mode == fetchRefresh {
			return m, m.handleError(msg.err)
		}
		return m, nil
	}

	switch msg.mode {
	case fetchInitial:
		if !m.reconciler.ApplyInitialSnapshot(msg.tasks) {
			m.events.Emit(eventlog.New(eventlog.EventSnapshotSkipped,
				"initial snapshot lost to an earlier push", eventlog.WithChannel("task")))
		}
	case fetchRefresh:
		m.reconciler.ApplyRefreshSnapshot(msg.tasks)
	}
	m.syncPanes()
	return m, nil
}

// sendChatMessage delivers the typed message over the chat socket, or falls
// back to a canned offline reply when the channel is down.
func (m *home) sendChatMessage() tea.Cmd {
	text := strings.TrimSpace(m.chatPane.Value())
	if text == "" {
		return nil
	}
	m.chatPane.Reset()
	m.store.AppendUserMessage(text)
	m.store.SetTyping(true)
	m.syncPanes()

	if !m.chatMgr.IsOpen() {
		return m.sendChatFallback(text)
	}

	payload := map[string]string{"message": text}
	if id := m.store.SessionID(); id != "" {
		payload["session_id"] = id
	}
	if err := m.chatMgr.Send(payload); err != nil {
		log.WarningLog.Printf("chat send failed: %v", err)
		return m.sendChatFallback(text)
	}
	return m.chatPane.SpinnerTick()
}

// sendChatFallback tries the REST chat endpoint while the socket is down.
// When that fails too the user gets the canned offline reply after a beat.
func (m *home) sendChatFallback(text string) tea.Cmd {
	req := api.ChatRequest{Message: text, SessionID: m.store.SessionID()}
	return func() tea.Msg {
		resp, err := m.client.SendChatMessage(m.ctx, req)
		if err != nil {
			log.WarningLog.Printf("chat REST fallback failed: %v", err)
			time.Sleep(time.Second)
			return offlineReplyMsg{}
		}
		return chatRestReplyMsg{resp: resp}
	}
}

func (m *home) createTaskCmd(create task.Create) tea.Cmd {
	toastID := m.toastManager.Loading("creating task...")
	return tea.Batch(m.toastTickCmd(), func() tea.Msg {
		_, err := m.client.CreateTask(m.ctx, create)
		return taskMutatedMsg{verb: "created", toastID: toastID, err: err}
	})
}

func (m *home) updateTaskCmd(id int, update task.Update) tea.Cmd {
	toastID := m.toastManager.Loading("saving task...")
	return tea.Batch(m.toastTickCmd(), func() tea.Msg {
		_, err := m.client.UpdateTask(m.ctx, id, update)
		return taskMutatedMsg{verb: "saved", toastID: toastID, err: err}
	})
}

func (m *home) deleteTaskCmd(id int) tea.Cmd {
	toastID := m.toastManager.Loading("deleting task...")
	return tea.Batch(m.toastTickCmd(), func() tea.Msg {
		err := m.client.DeleteTask(m.ctx, id)
		return taskMutatedMsg{verb: "deleted", toastID: toastID, err: err}
	})
}

// cycleTaskStatus advances the selected task pending → in_progress → done →
// pending via a partial update.
func (m *home) cycleTaskStatus() tea.Cmd {
	sel := m.taskPane.Selected()
	if sel == nil {
		return nil
	}
	var next task.Status
	switch sel.Status {
	case task.StatusPending:
		next = task.StatusInProgress
	case task.StatusInProgress:
		next = task.StatusDone
	default:
		next = task.StatusPending
	}
	return m.updateTaskCmd(sel.ID, task.Update{Status: &next})
}

func (m *home) handleTaskMutated(msg taskMutatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.events.Emit(eventlog.New(eventlog.EventRequestFailed, msg.err.Error(),
			eventlog.WithLevel("error")))
		m.toastManager.Resolve(msg.toastID, overlay.ToastError, friendlyAPIError(msg.err))
		return m, m.toastTickCmd()
	}
	m.toastManager.Resolve(msg.toastID, overlay.ToastSuccess, "task "+msg.verb)
	// Re-read the table so the local change is visible even if the push
	// snapshot lags.
	return m, tea.Batch(m.toastTickCmd(), m.fetchTasksCmd(fetchRefresh))
}

// retryConnections resets both channels' attempt counters and reconnects.
func (m *home) retryConnections() tea.Cmd {
	m.events.Emit(eventlog.New(eventlog.EventManualRetry, "manual retry requested"))
	if !m.chatMgr.IsOpen() {
		m.chatMgr.Retry()
	}
	if !m.taskMgr.IsOpen() {
		m.taskMgr.Retry()
	}
	m.menu.SetTerminalError(false)
	m.syncPanes()
	m.toastManager.Info("reconnecting...")
	return m.toastTickCmd()
}

// yankSelection copies the latest agent reply (chat focus) or the selected
// task title (task focus) to the clipboard.
func (m *home) yankSelection() tea.Cmd {
	var text string
	if m.state == stateChat {
		text = m.chatPane.LastAgentMessage()
	} else if sel := m.taskPane.Selected(); sel != nil {
		text = sel.Title
	}
	return m.yankText(text)
}

func (m *home) yankText(text string) tea.Cmd {
	if text == "" {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		return m.handleError(fmt.Errorf("clipboard: %w", err))
	}
	m.toastManager.Success("copied")
	return m.toastTickCmd()
}

// toggleDarkMode flips the persisted theme and repaints the terminal
// background in place.
func (m *home) toggleDarkMode() {
	m.store.ToggleDarkMode()
	ui.ApplyTheme(m.store.IsDarkMode())
	ui.SetTerminalBackground(ui.BackgroundHex())
	m.chatPane.Retheme()
	m.syncPanes()
}

// loadEventsCmd queries the newest sync events for the browser overlay.
func (m *home) loadEventsCmd() tea.Cmd {
	return func() tea.Msg {
		events, err := m.events.Query(eventlog.QueryFilter{Limit: 100})
		return eventsLoadedMsg{events: events, err: err}
	}
}

// friendlyAPIError keeps status errors short enough for a toast.
func friendlyAPIError(err error) string {
	if se, ok := err.(*api.StatusError); ok {
		return fmt.Sprintf("server rejected the request (%d)", se.Code)
	}
	return err.Error()
}
