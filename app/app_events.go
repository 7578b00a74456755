package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"taskflow/config/eventlog"
	"taskflow/internal/conn"
	"taskflow/log"
	"taskflow/store"
)

// channelEventMsg wraps one lifecycle or data event from a channel manager.
type channelEventMsg struct {
	ev conn.Event
}

// waitForChannelEvent blocks on the manager's event stream and feeds the next
// event into the update loop. The returned command re-arms itself from Update.
func (m *home) waitForChannelEvent(mgr *conn.Manager) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-mgr.Events()
		if !ok {
			return nil
		}
		return channelEventMsg{ev: ev}
	}
}

func (m *home) managerFor(channel string) *conn.Manager {
	if channel == "chat" {
		return m.chatMgr
	}
	return m.taskMgr
}

// handleChannelEvent routes one channel event: lifecycle events update the
// per-channel connection state, data frames go to the frame router.
func (m *home) handleChannelEvent(msg channelEventMsg) (tea.Model, tea.Cmd) {
	mgr := m.managerFor(msg.ev.Channel())
	rearm := m.waitForChannelEvent(mgr)
	var extra tea.Cmd

	switch ev := msg.ev.(type) {
	case conn.Opened:
		m.setConnState(ev.Channel(), store.ConnectionState{Connected: true})
		m.events.Emit(eventlog.New(eventlog.EventChannelConnected, "channel connected",
			eventlog.WithChannel(ev.Channel())))

	case conn.Reconnecting:
		m.setConnState(ev.Channel(), store.ConnectionState{
			Reconnecting: true,
			Attempts:     ev.Attempt,
			Error:        fmt.Sprintf("Reconnecting... (%d/%d)", ev.Attempt, ev.Max),
		})
		m.events.Emit(eventlog.New(eventlog.EventReconnectScheduled,
			fmt.Sprintf("retry in %s", ev.Delay),
			eventlog.WithChannel(ev.Channel()),
			eventlog.WithAttempt(ev.Attempt),
			eventlog.WithLevel("warning")))

	case conn.Terminal:
		m.setConnState(ev.Channel(), store.ConnectionState{Error: ev.Err})
		m.events.Emit(eventlog.New(eventlog.EventAttemptsExhausted, ev.Err,
			eventlog.WithChannel(ev.Channel()),
			eventlog.WithLevel("error")))
		m.toastManager.Error(ev.Err)
		extra = m.toastTickCmd()

	case conn.Closed:
		m.setConnState(ev.Channel(), store.ConnectionState{})
		m.events.Emit(eventlog.New(eventlog.EventChannelClosed, "channel closed",
			eventlog.WithChannel(ev.Channel())))

	case conn.FrameReceived:
		extra = m.routeFrame(ev.Channel(), ev.Frame)
	}

	m.syncPanes()
	return m, tea.Batch(rearm, extra)
}

func (m *home) setConnState(channel string, cs store.ConnectionState) {
	if channel == "chat" {
		m.store.SetChatConn(cs)
	} else {
		m.store.SetTaskConn(cs)
	}
}

// routeFrame dispatches one parsed frame by channel and type. Unknown types
// are logged and dropped, never fatal.
func (m *home) routeFrame(channel string, f conn.Frame) tea.Cmd {
	if channel == "chat" {
		return m.routeChatFrame(f)
	}
	return m.routeTaskFrame(f)
}

func (m *home) routeChatFrame(f conn.Frame) tea.Cmd {
	switch f.Type {
	case conn.TypeConnection:
		data, err := f.Connection()
		if err != nil {
			log.WarningLog.Printf("chat connection frame: %v", err)
			return nil
		}
		if data.SessionID != "" {
			m.store.SetSessionID(data.SessionID)
		}
		if data.Message != "" && len(m.store.Messages()) == 0 {
			m.store.AppendAgentMessage(data.Message)
		}
		return nil

	case conn.TypeChatResponse:
		data, err := f.ChatResponse()
		if err != nil {
			log.WarningLog.Printf("chat response frame: %v", err)
			return nil
		}
		m.store.SetTyping(false)
		m.store.AppendAgentMessage(data.Response)
		return nil

	case conn.TypeError:
		m.store.SetTyping(false)
		errMsg := f.ErrorMessage()
		cs := m.store.ChatConn()
		cs.Error = errMsg
		m.store.SetChatConn(cs)
		m.events.Emit(eventlog.New(eventlog.EventError, errMsg,
			eventlog.WithChannel("chat"), eventlog.WithLevel("error")))
		return nil

	default:
		log.WarningLog.Printf("unknown chat frame type %q", f.Type)
		m.events.Emit(eventlog.New(eventlog.EventUnknownFrameType, f.Type,
			eventlog.WithChannel("chat"), eventlog.WithLevel("warning")))
		return nil
	}
}

func (m *home) routeTaskFrame(f conn.Frame) tea.Cmd {
	switch f.Type {
	case conn.TypeTaskUpdate:
		tasks, ok := f.TaskUpdate()
		if !ok {
			log.WarningLog.Print("task_update frame without a well-formed tasks array, discarding")
			m.events.Emit(eventlog.New(eventlog.EventMalformedSnapshot,
				"task_update without tasks array",
				eventlog.WithChannel("task"), eventlog.WithLevel("warning")))
			return nil
		}
		m.reconciler.ApplyPushSnapshot(tasks)
		m.events.Emit(eventlog.New(eventlog.EventSnapshotApplied,
			fmt.Sprintf("push snapshot, %d tasks", len(tasks)),
			eventlog.WithChannel("task")))
		return nil

	case conn.TypeConnection:
		// The task channel's hello carries no state we keep.
		return nil

	case conn.TypeError:
		errMsg := f.ErrorMessage()
		cs := m.store.TaskConn()
		cs.Error = errMsg
		m.store.SetTaskConn(cs)
		m.events.Emit(eventlog.New(eventlog.EventError, errMsg,
			eventlog.WithChannel("task"), eventlog.WithLevel("error")))
		return nil

	default:
		log.WarningLog.Printf("unknown task frame type %q", f.Type)
		m.events.Emit(eventlog.New(eventlog.EventUnknownFrameType, f.Type,
			eventlog.WithChannel("task"), eventlog.WithLevel("warning")))
		return nil
	}
}
