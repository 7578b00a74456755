package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"taskflow/config"
	"taskflow/config/eventlog"
	"taskflow/internal/api"
	"taskflow/internal/conn"
	"taskflow/log"
	"taskflow/store"
	"taskflow/task"
	"taskflow/ui"
	"taskflow/ui/overlay"
)

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config, events eventlog.Logger) error {
	appState := config.LoadState()
	ui.ApplyTheme(appState.DarkMode)

	// Set the terminal's default background to the theme base color so every
	// ANSI reset and unstyled cell falls back to the theme instead of black.
	restore := ui.SetTerminalBackground(ui.BackgroundHex())
	defer restore()

	zone.NewGlobal()
	p := tea.NewProgram(
		newHome(ctx, cfg, appState, events),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // Full mouse tracking for hover + scroll + click
	)
	_, err := p.Run()
	return err
}

type state int

const (
	// stateTasks is the default state: task table focused.
	stateTasks state = iota
	// stateChat is the state when the chat input has keyboard focus.
	stateChat
	// stateForm is the state when the task create/edit form is displayed.
	stateForm
	// stateSearch is the state when the search input overlay is displayed.
	stateSearch
	// stateHelp is the state when the help screen is displayed.
	stateHelp
	// stateConfirm is the state when a delete confirmation modal is displayed.
	stateConfirm
	// stateEvents is the state when the sync event browser is displayed.
	stateEvents
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	appState  *config.State
	events    eventlog.Logger

	// -- Sync layer --

	client     *api.Client
	chatMgr    *conn.Manager
	taskMgr    *conn.Manager
	store      *store.Store
	reconciler *store.Reconciler

	// state is the current discrete state of the application
	state state

	// filter is the active status filter. Empty means all statuses.
	filter task.Status
	// priorityFilter is the active priority filter. Empty means all priorities.
	priorityFilter task.Priority
	// search is the active title/description search term.
	search string

	// -- UI Components --

	chatPane   *ui.ChatPane
	taskPane   *ui.TaskPane
	detailPane *ui.DetailPane
	// detailVisible toggles the detail pane below the task table.
	detailVisible bool

	statusBar    *ui.StatusBar
	menu         *ui.Menu
	toastManager *overlay.ToastManager
	// global spinner instance. we plumb this down to where it's needed
	spinner spinner.Model

	form *overlay.TaskFormOverlay
	// formEditID is the task being edited, 0 when the form creates a new one.
	formEditID   int
	searchInput  *overlay.TextInputOverlay
	textOverlay  *overlay.TextOverlay
	confirmation *overlay.ConfirmationOverlay
	// confirmDelete is the task id pending delete confirmation.
	confirmDelete int
	eventBrowser  *overlay.EventBrowserOverlay

	// Layout dimensions for mouse hit-testing.
	chatWidth     int
	taskWidth     int
	contentHeight int
	termWidth     int
	termHeight    int
}

func newHome(ctx context.Context, cfg *config.Config, appState *config.State, events eventlog.Logger) *home {
	if events == nil {
		events = eventlog.NopLogger()
	}

	st := store.New(appState)
	h := &home{
		ctx:        ctx,
		appConfig:  cfg,
		appState:   appState,
		events:     events,
		client:     api.NewClient(cfg.APIBaseURL),
		chatMgr:    conn.NewManager(conn.ChatOptions(cfg.ChatSocketURL())),
		taskMgr:    conn.NewManager(conn.TaskOptions(cfg.TaskSocketURL())),
		store:      st,
		reconciler: store.NewReconciler(st),
		state:      stateTasks,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		chatPane:   ui.NewChatPane(),
		taskPane:   ui.NewTaskPane(),
		detailPane: ui.NewDetailPane(),
		statusBar:  ui.NewStatusBar(),
		menu:       ui.NewMenu(),
	}
	h.toastManager = overlay.NewToastManager(&h.spinner)
	h.taskPane.Focus()
	return h
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) {
	m.termWidth = msg.Width
	m.termHeight = msg.Height

	// Two-column layout under the status bar: chat (40%), tasks (remaining).
	chatWidth := int(float32(msg.Width) * 0.4)
	if chatWidth < 30 {
		chatWidth = 30
	}
	taskWidth := msg.Width - chatWidth

	menuHeight := 1
	if msg.Height < 2 {
		menuHeight = 0
	}
	contentHeight := msg.Height - menuHeight - 1 // status bar takes one row
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.chatWidth = chatWidth
	m.taskWidth = taskWidth
	m.contentHeight = contentHeight

	m.statusBar.SetSize(msg.Width)
	m.chatPane.SetSize(chatWidth, contentHeight)
	if m.detailVisible {
		detailHeight := contentHeight / 3
		m.taskPane.SetSize(taskWidth, contentHeight-detailHeight)
		m.detailPane.SetSize(taskWidth, detailHeight)
	} else {
		m.taskPane.SetSize(taskWidth, contentHeight)
	}
	m.menu.SetSize(msg.Width, menuHeight)
	m.toastManager.SetSize(msg.Width, msg.Height)

	if m.searchInput != nil {
		m.searchInput.SetSize(int(float32(msg.Width)*0.5), 3)
	}
	if m.textOverlay != nil {
		m.textOverlay.SetWidth(int(float32(msg.Width) * 0.6))
	}
	m.syncPanes()
}

func (m *home) Init() tea.Cmd {
	m.chatMgr.Connect()
	m.taskMgr.Connect()
	return tea.Batch(
		m.spinner.Tick,
		m.waitForChannelEvent(m.chatMgr),
		m.waitForChannelEvent(m.taskMgr),
		m.fetchTasksCmd(fetchInitial),
		m.toastTickCmd(),
	)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case overlay.ToastTickMsg:
		m.toastManager.Tick()
		if m.toastManager.HasActiveToasts() {
			return m, m.toastTickCmd()
		}
		return m, nil
	case channelEventMsg:
		return m.handleChannelEvent(msg)
	case tasksFetchedMsg:
		return m.handleTasksFetched(msg)
	case taskMutatedMsg:
		return m.handleTaskMutated(msg)
	case chatRestReplyMsg:
		if m.store.IsTyping() {
			m.store.SetTyping(false)
			m.store.AppendAgentMessage(msg.resp.Response)
			if msg.resp.SessionID != "" {
				m.store.SetSessionID(msg.resp.SessionID)
			}
			m.syncPanes()
		}
		return m, nil
	case offlineReplyMsg:
		if m.store.IsTyping() {
			m.store.SetTyping(false)
			m.store.AppendAgentMessage(offlineReplyText)
			m.syncPanes()
		}
		return m, nil
	case eventsLoadedMsg:
		if msg.err != nil {
			return m, m.handleError(msg.err)
		}
		m.eventBrowser = overlay.NewEventBrowserOverlay(msg.events)
		m.state = stateEvents
		return m, nil
	case keyupMsg:
		m.menu.ClearKeydown()
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.updateHandleWindowSizeEvent(msg)
		return m, nil
	case error:
		return m, m.handleError(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, tea.Batch(cmd, m.chatPane.UpdateSpinner(msg))
	}
	return m, nil
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	m.chatMgr.Close()
	m.taskMgr.Close()
	if err := m.events.Close(); err != nil {
		log.WarningLog.Printf("could not close event log: %v", err)
	}
	return m, tea.Quit
}

// syncPanes pushes the store's current state into the render components.
func (m *home) syncPanes() {
	m.chatPane.SetMessages(m.store.Messages(), m.store.IsTyping())
	visible := m.visibleTasks()
	m.taskPane.SetTasks(visible)

	if m.detailVisible {
		if sel := m.taskPane.Selected(); sel != nil {
			m.detailPane.SetTask(*sel)
		} else {
			m.detailPane.Clear()
		}
	}

	done := 0
	for _, t := range visible {
		if t.Status == task.StatusDone {
			done++
		}
	}
	m.statusBar.SetData(ui.StatusBarData{
		ChatConn:  m.store.ChatConn(),
		TaskConn:  m.store.TaskConn(),
		SessionID: m.store.SessionID(),
		TaskCount: len(visible),
		DoneCount: done,
		Filter:    m.filterLabel(),
		Search:    m.search,
	})
	m.menu.SetTerminalError(m.hasTerminalError())
}

// visibleTasks applies the status filter and search term to the cached
// snapshot. The snapshot itself is never mutated.
func (m *home) visibleTasks() []task.Task {
	all := m.store.Tasks()
	if m.filter == "" && m.priorityFilter == "" && m.search == "" {
		return all
	}
	out := make([]task.Task, 0, len(all))
	for _, t := range all {
		if m.filter != "" && t.Status != m.filter {
			continue
		}
		if m.priorityFilter != "" && t.Priority != m.priorityFilter {
			continue
		}
		if !t.MatchesSearch(m.search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// filterLabel is the status bar's summary of the active filters.
func (m *home) filterLabel() string {
	label := string(m.filter)
	if m.priorityFilter != "" {
		if label != "" {
			label += "+"
		}
		label += string(m.priorityFilter)
	}
	return label
}

func (m *home) hasTerminalError() bool {
	return m.chatMgr.State() == conn.StateClosedFinal || m.taskMgr.State() == conn.StateClosedFinal
}

func (m *home) View() string {
	leftStyle := lipgloss.NewStyle().Height(m.contentHeight)
	left := leftStyle.Render(zone.Mark(ui.ZoneChatPane, m.chatPane.String()))

	var right string
	if m.detailVisible {
		right = lipgloss.JoinVertical(lipgloss.Left,
			zone.Mark(ui.ZoneTaskPane, m.taskPane.String()),
			m.detailPane.String(),
		)
	} else {
		right = zone.Mark(ui.ZoneTaskPane, m.taskPane.String())
	}
	right = leftStyle.Render(right)

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.statusBar.String(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.menu.String(),
	)

	var result string
	switch {
	case m.state == stateForm && m.form != nil:
		result = overlay.PlaceOverlay(0, 0, m.form.Render(), mainView, true, true)
	case m.state == stateSearch && m.searchInput != nil:
		result = overlay.PlaceOverlay(0, 0, m.searchInput.Render(), mainView, true, true)
	case m.state == stateHelp && m.textOverlay != nil:
		result = overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true, true)
	case m.state == stateConfirm && m.confirmation != nil:
		result = overlay.PlaceOverlay(0, 0, m.confirmation.Render(), mainView, true, true)
	case m.state == stateEvents && m.eventBrowser != nil:
		result = overlay.PlaceOverlay(0, 0, m.eventBrowser.Render(), mainView, true, true)
	default:
		result = mainView
	}

	if toastView := m.toastManager.View(); toastView != "" {
		x, y := m.toastManager.GetPosition()
		result = overlay.PlaceOverlay(x, y, toastView, result, false, false)
	}

	// Process bubblezone markers before rendering is complete
	// (zone markers inflate lipgloss.Width if left in place).
	result = zone.Scan(result)

	// Pad to full height so bubbletea's alt-screen renderer repaints every row.
	// OSC 11 handles the actual background color.
	result = ui.FillBackground(result, m.termHeight)

	return result
}

func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.events.Emit(eventlog.New(eventlog.EventError, err.Error(), eventlog.WithLevel("error")))
	m.toastManager.Error(err.Error())
	return m.toastTickCmd()
}

type keyupMsg struct{}

// keyupCmd clears the menu underline shortly after a keypress.
func keyupCmd() tea.Cmd {
	return tea.Tick(150*time.Millisecond, func(time.Time) tea.Msg {
		return keyupMsg{}
	})
}

func (m *home) toastTickCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(50 * time.Millisecond)
		return overlay.ToastTickMsg{}
	}
}
