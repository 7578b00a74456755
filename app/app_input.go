package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"taskflow/keys"
	"taskflow/task"
	"taskflow/ui"
	"taskflow/ui/overlay"
)

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, regardless of state.
	if msg.Type == tea.KeyCtrlC {
		return m.handleQuit()
	}

	switch m.state {
	case stateChat:
		return m.handleChatState(msg)
	case stateForm:
		return m.handleFormState(msg)
	case stateSearch:
		return m.handleSearchState(msg)
	case stateHelp:
		return m.handleHelpState(msg)
	case stateConfirm:
		return m.handleConfirmState(msg)
	case stateEvents:
		return m.handleEventsState(msg)
	}
	return m.handleTasksState(msg)
}

func (m *home) handleTasksState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}
	m.menu.Keydown(name)

	switch name {
	case keys.KeyQuit:
		return m.handleQuit()

	case keys.KeyUp:
		m.taskPane.MoveUp()
		m.syncPanes()
		return m, keyupCmd()

	case keys.KeyDown:
		m.taskPane.MoveDown()
		m.syncPanes()
		return m, keyupCmd()

	case keys.KeyEnter:
		m.detailVisible = !m.detailVisible
		m.updateHandleWindowSizeEvent(tea.WindowSizeMsg{Width: m.termWidth, Height: m.termHeight})
		return m, keyupCmd()

	case keys.KeyTab, keys.KeyChat:
		m.enterChatState()
		return m, tea.Batch(m.chatPane.Focus(), keyupCmd())

	case keys.KeyNewTask:
		m.form = overlay.NewTaskFormOverlay(formWidth(m.termWidth))
		m.formEditID = 0
		m.state = stateForm
		m.menu.SetState(ui.StateForm)
		return m, keyupCmd()

	case keys.KeyEditTask:
		sel := m.taskPane.Selected()
		if sel == nil {
			return m, keyupCmd()
		}
		m.form = overlay.NewTaskEditOverlay(formWidth(m.termWidth), *sel)
		m.formEditID = sel.ID
		m.state = stateForm
		m.menu.SetState(ui.StateForm)
		return m, keyupCmd()

	case keys.KeyDeleteTask:
		sel := m.taskPane.Selected()
		if sel == nil {
			return m, keyupCmd()
		}
		id := sel.ID
		m.confirmation = overlay.NewConfirmationOverlay(
			fmt.Sprintf("Delete task %q?", sel.Title))
		m.confirmDelete = id
		m.state = stateConfirm
		return m, keyupCmd()

	case keys.KeyToggleDone:
		return m, tea.Batch(m.cycleTaskStatus(), keyupCmd())

	case keys.KeySearch:
		m.searchInput = overlay.NewTextInputOverlay("search tasks", m.search)
		m.searchInput.SetSize(int(float32(m.termWidth)*0.5), 3)
		m.state = stateSearch
		m.menu.SetState(ui.StateSearch)
		return m, keyupCmd()

	case keys.KeyFilter:
		m.cycleFilter()
		m.syncPanes()
		return m, keyupCmd()

	case keys.KeyPriority:
		m.cyclePriorityFilter()
		m.syncPanes()
		return m, keyupCmd()

	case keys.KeyRetry:
		return m, tea.Batch(m.retryConnections(), keyupCmd())

	case keys.KeyDarkMode:
		m.toggleDarkMode()
		return m, keyupCmd()

	case keys.KeyYank:
		return m, tea.Batch(m.yankSelection(), keyupCmd())

	case keys.KeyRefresh:
		return m, tea.Batch(m.fetchTasksCmd(fetchRefresh), keyupCmd())

	case keys.KeyEvents:
		return m, tea.Batch(m.loadEventsCmd(), keyupCmd())

	case keys.KeyHelp:
		return m.showHelpScreen()
	}
	return m, keyupCmd()
}

// cycleFilter advances the status filter all → pending → in_progress → done.
func (m *home) cycleFilter() {
	switch m.filter {
	case "":
		m.filter = task.StatusPending
	case task.StatusPending:
		m.filter = task.StatusInProgress
	case task.StatusInProgress:
		m.filter = task.StatusDone
	default:
		m.filter = ""
	}
}

// cyclePriorityFilter advances the priority filter all → low → medium → high.
func (m *home) cyclePriorityFilter() {
	switch m.priorityFilter {
	case "":
		m.priorityFilter = task.PriorityLow
	case task.PriorityLow:
		m.priorityFilter = task.PriorityMedium
	case task.PriorityMedium:
		m.priorityFilter = task.PriorityHigh
	default:
		m.priorityFilter = ""
	}
}

func (m *home) enterChatState() {
	m.state = stateChat
	m.taskPane.Blur()
	m.menu.SetState(ui.StateChat)
}

func (m *home) exitChatState() {
	m.state = stateTasks
	m.chatPane.Blur()
	m.taskPane.Focus()
	m.menu.SetState(ui.StateTasks)
}

func (m *home) handleChatState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.exitChatState()
		return m, nil
	case tea.KeyEnter:
		return m, m.sendChatMessage()
	case tea.KeyUp:
		if strings.TrimSpace(m.chatPane.Value()) == "" {
			m.chatPane.ScrollUp()
			return m, nil
		}
	case tea.KeyDown:
		if strings.TrimSpace(m.chatPane.Value()) == "" {
			m.chatPane.ScrollDown()
			return m, nil
		}
	}
	return m, m.chatPane.UpdateInput(msg)
}

func (m *home) handleFormState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.state = stateTasks
		return m, nil
	}
	if !m.form.HandleKeyPress(msg) {
		return m, nil
	}

	form := m.form
	m.form = nil
	m.state = stateTasks
	m.menu.SetState(ui.StateTasks)
	if !form.IsSubmitted() {
		return m, nil
	}
	if m.formEditID != 0 {
		return m, m.updateTaskCmd(m.formEditID, form.TaskUpdate())
	}
	return m, m.createTaskCmd(form.TaskCreate())
}

func (m *home) handleSearchState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchInput == nil {
		m.state = stateTasks
		return m, nil
	}
	if !m.searchInput.HandleKeyPress(msg) {
		return m, nil
	}
	if m.searchInput.IsSubmitted() {
		m.search = strings.TrimSpace(m.searchInput.GetValue())
	}
	m.searchInput = nil
	m.state = stateTasks
	m.menu.SetState(ui.StateTasks)
	m.syncPanes()
	return m, nil
}

func (m *home) handleConfirmState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmation == nil {
		m.state = stateTasks
		return m, nil
	}
	if !m.confirmation.HandleKeyPress(msg) {
		return m, nil
	}
	confirmed := m.confirmation.Confirmed
	id := m.confirmDelete
	m.confirmation = nil
	m.confirmDelete = 0
	m.state = stateTasks
	if confirmed && id != 0 {
		return m, m.deleteTaskCmd(id)
	}
	return m, nil
}

func (m *home) handleEventsState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.eventBrowser == nil {
		m.state = stateTasks
		return m, nil
	}
	switch m.eventBrowser.HandleKeyPress(msg) {
	case overlay.BrowserDismiss:
		m.eventBrowser = nil
		m.state = stateTasks
	case overlay.BrowserYank:
		ev := m.eventBrowser.SelectedEvent()
		text := ev.Message
		if ev.Detail != "" {
			text += "\n" + ev.Detail
		}
		if text != "" {
			return m, m.yankText(text)
		}
	}
	return m, nil
}

func formWidth(termWidth int) int {
	w := int(float32(termWidth) * 0.5)
	if w < 44 {
		w = 44
	}
	return w
}

func (m *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if zone.Get(ui.ZoneChatPane).InBounds(msg) {
			m.chatPane.ScrollUp()
		} else {
			m.taskPane.MoveUp()
			m.syncPanes()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if zone.Get(ui.ZoneChatPane).InBounds(msg) {
			m.chatPane.ScrollDown()
		} else {
			m.taskPane.MoveDown()
			m.syncPanes()
		}
		return m, nil
	case tea.MouseButtonLeft:
		// Row click selects; clicking the chat pane focuses the input.
		for i := 0; i < m.taskPane.Count(); i++ {
			if zone.Get(ui.TaskRowZoneID(i)).InBounds(msg) {
				m.taskPane.Select(i)
				if m.state == stateChat {
					m.exitChatState()
				}
				m.syncPanes()
				return m, nil
			}
		}
		if zone.Get(ui.ZoneChatPane).InBounds(msg) && m.state == stateTasks {
			m.enterChatState()
			return m, m.chatPane.Focus()
		}
	}
	return m, nil
}
