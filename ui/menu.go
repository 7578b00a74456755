package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskflow/keys"
)

var separator = " • "
var verticalSeparator = " │ "

// MenuState represents different states the menu can be in.
type MenuState int

const (
	StateTasks MenuState = iota
	StateChat
	StateForm
	StateSearch
)

// Menu is the keybind rail at the bottom of the screen.
type Menu struct {
	options       []keys.KeyName
	height, width int
	state         MenuState

	// actionGroupSize is the number of leading task-action items, used for
	// separator placement.
	actionGroupSize int

	// terminalError switches the rail to recovery mode: only retry and the
	// system keys are shown.
	terminalError bool

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName
}

var tasksMenuOptions = []keys.KeyName{
	keys.KeyNewTask, keys.KeyEditTask, keys.KeyDeleteTask, keys.KeyToggleDone,
	keys.KeyChat, keys.KeySearch, keys.KeyFilter, keys.KeyPriority, keys.KeyYank,
	keys.KeyTab, keys.KeyHelp, keys.KeyQuit,
}
var chatMenuOptions = []keys.KeyName{keys.KeyEnter, keys.KeyTab}
var formMenuOptions = []keys.KeyName{keys.KeyEnter}
var searchMenuOptions = []keys.KeyName{keys.KeyEnter}
var retryMenuOptions = []keys.KeyName{
	keys.KeyRetry, keys.KeyTab, keys.KeyHelp, keys.KeyQuit,
}

func NewMenu() *Menu {
	return &Menu{
		options:         tasksMenuOptions,
		state:           StateTasks,
		actionGroupSize: 4,
		keyDown:         -1,
	}
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly.
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

// SetTerminalError switches the rail into recovery mode while a channel is
// out of reconnect attempts.
func (m *Menu) SetTerminalError(v bool) {
	m.terminalError = v
	m.updateOptions()
}

func (m *Menu) updateOptions() {
	switch m.state {
	case StateChat:
		m.options = chatMenuOptions
		m.actionGroupSize = len(chatMenuOptions)
	case StateForm:
		m.options = formMenuOptions
		m.actionGroupSize = len(formMenuOptions)
	case StateSearch:
		m.options = searchMenuOptions
		m.actionGroupSize = len(searchMenuOptions)
	default:
		if m.terminalError {
			m.options = retryMenuOptions
			m.actionGroupSize = 1
		} else {
			m.options = tasksMenuOptions
			m.actionGroupSize = 4
		}
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Menu) String() string {
	keyStyle := lipgloss.NewStyle().Foreground(ColorSubtle)
	descStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	sepStyle := lipgloss.NewStyle().Foreground(ColorOverlay)
	actionStyle := lipgloss.NewStyle().Foreground(ColorRose)
	menuStyle := lipgloss.NewStyle().Foreground(ColorFoam)

	var s strings.Builder
	for i, k := range m.options {
		binding := keys.GlobalkeyBindings[k]
		help := binding.Help()

		localActionStyle := actionStyle
		localKeyStyle := keyStyle
		localDescStyle := descStyle
		if m.keyDown == k {
			localActionStyle = localActionStyle.Underline(true)
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		if i < m.actionGroupSize {
			s.WriteString(localActionStyle.Render(help.Key + " " + help.Desc))
		} else {
			s.WriteString(localKeyStyle.Render(help.Key))
			s.WriteString(descStyle.Render(" "))
			s.WriteString(localDescStyle.Render(help.Desc))
		}

		if i != len(m.options)-1 {
			if i == m.actionGroupSize-1 {
				s.WriteString(sepStyle.Render(verticalSeparator))
			} else {
				s.WriteString(sepStyle.Render(separator))
			}
		}
	}

	centeredMenuText := menuStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centeredMenuText)
}
