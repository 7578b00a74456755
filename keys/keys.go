package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyEnter
	KeyQuit
	KeyHelp

	KeyTab // Tab is a special keybinding for cycling the focus ring.

	KeyNewTask    // Key for opening the create-task form
	KeyEditTask   // Key for opening the edit form on the selected task
	KeyDeleteTask // Key for deleting the selected task
	KeyToggleDone // Key for cycling the selected task's status

	KeyChat     // Key for focusing the chat input
	KeySearch   // Key for activating task search
	KeyFilter   // Key for cycling the status filter
	KeyPriority // Key for cycling the priority filter

	KeyRetry    // Key for manually retrying a failed connection
	KeyDarkMode // Key for toggling dark mode
	KeyYank     // Key for copying the selected task or last agent reply
	KeyRefresh  // Key for re-fetching the task list
	KeyEvents   // Key for opening the sync event browser
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"enter":  KeyEnter,
	"q":      KeyQuit,
	"?":      KeyHelp,
	"tab":    KeyTab,
	"n":      KeyNewTask,
	"e":      KeyEditTask,
	"d":      KeyDeleteTask,
	"x":      KeyToggleDone,
	"i":      KeyChat,
	"/":      KeySearch,
	"f":      KeyFilter,
	"p":      KeyPriority,
	"r":      KeyRetry,
	"D":      KeyDarkMode,
	"y":      KeyYank,
	"ctrl+r": KeyRefresh,
	"v":      KeyEvents,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "send"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	KeyTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle panes"),
	),
	KeyNewTask: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new task"),
	),
	KeyEditTask: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit task"),
	),
	KeyDeleteTask: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete task"),
	),
	KeyToggleDone: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cycle status"),
	),
	KeyChat: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "chat"),
	),
	KeySearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	KeyFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter"),
	),
	KeyPriority: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "priority"),
	),
	KeyRetry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry connection"),
	),
	KeyDarkMode: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "dark mode"),
	),
	KeyYank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	KeyRefresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "refresh tasks"),
	),
	KeyEvents: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "sync events"),
	),
}
