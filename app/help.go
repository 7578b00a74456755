package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/ui"
	"taskflow/ui/overlay"
)

var (
	helpHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorFoam)
	helpKeyStyle    = lipgloss.NewStyle().Bold(true).Foreground(ui.ColorGold)
	helpDescStyle   = lipgloss.NewStyle().Foreground(ui.ColorText)
)

func helpContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ui.GradientText("taskflow", ui.GradientStart, ui.GradientEnd),
		"",
		helpDescStyle.Render("task management tui backed by an ai agent. the chat pane talks to"),
		helpDescStyle.Render("the agent, the task table stays live over its own sync channel and"),
		helpDescStyle.Render("keeps working when chat is down."),
		"",
		helpHeaderStyle.Render("tasks:"),
		helpKeyStyle.Render("n")+helpDescStyle.Render("       - new task"),
		helpKeyStyle.Render("e")+helpDescStyle.Render("       - edit selected task"),
		helpKeyStyle.Render("d")+helpDescStyle.Render("       - delete selected task"),
		helpKeyStyle.Render("x")+helpDescStyle.Render("       - cycle status (pending → in progress → done)"),
		helpKeyStyle.Render("↵")+helpDescStyle.Render("       - show/hide task details"),
		helpKeyStyle.Render("/")+helpDescStyle.Render("       - search title and description"),
		helpKeyStyle.Render("f")+helpDescStyle.Render("       - cycle status filter"),
		helpKeyStyle.Render("p")+helpDescStyle.Render("       - cycle priority filter"),
		helpKeyStyle.Render("ctrl+r")+helpDescStyle.Render("  - refresh from the server"),
		"",
		helpHeaderStyle.Render("chat:"),
		helpKeyStyle.Render("i/tab")+helpDescStyle.Render("   - focus the chat input"),
		helpKeyStyle.Render("↵")+helpDescStyle.Render("       - send message"),
		helpKeyStyle.Render("esc")+helpDescStyle.Render("     - back to the task table"),
		"",
		helpHeaderStyle.Render("connection:"),
		helpKeyStyle.Render("r")+helpDescStyle.Render("       - retry after reconnect attempts run out"),
		helpKeyStyle.Render("v")+helpDescStyle.Render("       - browse sync events"),
		"",
		helpHeaderStyle.Render("other:"),
		helpKeyStyle.Render("y")+helpDescStyle.Render("       - copy task title or last agent reply"),
		helpKeyStyle.Render("D")+helpDescStyle.Render("       - toggle dark mode"),
		helpKeyStyle.Render("q")+helpDescStyle.Render("       - quit"),
	)
}

// showHelpScreen displays the help screen overlay.
func (m *home) showHelpScreen() (tea.Model, tea.Cmd) {
	m.textOverlay = overlay.NewTextOverlay(helpContent())
	m.textOverlay.SetWidth(int(float32(m.termWidth) * 0.6))
	m.state = stateHelp
	return m, keyupCmd()
}

// handleHelpState handles key events when in help state.
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.textOverlay == nil || m.textOverlay.HandleKeyPress(msg) {
		m.textOverlay = nil
		m.state = stateTasks
		m.menu.SetState(ui.StateTasks)
	}
	return m, nil
}
