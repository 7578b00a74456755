package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"taskflow/store"
)

const chatInputHeight = 3

// ChatPane is the left pane: the agent conversation plus the input box.
type ChatPane struct {
	width, height int

	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model

	focused  bool
	typing   bool
	messages []store.ChatMessage
	// frame drives the empty-state banner animation.
	frame int

	renderer *glamour.TermRenderer
}

// NewChatPane creates the chat pane with an empty transcript.
func NewChatPane() *ChatPane {
	ti := textarea.New()
	ti.Placeholder = "Ask the agent to manage your tasks..."
	ti.ShowLineNumbers = false
	ti.Prompt = "┃ "
	ti.CharLimit = 0
	ti.SetHeight(chatInputHeight - 2)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return &ChatPane{
		viewport: viewport.New(0, 0),
		input:    ti,
		spin:     sp,
	}
}

// SetSize updates the pane dimensions and re-wraps the transcript.
func (p *ChatPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.Width = width
	p.viewport.Height = height - chatInputHeight - 1
	p.input.SetWidth(width - 4)
	p.renderer = nil // rebuild at the new wrap width
	p.refresh()
}

// Retheme drops the cached markdown renderer so the next render picks up the
// current theme's glamour style.
func (p *ChatPane) Retheme() {
	p.renderer = nil
	p.refresh()
}

// SetMessages replaces the rendered transcript and pins the view to the
// bottom, where the newest message is.
func (p *ChatPane) SetMessages(messages []store.ChatMessage, typing bool) {
	p.messages = messages
	p.typing = typing
	p.refresh()
	p.viewport.GotoBottom()
}

// Focus gives keyboard focus to the input box.
func (p *ChatPane) Focus() tea.Cmd {
	p.focused = true
	return p.input.Focus()
}

// Blur removes keyboard focus from the input box.
func (p *ChatPane) Blur() {
	p.focused = false
	p.input.Blur()
}

// Focused reports whether the input box has keyboard focus.
func (p *ChatPane) Focused() bool {
	return p.focused
}

// Value returns the current input text.
func (p *ChatPane) Value() string {
	return p.input.Value()
}

// Reset clears the input box.
func (p *ChatPane) Reset() {
	p.input.Reset()
}

// UpdateInput forwards a message to the textarea.
func (p *ChatPane) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// UpdateSpinner advances the typing spinner and the empty-state banner.
func (p *ChatPane) UpdateSpinner(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.spin, cmd = p.spin.Update(msg)
	p.frame++
	if p.typing || len(p.messages) == 0 {
		p.refresh()
	}
	return cmd
}

// SpinnerTick returns the command that starts the spinner.
func (p *ChatPane) SpinnerTick() tea.Cmd {
	return p.spin.Tick
}

// ScrollUp scrolls the transcript up.
func (p *ChatPane) ScrollUp() {
	p.viewport.LineUp(2)
}

// ScrollDown scrolls the transcript down.
func (p *ChatPane) ScrollDown() {
	p.viewport.LineDown(2)
}

// LastAgentMessage returns the newest agent reply, "" when there is none.
func (p *ChatPane) LastAgentMessage() string {
	for i := len(p.messages) - 1; i >= 0; i-- {
		if p.messages[i].Type == store.MessageAgent {
			return p.messages[i].Message
		}
	}
	return ""
}

func (p *ChatPane) refresh() {
	p.viewport.SetContent(p.renderTranscript())
}

func (p *ChatPane) renderTranscript() string {
	if p.width < 10 {
		return ""
	}

	bubbleWidth := p.width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	var blocks []string
	for _, m := range p.messages {
		blocks = append(blocks, p.renderMessage(m, bubbleWidth))
	}

	if p.typing {
		typingStyle := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
		blocks = append(blocks, typingStyle.Render(p.spin.View()+" agent is typing"))
	}

	if len(blocks) == 0 {
		empty := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
		hint := empty.Render("No messages yet. Press i to talk to the agent.")
		// Spinner ticks arrive ~10/s; divide down so the dots crawl.
		banner := FallBackText(p.frame / 5)
		if p.width >= lipgloss.Width(banner)+2 {
			return lipgloss.JoinVertical(lipgloss.Center, banner, "", hint)
		}
		return hint
	}
	return strings.Join(blocks, "\n\n")
}

func (p *ChatPane) renderMessage(m store.ChatMessage, bubbleWidth int) string {
	if m.Type == store.MessageUser {
		bubble := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorRose).
			Foreground(ColorText).
			Padding(0, 1).
			Render(wordwrap.String(m.Message, bubbleWidth))
		return lipgloss.PlaceHorizontal(p.width, lipgloss.Right, bubble)
	}

	body := p.renderMarkdown(m.Message, bubbleWidth)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorIris).
		Foreground(ColorText).
		Padding(0, 1).
		Render(body)
}

// renderMarkdown runs agent replies through glamour so lists and code blocks
// in agent output stay readable. Falls back to plain wrapping on error.
func (p *ChatPane) renderMarkdown(text string, width int) string {
	if p.renderer == nil {
		style := "dark"
		if !IsDarkTheme() {
			style = "light"
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(text, width)
		}
		p.renderer = r
	}

	out, err := p.renderer.Render(text)
	if err != nil {
		return wordwrap.String(text, width)
	}
	return strings.TrimRight(out, "\n")
}

// String renders the pane: transcript above, input box below.
func (p *ChatPane) String() string {
	borderColor := ColorOverlay
	if p.focused {
		borderColor = ColorIris
	}
	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(p.width - 2).
		Render(p.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, p.viewport.View(), inputBox)
}
