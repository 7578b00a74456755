package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// GradientText renders text with a left-to-right color gradient between two
// hex colors. Multi-line input gets the same horizontal gradient per line.
func GradientText(text, startHex, endHex string) string {
	start, err1 := colorful.Hex(startHex)
	end, err2 := colorful.Hex(endHex)
	if err1 != nil || err2 != nil {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for li, line := range lines {
		runes := []rune(line)
		width := runewidth.StringWidth(line)
		if width <= 1 {
			out[li] = line
			continue
		}

		var b strings.Builder
		col := 0
		for _, r := range runes {
			t := float64(col) / float64(width-1)
			c := start.BlendLuv(end, t)
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
			col += runewidth.RuneWidth(r)
		}
		out[li] = b.String()
	}
	return strings.Join(out, "\n")
}
