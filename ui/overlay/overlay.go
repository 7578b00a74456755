package overlay

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// PlaceOverlay composites fg on top of bg at position x, y. When center is
// true the position is computed to center fg within bg. When shadow is true a
// drop shadow is drawn below and to the right of fg.
//
// Adapted from https://github.com/charmbracelet/lipgloss/pull/102.
func PlaceOverlay(
	x, y int,
	fg, bg string,
	shadow bool, center bool,
) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	bgHeight := len(bgLines)
	fgHeight := len(fgLines)

	if shadow {
		var shadowbg string
		shadowchar := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#333333")).
			Render("░")
		for i := 0; i <= fgHeight; i++ {
			if i == 0 {
				shadowbg += "\n"
			} else {
				shadowbg += "  " + strings.Repeat(shadowchar, fgWidth) + "\n"
			}
		}
		fg = PlaceOverlay(0, 0, fg, shadowbg, false, false)
		fgLines, fgWidth = getLines(fg)
		fgHeight = len(fgLines)
	}

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}

	x = clamp(x, 0, bgWidth-fgWidth)
	y = clamp(y, 0, bgHeight-fgHeight)

	lines := make([]string, len(bgLines))
	copy(lines, bgLines)

	for i, fgLine := range fgLines {
		if i+y >= bgHeight || i+y < 0 {
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLines[i+y], uint(x))
			pos = ansi.PrintableRuneWidth(left)
			lines[i+y] = left
			if pos < x {
				lines[i+y] += strings.Repeat(" ", x-pos)
				pos = x
			}
		} else {
			lines[i+y] = ""
		}

		lines[i+y] += fgLine

		right := cutLeft(bgLines[i+y], pos+ansi.PrintableRuneWidth(fgLine))
		bgLineWidth := ansi.PrintableRuneWidth(bgLines[i+y])
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= bgLineWidth-(pos+fgWidth) {
			lines[i+y] += strings.Repeat(" ", bgLineWidth-rightWidth-pos-ansi.PrintableRuneWidth(fgLine))
		}
		lines[i+y] += right
	}

	return strings.Join(lines, "\n")
}

// cutLeft drops cutWidth printable columns from the left of s, preserving
// any ANSI sequences that style what remains.
func cutLeft(s string, cutWidth int) string {
	var (
		pos    int
		isAnsi bool
		ab     bytes.Buffer
		b      bytes.Buffer
	)
	for _, c := range s {
		var w int
		if c == ansi.Marker || isAnsi {
			isAnsi = true
			ab.WriteRune(c)
			if ansi.IsTerminator(c) {
				isAnsi = false
				if bytes.HasSuffix(ab.Bytes(), []byte("[0m")) {
					ab.Reset()
				}
			}
		} else {
			w = runewidth.RuneWidth(c)
		}

		if pos >= cutWidth {
			if b.Len() == 0 {
				if ab.Len() > 0 {
					b.Write(ab.Bytes())
				}
				if pos-cutWidth > 1 {
					b.WriteByte(' ')
					continue
				}
			}
			b.WriteRune(c)
		}
		pos += w
	}
	return b.String()
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		w := ansi.PrintableRuneWidth(l)
		if widest < w {
			widest = w
		}
	}
	return lines, widest
}
