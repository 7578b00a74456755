package ui

import "github.com/charmbracelet/lipgloss"

// Rosé Pine palettes: Moon for dark mode, Dawn for light mode.
// https://rosepinetheme.com/palette/
var (
	// Base tones
	ColorBase    = lipgloss.Color("#232136")
	ColorSurface = lipgloss.Color("#2a273f")
	ColorOverlay = lipgloss.Color("#393552")
	ColorMuted   = lipgloss.Color("#6e6a86")
	ColorSubtle  = lipgloss.Color("#908caa")
	ColorText    = lipgloss.Color("#e0def4")

	// Semantic colors
	ColorLove = lipgloss.Color("#eb6f92") // error, danger
	ColorGold = lipgloss.Color("#f6c177") // warning
	ColorRose = lipgloss.Color("#ea9a97") // accent, secondary
	ColorPine = lipgloss.Color("#3e8fb0") // link
	ColorFoam = lipgloss.Color("#9ccfd8") // info, connected
	ColorIris = lipgloss.Color("#c4a7e7") // highlight, primary

	// Gradient endpoints for the banner
	GradientStart = "#9ccfd8" // foam
	GradientEnd   = "#c4a7e7" // iris
)

// backgroundHex tracks the current base color for OSC 11.
var backgroundHex = "#232136"

// darkMode tracks which palette is active.
var darkMode = true

// ApplyTheme swaps the package palette between Moon (dark) and Dawn (light).
// Styles are built from these vars at render time, so a swap takes effect on
// the next frame.
func ApplyTheme(dark bool) {
	darkMode = dark
	if dark {
		ColorBase = lipgloss.Color("#232136")
		ColorSurface = lipgloss.Color("#2a273f")
		ColorOverlay = lipgloss.Color("#393552")
		ColorMuted = lipgloss.Color("#6e6a86")
		ColorSubtle = lipgloss.Color("#908caa")
		ColorText = lipgloss.Color("#e0def4")
		ColorLove = lipgloss.Color("#eb6f92")
		ColorGold = lipgloss.Color("#f6c177")
		ColorRose = lipgloss.Color("#ea9a97")
		ColorPine = lipgloss.Color("#3e8fb0")
		ColorFoam = lipgloss.Color("#9ccfd8")
		ColorIris = lipgloss.Color("#c4a7e7")
		GradientStart = "#9ccfd8"
		GradientEnd = "#c4a7e7"
		backgroundHex = "#232136"
		return
	}

	ColorBase = lipgloss.Color("#faf4ed")
	ColorSurface = lipgloss.Color("#fffaf3")
	ColorOverlay = lipgloss.Color("#f2e9e1")
	ColorMuted = lipgloss.Color("#9893a5")
	ColorSubtle = lipgloss.Color("#797593")
	ColorText = lipgloss.Color("#575279")
	ColorLove = lipgloss.Color("#b4637a")
	ColorGold = lipgloss.Color("#ea9d34")
	ColorRose = lipgloss.Color("#d7827e")
	ColorPine = lipgloss.Color("#286983")
	ColorFoam = lipgloss.Color("#56949f")
	ColorIris = lipgloss.Color("#907aa9")
	GradientStart = "#56949f"
	GradientEnd = "#907aa9"
	backgroundHex = "#faf4ed"
}

// IsDarkTheme reports which palette is active.
func IsDarkTheme() bool {
	return darkMode
}

// BackgroundHex returns the current base color for SetTerminalBackground.
func BackgroundHex() string {
	return backgroundHex
}
