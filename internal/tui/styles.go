package tui

import "github.com/charmbracelet/lipgloss"

// Grid geometry, in terminal cells.
const (
	cellW        = 11            // one step column
	labelVisualW = 7             // "q[n]  " plus the wire stub
	gateNameW    = 5             // gate name inside a box
	gateBoxW     = gateNameW + 2 // ┤name├
)

// Tokyo Night palette.
const (
	colorBlue   = lipgloss.Color("#7aa2f7")
	colorPurple = lipgloss.Color("#bb9af7")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorOrange = lipgloss.Color("#ff9e64")
	colorYellow = lipgloss.Color("#e0af68")
	colorCyan   = lipgloss.Color("#7dcfff")
	colorTeal   = lipgloss.Color("#73daca")
	colorRed    = lipgloss.Color("#f7768e")
	colorFg     = lipgloss.Color("#c0caf5")
	colorMuted  = lipgloss.Color("#565f89")
)

func panel(border lipgloss.Color, padding ...int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(padding...)
}

func text(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Panels.
var (
	circuitStyle    = panel(colorBlue, 1)
	qasmStyle       = panel(colorPurple, 1)
	controlsStyle   = panel(colorGreen, 0, 1)
	menuBorderStyle = panel(colorOrange, 0, 1)
)

// Circuit grid: wire labels distinguish the position register from the
// data register, boxes and symbols share one color.
var (
	qubitLabelStyle = text(colorCyan)
	dataLabelStyle  = text(colorYellow)
	gateStyle       = text(colorTeal).Bold(true)
	cursorBoxStyle  = text(colorOrange).Bold(true)
)

// Text.
var (
	titleStyle        = text(colorOrange).Bold(true)
	activeGateStyle   = text(colorYellow) // active scheme tab, labels, status
	dimStyle          = text(colorMuted)
	errorStyle        = text(colorRed)
	menuSelectedStyle = text(colorOrange).Bold(true)
	menuNormalStyle   = text(colorFg)
)
