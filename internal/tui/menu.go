package tui

import (
	"fmt"
	"strings"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
	"github.com/Swarajaya/Quantum-Image-Representation/geometry"
)

// rewrite is one of the geometric rewrites the viewer can append.
type rewrite int

const (
	rewriteHFlip rewrite = iota
	rewriteVFlip
	rewriteReflect
	rewriteRotate
	rewriteFilter
)

// menuItem represents a single rewrite choice in the menu.
type menuItem struct {
	name   string
	symbol string
	action rewrite
	hint   string
}

var rewriteMenu = []menuItem{
	{name: "Horizontal flip", symbol: "X…X", action: rewriteHFlip, hint: "X on every position qubit"},
	{name: "Vertical flip", symbol: "┃X…X", action: rewriteVFlip, hint: "reversed X after a barrier"},
	{name: "Reflect", symbol: "┃×─×", action: rewriteReflect, hint: "swap the first two position qubits"},
	{name: "Rotate 90°", symbol: "┃×…X", action: rewriteRotate, hint: "square images only"},
	{name: "Filter", symbol: "┃HZH", action: rewriteFilter, hint: "interference on the first data qubit"},
}

// apply appends the rewrite to p, targeting the position or data qubits of enc.
func (r rewrite) apply(p *circuit.Program, enc *encoding.Encoded) error {
	pos := enc.Position
	switch r {
	case rewriteHFlip:
		if len(pos) == 0 {
			return errNoPositions
		}
		return geometry.HorizontalFlip(p, pos...)
	case rewriteVFlip:
		if len(pos) == 0 {
			return errNoPositions
		}
		return geometry.VerticalFlip(p, pos...)
	case rewriteReflect:
		if len(pos) < 2 {
			return fmt.Errorf("reflect needs two position qubits, %s has %d", enc.Scheme, len(pos))
		}
		return geometry.Reflect(p, pos[0], pos[1])
	case rewriteRotate:
		if len(pos) == 0 {
			return errNoPositions
		}
		return geometry.Rotate90(p, pos)
	case rewriteFilter:
		return geometry.Filter(p, enc.Data[0])
	}
	return fmt.Errorf("unknown rewrite %d", int(r))
}

func (r rewrite) String() string {
	return rewriteMenu[r].name
}

// renderMenu renders the floating rewrite picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Apply Rewrite"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	for i, item := range rewriteMenu {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.hint)))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ⏎ Apply  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
