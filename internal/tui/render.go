package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
	"github.com/Swarajaya/Quantum-Image-Representation/metrics"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a boxed gate.
func gateDisplayName(k circuit.Kind) string {
	switch k {
	case circuit.ControlledRY:
		return "RY"
	default:
		return k.String()
	}
}

// wireSymbol returns the inline symbol drawn for a control, an X target,
// or a swap operand, or "" when the cell needs a box.
func wireSymbol(info cellInfo) string {
	switch {
	case info.isControl:
		return "●"
	case info.node.Gate.Kind == circuit.Swap:
		return "×"
	case info.node.Gate.Kind == circuit.ControlledX:
		return "⊕"
	}
	return ""
}

// ──────────────────────────── Grid layout ────────────────────────────

type cellKey struct{ step, qubit int }

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	node        *circuit.Node
	isControl   bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isBarrier   bool
}

// layout places every DAG node on the (step, qubit) grid.
type layout struct {
	dag   *circuit.DAG
	steps int
	cells map[cellKey]cellInfo
}

func newLayout(dag *circuit.DAG) layout {
	l := layout{dag: dag, steps: dag.MaxStep(), cells: make(map[cellKey]cellInfo)}

	for i := range dag.Nodes {
		node := &dag.Nodes[i]
		qubits := node.Gate.Qubits(dag.NumQubits)
		if node.Gate.Kind == circuit.Barrier {
			for _, q := range qubits {
				l.cells[cellKey{node.Step, q}] = cellInfo{node: node, isBarrier: true}
			}
			continue
		}

		for _, q := range qubits {
			l.cells[cellKey{node.Step, q}] = cellInfo{
				node:      node,
				isControl: slices.Contains(node.Gate.Controls, q),
			}
		}
		if len(qubits) < 2 {
			continue
		}

		lo, hi := slices.Min(qubits), slices.Max(qubits)
		for q := lo; q <= hi; q++ {
			key := cellKey{node.Step, q}
			info, occupied := l.cells[key]
			info.vertAbove = q > lo
			info.vertBelow = q < hi
			if !occupied {
				info.passThrough = true
			}
			l.cells[key] = info
		}
	}
	return l
}

func (l layout) at(step, qubit int) cellInfo {
	return l.cells[cellKey{step, qubit}]
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW (11) visual characters wide.
func renderCell(info cellInfo, cursor bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	withVert := func() {
		top, bot = emptyRow, emptyRow
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}
	}

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.node != nil && wireSymbol(info) != "":
		withVert()
		mid = strings.Repeat("─", dashL) + gateStyle.Render(wireSymbol(info)) + strings.Repeat("─", dashR)

	case info.node != nil:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(gateDisplayName(info.node.Gate.Kind), gateNameW)

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		if info.vertAbove {
			top = vertRow
		}
		if info.vertBelow {
			bot = vertRow
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		withVert()
		mid = strings.Repeat("─", cellW)
	}

	if cursor {
		top = cursorBoxStyle.Render("╔" + strings.Repeat("═", cellW-2) + "╗")
		bot = cursorBoxStyle.Render("╚" + strings.Repeat("═", cellW-2) + "╝")
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderSchemeTabs renders the scheme selector, highlighting the active one.
func (m Model) renderSchemeTabs() string {
	var sb strings.Builder
	for i, s := range m.schemes {
		name := " " + s.String() + " "
		if i == m.schemeIdx {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(m.schemes)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	return sb.String()
}

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("  ")
	sb.WriteString(m.renderSchemeTabs())
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()))
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	displaySteps := min(maxSteps, max(m.grid.steps-startStep, 1))

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d of %d\n", startStep, startStep+displaySteps-1, m.grid.steps)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := range m.prog.NumQubits {
		labelStyle := qubitLabelStyle
		if slices.Contains(m.enc.Data, qubit) {
			labelStyle = dataLabelStyle
		}
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := labelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", qubit))) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			cursor := step == m.cursorStep && qubit == m.cursorQubit && m.focus == focusCircuit
			top, mid, bot := renderCell(m.grid.at(step, qubit), cursor)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	fmt.Fprintf(&sb, "\n  Position: Step %d (%d ops), Qubit %d (%d ops)",
		m.cursorStep, len(m.grid.dag.NodesAtStep(m.cursorStep)),
		m.cursorQubit, len(m.prog.GatesOnQubit(m.cursorQubit)))
	if info := m.grid.at(m.cursorStep, m.cursorQubit); info.node != nil && !info.isBarrier {
		fmt.Fprintf(&sb, "  │  %s", describeGate(info.node.Gate))
	}
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// describeGate renders a gate with its operands and angle for the status line.
func describeGate(g circuit.Gate) string {
	var sb strings.Builder
	sb.WriteString(g.Kind.String())
	if g.Kind == circuit.RotationY || g.Kind == circuit.ControlledRY {
		fmt.Fprintf(&sb, "(%s)", circuit.FormatAngle(g.Angle()))
	}
	if len(g.Controls) > 0 {
		fmt.Fprintf(&sb, " ctrl %v", g.Controls)
	}
	if g.Target >= 0 {
		fmt.Fprintf(&sb, " → q[%d]", g.Target)
	}
	if len(g.Operands) > 0 {
		fmt.Fprintf(&sb, " on %v", g.Operands)
	}
	return sb.String()
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderMetrics renders the complexity figures of the current program.
func renderMetrics(enc *encoding.Encoded, r metrics.Report, applied []string) string {
	var sb strings.Builder
	sb.WriteString(activeGateStyle.Render("Metrics:  "))
	fmt.Fprintf(&sb, "%s  qubits %d  gates %d  depth %d", enc.Scheme, r.Qubits, r.Gates, r.Depth)
	if len(applied) > 0 {
		sb.WriteString(dimStyle.Render("  after " + strings.Join(applied, ", ")))
	}
	return sb.String()
}

// renderControlsPanel renders the bottom metrics and help bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	if m.enc != nil {
		sb.WriteString(renderMetrics(m.enc, metrics.Analyze(m.prog), m.applied))
	} else {
		sb.WriteString(activeGateStyle.Render("Metrics:  "))
		sb.WriteString(dimStyle.Render("no program"))
	}
	sb.WriteString("\n")

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  n/p Scheme")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("a"))
	sb.WriteString(" Rewrite\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  u Undo rewrites  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

func isEscapeEnd(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix, suffix strings.Builder
	col, i := 0, 0

	// Collect prefix: everything up to visible column x, escapes included
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				i++
				if isEscapeEnd(runes[i-1]) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col += runewidth.RuneWidth(runes[i])
		i++
	}
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if isEscapeEnd(runes[i-1]) {
					break
				}
			}
			continue
		}
		skipped += runewidth.RuneWidth(runes[i])
		i++
	}

	suffix.WriteString(string(runes[i:]))
	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the terminal cell width of s, ANSI escapes excluded.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscapeEnd(r) {
				inEsc = false
			}
			continue
		}
		n += runewidth.RuneWidth(r)
	}
	return n
}
