// Package tui is an interactive terminal viewer for the programs synthesized
// from one image: it draws the circuit, its QASM and its metrics, switches
// between schemes, and applies geometric rewrites.
package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/encoding"
)

var errNoPositions = errors.New("scheme has no position qubits")

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
)

// Model represents the viewer state.
type Model struct {
	input     encoding.Input
	schemes   []encoding.Scheme
	schemeIdx int
	saveDir   string

	enc     *encoding.Encoded // program as synthesized
	prog    *circuit.Program  // enc.Program plus the applied rewrites
	grid    layout
	applied []string
	err     error // synthesis error of the active scheme

	cursorQubit int
	cursorStep  int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)
	menuItem    int
}

// New creates a viewer over in. Saved programs go to saveDir.
func New(in encoding.Input, saveDir string) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0

	m := Model{
		input:      in,
		schemes:    encoding.Schemes(),
		saveDir:    saveDir,
		qasmEditor: ta,
		focus:      focusCircuit,
	}
	m.selectScheme(0)
	return m
}

// selectScheme synthesizes the scheme at idx and discards any rewrites.
func (m *Model) selectScheme(idx int) {
	m.schemeIdx = (idx + len(m.schemes)) % len(m.schemes)
	m.applied = nil
	m.cursorStep, m.cursorQubit = 0, 0

	m.enc, m.err = encoding.Synthesize(m.schemes[m.schemeIdx], m.input)
	if m.err != nil {
		m.prog = nil
		m.grid = layout{}
		m.qasmEditor.SetValue("")
		m.lastQASM = ""
		return
	}
	m.prog = m.enc.Program.Clone()
	m.sync()
}

// sync refreshes the grid and the editor from the current program.
func (m *Model) sync() {
	m.grid = newLayout(circuit.BuildDAG(m.prog))
	qasm := m.prog.QASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput replaces the program with the edited QASM when it parses.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM || m.enc == nil {
		return
	}
	m.lastQASM = qasm

	p, err := circuit.ParseQASM(qasm)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	if p.NumQubits != m.enc.Program.NumQubits {
		m.statusMsg = fmt.Sprintf("register must stay at %d qubits", m.enc.Program.NumQubits)
		return
	}
	m.prog = p
	if len(m.applied) == 0 || m.applied[len(m.applied)-1] != "edit" {
		m.applied = append(m.applied, "edit")
	}
	m.grid = newLayout(circuit.BuildDAG(m.prog))
}

// applyRewrite appends the rewrite to the current program.
func (m *Model) applyRewrite(r rewrite) {
	if m.enc == nil {
		m.statusMsg = "no program to rewrite"
		return
	}
	if err := r.apply(m.prog, m.enc); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.applied = append(m.applied, r.String())
	m.sync()
	m.cursorStep = max(m.grid.steps-1, 0)
	m.statusMsg = "Applied " + r.String()
}

// save writes the current program to <saveDir>/<scheme>.qasm.
func (m *Model) save() {
	if m.prog == nil {
		m.statusMsg = "no program to save"
		return
	}
	name := strings.ToLower(m.enc.Scheme.String()) + ".qasm"
	path := filepath.Join(m.saveDir, name)
	if err := os.WriteFile(path, []byte(m.prog.QASM()), 0o644); err != nil {
		m.statusMsg = fmt.Sprintf("Save error: %v", err)
		return
	}
	m.statusMsg = "Saved " + path
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		ctrlH := 7
		circH := msg.Height - ctrlH - 4
		m.qasmEditor.SetHeight(max(circH-8, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "n":
				m.selectScheme(m.schemeIdx + 1)
			case "p":
				m.selectScheme(m.schemeIdx - 1)
			case "u":
				m.selectScheme(m.schemeIdx)
			case "ctrl+s":
				m.save()
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.prog != nil && m.cursorQubit < m.prog.NumQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < m.grid.steps-1 {
					m.cursorStep++
				}
			case "a":
				m.focus = focusMenu
				m.menuItem = 0
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(rewriteMenu)-1 {
					m.menuItem++
				}
			case "enter":
				m.applyRewrite(rewriteMenu[m.menuItem].action)
				m.focus = focusCircuit
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	circuitWidth := m.width - qasmWidth - 4
	controlsHeight := 7
	circuitHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, circuitHeight)
	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, qasmPanel)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}

// Run starts the viewer on the terminal and blocks until it exits.
func Run(in encoding.Input, saveDir string) error {
	_, err := tea.NewProgram(New(in, saveDir), tea.WithAltScreen()).Run()
	return err
}
