// Package circuit holds the symbolic gate-program model shared by the
// encoders, the rewriter, and the complexity analysis.
package circuit

import (
	"fmt"
	"slices"
)

// Kind identifies the operation a gate performs.
type Kind int

const (
	Hadamard Kind = iota
	PauliX
	RotationY
	ControlledRY
	ControlledX
	Swap
	Barrier
	PhaseFlip
	StatePreparation
)

var kindNames = [...]string{
	Hadamard:         "H",
	PauliX:           "X",
	RotationY:        "RY",
	ControlledRY:     "CRY",
	ControlledX:      "CX",
	Swap:             "SWAP",
	Barrier:          "BARRIER",
	PhaseFlip:        "Z",
	StatePreparation: "INIT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Gate is a single operation in a Program.
type Gate struct {
	Kind     Kind
	Target   int       // -1 for gates without a single target (SWAP, BARRIER, INIT)
	Controls []int     // all-ones controls for CRY and CX
	Operands []int     // SWAP pair, BARRIER span (nil spans every qubit), INIT register
	Params   []float64 // rotation angle, or the amplitude vector for INIT
}

// H returns a Hadamard on q.
func H(q int) Gate { return Gate{Kind: Hadamard, Target: q} }

// X returns a Pauli-X on q.
func X(q int) Gate { return Gate{Kind: PauliX, Target: q} }

// Z returns a phase flip on q.
func Z(q int) Gate { return Gate{Kind: PhaseFlip, Target: q} }

// RY returns a Y rotation of q by theta.
func RY(q int, theta float64) Gate {
	return Gate{Kind: RotationY, Target: q, Params: []float64{theta}}
}

// CRY returns a Y rotation of target by theta that fires only when every
// control is |1⟩.
func CRY(controls []int, target int, theta float64) Gate {
	return Gate{Kind: ControlledRY, Target: target, Controls: cloneControls(controls), Params: []float64{theta}}
}

// MCX returns a bit flip of target that fires only when every control is |1⟩.
func MCX(controls []int, target int) Gate {
	return Gate{Kind: ControlledX, Target: target, Controls: cloneControls(controls)}
}

// cloneControls copies controls; an empty list becomes nil.
func cloneControls(controls []int) []int {
	if len(controls) == 0 {
		return nil
	}
	return slices.Clone(controls)
}

// SWAP exchanges qubits a and b.
func SWAP(a, b int) Gate { return Gate{Kind: Swap, Target: -1, Operands: []int{a, b}} }

// Fence returns a barrier over qubits, or over every qubit when none are given.
func Fence(qubits ...int) Gate {
	return Gate{Kind: Barrier, Target: -1, Operands: slices.Clone(qubits)}
}

// Initialize prepares the register qubits in the given amplitude vector.
// The decomposition into elementary gates is left to whoever executes the program.
func Initialize(amplitudes []float64, qubits []int) Gate {
	return Gate{Kind: StatePreparation, Target: -1, Operands: slices.Clone(qubits), Params: slices.Clone(amplitudes)}
}

// Angle returns the rotation angle of a RY or CRY gate, or 0.
func (g Gate) Angle() float64 {
	if (g.Kind == RotationY || g.Kind == ControlledRY) && len(g.Params) > 0 {
		return g.Params[0]
	}
	return 0
}

// Qubits returns every qubit the gate touches: controls, target, and operands.
// A barrier without operands touches all numQubits qubits.
func (g Gate) Qubits(numQubits int) []int {
	if g.Kind == Barrier && len(g.Operands) == 0 {
		all := make([]int, numQubits)
		for q := range numQubits {
			all[q] = q
		}
		return all
	}
	qubits := make([]int, 0, len(g.Controls)+len(g.Operands)+1)
	qubits = append(qubits, g.Controls...)
	if g.Target >= 0 {
		qubits = append(qubits, g.Target)
	}
	qubits = append(qubits, g.Operands...)
	return qubits
}

// references reports whether the gate references the given qubit.
func (g Gate) references(qubit int) bool {
	if g.Target == qubit || slices.Contains(g.Controls, qubit) || slices.Contains(g.Operands, qubit) {
		return true
	}
	return g.Kind == Barrier && len(g.Operands) == 0
}

// Program is an ordered, append-only gate sequence over a fixed number of
// qubits. Insertion order is execution order.
type Program struct {
	NumQubits int
	gates     []Gate
}

// New creates an empty program over numQubits qubits.
func New(numQubits int) *Program {
	return &Program{NumQubits: numQubits}
}

// Append validates and appends gates in order. If any gate references a qubit
// outside the program, nothing is appended.
func (p *Program) Append(gates ...Gate) error {
	for _, g := range gates {
		if err := p.check(g); err != nil {
			return err
		}
	}
	p.gates = append(p.gates, gates...)
	return nil
}

func (p *Program) check(g Gate) error {
	if g.Kind < Hadamard || g.Kind > StatePreparation {
		return fmt.Errorf("unknown gate kind %d", int(g.Kind))
	}
	switch g.Kind {
	case Hadamard, PauliX, PhaseFlip, RotationY, ControlledRY, ControlledX:
		if g.Target < 0 {
			return fmt.Errorf("%s: missing target qubit", g.Kind)
		}
	case Swap:
		if len(g.Operands) != 2 {
			return fmt.Errorf("SWAP: expected 2 operands, got %d", len(g.Operands))
		}
	case StatePreparation:
		if len(g.Params) != 1<<len(g.Operands) {
			return fmt.Errorf("INIT: %d amplitudes for %d qubits", len(g.Params), len(g.Operands))
		}
	}
	for _, q := range g.Qubits(p.NumQubits) {
		if q < 0 || q >= p.NumQubits {
			return fmt.Errorf("%s: qubit %d out of range [0,%d)", g.Kind, q, p.NumQubits)
		}
	}
	if slices.Contains(g.Controls, g.Target) {
		return fmt.Errorf("%s: qubit %d is both control and target", g.Kind, g.Target)
	}
	return nil
}

// Gates returns a copy of the gate sequence.
func (p *Program) Gates() []Gate {
	return slices.Clone(p.gates)
}

// Len returns the number of gates, barriers included.
func (p *Program) Len() int { return len(p.gates) }

// At returns the i-th gate.
func (p *Program) At(i int) Gate { return p.gates[i] }

// Clone returns an independent copy that can be rewritten without affecting p.
func (p *Program) Clone() *Program {
	return &Program{NumQubits: p.NumQubits, gates: slices.Clone(p.gates)}
}

// GatesOnQubit returns the indices of gates that reference qubit, in program order.
func (p *Program) GatesOnQubit(qubit int) []int {
	var result []int
	for i, g := range p.gates {
		if g.references(qubit) {
			result = append(result, i)
		}
	}
	return result
}
