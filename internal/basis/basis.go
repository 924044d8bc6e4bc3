// Package basis tracks a register through the classical (permutation) subset
// of a gate program, one computational-basis state at a time.
package basis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
)

// ErrNotClassical is returned for gates that take a basis state out of the
// computational basis, such as H or a rotation.
var ErrNotClassical = errors.New("gate does not map basis states to basis states")

// State is a computational-basis state of a register. Phases are not tracked,
// so Z leaves the state unchanged.
type State struct {
	bits []bool
}

// New returns |0…0⟩ on n qubits.
func New(n int) *State {
	return &State{bits: make([]bool, n)}
}

// FromAddress returns a state on n qubits with positions[i] set to address[i].
func FromAddress(n int, address string, positions []int) (*State, error) {
	if len(address) != len(positions) {
		return nil, fmt.Errorf("address %q has %d bits for %d qubits", address, len(address), len(positions))
	}
	s := New(n)
	for i, q := range positions {
		if err := s.check(q); err != nil {
			return nil, err
		}
		s.bits[q] = address[i] == '1'
	}
	return s, nil
}

func (s *State) check(q int) error {
	if q < 0 || q >= len(s.bits) {
		return fmt.Errorf("qubit %d out of range [0,%d)", q, len(s.bits))
	}
	return nil
}

// Bit reports whether qubit q is |1⟩.
func (s *State) Bit(q int) bool { return s.bits[q] }

// Set puts qubit q into |1⟩ when v is true and |0⟩ otherwise.
func (s *State) Set(q int, v bool) { s.bits[q] = v }

// Clone returns an independent copy.
func (s *State) Clone() *State {
	bits := make([]bool, len(s.bits))
	copy(bits, s.bits)
	return &State{bits: bits}
}

// Equal reports whether both states hold the same bits.
func (s *State) Equal(o *State) bool {
	if len(s.bits) != len(o.bits) {
		return false
	}
	for i := range s.bits {
		if s.bits[i] != o.bits[i] {
			return false
		}
	}
	return true
}

// Address reads the given qubits as a bit string, first qubit first.
func (s *State) Address(qubits []int) string {
	var sb strings.Builder
	for _, q := range qubits {
		if s.bits[q] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (s *State) String() string {
	return "|" + s.Address(allQubits(len(s.bits))) + "⟩"
}

func allQubits(n int) []int {
	qubits := make([]int, n)
	for q := range n {
		qubits[q] = q
	}
	return qubits
}

// Apply applies one gate.
func (s *State) Apply(g circuit.Gate) error {
	for _, q := range g.Qubits(len(s.bits)) {
		if err := s.check(q); err != nil {
			return fmt.Errorf("%s: %w", g.Kind, err)
		}
	}

	switch g.Kind {
	case circuit.PauliX:
		s.bits[g.Target] = !s.bits[g.Target]
	case circuit.ControlledX:
		for _, c := range g.Controls {
			if !s.bits[c] {
				return nil
			}
		}
		s.bits[g.Target] = !s.bits[g.Target]
	case circuit.Swap:
		a, b := g.Operands[0], g.Operands[1]
		s.bits[a], s.bits[b] = s.bits[b], s.bits[a]
	case circuit.Barrier, circuit.PhaseFlip:
	default:
		return fmt.Errorf("%s: %w", g.Kind, ErrNotClassical)
	}
	return nil
}

// Run applies every gate of p in order.
func (s *State) Run(p *circuit.Program) error {
	for i := range p.Len() {
		if err := s.Apply(p.At(i)); err != nil {
			return fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return nil
}
