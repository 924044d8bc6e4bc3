// Package geometry rewrites the position-qubit subspace of a program to
// express image geometry (flips, rotation, reflection) and a simple
// interference filter. Every rewrite appends gates; none removes or
// reorders what the program already holds.
package geometry

import (
	"fmt"
	"slices"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
)

// HorizontalFlip appends X to every listed qubit.
func HorizontalFlip(p *circuit.Program, qubits ...int) error {
	gates := make([]circuit.Gate, len(qubits))
	for i, q := range qubits {
		gates[i] = circuit.X(q)
	}
	return p.Append(gates...)
}

// VerticalFlip appends a barrier, then X on every listed qubit in reverse order.
func VerticalFlip(p *circuit.Program, qubits ...int) error {
	gates := make([]circuit.Gate, 0, len(qubits)+1)
	gates = append(gates, circuit.Fence())
	for _, q := range slices.Backward(qubits) {
		gates = append(gates, circuit.X(q))
	}
	return p.Append(gates...)
}

// Reflect appends a barrier and a swap of a and b.
func Reflect(p *circuit.Program, a, b int) error {
	return p.Append(circuit.Fence(), circuit.SWAP(a, b))
}

// Filter appends a barrier followed by H, Z, H on q. The order matters and is
// kept exactly.
func Filter(p *circuit.Program, q int) error {
	return p.Append(circuit.Fence(), circuit.H(q), circuit.Z(q), circuit.H(q))
}

// Rotate90 rotates a square 2^m×2^m image a quarter turn counter-clockwise.
// positions holds the row bits followed by the column bits, most significant
// first, as the encoders lay them out. Pixel (r, c) moves to (N-1-c, r).
func Rotate90(p *circuit.Program, positions []int) error {
	if len(positions)%2 != 0 {
		return fmt.Errorf("rotate: %d position qubits do not describe a square image", len(positions))
	}
	m := len(positions) / 2
	rows, cols := positions[:m], positions[m:]

	gates := make([]circuit.Gate, 0, 1+2*m)
	gates = append(gates, circuit.Fence())
	for i := range m {
		gates = append(gates, circuit.SWAP(rows[i], cols[i]))
	}
	for _, q := range rows {
		gates = append(gates, circuit.X(q))
	}
	return p.Append(gates...)
}
