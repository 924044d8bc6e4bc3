// Package metrics computes static complexity figures for a gate program.
package metrics

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
)

// Report summarizes a program. Barriers are not counted as gates and do not
// contribute to depth.
type Report struct {
	Qubits int            `yaml:"qubits"`
	Gates  int            `yaml:"gates"`
	Depth  int            `yaml:"depth"`
	Ops    map[string]int `yaml:"ops"` // gate count per kind
}

// Analyze reports qubit count, gate count, per-kind counts and depth of p.
func Analyze(p *circuit.Program) Report {
	r := Report{Qubits: p.NumQubits, Ops: make(map[string]int), Depth: Depth(p)}
	for i := range p.Len() {
		g := p.At(i)
		if g.Kind == circuit.Barrier {
			continue
		}
		r.Gates++
		r.Ops[g.Kind.String()]++
	}
	return r
}

// Depth returns the length of the longest chain of gates that share a qubit.
// Every qubit keeps a clock; a gate advances the clocks of the qubits it
// touches to one past the latest of them.
func Depth(p *circuit.Program) int {
	clock := make([]int, p.NumQubits)
	depth := 0
	for i := range p.Len() {
		g := p.At(i)
		if g.Kind == circuit.Barrier {
			continue
		}
		qubits := g.Qubits(p.NumQubits)
		d := 0
		for _, q := range qubits {
			d = max(d, clock[q])
		}
		d++
		for _, q := range qubits {
			clock[q] = d
		}
		depth = max(depth, d)
	}
	return depth
}

func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "qubits=%d gates=%d depth=%d", r.Qubits, r.Gates, r.Depth)
	for _, kind := range slices.Sorted(maps.Keys(r.Ops)) {
		fmt.Fprintf(&sb, " %s=%d", kind, r.Ops[kind])
	}
	return sb.String()
}
