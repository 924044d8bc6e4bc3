package circuit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	qregRegex     = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
	gateRegex     = regexp.MustCompile(`^(\w+)\s*(?:\(\s*(` + paramPattern + `)\s*\))?\s+((?:q\[\d+\]\s*,\s*)*q\[\d+\])\s*;?$`)
	initRegex     = regexp.MustCompile(`^//\s*initialize\s*\(([^)]*)\)\s+((?:q\[\d+\]\s*,\s*)*q\[\d+\])\s*;?$`)
	qubitRefRegex = regexp.MustCompile(`q\[(\d+)\]`)
)

// QASM returns the program as OpenQASM 2.0 text.
func (p *Program) QASM() string {
	var sb strings.Builder
	_ = p.WriteQASM(&sb)
	return sb.String()
}

// WriteQASM writes the program as OpenQASM 2.0.
//
// Multi-controlled gates beyond qelib1 use the generic "mcx"/"mcry" spelling
// with controls first and the target last. State preparation has no QASM 2.0
// form and is written as an "// initialize(...)" directive that ParseQASM reads back.
func (p *Program) WriteQASM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("OPENQASM 2.0;\n")
	bw.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(bw, "qreg q[%d];\n\n", max(p.NumQubits, 1))

	for _, g := range p.gates {
		writeGateQASM(bw, g, p.NumQubits)
	}
	return bw.Flush()
}

func qubitList(qubits []int) string {
	refs := make([]string, len(qubits))
	for i, q := range qubits {
		refs[i] = fmt.Sprintf("q[%d]", q)
	}
	return strings.Join(refs, ", ")
}

// writeGateQASM writes a single gate's QASM representation.
func writeGateQASM(w io.Writer, g Gate, numQubits int) {
	switch g.Kind {
	case Hadamard:
		fmt.Fprintf(w, "h q[%d];\n", g.Target)
	case PauliX:
		fmt.Fprintf(w, "x q[%d];\n", g.Target)
	case PhaseFlip:
		fmt.Fprintf(w, "z q[%d];\n", g.Target)
	case RotationY:
		fmt.Fprintf(w, "ry(%s) q[%d];\n", FormatAngle(g.Angle()), g.Target)
	case ControlledRY:
		switch len(g.Controls) {
		case 1:
			fmt.Fprintf(w, "cry(%s) q[%d], q[%d];\n", FormatAngle(g.Angle()), g.Controls[0], g.Target)
		default:
			fmt.Fprintf(w, "mcry(%s) %s;\n", FormatAngle(g.Angle()), qubitList(g.Qubits(numQubits)))
		}
	case ControlledX:
		switch len(g.Controls) {
		case 1:
			fmt.Fprintf(w, "cx q[%d], q[%d];\n", g.Controls[0], g.Target)
		case 2:
			fmt.Fprintf(w, "ccx q[%d], q[%d], q[%d];\n", g.Controls[0], g.Controls[1], g.Target)
		default:
			fmt.Fprintf(w, "mcx %s;\n", qubitList(g.Qubits(numQubits)))
		}
	case Swap:
		fmt.Fprintf(w, "swap q[%d], q[%d];\n", g.Operands[0], g.Operands[1])
	case Barrier:
		fmt.Fprintf(w, "barrier %s;\n", qubitList(g.Qubits(numQubits)))
	case StatePreparation:
		amps := make([]string, len(g.Params))
		for i, a := range g.Params {
			amps[i] = strconv.FormatFloat(a, 'g', -1, 64)
		}
		fmt.Fprintf(w, "// initialize(%s) %s;\n", strings.Join(amps, ", "), qubitList(g.Operands))
	}
}

// ParseQASM reads the OpenQASM 2.0 subset written by WriteQASM back into a
// Program. Lines outside that subset are rejected with their line number.
func ParseQASM(qasm string) (*Program, error) {
	var p *Program
	for n, raw := range strings.Split(qasm, "\n") {
		line := strings.TrimSpace(raw)
		lineNo := n + 1
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "//") {
			matches := initRegex.FindStringSubmatch(line)
			if matches == nil {
				continue
			}
			if p == nil {
				return nil, fmt.Errorf("line %d: gate before qreg declaration", lineNo)
			}
			amps, err := parseAmplitudes(matches[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if err := p.Append(Initialize(amps, parseQubitRefs(matches[2]))); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") || strings.HasPrefix(line, "creg") {
			continue
		}

		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			if p != nil {
				return nil, fmt.Errorf("line %d: only a single qreg is supported", lineNo)
			}
			n, _ := strconv.Atoi(matches[2])
			p = New(n)
			continue
		}

		if p == nil {
			return nil, fmt.Errorf("line %d: gate before qreg declaration", lineNo)
		}
		g, err := parseGateLine(line, p.NumQubits)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := p.Append(g); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	if p == nil {
		return nil, fmt.Errorf("no qreg declaration found")
	}
	return p, nil
}

func parseQubitRefs(s string) []int {
	var qubits []int
	for _, m := range qubitRefRegex.FindAllStringSubmatch(s, -1) {
		q, _ := strconv.Atoi(m[1])
		qubits = append(qubits, q)
	}
	return qubits
}

func parseAmplitudes(s string) ([]float64, error) {
	var amps []float64
	for _, part := range strings.Split(s, ",") {
		a, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amplitude %q", part)
		}
		amps = append(amps, a)
	}
	return amps, nil
}

// parseGateLine parses a single QASM gate line into a Gate.
func parseGateLine(line string, numQubits int) (Gate, error) {
	matches := gateRegex.FindStringSubmatch(line)
	if matches == nil {
		return Gate{}, fmt.Errorf("unsupported statement %q", line)
	}
	name := strings.ToLower(matches[1])
	qubits := parseQubitRefs(matches[3])

	var angle float64
	hasAngle := matches[2] != ""
	if hasAngle {
		var ok bool
		if angle, ok = ParseAngle(matches[2]); !ok {
			return Gate{}, fmt.Errorf("invalid parameter %q", matches[2])
		}
	}

	arity := func(want int) error {
		if len(qubits) != want {
			return fmt.Errorf("%s: expected %d qubits, got %d", name, want, len(qubits))
		}
		return nil
	}
	last := qubits[len(qubits)-1]
	controls := qubits[:len(qubits)-1]

	switch name {
	case "h":
		return H(last), arity(1)
	case "x":
		return X(last), arity(1)
	case "z":
		return Z(last), arity(1)
	case "ry":
		if !hasAngle {
			return Gate{}, fmt.Errorf("ry: missing angle")
		}
		return RY(last, angle), arity(1)
	case "cry":
		if !hasAngle {
			return Gate{}, fmt.Errorf("cry: missing angle")
		}
		return CRY(controls, last, angle), arity(2)
	case "mcry":
		if !hasAngle {
			return Gate{}, fmt.Errorf("mcry: missing angle")
		}
		return CRY(controls, last, angle), nil
	case "cx":
		return MCX(controls, last), arity(2)
	case "ccx":
		return MCX(controls, last), arity(3)
	case "mcx":
		return MCX(controls, last), nil
	case "swap":
		return SWAP(qubits[0], last), arity(2)
	case "barrier":
		if coversAll(qubits, numQubits) {
			return Fence(), nil
		}
		return Fence(qubits...), nil
	}
	return Gate{}, fmt.Errorf("unsupported gate %q", name)
}

// coversAll reports whether qubits is exactly 0..n-1 in order.
func coversAll(qubits []int, n int) bool {
	if len(qubits) != n {
		return false
	}
	for i, q := range qubits {
		if q != i {
			return false
		}
	}
	return true
}
