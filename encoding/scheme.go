// Package encoding synthesizes gate programs that load a classical image into
// a quantum register under the FRQI, NEQR, QRAM, MCQI and Amplitude schemes.
//
// Each scheme reproduces its synthesis rule exactly as specified, including
// the QRAM rule whose rotation is not gated on the address; callers comparing
// schemes compare gate sequences, not encoded states.
package encoding

import (
	"fmt"
	"strings"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// Scheme identifies a synthesis rule.
type Scheme int

const (
	FRQI Scheme = iota
	NEQR
	QRAM
	MCQI
	Amplitude
)

var schemeNames = [...]string{
	FRQI:      "FRQI",
	NEQR:      "NEQR",
	QRAM:      "QRAM",
	MCQI:      "MCQI",
	Amplitude: "Amplitude",
}

func (s Scheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
	return schemeNames[s]
}

// Schemes returns every scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{FRQI, NEQR, QRAM, MCQI, Amplitude}
}

// ParseScheme resolves a scheme name case-insensitively.
func ParseScheme(name string) (Scheme, error) {
	for _, s := range Schemes() {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Input carries the preprocessed image in the forms the schemes consume.
// MCQI reads Color; every other scheme reads Gray.
type Input struct {
	Gray  imaging.Gray
	Color imaging.RGB
}

// Encoded is a synthesized program together with the role of its qubits.
type Encoded struct {
	Scheme   Scheme
	Program  *circuit.Program
	Position []int // qubits holding the pixel address, empty for MCQI and Amplitude
	Data     []int // qubits holding intensity or color
}

// Synthesize builds the program for scheme from in.
func Synthesize(scheme Scheme, in Input) (*Encoded, error) {
	var (
		p   *circuit.Program
		err error
	)
	switch scheme {
	case FRQI:
		p, err = EncodeFRQI(in.Gray)
	case NEQR:
		p, err = EncodeNEQR(in.Gray)
	case QRAM:
		p, err = EncodeQRAM(in.Gray)
	case MCQI:
		p, err = EncodeMCQIImage(in.Color)
	case Amplitude:
		p, err = EncodeAmplitude(in.Gray)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}
	if err != nil {
		return nil, err
	}
	return layout(scheme, p), nil
}

func layout(scheme Scheme, p *circuit.Program) *Encoded {
	enc := &Encoded{Scheme: scheme, Program: p}
	switch scheme {
	case FRQI, NEQR, QRAM:
		dataQubits := map[Scheme]int{FRQI: 1, NEQR: neqrIntensityQubits, QRAM: 1}[scheme]
		k := p.NumQubits - dataQubits
		enc.Position = qubitRange(0, k)
		enc.Data = qubitRange(k, p.NumQubits)
	case MCQI, Amplitude:
		enc.Data = qubitRange(0, p.NumQubits)
	}
	return enc
}

func qubitRange(from, to int) []int {
	qubits := make([]int, 0, max(to-from, 0))
	for q := from; q < to; q++ {
		qubits = append(qubits, q)
	}
	return qubits
}
