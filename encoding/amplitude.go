package encoding

import (
	"math"
	"math/bits"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// EncodeAmplitude builds a program that prepares the flattened, unit-normalized
// image directly as the register's amplitudes. The register has
// max(1, ceil(log2 n)) qubits; a pixel count short of a power of two is
// padded with zero amplitudes.
func EncodeAmplitude(g imaging.Gray) (*circuit.Program, error) {
	rows, cols, err := g.Dims()
	if err != nil {
		return nil, &PreconditionError{Scheme: Amplitude, Reason: err.Error(), cause: err}
	}
	values, err := clampValues(Amplitude, g.Flatten())
	if err != nil {
		return nil, err
	}

	n := rows * cols
	numQubits := max(1, bits.Len(uint(n-1)))
	vec := make([]float64, 1<<numQubits)
	copy(vec, values)

	unit, err := normalize(Amplitude, vec)
	if err != nil {
		return nil, err
	}

	p := circuit.New(numQubits)
	if err := p.Append(circuit.Initialize(unit, qubitRange(0, numQubits))); err != nil {
		return nil, err
	}
	return p, nil
}

// normalize scales vec to unit Euclidean norm.
func normalize(scheme Scheme, vec []float64) ([]float64, error) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return nil, &DegenerateInputError{Scheme: scheme, Length: len(vec)}
	}
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = v / norm
	}
	return out, nil
}
