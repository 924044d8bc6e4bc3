package encoding

import (
	"math"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// EncodeFRQI builds the Flexible Representation of Quantum Images program for
// g: k position qubits in uniform superposition and one color qubit rotated by
// 2π·v under the address of each pixel.
func EncodeFRQI(g imaging.Gray) (*circuit.Program, error) {
	values, k, err := positionPixels(FRQI, g)
	if err != nil {
		return nil, err
	}

	positions := qubitRange(0, k)
	color := k
	p := circuit.New(k + 1)

	for _, q := range positions {
		if err := p.Append(circuit.H(q)); err != nil {
			return nil, err
		}
	}

	for idx, v := range values {
		rot := circuit.CRY(positions, color, 2*math.Pi*v)
		if err := Guard(p, Address(idx, k), positions, rot); err != nil {
			return nil, err
		}
	}
	return p, nil
}
