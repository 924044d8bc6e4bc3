package encoding

import (
	"math"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// neqrIntensityQubits is the number of basis-encoded intensity bits; intensities
// are quantized to 2^neqrIntensityQubits levels.
const neqrIntensityQubits = 2

// neqrLevel quantizes v in [0,1] to an integer level in [0,3].
func neqrLevel(v float64) int {
	return int(math.Round(v * float64(1<<neqrIntensityQubits-1)))
}

// EncodeNEQR builds the Novel Enhanced Quantum Representation program for g.
// Intensity bit b of each pixel is written into qubit k+b with a multi-controlled
// X on the pixel's address; every pixel gets one address block, even at level 0.
func EncodeNEQR(g imaging.Gray) (*circuit.Program, error) {
	values, k, err := positionPixels(NEQR, g)
	if err != nil {
		return nil, err
	}

	positions := qubitRange(0, k)
	p := circuit.New(k + neqrIntensityQubits)

	for _, q := range positions {
		if err := p.Append(circuit.H(q)); err != nil {
			return nil, err
		}
	}

	for idx, v := range values {
		level := neqrLevel(v)
		var writes []circuit.Gate
		for bit := range neqrIntensityQubits {
			if (level>>bit)&1 == 1 {
				writes = append(writes, circuit.MCX(positions, k+bit))
			}
		}
		if err := Guard(p, Address(idx, k), positions, writes...); err != nil {
			return nil, err
		}
	}
	return p, nil
}
