package encoding

import (
	"math"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// EncodeMCQI builds the three-qubit multi-channel program for a single pixel:
// RY(2·asin c) on qubit 0, 1 and 2 for the R, G and B channels.
func EncodeMCQI(px imaging.Pixel) (*circuit.Program, error) {
	channels, err := clampValues(MCQI, px[:])
	if err != nil {
		return nil, err
	}
	p := circuit.New(len(px))
	for q, c := range channels {
		if err := p.Append(circuit.RY(q, 2*math.Asin(c))); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// EncodeMCQIImage encodes the representative pixel of c, the one at row 0,
// column 0. The rest of the image does not contribute.
func EncodeMCQIImage(c imaging.RGB) (*circuit.Program, error) {
	rows, cols, err := c.Dims()
	if err != nil {
		return nil, &PreconditionError{Scheme: MCQI, PixelCount: rows * cols, Reason: err.Error(), cause: err}
	}
	return EncodeMCQI(c[0][0])
}
