package encoding

import (
	"math"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// qramAddressQubits is fixed: QRAM encodes exactly 2^2 pixels.
const qramAddressQubits = 2

// EncodeQRAM builds the QRAM lookup program for a 4-pixel image: two address
// qubits and one data qubit. Each pixel contributes its address flips around
// RY(2·asin v) on the data qubit. The rotation itself carries no controls, so
// it is applied for every address; this is the observed rule and is kept as is.
func EncodeQRAM(g imaging.Gray) (*circuit.Program, error) {
	values, k, err := positionPixels(QRAM, g)
	if err != nil {
		return nil, err
	}
	if k != qramAddressQubits {
		return nil, &PreconditionError{Scheme: QRAM, PixelCount: len(values), Reason: "QRAM encodes exactly 4 pixels"}
	}

	address := qubitRange(0, qramAddressQubits)
	data := qramAddressQubits
	p := circuit.New(qramAddressQubits + 1)

	for idx, v := range values {
		rot := circuit.RY(data, 2*math.Asin(v))
		if err := Guard(p, Address(idx, qramAddressQubits), address, rot); err != nil {
			return nil, err
		}
	}
	return p, nil
}
