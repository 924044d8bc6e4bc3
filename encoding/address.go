package encoding

import (
	"fmt"
	"math/bits"

	"github.com/Swarajaya/Quantum-Image-Representation/circuit"
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// Address returns idx as a width-bit binary string, most significant bit first.
// Character i of the address belongs to the i-th position qubit.
func Address(idx, width int) string {
	if width == 0 {
		return ""
	}
	return fmt.Sprintf("%0*b", width, idx)
}

// Flips returns the Pauli-X gates that turn the address pattern into an
// all-ones pattern: one X on positions[i] for every '0' at address[i].
func Flips(address string, positions []int) ([]circuit.Gate, error) {
	if len(address) != len(positions) {
		return nil, fmt.Errorf("address %q has %d bits for %d position qubits", address, len(address), len(positions))
	}
	var flips []circuit.Gate
	for i := range len(address) {
		switch address[i] {
		case '0':
			flips = append(flips, circuit.X(positions[i]))
		case '1':
		default:
			return nil, fmt.Errorf("address %q: invalid bit %q at %d", address, address[i], i)
		}
	}
	return flips, nil
}

// Guard appends the guarded gates to p wrapped in the address flips, so that
// all-ones controls on the position qubits fire only for that address.
// The flips are self-inverse, leaving the position qubits as they were.
func Guard(p *circuit.Program, address string, positions []int, guarded ...circuit.Gate) error {
	flips, err := Flips(address, positions)
	if err != nil {
		return err
	}
	block := make([]circuit.Gate, 0, 2*len(flips)+len(guarded))
	block = append(block, flips...)
	block = append(block, guarded...)
	block = append(block, flips...)
	return p.Append(block...)
}

// log2Exact returns k with n == 2^k.
func log2Exact(n int) (int, bool) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, false
	}
	return bits.TrailingZeros(uint(n)), true
}

// clampValues checks every value against [0,1], clamping those within
// imaging.Tolerance of the interval.
func clampValues(scheme Scheme, values []float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		c, ok := imaging.Clamp(v)
		if !ok {
			return nil, &OutOfDomainError{Scheme: scheme, Index: i, Value: v}
		}
		out[i] = c
	}
	return out, nil
}

// positionPixels validates g for a position-qubit scheme and returns its
// clamped row-major intensities and the number of position qubits.
func positionPixels(scheme Scheme, g imaging.Gray) ([]float64, int, error) {
	rows, cols, err := g.Dims()
	if err != nil {
		return nil, 0, &PreconditionError{Scheme: scheme, Reason: err.Error(), cause: err}
	}
	n := rows * cols
	k, ok := log2Exact(n)
	if !ok {
		return nil, 0, &PreconditionError{Scheme: scheme, PixelCount: n, Reason: "pixel count is not a power of two"}
	}
	values, err := clampValues(scheme, g.Flatten())
	if err != nil {
		return nil, 0, err
	}
	return values, k, nil
}
