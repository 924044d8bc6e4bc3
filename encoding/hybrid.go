package encoding

import (
	"github.com/Swarajaya/Quantum-Image-Representation/imaging"
)

// HybridState is the HA-QIR split of an image into a region of interest,
// encoded multi-channel style, and a background, encoded by amplitude.
// Each part is normalized on its own.
type HybridState struct {
	Mask       [][]bool  // true where the pixel belongs to the region of interest
	ROI        []float64 // unit-norm ROI intensities in row-major order, empty if no pixel qualifies
	Background []float64 // unit-norm background intensities, empty if every pixel qualifies
}

// State returns the ROI amplitudes followed by the background amplitudes.
func (h *HybridState) State() []float64 {
	out := make([]float64, 0, len(h.ROI)+len(h.Background))
	out = append(out, h.ROI...)
	return append(out, h.Background...)
}

// Hybrid splits g at threshold: pixels strictly brighter than threshold form
// the region of interest. A non-empty part with zero norm is rejected.
func Hybrid(g imaging.Gray, threshold float64) (*HybridState, error) {
	rows, cols, err := g.Dims()
	if err != nil {
		return nil, &PreconditionError{Scheme: Amplitude, Reason: err.Error(), cause: err}
	}

	h := &HybridState{Mask: make([][]bool, rows)}
	var roi, bg []float64
	for r := range rows {
		h.Mask[r] = make([]bool, cols)
		for c := range cols {
			v, ok := imaging.Clamp(g[r][c])
			if !ok {
				return nil, &OutOfDomainError{Scheme: Amplitude, Index: r*cols + c, Value: g[r][c]}
			}
			if v > threshold {
				h.Mask[r][c] = true
				roi = append(roi, v)
			} else {
				bg = append(bg, v)
			}
		}
	}

	if h.ROI, err = normalizePart(MCQI, roi); err != nil {
		return nil, err
	}
	if h.Background, err = normalizePart(Amplitude, bg); err != nil {
		return nil, err
	}
	return h, nil
}

func normalizePart(scheme Scheme, part []float64) ([]float64, error) {
	if len(part) == 0 {
		return []float64{}, nil
	}
	return normalize(scheme, part)
}
