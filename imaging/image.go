// Package imaging provides the normalized image types consumed by the
// encoders, a file loader, and classical array transforms.
package imaging

import (
	"errors"
	"fmt"
)

// Tolerance is how far a value may stray outside [0,1] through resizing or
// rounding and still be clamped rather than rejected.
const Tolerance = 1e-9

// ErrEmpty is returned for an image without pixels.
var ErrEmpty = errors.New("image has no pixels")

// RaggedError reports a row whose width differs from the first row.
type RaggedError struct {
	Row   int
	Width int
	Want  int
}

func (e *RaggedError) Error() string {
	return fmt.Sprintf("row %d has %d columns, want %d", e.Row, e.Width, e.Want)
}

// Channels selects how a file is decoded.
type Channels int

const (
	Grayscale Channels = 1
	Color     Channels = 3
)

func (c Channels) String() string {
	switch c {
	case Grayscale:
		return "gray"
	case Color:
		return "rgb"
	default:
		return fmt.Sprintf("Channels(%d)", int(c))
	}
}

// Pixel holds the R, G and B intensities of a color pixel.
type Pixel [3]float64

// Gray is a row-major grid of intensities in [0,1].
type Gray [][]float64

// RGB is a row-major grid of color pixels with channels in [0,1].
type RGB [][]Pixel

func dims[T any](grid [][]T) (rows, cols int, err error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return 0, 0, ErrEmpty
	}
	cols = len(grid[0])
	for r, row := range grid {
		if len(row) != cols {
			return 0, 0, &RaggedError{Row: r, Width: len(row), Want: cols}
		}
	}
	return len(grid), cols, nil
}

// Dims returns the grid size, or an error for an empty or ragged grid.
func (g Gray) Dims() (rows, cols int, err error) { return dims(g) }

// Dims returns the grid size, or an error for an empty or ragged grid.
func (c RGB) Dims() (rows, cols int, err error) { return dims(c) }

// Flatten returns the intensities in row-major order.
func (g Gray) Flatten() []float64 {
	var out []float64
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Flatten returns the pixels in row-major order.
func (c RGB) Flatten() []Pixel {
	var out []Pixel
	for _, row := range c {
		out = append(out, row...)
	}
	return out
}

// Clamp pulls v into [0,1] when it lies within Tolerance of the interval.
// ok is false when v is further out (or NaN) and must be rejected.
func Clamp(v float64) (clamped float64, ok bool) {
	switch {
	case v >= 0 && v <= 1:
		return v, true
	case v < 0 && v >= -Tolerance:
		return 0, true
	case v > 1 && v <= 1+Tolerance:
		return 1, true
	}
	return v, false
}
