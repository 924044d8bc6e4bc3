package encoding

import (
	"errors"
	"fmt"
)

// ErrUnknownScheme is returned by ParseScheme and Synthesize for a scheme
// outside the closed set.
var ErrUnknownScheme = errors.New("unknown encoding scheme")

// PreconditionError reports an image whose shape the scheme cannot encode,
// such as a pixel count that is not a power of two.
//
// The underlying shape error (if any) can be accessed via errors.Unwrap.
type PreconditionError struct {
	Scheme     Scheme
	PixelCount int
	Reason     string
	cause      error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed for %d pixels: %s", e.Scheme, e.PixelCount, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return e.cause }

// OutOfDomainError reports an intensity or channel value outside [0,1]
// beyond the clamping tolerance.
type OutOfDomainError struct {
	Scheme Scheme
	Index  int // flattened pixel index, or channel index for MCQI
	Value  float64
}

func (e *OutOfDomainError) Error() string {
	return fmt.Sprintf("%s: value %g at index %d is outside [0,1]", e.Scheme, e.Value, e.Index)
}

// DegenerateInputError reports a vector that cannot be normalized because
// its Euclidean norm is zero.
type DegenerateInputError struct {
	Scheme Scheme
	Length int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("%s: cannot normalize zero-norm vector of length %d", e.Scheme, e.Length)
}
