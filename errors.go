package flatvec

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch      = errors.New("flatvec: length mismatch")
	ErrInvalidDiscriminant = errors.New("flatvec: invalid discriminant")
	ErrInvalidValue        = errors.New("flatvec: invalid value")
	ErrOffsetOutOfOrder    = errors.New("flatvec: offset out of order")
	ErrOffsetOutOfBounds   = errors.New("flatvec: offset out of bounds")
	ErrTooLarge            = errors.New("flatvec: too large for index format")
	ErrUnsorted            = errors.New("flatvec: keys not sorted")
)

// InnerError reports which element or field of a container failed validation.
type InnerError struct {
	Index int
	Err   error
}

func (e *InnerError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *InnerError) Unwrap() error { return e.Err }

// At wraps err with the position i. A nil err stays nil.
func At(i int, err error) error {
	if err == nil {
		return nil
	}
	return &InnerError{Index: i, Err: err}
}
