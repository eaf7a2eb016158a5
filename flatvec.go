package flatvec

import "fmt"

// Fixed is an encoding where every value occupies exactly Width bytes.
// Two values are equal iff their encodings are byte-equal.
type Fixed[T any] interface {
	Width() int
	// ValidateChunk checks one Width-sized chunk.
	ValidateChunk(b []byte) error
	// Encode writes v into dst, len(dst) == Width().
	Encode(dst []byte, v T)
	// Decode reads a chunk that passed ValidateChunk. It is meant for
	// implementers; callers go through ParseFixed or vec.ParseFixed.
	Decode(b []byte) T
}

// Variable is a self-delimiting encoding. Validate must consume all of b.
type Variable[T any] interface {
	Validate(b []byte) error
	EncodedLen(v T) int
	// Encode writes v into dst, len(dst) == EncodedLen(v).
	Encode(dst []byte, v T)
	// Decode reads bytes that passed Validate. The result may alias b.
	// It is meant for implementers and may panic on unchecked input;
	// callers go through Parse, vec.ParseVar or sortmap.Parse.
	Decode(b []byte) T
}

// ValidateFixed checks that b is a whole number of chunks and that every
// chunk is valid on its own.
func ValidateFixed[T any](c Fixed[T], b []byte) error {
	w := c.Width()
	if w <= 0 {
		return fmt.Errorf("%w: encoding width %d", ErrLengthMismatch, w)
	}
	if len(b)%w != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrLengthMismatch, len(b), w)
	}
	for i, off := 0, 0; off < len(b); i, off = i+1, off+w {
		if err := c.ValidateChunk(b[off : off+w]); err != nil {
			return At(i, err)
		}
	}
	return nil
}

// Parse validates b and returns the decoded view.
func Parse[T any](c Variable[T], b []byte) (T, error) {
	if err := c.Validate(b); err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(b), nil
}

// ParseFixed validates a single chunk and decodes it.
func ParseFixed[T any](c Fixed[T], b []byte) (T, error) {
	var zero T
	if len(b) != c.Width() {
		return zero, fmt.Errorf("%w: want %d bytes, got %d", ErrLengthMismatch, c.Width(), len(b))
	}
	if err := c.ValidateChunk(b); err != nil {
		return zero, err
	}
	return c.Decode(b), nil
}

// Encode allocates a buffer holding the encoding of v.
func Encode[T any](c Variable[T], v T) []byte {
	out := make([]byte, c.EncodedLen(v))
	c.Encode(out, v)
	return out
}

// EncodeFixed allocates a Width-sized buffer holding v.
func EncodeFixed[T any](c Fixed[T], v T) []byte {
	out := make([]byte, c.Width())
	c.Encode(out, v)
	return out
}

// AsVariable lets a fixed encoding stand where a variable one is expected.
// Validation then requires exactly Width bytes.
func AsVariable[T any](c Fixed[T]) Variable[T] {
	return fixedAsVariable[T]{c}
}

type fixedAsVariable[T any] struct{ c Fixed[T] }

func (f fixedAsVariable[T]) Validate(b []byte) error {
	if len(b) != f.c.Width() {
		return fmt.Errorf("%w: want %d bytes, got %d", ErrLengthMismatch, f.c.Width(), len(b))
	}
	return f.c.ValidateChunk(b)
}

func (f fixedAsVariable[T]) EncodedLen(T) int       { return f.c.Width() }
func (f fixedAsVariable[T]) Encode(dst []byte, v T) { f.c.Encode(dst, v) }
func (f fixedAsVariable[T]) Decode(b []byte) T      { return f.c.Decode(b) }
