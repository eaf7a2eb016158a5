package codec

import (
	"fmt"

	"github.com/rawbytedev/flatvec"
)

const (
	tagAbsent  = 0
	tagPresent = 1
)

// Optional is a value that may be absent.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Present: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.Value, o.Present }

// OptionalFixed wraps a fixed encoding of width W into one of width 1+W.
// An absent value is a zero tag followed by W zero bytes so that equal
// values keep equal encodings.
func OptionalFixed[T any](inner flatvec.Fixed[T]) flatvec.Fixed[Optional[T]] {
	return optionalFixed[T]{inner: inner}
}

type optionalFixed[T any] struct{ inner flatvec.Fixed[T] }

func (o optionalFixed[T]) Width() int { return 1 + o.inner.Width() }

func (o optionalFixed[T]) ValidateChunk(b []byte) error {
	switch b[0] {
	case tagAbsent:
		for _, c := range b[1:] {
			if c != 0 {
				return fmt.Errorf("%w: absent value with non-zero payload", flatvec.ErrInvalidValue)
			}
		}
		return nil
	case tagPresent:
		return o.inner.ValidateChunk(b[1:])
	default:
		return fmt.Errorf("%w: optional tag 0x%02x", flatvec.ErrInvalidDiscriminant, b[0])
	}
}

func (o optionalFixed[T]) Encode(dst []byte, v Optional[T]) {
	if !v.Present {
		clear(dst)
		return
	}
	dst[0] = tagPresent
	o.inner.Encode(dst[1:], v.Value)
}

func (o optionalFixed[T]) Decode(b []byte) Optional[T] {
	if b[0] == tagAbsent {
		return Optional[T]{}
	}
	return Some(o.inner.Decode(b[1:]))
}

// OptionalVar wraps a variable encoding: a single zero byte when absent,
// a one byte followed by the inner encoding when present.
func OptionalVar[T any](inner flatvec.Variable[T]) flatvec.Variable[Optional[T]] {
	return optionalVar[T]{inner: inner}
}

type optionalVar[T any] struct{ inner flatvec.Variable[T] }

func (o optionalVar[T]) Validate(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty optional", flatvec.ErrLengthMismatch)
	}
	switch b[0] {
	case tagAbsent:
		if len(b) != 1 {
			return fmt.Errorf("%w: absent value with %d trailing bytes", flatvec.ErrLengthMismatch, len(b)-1)
		}
		return nil
	case tagPresent:
		return o.inner.Validate(b[1:])
	default:
		return fmt.Errorf("%w: optional tag 0x%02x", flatvec.ErrInvalidDiscriminant, b[0])
	}
}

func (o optionalVar[T]) EncodedLen(v Optional[T]) int {
	if !v.Present {
		return 1
	}
	return 1 + o.inner.EncodedLen(v.Value)
}

func (o optionalVar[T]) Encode(dst []byte, v Optional[T]) {
	if !v.Present {
		dst[0] = tagAbsent
		return
	}
	dst[0] = tagPresent
	o.inner.Encode(dst[1:], v.Value)
}

func (o optionalVar[T]) Decode(b []byte) Optional[T] {
	if b[0] == tagAbsent {
		return Optional[T]{}
	}
	return Some(o.inner.Decode(b[1:]))
}
