package codec

import (
	"fmt"

	"github.com/rawbytedev/flatvec"
)

// Pair is a two-field record. Longer records nest: Pair[A, Pair[B, C]].
type Pair[A, B any] struct {
	First A
	Rest  B
}

// MakePair builds a Pair.
func MakePair[A, B any](a A, b B) Pair[A, B] { return Pair[A, B]{First: a, Rest: b} }

// Tuple lays out a fixed field followed by a variable one:
//
//	[a: Width bytes][b: the rest of the slice]
//
// The length of b is never stored; it comes from the enclosing slice.
func Tuple[A, B any](a flatvec.Fixed[A], b flatvec.Variable[B]) flatvec.Variable[Pair[A, B]] {
	return tuple[A, B]{a: a, b: b}
}

type tuple[A, B any] struct {
	a flatvec.Fixed[A]
	b flatvec.Variable[B]
}

func (t tuple[A, B]) Validate(b []byte) error {
	w := t.a.Width()
	if len(b) < w {
		return fmt.Errorf("%w: tuple needs at least %d bytes, got %d", flatvec.ErrLengthMismatch, w, len(b))
	}
	if err := t.a.ValidateChunk(b[:w]); err != nil {
		return flatvec.At(0, err)
	}
	return flatvec.At(1, t.b.Validate(b[w:]))
}

func (t tuple[A, B]) EncodedLen(v Pair[A, B]) int {
	return t.a.Width() + t.b.EncodedLen(v.Rest)
}

func (t tuple[A, B]) Encode(dst []byte, v Pair[A, B]) {
	w := t.a.Width()
	t.a.Encode(dst[:w], v.First)
	t.b.Encode(dst[w:], v.Rest)
}

func (t tuple[A, B]) Decode(b []byte) Pair[A, B] {
	w := t.a.Width()
	return Pair[A, B]{First: t.a.Decode(b[:w]), Rest: t.b.Decode(b[w:])}
}

// FixedPair lays out two fixed fields back to back.
func FixedPair[A, B any](a flatvec.Fixed[A], b flatvec.Fixed[B]) flatvec.Fixed[Pair[A, B]] {
	return fixedPair[A, B]{a: a, b: b}
}

type fixedPair[A, B any] struct {
	a flatvec.Fixed[A]
	b flatvec.Fixed[B]
}

func (p fixedPair[A, B]) Width() int { return p.a.Width() + p.b.Width() }

func (p fixedPair[A, B]) ValidateChunk(b []byte) error {
	w := p.a.Width()
	if err := p.a.ValidateChunk(b[:w]); err != nil {
		return flatvec.At(0, err)
	}
	return flatvec.At(1, p.b.ValidateChunk(b[w:]))
}

func (p fixedPair[A, B]) Encode(dst []byte, v Pair[A, B]) {
	w := p.a.Width()
	p.a.Encode(dst[:w], v.First)
	p.b.Encode(dst[w:], v.Rest)
}

func (p fixedPair[A, B]) Decode(b []byte) Pair[A, B] {
	w := p.a.Width()
	return Pair[A, B]{First: p.a.Decode(b[:w]), Rest: p.b.Decode(b[w:])}
}
