package vec

import (
	"iter"

	"github.com/rawbytedev/flatvec"
)

// FixedVec is a borrowed view over fixed-width elements stored back to back.
// The length is implied by the buffer size.
type FixedVec[T any] struct {
	codec flatvec.Fixed[T]
	width int
	data  []byte
}

// ParseFixed validates b as a FixedVec of c.
func ParseFixed[T any](c flatvec.Fixed[T], b []byte) (FixedVec[T], error) {
	if err := flatvec.ValidateFixed(c, b); err != nil {
		return FixedVec[T]{}, err
	}
	return FixedVec[T]{codec: c, width: c.Width(), data: b}, nil
}

// MustParseFixed is like ParseFixed but panics on invalid input.
func MustParseFixed[T any](c flatvec.Fixed[T], b []byte) FixedVec[T] {
	v, err := ParseFixed(c, b)
	if err != nil {
		panic("vec: MustParseFixed: " + err.Error())
	}
	return v
}

// EncodeFixed serializes items back to back.
func EncodeFixed[T any](c flatvec.Fixed[T], items []T) []byte {
	w := c.Width()
	out := make([]byte, w*len(items))
	for i, it := range items {
		c.Encode(out[i*w:(i+1)*w], it)
	}
	return out
}

func (v FixedVec[T]) Len() int {
	if v.width == 0 {
		return 0
	}
	return len(v.data) / v.width
}

// At decodes element i. It panics if i is out of range.
func (v FixedVec[T]) At(i int) T {
	return v.codec.Decode(v.ElementBytes(i))
}

func (v FixedVec[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero, false
	}
	return v.At(i), true
}

func (v FixedVec[T]) ElementBytes(i int) []byte {
	checkIndex(i, v.Len())
	s, e := i*v.width, (i+1)*v.width
	return v.data[s:e:e]
}

func (v FixedVec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range v.Len() {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

func (v FixedVec[T]) BinarySearchBy(probe func(T) int) (int, bool) {
	return search(0, v.Len(), v.At, probe)
}

// BinarySearchInRange searches elements [lo, hi). The returned index is
// relative to lo.
func (v FixedVec[T]) BinarySearchInRange(probe func(T) int, lo, hi int) (int, bool) {
	checkRange(lo, hi, v.Len())
	i, ok := search(lo, hi, v.At, probe)
	return i - lo, ok
}

func (v FixedVec[T]) Bytes() []byte { return v.data }
