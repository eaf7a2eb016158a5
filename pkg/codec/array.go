package codec

import "github.com/rawbytedev/flatvec"

// Array encodes exactly n values of a fixed encoding. Decode copies into a
// fresh slice; Encode panics if the value does not hold n elements.
func Array[T any](inner flatvec.Fixed[T], n int) flatvec.Fixed[[]T] {
	if n <= 0 {
		panic("codec: array length must be positive")
	}
	return array[T]{inner: inner, n: n}
}

type array[T any] struct {
	inner flatvec.Fixed[T]
	n     int
}

func (a array[T]) Width() int { return a.n * a.inner.Width() }

func (a array[T]) ValidateChunk(b []byte) error {
	return flatvec.ValidateFixed(a.inner, b)
}

func (a array[T]) Encode(dst []byte, v []T) {
	if len(v) != a.n {
		panic("codec: array length mismatch")
	}
	w := a.inner.Width()
	for i, x := range v {
		a.inner.Encode(dst[i*w:(i+1)*w], x)
	}
}

func (a array[T]) Decode(b []byte) []T {
	w := a.inner.Width()
	out := make([]T, a.n)
	for i := range out {
		out[i] = a.inner.Decode(b[i*w : (i+1)*w])
	}
	return out
}
