package vec

import (
	"iter"
	"slices"

	"github.com/rawbytedev/flatvec"
)

// VarOwned is a growable VarVec. Push appends in place; Insert, Replace and
// Remove rebuild into a fresh buffer so values decoded earlier stay valid.
// The format limits are only checked by Encode.
type VarOwned[T any] struct {
	codec  flatvec.Variable[T]
	format Format
	data   []byte
	ends   []int
}

func NewVarOwned[T any](c flatvec.Variable[T], f Format) *VarOwned[T] {
	if !f.Valid() {
		panic("vec: unknown index format " + f.String())
	}
	return &VarOwned[T]{codec: c, format: f}
}

// OwnVar copies a borrowed vector into a builder.
func OwnVar[T any](v VarVec[T]) *VarOwned[T] {
	o := &VarOwned[T]{
		codec:  v.codec,
		format: v.format,
		data:   slices.Clone(v.data),
		ends:   make([]int, v.n),
	}
	for i := range v.n {
		o.ends[i] = v.end(i)
	}
	return o
}

func (o *VarOwned[T]) Len() int { return len(o.ends) }

func (o *VarOwned[T]) span(i int) (int, int) {
	checkIndex(i, len(o.ends))
	start := 0
	if i > 0 {
		start = o.ends[i-1]
	}
	return start, o.ends[i]
}

func (o *VarOwned[T]) ElementBytes(i int) []byte {
	s, e := o.span(i)
	return o.data[s:e:e]
}

func (o *VarOwned[T]) At(i int) T { return o.codec.Decode(o.ElementBytes(i)) }

func (o *VarOwned[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(o.ends) {
		var zero T
		return zero, false
	}
	return o.At(i), true
}

func (o *VarOwned[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range o.ends {
			if !yield(i, o.At(i)) {
				return
			}
		}
	}
}

func (o *VarOwned[T]) BinarySearchBy(probe func(T) int) (int, bool) {
	return search(0, len(o.ends), o.At, probe)
}

func (o *VarOwned[T]) BinarySearchInRange(probe func(T) int, lo, hi int) (int, bool) {
	checkRange(lo, hi, len(o.ends))
	i, ok := search(lo, hi, o.At, probe)
	return i - lo, ok
}

// Push appends v. Bytes already handed out are never overwritten.
func (o *VarOwned[T]) Push(v T) {
	n := o.codec.EncodedLen(v)
	start := len(o.data)
	o.data = slices.Grow(o.data, n)[:start+n]
	o.codec.Encode(o.data[start:], v)
	o.ends = append(o.ends, start+n)
}

// Insert places v at index i, shifting later elements. i may equal Len, in
// which case it appends like Push.
func (o *VarOwned[T]) Insert(i int, v T) {
	checkRange(i, i, len(o.ends))
	if i == len(o.ends) {
		o.Push(v)
		return
	}
	at := 0
	if i > 0 {
		at = o.ends[i-1]
	}
	repl := flatvec.Encode(o.codec, v)
	o.splice(i, at, at, repl)
	o.ends = slices.Insert(o.ends, i, at+len(repl))
}

// Replace overwrites element i and returns the previous value.
func (o *VarOwned[T]) Replace(i int, v T) T {
	old := o.At(i)
	s, e := o.span(i)
	o.splice(i, s, e, flatvec.Encode(o.codec, v))
	return old
}

// Remove deletes element i and returns it.
func (o *VarOwned[T]) Remove(i int) T {
	old := o.At(i)
	s, e := o.span(i)
	o.splice(i, s, e, nil)
	o.ends = slices.Delete(o.ends, i, i+1)
	return old
}

// splice replaces data[s:e] with repl in a new buffer and shifts the ends
// of elements from i on.
func (o *VarOwned[T]) splice(i, s, e int, repl []byte) {
	out := make([]byte, 0, len(o.data)-(e-s)+len(repl))
	out = append(out, o.data[:s]...)
	out = append(out, repl...)
	out = append(out, o.data[e:]...)
	o.data = out
	delta := len(repl) - (e - s)
	for j := i; j < len(o.ends); j++ {
		o.ends[j] += delta
	}
}

// Encode serializes the builder.
func (o *VarOwned[T]) Encode() ([]byte, error) {
	hdr, err := headerLen(o.format, o.ends)
	if err != nil {
		return nil, err
	}
	out := make([]byte, hdr+len(o.data))
	putHeader(out, o.format, o.ends)
	copy(out[hdr:], o.data)
	return out, nil
}

// Vec encodes the builder and parses the result.
func (o *VarOwned[T]) Vec() (VarVec[T], error) {
	b, err := o.Encode()
	if err != nil {
		return VarVec[T]{}, err
	}
	return ParseVar(o.codec, o.format, b)
}

// FixedOwned is a growable FixedVec with the same mutation rules as VarOwned.
type FixedOwned[T any] struct {
	codec flatvec.Fixed[T]
	width int
	data  []byte
}

func NewFixedOwned[T any](c flatvec.Fixed[T]) *FixedOwned[T] {
	return &FixedOwned[T]{codec: c, width: c.Width()}
}

// OwnFixed copies a borrowed vector into a builder.
func OwnFixed[T any](v FixedVec[T]) *FixedOwned[T] {
	return &FixedOwned[T]{codec: v.codec, width: v.width, data: slices.Clone(v.data)}
}

func (o *FixedOwned[T]) view() FixedVec[T] {
	return FixedVec[T]{codec: o.codec, width: o.width, data: o.data}
}

func (o *FixedOwned[T]) Len() int                  { return o.view().Len() }
func (o *FixedOwned[T]) At(i int) T                { return o.view().At(i) }
func (o *FixedOwned[T]) Get(i int) (T, bool)       { return o.view().Get(i) }
func (o *FixedOwned[T]) All() iter.Seq2[int, T]    { return o.view().All() }
func (o *FixedOwned[T]) ElementBytes(i int) []byte { return o.view().ElementBytes(i) }

func (o *FixedOwned[T]) BinarySearchBy(probe func(T) int) (int, bool) {
	return o.view().BinarySearchBy(probe)
}

func (o *FixedOwned[T]) BinarySearchInRange(probe func(T) int, lo, hi int) (int, bool) {
	return o.view().BinarySearchInRange(probe, lo, hi)
}

func (o *FixedOwned[T]) Push(v T) {
	start := len(o.data)
	o.data = slices.Grow(o.data, o.width)[:start+o.width]
	o.codec.Encode(o.data[start:], v)
}

func (o *FixedOwned[T]) Insert(i int, v T) {
	checkRange(i, i, o.Len())
	if i == o.Len() {
		o.Push(v)
		return
	}
	at := i * o.width
	o.data = slices.Concat(o.data[:at], flatvec.EncodeFixed(o.codec, v), o.data[at:])
}

func (o *FixedOwned[T]) Replace(i int, v T) T {
	old := o.At(i)
	at := i * o.width
	o.data = slices.Concat(o.data[:at], flatvec.EncodeFixed(o.codec, v), o.data[at+o.width:])
	return old
}

func (o *FixedOwned[T]) Remove(i int) T {
	old := o.At(i)
	at := i * o.width
	o.data = slices.Concat(o.data[:at], o.data[at+o.width:])
	return old
}

// Encode returns a copy of the element bytes. It never fails.
func (o *FixedOwned[T]) Encode() ([]byte, error) {
	return slices.Clone(o.data), nil
}

func (o *FixedOwned[T]) Vec() (FixedVec[T], error) {
	return ParseFixed(o.codec, slices.Clone(o.data))
}
