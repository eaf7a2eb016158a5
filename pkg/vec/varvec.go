package vec

import (
	"fmt"
	"iter"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/internal/common"
)

// VarVec is a borrowed view over a vector of variable-size elements:
//
//	[count][offset 1 .. offset count-1][data]
//
// count and offsets are little-endian integers of the Format width. Offsets
// are relative to the start of data; element 0 starts at 0 and the last
// element ends at the end of the buffer. An empty vector is zero bytes.
type VarVec[T any] struct {
	codec  flatvec.Variable[T]
	format Format
	n      int
	index  []byte
	data   []byte
	raw    []byte
}

// ParseVar validates b as a VarVec of c in format f. It never panics on
// malformed input and every accessor is safe afterwards.
func ParseVar[T any](c flatvec.Variable[T], f Format, b []byte) (VarVec[T], error) {
	w := f.Width()
	if len(b) == 0 {
		return VarVec[T]{codec: c, format: f}, nil
	}
	if len(b) < w {
		return VarVec[T]{}, fmt.Errorf("%w: %d bytes cannot hold a %s count", flatvec.ErrLengthMismatch, len(b), f)
	}
	n := common.ReadUint(b, w)
	if n == 0 {
		return VarVec[T]{}, fmt.Errorf("%w: zero count followed by %d bytes", flatvec.ErrLengthMismatch, len(b)-w)
	}
	if n*w > len(b) {
		return VarVec[T]{}, fmt.Errorf("%w: index of %d entries exceeds %d bytes", flatvec.ErrLengthMismatch, n, len(b))
	}
	v := decodeVar(c, f, b)
	start := 0
	for i := range n {
		end := v.end(i)
		if end < start {
			return VarVec[T]{}, flatvec.At(i, fmt.Errorf("%w: end %d before start %d", flatvec.ErrOffsetOutOfOrder, end, start))
		}
		if end > len(v.data) {
			return VarVec[T]{}, flatvec.At(i, fmt.Errorf("%w: end %d past %d data bytes", flatvec.ErrOffsetOutOfBounds, end, len(v.data)))
		}
		if err := c.Validate(v.data[start:end]); err != nil {
			return VarVec[T]{}, flatvec.At(i, err)
		}
		start = end
	}
	return v, nil
}

// MustParseVar is like ParseVar but panics on invalid input. It is meant for
// buffers compiled into the program.
func MustParseVar[T any](c flatvec.Variable[T], f Format, b []byte) VarVec[T] {
	v, err := ParseVar(c, f, b)
	if err != nil {
		panic("vec: MustParseVar: " + err.Error())
	}
	return v
}

// decodeVar slices an already validated buffer.
func decodeVar[T any](c flatvec.Variable[T], f Format, b []byte) VarVec[T] {
	v := VarVec[T]{codec: c, format: f, raw: b}
	if len(b) == 0 {
		return v
	}
	w := f.Width()
	v.n = common.ReadUint(b, w)
	v.index = b[w : v.n*w]
	v.data = b[v.n*w:]
	return v
}

func (v VarVec[T]) end(i int) int {
	if i == v.n-1 {
		return len(v.data)
	}
	w := int(v.format)
	return common.ReadUint(v.index[i*w:], w)
}

func (v VarVec[T]) span(i int) (int, int) {
	checkIndex(i, v.n)
	start := 0
	if i > 0 {
		start = v.end(i - 1)
	}
	return start, v.end(i)
}

func (v VarVec[T]) Len() int { return v.n }

// At decodes element i. It panics if i is out of range.
func (v VarVec[T]) At(i int) T {
	return v.codec.Decode(v.ElementBytes(i))
}

// Get decodes element i, reporting false if i is out of range.
func (v VarVec[T]) Get(i int) (T, bool) {
	if i < 0 || i >= v.n {
		var zero T
		return zero, false
	}
	return v.At(i), true
}

// ElementBytes returns the encoded bytes of element i.
func (v VarVec[T]) ElementBytes(i int) []byte {
	s, e := v.span(i)
	return v.data[s:e:e]
}

func (v VarVec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		start := 0
		for i := range v.n {
			end := v.end(i)
			if !yield(i, v.codec.Decode(v.data[start:end:end])) {
				return
			}
			start = end
		}
	}
}

// BinarySearchBy searches a vector sorted according to probe, which reports
// how an element orders relative to the target. It returns the index of the
// match, or the insertion point and false.
func (v VarVec[T]) BinarySearchBy(probe func(T) int) (int, bool) {
	return search(0, v.n, v.At, probe)
}

// BinarySearchInRange searches elements [lo, hi). The returned index is
// relative to lo.
func (v VarVec[T]) BinarySearchInRange(probe func(T) int, lo, hi int) (int, bool) {
	checkRange(lo, hi, v.n)
	i, ok := search(lo, hi, v.At, probe)
	return i - lo, ok
}

// Bytes returns the underlying buffer.
func (v VarVec[T]) Bytes() []byte { return v.raw }

func (v VarVec[T]) Format() Format { return v.format }

// EncodeVar serializes items in format f. It fails with ErrTooLarge when
// the count or an offset does not fit the format.
func EncodeVar[T any](c flatvec.Variable[T], f Format, items []T) ([]byte, error) {
	ends := make([]int, len(items))
	total := 0
	for i, it := range items {
		total += c.EncodedLen(it)
		ends[i] = total
	}
	hdr, err := headerLen(f, ends)
	if err != nil {
		return nil, err
	}
	out := make([]byte, hdr+total)
	putHeader(out, f, ends)
	start := hdr
	for i, it := range items {
		c.Encode(out[start:hdr+ends[i]], it)
		start = hdr + ends[i]
	}
	return out, nil
}

// headerLen checks that the vector with the given element ends fits f and
// returns the size of count plus offsets.
func headerLen(f Format, ends []int) (int, error) {
	n := len(ends)
	if n == 0 {
		return 0, nil
	}
	limit := f.Max()
	if n > limit {
		return 0, fmt.Errorf("%w: %d elements in %s", flatvec.ErrTooLarge, n, f)
	}
	if n > 1 && ends[n-2] > limit {
		return 0, fmt.Errorf("%w: offset %d in %s", flatvec.ErrTooLarge, ends[n-2], f)
	}
	return n * f.Width(), nil
}

func putHeader(dst []byte, f Format, ends []int) {
	n := len(ends)
	if n == 0 {
		return
	}
	w := f.Width()
	common.PutUint(dst, w, n)
	for i, e := range ends[:n-1] {
		common.PutUint(dst[(i+1)*w:], w, e)
	}
}
