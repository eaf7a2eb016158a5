package sortmap

import (
	"fmt"
	"iter"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Map2D is a borrowed two-level sorted map from (K0, K1) to V. The entries
// for outer key i are keys1[joiner[i]:joiner[i+1]], aligned with values.
type Map2D[K0, K1, V any] struct {
	layout Layout2D[K0, K1, V]
	keys0  vec.List[K0]
	joiner vec.FixedVec[uint32]
	keys1  vec.List[K1]
	values vec.List[V]
	raw    []byte
}

// Parse2D validates b as a Map2D stored with layout l. Regions are
// [keys0, joiner, keys1, values].
func Parse2D[K0, K1, V any](l Layout2D[K0, K1, V], b []byte) (Map2D[K0, K1, V], error) {
	var m Map2D[K0, K1, V]
	r, err := splitRegions(b, 4)
	if err != nil {
		return m, err
	}
	keys0, err := l.Keys0.Parse(r[0])
	if err != nil {
		return m, fmt.Errorf("keys0: %w", err)
	}
	keys1, err := l.Keys1.Parse(r[2])
	if err != nil {
		return m, fmt.Errorf("keys1: %w", err)
	}
	values, err := l.Values.Parse(r[3])
	if err != nil {
		return m, fmt.Errorf("values: %w", err)
	}
	if keys1.Len() != values.Len() {
		return m, fmt.Errorf("%w: %d keys1, %d values", flatvec.ErrLengthMismatch, keys1.Len(), values.Len())
	}
	var joiner vec.FixedVec[uint32]
	if len(b) == 0 {
		joiner = vec.MustParseFixed(codec.Uint32, make([]byte, 4))
	} else if joiner, err = vec.ParseFixed(codec.Uint32, r[1]); err != nil {
		return m, fmt.Errorf("joiner: %w", err)
	}
	if err := checkJoiner(joiner, keys0.Len(), keys1.Len()); err != nil {
		return m, fmt.Errorf("joiner: %w", err)
	}
	m = Map2D[K0, K1, V]{layout: l, keys0: keys0, joiner: joiner, keys1: keys1, values: values, raw: b}
	if err := verifyOrder(l.Strict, m.checkOrder); err != nil {
		return Map2D[K0, K1, V]{}, err
	}
	return m, nil
}

func checkJoiner(j vec.FixedVec[uint32], n0, n1 int) error {
	if j.Len() != n0+1 {
		return fmt.Errorf("%w: %d entries for %d outer keys", flatvec.ErrLengthMismatch, j.Len(), n0)
	}
	if first := j.At(0); first != 0 {
		return flatvec.At(0, fmt.Errorf("%w: first entry %d", flatvec.ErrOffsetOutOfBounds, first))
	}
	for i := 1; i < j.Len(); i++ {
		if j.At(i) < j.At(i-1) {
			return flatvec.At(i, flatvec.ErrOffsetOutOfOrder)
		}
	}
	if last := int(j.At(n0)); last != n1 {
		return flatvec.At(n0, fmt.Errorf("%w: last entry %d, %d inner keys", flatvec.ErrOffsetOutOfBounds, last, n1))
	}
	return nil
}

// checkOrder requires ascending outer keys and non-empty, ascending buckets.
func (m Map2D[K0, K1, V]) checkOrder() error {
	if err := checkAscending(m.keys0, m.layout.Compare0, 0, m.keys0.Len()); err != nil {
		return fmt.Errorf("keys0: %w", err)
	}
	for i := range m.keys0.Len() {
		s, e := m.bucket(i)
		if s == e {
			return flatvec.At(i, fmt.Errorf("%w: empty bucket", flatvec.ErrUnsorted))
		}
		if err := checkAscending(m.keys1, m.layout.Compare1, s, e); err != nil {
			return fmt.Errorf("keys1: %w", err)
		}
	}
	return nil
}

// MustParse2D is like Parse2D but panics on invalid input.
func MustParse2D[K0, K1, V any](l Layout2D[K0, K1, V], b []byte) Map2D[K0, K1, V] {
	m, err := Parse2D(l, b)
	if err != nil {
		panic("sortmap: MustParse2D: " + err.Error())
	}
	return m
}

func (m Map2D[K0, K1, V]) bucket(i int) (int, int) {
	return int(m.joiner.At(i)), int(m.joiner.At(i + 1))
}

// Len returns the total number of entries.
func (m Map2D[K0, K1, V]) Len() int {
	if m.keys1 == nil {
		return 0
	}
	return m.keys1.Len()
}

// Len0 returns the number of outer keys.
func (m Map2D[K0, K1, V]) Len0() int {
	if m.keys0 == nil {
		return 0
	}
	return m.keys0.Len()
}

func (m Map2D[K0, K1, V]) cursor(i int) Cursor[K0, K1, V] {
	s, e := m.bucket(i)
	return Cursor[K0, K1, V]{
		key0:     m.keys0.At(i),
		keys1:    m.keys1,
		values:   m.values,
		compare1: m.layout.Compare1,
		start:    s,
		end:      e,
	}
}

// Get0 resolves the outer key k0 to a cursor over its entries.
func (m Map2D[K0, K1, V]) Get0(k0 K0) (Cursor[K0, K1, V], bool) {
	return m.Get0By(func(x K0) int { return m.layout.Compare0(x, k0) })
}

// Get0By resolves the outer key for which probe returns 0.
func (m Map2D[K0, K1, V]) Get0By(probe func(K0) int) (Cursor[K0, K1, V], bool) {
	if m.Len0() == 0 {
		return Cursor[K0, K1, V]{}, false
	}
	i, ok := m.keys0.BinarySearchBy(probe)
	if !ok {
		return Cursor[K0, K1, V]{}, false
	}
	return m.cursor(i), true
}

func (m Map2D[K0, K1, V]) ContainsKey0(k0 K0) bool {
	_, ok := m.Get0(k0)
	return ok
}

// Get2D looks up (k0, k1): a search over the outer keys, then a search
// within that key's range.
func (m Map2D[K0, K1, V]) Get2D(k0 K0, k1 K1) (V, bool) {
	c, ok := m.Get0(k0)
	if !ok {
		var zero V
		return zero, false
	}
	return c.Get1(k1)
}

// Cursors iterates the outer keys in order.
func (m Map2D[K0, K1, V]) Cursors() iter.Seq[Cursor[K0, K1, V]] {
	return func(yield func(Cursor[K0, K1, V]) bool) {
		for i := range m.Len0() {
			if !yield(m.cursor(i)) {
				return
			}
		}
	}
}

func (m Map2D[K0, K1, V]) Bytes() []byte { return m.raw }

// Cursor is a resolved outer key and the range of entries it owns.
type Cursor[K0, K1, V any] struct {
	key0       K0
	keys1      vec.List[K1]
	values     vec.List[V]
	compare1   func(a, b K1) int
	start, end int
}

func (c Cursor[K0, K1, V]) Key0() K0 { return c.key0 }
func (c Cursor[K0, K1, V]) Len() int { return c.end - c.start }

// Get1 looks up k1 within the cursor's range.
func (c Cursor[K0, K1, V]) Get1(k1 K1) (V, bool) {
	return c.Get1By(func(x K1) int { return c.compare1(x, k1) })
}

func (c Cursor[K0, K1, V]) Get1By(probe func(K1) int) (V, bool) {
	var zero V
	if c.start == c.end {
		return zero, false
	}
	i, ok := c.keys1.BinarySearchInRange(probe, c.start, c.end)
	if !ok {
		return zero, false
	}
	return c.values.At(c.start + i), true
}

// All iterates the cursor's inner keys and values in order.
func (c Cursor[K0, K1, V]) All() iter.Seq2[K1, V] {
	return func(yield func(K1, V) bool) {
		for i := c.start; i < c.end; i++ {
			if !yield(c.keys1.At(i), c.values.At(i)) {
				return
			}
		}
	}
}
