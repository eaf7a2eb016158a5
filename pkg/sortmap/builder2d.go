package sortmap

import (
	"fmt"
	"math"
	"slices"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Builder2D is an owned two-level sorted map. It is not safe for
// concurrent use.
type Builder2D[K0, K1, V any] struct {
	layout Layout2D[K0, K1, V]
	keys0  vec.Mutable[K0]
	joiner []int
	keys1  vec.Mutable[K1]
	values vec.Mutable[V]
}

func NewBuilder2D[K0, K1, V any](l Layout2D[K0, K1, V]) *Builder2D[K0, K1, V] {
	return &Builder2D[K0, K1, V]{
		layout: l,
		keys0:  l.Keys0.New(),
		joiner: []int{0},
		keys1:  l.Keys1.New(),
		values: l.Values.New(),
	}
}

// Own2D copies a borrowed map into a builder.
func Own2D[K0, K1, V any](m Map2D[K0, K1, V]) *Builder2D[K0, K1, V] {
	if m.keys0 == nil {
		return NewBuilder2D(m.layout)
	}
	joiner := make([]int, m.joiner.Len())
	for i, j := range m.joiner.All() {
		joiner[i] = int(j)
	}
	return &Builder2D[K0, K1, V]{
		layout: m.layout,
		keys0:  m.layout.Keys0.Own(m.keys0),
		joiner: joiner,
		keys1:  m.layout.Keys1.Own(m.keys1),
		values: m.layout.Values.Own(m.values),
	}
}

// Len returns the total number of entries.
func (b *Builder2D[K0, K1, V]) Len() int { return b.keys1.Len() }

// Len0 returns the number of outer keys.
func (b *Builder2D[K0, K1, V]) Len0() int { return b.keys0.Len() }

func (b *Builder2D[K0, K1, V]) find0(k0 K0) (int, bool) {
	return b.keys0.BinarySearchBy(func(x K0) int { return b.layout.Compare0(x, k0) })
}

// find1 returns the absolute position of k1 within bucket i.
func (b *Builder2D[K0, K1, V]) find1(i int, k1 K1) (int, bool) {
	s, e := b.joiner[i], b.joiner[i+1]
	j, ok := b.keys1.BinarySearchInRange(func(x K1) int { return b.layout.Compare1(x, k1) }, s, e)
	return s + j, ok
}

func (b *Builder2D[K0, K1, V]) Get2D(k0 K0, k1 K1) (V, bool) {
	var zero V
	i, ok := b.find0(k0)
	if !ok {
		return zero, false
	}
	j, ok := b.find1(i, k1)
	if !ok {
		return zero, false
	}
	return b.values.At(j), true
}

// shift adds delta to the joiner entries after bucket i.
func (b *Builder2D[K0, K1, V]) shift(i, delta int) {
	for n := i + 1; n < len(b.joiner); n++ {
		b.joiner[n] += delta
	}
}

// Insert sets (k0, k1) to v, returning the previous value if present.
func (b *Builder2D[K0, K1, V]) Insert(k0 K0, k1 K1, v V) (V, bool) {
	i, ok := b.find0(k0)
	if !ok {
		b.keys0.Insert(i, k0)
		b.joiner = slices.Insert(b.joiner, i+1, b.joiner[i])
	}
	j, ok := b.find1(i, k1)
	if ok {
		return b.values.Replace(j, v), true
	}
	b.keys1.Insert(j, k1)
	b.values.Insert(j, v)
	b.shift(i, 1)
	var zero V
	return zero, false
}

// Remove deletes (k0, k1). An outer key left without entries is removed too.
func (b *Builder2D[K0, K1, V]) Remove(k0 K0, k1 K1) (V, bool) {
	var zero V
	i, ok := b.find0(k0)
	if !ok {
		return zero, false
	}
	j, ok := b.find1(i, k1)
	if !ok {
		return zero, false
	}
	b.keys1.Remove(j)
	old := b.values.Remove(j)
	b.shift(i, -1)
	if b.joiner[i] == b.joiner[i+1] {
		b.keys0.Remove(i)
		b.joiner = slices.Delete(b.joiner, i+1, i+2)
	}
	return old, true
}

// TryAppend adds (k0, k1) only if it sorts after every pair already present.
func (b *Builder2D[K0, K1, V]) TryAppend(k0 K0, k1 K1, v V) bool {
	n0 := b.keys0.Len()
	if n0 > 0 {
		switch c := b.layout.Compare0(k0, b.keys0.At(n0-1)); {
		case c < 0:
			return false
		case c == 0:
			if b.layout.Compare1(k1, b.keys1.At(b.keys1.Len()-1)) <= 0 {
				return false
			}
			b.keys1.Push(k1)
			b.values.Push(v)
			b.joiner[n0]++
			return true
		}
	}
	b.keys0.Push(k0)
	b.keys1.Push(k1)
	b.values.Push(v)
	b.joiner = append(b.joiner, b.joiner[n0]+1)
	return true
}

// Extend adds parallel slices of entries to b, appending while the input
// stays sorted and rebuilding once by sorting otherwise. Later entries
// overwrite earlier ones.
func (b *Builder2D[K0, K1, V]) Extend(keys0 []K0, keys1 []K1, values []V) error {
	if len(keys0) != len(keys1) || len(keys1) != len(values) {
		return fmt.Errorf("%w: %d keys0, %d keys1, %d values", flatvec.ErrLengthMismatch, len(keys0), len(keys1), len(values))
	}
	for i := range keys0 {
		if !b.TryAppend(keys0[i], keys1[i], values[i]) {
			b.rebuild(keys0[i:], keys1[i:], values[i:])
			return nil
		}
	}
	return nil
}

func (b *Builder2D[K0, K1, V]) rebuild(keys0 []K0, keys1 []K1, values []V) {
	n := b.Len() + len(keys0)
	all0, all1, allValues := make([]K0, 0, n), make([]K1, 0, n), make([]V, 0, n)
	for i := range b.Len0() {
		k0 := b.keys0.At(i)
		for j := b.joiner[i]; j < b.joiner[i+1]; j++ {
			all0 = append(all0, k0)
			all1 = append(all1, b.keys1.At(j))
			allValues = append(allValues, b.values.At(j))
		}
	}
	all0 = append(all0, keys0...)
	all1 = append(all1, keys1...)
	allValues = append(allValues, values...)

	compare := func(x, y int) int {
		if c := b.layout.Compare0(all0[x], all0[y]); c != 0 {
			return c
		}
		return b.layout.Compare1(all1[x], all1[y])
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, compare)
	out := NewBuilder2D(b.layout)
	for j, i := range order {
		if j+1 < len(order) && compare(i, order[j+1]) == 0 {
			continue
		}
		out.TryAppend(all0[i], all1[i], allValues[i])
	}
	*b = *out
}

// Encode serializes the map.
func (b *Builder2D[K0, K1, V]) Encode() ([]byte, error) {
	if n := b.keys1.Len(); uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries", flatvec.ErrTooLarge, n)
	}
	joiner := make([]uint32, len(b.joiner))
	for i, j := range b.joiner {
		joiner[i] = uint32(j)
	}
	k0, err := b.keys0.Encode()
	if err != nil {
		return nil, fmt.Errorf("keys0: %w", err)
	}
	k1, err := b.keys1.Encode()
	if err != nil {
		return nil, fmt.Errorf("keys1: %w", err)
	}
	vals, err := b.values.Encode()
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return joinRegions(k0, vec.EncodeFixed(codec.Uint32, joiner), k1, vals)
}

// Map2D encodes the builder and parses the result.
func (b *Builder2D[K0, K1, V]) Map2D() (Map2D[K0, K1, V], error) {
	buf, err := b.Encode()
	if err != nil {
		return Map2D[K0, K1, V]{}, err
	}
	return Parse2D(b.layout, buf)
}
