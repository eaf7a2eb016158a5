package sortmap

import (
	"fmt"
	"iter"
	"slices"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Builder is an owned sorted map. It is not safe for concurrent use.
type Builder[K, V any] struct {
	layout Layout[K, V]
	keys   vec.Mutable[K]
	values vec.Mutable[V]
}

func NewBuilder[K, V any](l Layout[K, V]) *Builder[K, V] {
	return &Builder[K, V]{layout: l, keys: l.Keys.New(), values: l.Values.New()}
}

// Own copies a borrowed map into a builder.
func Own[K, V any](m Map[K, V]) *Builder[K, V] {
	if m.keys == nil {
		return NewBuilder(m.layout)
	}
	return &Builder[K, V]{
		layout: m.layout,
		keys:   m.layout.Keys.Own(m.keys),
		values: m.layout.Values.Own(m.values),
	}
}

// Collect builds a map from parallel slices. Sorted input is appended
// directly; otherwise the entries are sorted and, for duplicate keys, the
// last value wins.
func Collect[K, V any](l Layout[K, V], keys []K, values []V) (*Builder[K, V], error) {
	b := NewBuilder(l)
	if err := b.Extend(keys, values); err != nil {
		return nil, err
	}
	return b, nil
}

// Extend adds parallel slices of entries to b. While the input keeps sorting
// after the last key it is appended; from the first key that does not, the
// builder is rebuilt once by sorting. Later entries overwrite earlier ones.
func (b *Builder[K, V]) Extend(keys []K, values []V) error {
	if len(keys) != len(values) {
		return fmt.Errorf("%w: %d keys, %d values", flatvec.ErrLengthMismatch, len(keys), len(values))
	}
	for i := range keys {
		if !b.TryAppend(keys[i], values[i]) {
			b.rebuild(keys[i:], values[i:])
			return nil
		}
	}
	return nil
}

func (b *Builder[K, V]) rebuild(keys []K, values []V) {
	n := b.Len() + len(keys)
	allKeys, allValues := make([]K, 0, n), make([]V, 0, n)
	for k, v := range b.All() {
		allKeys = append(allKeys, k)
		allValues = append(allValues, v)
	}
	allKeys = append(allKeys, keys...)
	allValues = append(allValues, values...)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int { return b.layout.Compare(allKeys[x], allKeys[y]) })
	out := NewBuilder(b.layout)
	for j, i := range order {
		if j+1 < len(order) && b.layout.Compare(allKeys[i], allKeys[order[j+1]]) == 0 {
			continue
		}
		out.TryAppend(allKeys[i], allValues[i])
	}
	*b = *out
}

func (b *Builder[K, V]) Len() int { return b.keys.Len() }

func (b *Builder[K, V]) find(k K) (int, bool) {
	return b.keys.BinarySearchBy(func(x K) int { return b.layout.Compare(x, k) })
}

func (b *Builder[K, V]) Get(k K) (V, bool) {
	i, ok := b.find(k)
	if !ok {
		var zero V
		return zero, false
	}
	return b.values.At(i), true
}

// TryAppend adds k only if it sorts after every key already present. It
// reports false and leaves the builder untouched otherwise.
func (b *Builder[K, V]) TryAppend(k K, v V) bool {
	if n := b.keys.Len(); n > 0 && b.layout.Compare(k, b.keys.At(n-1)) <= 0 {
		return false
	}
	b.keys.Push(k)
	b.values.Push(v)
	return true
}

// Insert sets k to v, returning the previous value if k was present.
func (b *Builder[K, V]) Insert(k K, v V) (V, bool) {
	i, ok := b.find(k)
	if ok {
		return b.values.Replace(i, v), true
	}
	b.keys.Insert(i, k)
	b.values.Insert(i, v)
	var zero V
	return zero, false
}

// Remove deletes k, returning its value if it was present.
func (b *Builder[K, V]) Remove(k K) (V, bool) {
	i, ok := b.find(k)
	if !ok {
		var zero V
		return zero, false
	}
	b.keys.Remove(i)
	return b.values.Remove(i), true
}

func (b *Builder[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range b.keys.Len() {
			if !yield(b.keys.At(i), b.values.At(i)) {
				return
			}
		}
	}
}

// Encode serializes the map.
func (b *Builder[K, V]) Encode() ([]byte, error) {
	kb, err := b.keys.Encode()
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	vb, err := b.values.Encode()
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return joinRegions(kb, vb)
}

// Map encodes the builder and parses the result.
func (b *Builder[K, V]) Map() (Map[K, V], error) {
	buf, err := b.Encode()
	if err != nil {
		return Map[K, V]{}, err
	}
	return Parse(b.layout, buf)
}
