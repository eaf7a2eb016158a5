package sortmap

import (
	"fmt"
	"iter"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Map is a borrowed, read-only sorted map.
type Map[K, V any] struct {
	layout Layout[K, V]
	keys   vec.List[K]
	values vec.List[V]
	raw    []byte
}

// Parse validates b as a Map stored with layout l.
func Parse[K, V any](l Layout[K, V], b []byte) (Map[K, V], error) {
	r, err := splitRegions(b, 2)
	if err != nil {
		return Map[K, V]{}, err
	}
	keys, err := l.Keys.Parse(r[0])
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("keys: %w", err)
	}
	values, err := l.Values.Parse(r[1])
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("values: %w", err)
	}
	if keys.Len() != values.Len() {
		return Map[K, V]{}, fmt.Errorf("%w: %d keys, %d values", flatvec.ErrLengthMismatch, keys.Len(), values.Len())
	}
	err = verifyOrder(l.Strict, func() error {
		return checkAscending(keys, l.Compare, 0, keys.Len())
	})
	if err != nil {
		return Map[K, V]{}, err
	}
	return Map[K, V]{layout: l, keys: keys, values: values, raw: b}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse[K, V any](l Layout[K, V], b []byte) Map[K, V] {
	m, err := Parse(l, b)
	if err != nil {
		panic("sortmap: MustParse: " + err.Error())
	}
	return m
}

func (m Map[K, V]) Len() int {
	if m.keys == nil {
		return 0
	}
	return m.keys.Len()
}

// Index returns the position of k, or its insertion point and false.
func (m Map[K, V]) Index(k K) (int, bool) {
	if m.keys == nil {
		return 0, false
	}
	return m.keys.BinarySearchBy(func(x K) int { return m.layout.Compare(x, k) })
}

func (m Map[K, V]) Get(k K) (V, bool) {
	i, ok := m.Index(k)
	if !ok {
		var zero V
		return zero, false
	}
	return m.values.At(i), true
}

// GetBy looks up the key for which probe returns 0. probe must be
// consistent with the key order.
func (m Map[K, V]) GetBy(probe func(K) int) (V, bool) {
	var zero V
	if m.keys == nil {
		return zero, false
	}
	i, ok := m.keys.BinarySearchBy(probe)
	if !ok {
		return zero, false
	}
	return m.values.At(i), true
}

func (m Map[K, V]) ContainsKey(k K) bool {
	_, ok := m.Index(k)
	return ok
}

func (m Map[K, V]) Keys() vec.List[K]   { return m.keys }
func (m Map[K, V]) Values() vec.List[V] { return m.values }

// All iterates the entries in key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := range m.Len() {
			if !yield(m.keys.At(i), m.values.At(i)) {
				return
			}
		}
	}
}

// Bytes returns the buffer the map was parsed from.
func (m Map[K, V]) Bytes() []byte { return m.raw }
