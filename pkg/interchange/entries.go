// Package interchange converts flatvec containers to and from ordered,
// human-readable documents (YAML, JSON, CBOR). Entries are kept as lists
// rather than maps so that key order survives every format.
package interchange

import (
	"github.com/rawbytedev/flatvec/pkg/sortmap"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Entry is one key/value pair of a map.
type Entry[K, V any] struct {
	Key   K `yaml:"key" json:"key" cbor:"key"`
	Value V `yaml:"value" json:"value" cbor:"value"`
}

// Group is one outer key of a two-level map and its entries.
type Group[K0, K1, V any] struct {
	Key0    K0             `yaml:"key0" json:"key0" cbor:"key0"`
	Entries []Entry[K1, V] `yaml:"entries" json:"entries" cbor:"entries"`
}

// Values copies the elements of l in order.
func Values[T any](l vec.List[T]) []T {
	out := make([]T, 0, l.Len())
	for _, v := range l.All() {
		out = append(out, v)
	}
	return out
}

// Pairs lists the entries of m in key order.
func Pairs[K, V any](m sortmap.Map[K, V]) []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.Len())
	for k, v := range m.All() {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out
}

// Nested lists the groups of m in key order.
func Nested[K0, K1, V any](m sortmap.Map2D[K0, K1, V]) []Group[K0, K1, V] {
	out := make([]Group[K0, K1, V], 0, m.Len0())
	for c := range m.Cursors() {
		g := Group[K0, K1, V]{Key0: c.Key0(), Entries: make([]Entry[K1, V], 0, c.Len())}
		for k1, v := range c.All() {
			g.Entries = append(g.Entries, Entry[K1, V]{Key: k1, Value: v})
		}
		out = append(out, g)
	}
	return out
}

// FillMap adds entries to b. Later entries overwrite earlier ones.
func FillMap[K, V any](b *sortmap.Builder[K, V], entries []Entry[K, V]) error {
	keys, values := make([]K, len(entries)), make([]V, len(entries))
	for i, e := range entries {
		keys[i], values[i] = e.Key, e.Value
	}
	return b.Extend(keys, values)
}

// FillMap2D adds groups to b. Later entries overwrite earlier ones.
func FillMap2D[K0, K1, V any](b *sortmap.Builder2D[K0, K1, V], groups []Group[K0, K1, V]) error {
	var (
		keys0  []K0
		keys1  []K1
		values []V
	)
	for _, g := range groups {
		for _, e := range g.Entries {
			keys0 = append(keys0, g.Key0)
			keys1 = append(keys1, e.Key)
			values = append(values, e.Value)
		}
	}
	return b.Extend(keys0, keys1, values)
}
