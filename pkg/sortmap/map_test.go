package sortmap

import (
	"errors"
	"iter"
	"maps"
	"slices"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/internal/common"
	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

func numberLayout() Layout[uint32, string] {
	return Ordered(vec.FixedOf(codec.Uint32), vec.VarOf(codec.String, vec.Index16))
}

func TestMapTryAppend(t *testing.T) {
	b := NewBuilder(numberLayout())
	require.True(t, b.TryAppend(1, "uno"))
	require.True(t, b.TryAppend(2, "dos"))
	require.True(t, b.TryAppend(3, "tres"))
	require.False(t, b.TryAppend(2, "dup"))
	require.False(t, b.TryAppend(3, "dup"))
	require.Equal(t, 3, b.Len())

	m, err := b.Map()
	require.NoError(t, err)
	v, ok := m.Get(2)
	require.True(t, ok)
	require.Equal(t, "dos", v)
	_, ok = m.Get(4)
	require.False(t, ok)
	require.True(t, m.ContainsKey(1))

	v, ok = m.GetBy(func(k uint32) int { return int(k) - 3 })
	require.True(t, ok)
	require.Equal(t, "tres", v)
}

func TestMapTryAppendMonotonic(t *testing.T) {
	condition := func(keys []uint16) bool {
		b := NewBuilder(Ordered(vec.FixedOf(codec.Uint16), vec.FixedOf(codec.Bool)))
		var last uint16
		have := false
		for _, k := range keys {
			want := !have || k > last
			if b.TryAppend(k, true) != want {
				return false
			}
			if want {
				last, have = k, true
			}
		}
		m, err := b.Map()
		require.NoError(t, err)
		prev := -1
		for k := range m.All() {
			if int(k) <= prev {
				return false
			}
			prev = int(k)
		}
		return true
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestMapInsertRemoveMatchesReference(t *testing.T) {
	type op struct {
		Key    uint8
		Value  uint32
		Delete bool
	}
	condition := func(ops []op) bool {
		ref := map[uint8]uint32{}
		b := NewBuilder(Ordered(vec.FixedOf(codec.Uint8), vec.FixedOf(codec.Uint32)))
		for _, o := range ops {
			prev, had := ref[o.Key]
			if o.Delete {
				got, ok := b.Remove(o.Key)
				if ok != had || got != prev {
					return false
				}
				delete(ref, o.Key)
				continue
			}
			got, ok := b.Insert(o.Key, o.Value)
			if ok != had || got != prev {
				return false
			}
			ref[o.Key] = o.Value
		}
		m, err := b.Map()
		require.NoError(t, err)
		keys := slices.Sorted(maps.Keys(ref))
		if m.Len() != len(keys) {
			return false
		}
		for i, k := range keys {
			if m.Keys().At(i) != k {
				return false
			}
			if v, ok := m.Get(k); !ok || v != ref[k] {
				return false
			}
		}
		return true
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestMapStringKeys(t *testing.T) {
	l := Ordered(vec.VarOf(codec.String, vec.Index16), vec.VarOf(codec.OptionalVar(codec.String), vec.Index16))
	b := NewBuilder(l)
	b.Insert("pear", codec.Some("green"))
	b.Insert("apple", codec.Some("red"))
	b.Insert("fig", codec.None[string]())
	old, ok := b.Insert("apple", codec.Some("yellow"))
	require.True(t, ok)
	require.Equal(t, "red", old.Value)

	m, err := b.Map()
	require.NoError(t, err)
	require.Equal(t, []string{"apple", "fig", "pear"}, slices.Collect(keysOf(m)))
	v, ok := m.Get("fig")
	require.True(t, ok)
	require.False(t, v.Present)

	own := Own(m)
	_, ok = own.Remove("fig")
	require.True(t, ok)
	require.Equal(t, 3, m.Len())
	require.Equal(t, 2, own.Len())
}

func keysOf[K, V any](m Map[K, V]) iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

func TestMapEmpty(t *testing.T) {
	m, err := Parse(numberLayout(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())
	_, ok := m.Get(1)
	require.False(t, ok)

	b, err := NewBuilder(numberLayout()).Encode()
	require.NoError(t, err)
	m, err = Parse(numberLayout(), b)
	require.NoError(t, err)
	require.Equal(t, 0, m.Len())

	var zero Map[uint32, string]
	_, ok = zero.Get(1)
	require.False(t, ok)
}

func TestCollect(t *testing.T) {
	b, err := Collect(numberLayout(), []uint32{5, 1, 3, 1}, []string{"e", "a", "c", "A"})
	require.NoError(t, err)
	m, err := b.Map()
	require.NoError(t, err)
	require.Equal(t, 3, m.Len())
	v, _ := m.Get(1)
	require.Equal(t, "A", v)

	_, err = Collect(numberLayout(), []uint32{1}, nil)
	require.ErrorIs(t, err, flatvec.ErrLengthMismatch)
}

func TestExtendKeepsExistingEntries(t *testing.T) {
	b := NewBuilder(numberLayout())
	b.Insert(2, "two")
	b.Insert(8, "eight")
	require.NoError(t, b.Extend([]uint32{9, 10}, []string{"nine", "ten"}))
	require.Equal(t, 4, b.Len())

	require.NoError(t, b.Extend([]uint32{11, 1, 8}, []string{"eleven", "one", "EIGHT"}))
	m, err := b.Map()
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 8, 9, 10, 11}, slices.Collect(keysOf(m)))
	v, _ := m.Get(8)
	require.Equal(t, "EIGHT", v)
}

func encodeParts(t *testing.T, keys []uint32, values []string) []byte {
	t.Helper()
	vb, err := vec.EncodeVar(codec.String, vec.Index16, values)
	require.NoError(t, err)
	b, err := joinRegions(vec.EncodeFixed(codec.Uint32, keys), vb)
	require.NoError(t, err)
	return b
}

func TestParseRejects(t *testing.T) {
	_, err := Parse(numberLayout(), encodeParts(t, []uint32{1, 2}, []string{"x"}))
	require.ErrorIs(t, err, flatvec.ErrLengthMismatch)

	three, err := joinRegions(nil, nil, nil)
	require.NoError(t, err)
	_, err = Parse(numberLayout(), three)
	require.ErrorIs(t, err, flatvec.ErrLengthMismatch)

	bad, err := joinRegions([]byte{1, 2, 3}, nil)
	require.NoError(t, err)
	_, err = Parse(numberLayout(), bad)
	require.ErrorIs(t, err, flatvec.ErrLengthMismatch)

	_, err = Parse(numberLayout(), []byte{0xff})
	require.Error(t, err)
}

func TestStrictOrdering(t *testing.T) {
	unsorted := encodeParts(t, []uint32{3, 1, 2}, []string{"c", "a", "b"})
	dup := encodeParts(t, []uint32{1, 1}, []string{"a", "b"})

	strict := numberLayout()
	strict.Strict = true
	_, err := Parse(strict, unsorted)
	require.ErrorIs(t, err, flatvec.ErrUnsorted)
	var inner *flatvec.InnerError
	require.True(t, errors.As(err, &inner))
	require.Equal(t, 1, inner.Index)
	_, err = Parse(strict, dup)
	require.ErrorIs(t, err, flatvec.ErrUnsorted)

	if common.Debug {
		require.Panics(t, func() { _, _ = Parse(numberLayout(), unsorted) })
		return
	}
	// trusted parse: wrong answers are allowed, panics are not
	m, err := Parse(numberLayout(), unsorted)
	require.NoError(t, err)
	require.NotPanics(t, func() {
		for _, k := range []uint32{0, 1, 2, 3, 4} {
			m.Get(k)
		}
	})
}

func TestMustParse(t *testing.T) {
	b, err := NewBuilder(numberLayout()).Encode()
	require.NoError(t, err)
	require.NotPanics(t, func() { MustParse(numberLayout(), b) })
	require.Panics(t, func() { MustParse(numberLayout(), []byte{1}) })
}

func FuzzParseMap(f *testing.F) {
	b := NewBuilder(numberLayout())
	b.TryAppend(1, "one")
	b.TryAppend(7, "seven")
	seed, _ := b.Encode()
	f.Add(seed)
	f.Add([]byte{})
	l := numberLayout()
	l.Strict = true
	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := Parse(l, data)
		if err != nil {
			return
		}
		for k, v := range m.All() {
			got, ok := m.Get(k)
			require.True(t, ok)
			require.Equal(t, v, got)
		}
	})
}
