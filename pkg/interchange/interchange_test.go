package interchange

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/sortmap"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

var allFormats = []Format{YAML, JSON, CBOR}

func TestFormatParsing(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	require.Equal(t, YAML, f)
	f, err = FormatFromPath("dir/words.cbor")
	require.NoError(t, err)
	require.Equal(t, CBOR, f)
	_, err = FormatFromPath("noext")
	require.Error(t, err)
	_, err = ParseFormat("toml")
	require.Error(t, err)
	_, err = Marshal("toml", 1)
	require.Error(t, err)
}

func TestValuesRoundTrip(t *testing.T) {
	words := []string{"foo", "bar", "lorem ipsum"}
	b, err := vec.EncodeVar(codec.String, vec.Index16, words)
	require.NoError(t, err)
	v := vec.MustParseVar(codec.String, vec.Index16, b)

	for _, f := range allFormats {
		doc, err := Marshal(f, Values[string](v))
		require.NoError(t, err)
		got, err := Decode[[]string](f, doc)
		require.NoError(t, err, f)
		require.Equal(t, words, got, f)
	}
}

func TestPairsKeepOrder(t *testing.T) {
	l := sortmap.Ordered(vec.VarOf(codec.String, vec.Index16), vec.FixedOf(codec.Int32))
	b := sortmap.NewBuilder(l)
	require.NoError(t, FillMap(b, []Entry[string, int32]{{"zeta", 26}, {"alpha", 1}, {"mu", 12}, {"alpha", -1}}))
	m, err := b.Map()
	require.NoError(t, err)

	want := []Entry[string, int32]{{"alpha", -1}, {"mu", 12}, {"zeta", 26}}
	require.Equal(t, want, Pairs(m))
	for _, f := range allFormats {
		doc, err := Marshal(f, Pairs(m))
		require.NoError(t, err)
		got, err := Decode[[]Entry[string, int32]](f, doc)
		require.NoError(t, err)
		require.Equal(t, want, got, f)
	}
}

func TestNested(t *testing.T) {
	l := sortmap.Ordered2D(
		vec.VarOf(codec.String, vec.Index16),
		vec.VarOf(codec.String, vec.Index16),
		vec.VarOf(codec.String, vec.Index16),
	)
	b := sortmap.NewBuilder2D(l)
	groups := []Group[string, string, string]{
		{Key0: "en", Entries: []Entry[string, string]{{"one", "1"}, {"two", "2"}}},
		{Key0: "de", Entries: []Entry[string, string]{{"eins", "1"}}},
	}
	require.NoError(t, FillMap2D(b, groups))
	m, err := b.Map2D()
	require.NoError(t, err)

	got := Nested(m)
	require.Len(t, got, 2)
	require.Equal(t, "de", got[0].Key0)
	require.Equal(t, groups[0], got[1])

	doc, err := Marshal(YAML, got)
	require.NoError(t, err)
	back, err := Decode[[]Group[string, string, string]](YAML, doc)
	require.NoError(t, err)
	require.Equal(t, got, back)
}

func TestFillLargeSortedInput(t *testing.T) {
	const n = 40000
	entries := make([]Entry[string, int32], n)
	var groups []Group[string, string, string]
	for i := range n {
		entries[i] = Entry[string, int32]{Key: fmt.Sprintf("key%06d", i), Value: int32(i)}
		if i%100 == 0 {
			groups = append(groups, Group[string, string, string]{Key0: fmt.Sprintf("g%04d", i/100)})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, Entry[string, string]{Key: fmt.Sprintf("k%03d", i%100), Value: "v"})
	}

	start := time.Now()
	b := sortmap.NewBuilder(sortmap.Ordered(vec.VarOf(codec.String, vec.Index32), vec.FixedOf(codec.Int32)))
	require.NoError(t, FillMap(b, entries))
	b2 := sortmap.NewBuilder2D(sortmap.Ordered2D(
		vec.VarOf(codec.String, vec.Index32),
		vec.VarOf(codec.String, vec.Index32),
		vec.VarOf(codec.String, vec.Index32),
	))
	require.NoError(t, FillMap2D(b2, groups))
	require.Less(t, time.Since(start), 2*time.Second)

	m, err := b.Map()
	require.NoError(t, err)
	require.Equal(t, n, m.Len())
	v, ok := m.Get("key031337")
	require.True(t, ok)
	require.Equal(t, int32(31337), v)

	m2, err := b2.Map2D()
	require.NoError(t, err)
	require.Equal(t, n, m2.Len())
	require.Equal(t, n/100, m2.Len0())
	s, ok := m2.Get2D("g0399", "k099")
	require.True(t, ok)
	require.Equal(t, "v", s)
}

func TestCBORIsDeterministic(t *testing.T) {
	a, err := Marshal(CBOR, map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	b, err := Marshal(CBOR, map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)
	require.Equal(t, a, b)
}
