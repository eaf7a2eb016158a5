package cmd

import (
	"fmt"

	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/interchange"
	"github.com/rawbytedev/flatvec/pkg/sortmap"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// The command line works on string data: a vector of strings, a map from
// string to string, and a two-level map from (string, string) to string.
const (
	kindVector = "vector"
	kindMap    = "map"
	kindMap2D  = "map2d"
)

type (
	entry = interchange.Entry[string, string]
	group = interchange.Group[string, string, string]
)

func mapLayout(f vec.Format, strict bool) sortmap.Layout[string, string] {
	l := sortmap.Ordered(vec.VarOf(codec.String, f), vec.VarOf(codec.String, f))
	l.Strict = strict
	return l
}

func map2DLayout(f vec.Format, strict bool) sortmap.Layout2D[string, string, string] {
	l := sortmap.Ordered2D(vec.VarOf(codec.String, f), vec.VarOf(codec.String, f), vec.VarOf(codec.String, f))
	l.Strict = strict
	return l
}

// parsed is a validated buffer of any kind.
type parsed struct {
	kind   string
	vector vec.VarVec[string]
	m      sortmap.Map[string, string]
	m2     sortmap.Map2D[string, string, string]
}

func (p parsed) entries() int {
	switch p.kind {
	case kindVector:
		return p.vector.Len()
	case kindMap:
		return p.m.Len()
	default:
		return p.m2.Len()
	}
}

// document returns the ordered interchange form of the buffer.
func (p parsed) document() any {
	switch p.kind {
	case kindVector:
		return interchange.Values[string](p.vector)
	case kindMap:
		return interchange.Pairs(p.m)
	default:
		return interchange.Nested(p.m2)
	}
}

func parseBuffer(kind string, f vec.Format, strict bool, data []byte) (parsed, error) {
	p := parsed{kind: kind}
	var err error
	switch kind {
	case kindVector:
		p.vector, err = vec.ParseVar(codec.String, f, data)
	case kindMap:
		p.m, err = sortmap.Parse(mapLayout(f, strict), data)
	case kindMap2D:
		p.m2, err = sortmap.Parse2D(map2DLayout(f, strict), data)
	default:
		return p, fmt.Errorf("unknown kind %q", kind)
	}
	return p, err
}

// packDocument decodes a source document of the given kind and encodes it.
// It returns the buffer and the number of entries packed.
func packDocument(kind string, f vec.Format, src interchange.Format, doc []byte) ([]byte, int, error) {
	switch kind {
	case kindVector:
		items, err := interchange.Decode[[]string](src, doc)
		if err != nil {
			return nil, 0, err
		}
		out, err := vec.EncodeVar(codec.String, f, items)
		return out, len(items), err
	case kindMap:
		entries, err := interchange.Decode[[]entry](src, doc)
		if err != nil {
			return nil, 0, err
		}
		b := sortmap.NewBuilder(mapLayout(f, false))
		if err := interchange.FillMap(b, entries); err != nil {
			return nil, 0, err
		}
		out, err := b.Encode()
		return out, b.Len(), err
	case kindMap2D:
		groups, err := interchange.Decode[[]group](src, doc)
		if err != nil {
			return nil, 0, err
		}
		b := sortmap.NewBuilder2D(map2DLayout(f, false))
		if err := interchange.FillMap2D(b, groups); err != nil {
			return nil, 0, err
		}
		out, err := b.Encode()
		return out, b.Len(), err
	default:
		return nil, 0, fmt.Errorf("unknown kind %q", kind)
	}
}
