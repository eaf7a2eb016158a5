package sortmap

import (
	"cmp"
	"fmt"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/internal/common"
	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// Layout describes how a Map stores its keys and values.
type Layout[K, V any] struct {
	Keys    vec.Container[K]
	Values  vec.Container[V]
	Compare func(a, b K) int
	// Strict makes Parse verify that keys are strictly ascending.
	Strict bool
}

// Ordered returns a Layout comparing keys with cmp.Compare.
func Ordered[K cmp.Ordered, V any](keys vec.Container[K], values vec.Container[V]) Layout[K, V] {
	return Layout[K, V]{Keys: keys, Values: values, Compare: cmp.Compare[K]}
}

// Layout2D describes how a Map2D stores its two key levels and values.
type Layout2D[K0, K1, V any] struct {
	Keys0    vec.Container[K0]
	Keys1    vec.Container[K1]
	Values   vec.Container[V]
	Compare0 func(a, b K0) int
	Compare1 func(a, b K1) int
	Strict   bool
}

// Ordered2D returns a Layout2D comparing both key levels with cmp.Compare.
func Ordered2D[K0, K1 cmp.Ordered, V any](keys0 vec.Container[K0], keys1 vec.Container[K1], values vec.Container[V]) Layout2D[K0, K1, V] {
	return Layout2D[K0, K1, V]{
		Keys0:    keys0,
		Keys1:    keys1,
		Values:   values,
		Compare0: cmp.Compare[K0],
		Compare1: cmp.Compare[K1],
	}
}

// Maps are stored as an Index32 vector of raw regions, one per container.
const regionFormat = vec.Index32

func splitRegions(b []byte, n int) ([][]byte, error) {
	if len(b) == 0 {
		return make([][]byte, n), nil
	}
	v, err := vec.ParseVar(codec.Bytes, regionFormat, b)
	if err != nil {
		return nil, err
	}
	if v.Len() != n {
		return nil, fmt.Errorf("%w: want %d regions, got %d", flatvec.ErrLengthMismatch, n, v.Len())
	}
	out := make([][]byte, n)
	for i, r := range v.All() {
		out[i] = r
	}
	return out, nil
}

func joinRegions(regions ...[]byte) ([]byte, error) {
	return vec.EncodeVar(codec.Bytes, regionFormat, regions)
}

// checkAscending reports the first position in [lo, hi) where keys are not
// strictly ascending.
func checkAscending[K any](keys vec.List[K], compare func(a, b K) int, lo, hi int) error {
	for i := lo + 1; i < hi; i++ {
		if compare(keys.At(i-1), keys.At(i)) >= 0 {
			return flatvec.At(i, flatvec.ErrUnsorted)
		}
	}
	return nil
}

// verifyOrder runs the ordering check when asked to, and asserts it in
// debug builds.
func verifyOrder(strict bool, check func() error) error {
	if !strict && !common.Debug {
		return nil
	}
	err := check()
	if err != nil && !strict {
		panic("sortmap: " + err.Error())
	}
	return err
}
