package vec

import (
	"fmt"

	"github.com/rawbytedev/flatvec"
)

// FixedCodec makes a FixedVec usable as a variable-size element, so vectors
// can hold vectors.
func FixedCodec[T any](c flatvec.Fixed[T]) flatvec.Variable[FixedVec[T]] {
	return fixedVecCodec[T]{c}
}

type fixedVecCodec[T any] struct{ c flatvec.Fixed[T] }

func (fc fixedVecCodec[T]) Validate(b []byte) error {
	return flatvec.ValidateFixed(fc.c, b)
}

func (fc fixedVecCodec[T]) EncodedLen(v FixedVec[T]) int     { return len(v.data) }
func (fc fixedVecCodec[T]) Encode(dst []byte, v FixedVec[T]) { copy(dst, v.data) }

func (fc fixedVecCodec[T]) Decode(b []byte) FixedVec[T] {
	return FixedVec[T]{codec: fc.c, width: fc.c.Width(), data: b}
}

// VarCodec makes a VarVec of format f usable as a variable-size element.
// A vector held in another format is re-indexed on Encode; Encode panics if
// it does not fit f.
// Like every codec, its Decode trusts its input; unchecked bytes go through
// flatvec.Parse or ParseVar.
func VarCodec[T any](c flatvec.Variable[T], f Format) flatvec.Variable[VarVec[T]] {
	return varVecCodec[T]{c: c, f: f}
}

type varVecCodec[T any] struct {
	c flatvec.Variable[T]
	f Format
}

func (vc varVecCodec[T]) Validate(b []byte) error {
	_, err := ParseVar(vc.c, vc.f, b)
	return err
}

func (vc varVecCodec[T]) EncodedLen(v VarVec[T]) int {
	if v.n == 0 {
		return 0
	}
	return v.n*vc.f.Width() + len(v.data)
}

func (vc varVecCodec[T]) Encode(dst []byte, v VarVec[T]) {
	if v.format == vc.f {
		copy(dst, v.raw)
		return
	}
	ends := make([]int, v.n)
	for i := range v.n {
		ends[i] = v.end(i)
	}
	hdr, err := headerLen(vc.f, ends)
	if err != nil {
		panic(fmt.Sprintf("vec: nested vector: %v", err))
	}
	putHeader(dst, vc.f, ends)
	copy(dst[hdr:], v.data)
}

func (vc varVecCodec[T]) Decode(b []byte) VarVec[T] {
	return decodeVar(vc.c, vc.f, b)
}
