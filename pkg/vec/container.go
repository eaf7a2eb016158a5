package vec

import (
	"iter"

	"github.com/rawbytedev/flatvec"
)

// List is the read side shared by borrowed views and builders.
type List[T any] interface {
	Len() int
	At(i int) T
	Get(i int) (T, bool)
	ElementBytes(i int) []byte
	BinarySearchBy(probe func(T) int) (int, bool)
	BinarySearchInRange(probe func(T) int, lo, hi int) (int, bool)
	All() iter.Seq2[int, T]
}

// Mutable is an owned, growable List.
type Mutable[T any] interface {
	List[T]
	Push(v T)
	Insert(i int, v T)
	Replace(i int, v T) T
	Remove(i int) T
	Encode() ([]byte, error)
}

// Container ties a storage strategy to an element encoding so that maps can
// be generic over fixed and variable storage.
type Container[T any] interface {
	Parse(b []byte) (List[T], error)
	New() Mutable[T]
	// Own copies l into a new builder.
	Own(l List[T]) Mutable[T]
}

// FixedOf stores elements in a FixedVec.
func FixedOf[T any](c flatvec.Fixed[T]) Container[T] { return fixedContainer[T]{c} }

// VarOf stores elements in a VarVec of format f.
func VarOf[T any](c flatvec.Variable[T], f Format) Container[T] {
	return varContainer[T]{c: c, f: f}
}

type fixedContainer[T any] struct{ c flatvec.Fixed[T] }

func (fc fixedContainer[T]) Parse(b []byte) (List[T], error) {
	v, err := ParseFixed(fc.c, b)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (fc fixedContainer[T]) New() Mutable[T] { return NewFixedOwned(fc.c) }

func (fc fixedContainer[T]) Own(l List[T]) Mutable[T] {
	if v, ok := l.(FixedVec[T]); ok && v.width == fc.c.Width() {
		return OwnFixed(v)
	}
	return copyInto(NewFixedOwned(fc.c), l)
}

type varContainer[T any] struct {
	c flatvec.Variable[T]
	f Format
}

func (vc varContainer[T]) Parse(b []byte) (List[T], error) {
	v, err := ParseVar(vc.c, vc.f, b)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (vc varContainer[T]) New() Mutable[T] { return NewVarOwned(vc.c, vc.f) }

func (vc varContainer[T]) Own(l List[T]) Mutable[T] {
	if v, ok := l.(VarVec[T]); ok && v.format == vc.f {
		return OwnVar(v)
	}
	return copyInto(NewVarOwned(vc.c, vc.f), l)
}

func copyInto[T any](m Mutable[T], l List[T]) Mutable[T] {
	for _, v := range l.All() {
		m.Push(v)
	}
	return m
}
