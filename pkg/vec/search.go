package vec

import (
	"cmp"
	"fmt"
)

// search returns the first index in [lo, hi) whose element does not order
// before the target, and whether it matches. probe reports how an element
// orders relative to the target.
func search[T any](lo, hi int, at func(int) T, probe func(T) int) (int, bool) {
	end := hi
	for lo < hi {
		m := int(uint(lo+hi) >> 1)
		if probe(at(m)) < 0 {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo, lo < end && probe(at(lo)) == 0
}

func checkRange(lo, hi, n int) {
	if lo < 0 || hi > n || lo > hi {
		panic(fmt.Sprintf("vec: range [%d:%d] out of bounds for length %d", lo, hi, n))
	}
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("vec: index %d out of range [0:%d]", i, n))
	}
}

// BinarySearch looks for x in a list sorted in ascending order.
func BinarySearch[T cmp.Ordered](l List[T], x T) (int, bool) {
	return l.BinarySearchBy(func(e T) int { return cmp.Compare(e, x) })
}

// BinarySearchFunc looks for target using compare(element, target).
func BinarySearchFunc[T, K any](l List[T], target K, compare func(T, K) int) (int, bool) {
	return l.BinarySearchBy(func(e T) int { return compare(e, target) })
}
