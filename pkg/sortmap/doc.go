// Package sortmap implements sorted maps over flatvec containers.
//
// A Map stores its keys and values in two index-aligned containers with the
// keys strictly ascending; lookups are a binary search over the keys. A
// Map2D adds an outer key level: a joiner vector maps each outer key to the
// range of inner keys and values it owns.
//
// Parsing checks structure (container validity, matching lengths, joiner
// bounds) but trusts the producer for key order unless Layout.Strict is
// set. A structurally valid but unsorted map gives wrong answers, never
// out-of-range reads. Builds tagged flatvecdebug assert the ordering.
package sortmap
