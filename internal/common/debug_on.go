//go:build flatvecdebug

package common

// Debug enables invariant assertions that are too costly for normal builds.
const Debug = true
