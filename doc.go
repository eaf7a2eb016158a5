// Package flatvec defines the encoding contracts for zero-copy data laid out in
// one contiguous byte buffer.
//
// A Fixed encoding stores every value in exactly Width bytes. A Variable
// encoding is self-delimiting: its length is given by the slice that holds it.
// Both carry a validator; Decode is only ever run on bytes that validated.
//
// Containers built on these contracts live in pkg/vec (vectors) and
// pkg/sortmap (sorted maps). Concrete encodings live in pkg/codec.
//
//	b := flatvec.Encode(codec.String, "hello")
//	s, err := flatvec.Parse(codec.String, b) // s aliases b
package flatvec
