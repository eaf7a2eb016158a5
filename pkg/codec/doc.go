// Package codec provides the concrete encodings used by flatvec containers:
// little-endian scalars, byte and UTF-8 strings, optional values and the
// fixed+variable tuple composer.
package codec
