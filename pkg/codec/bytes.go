package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/rawbytedev/flatvec"
	"github.com/rawbytedev/flatvec/internal/common"
)

var (
	// Bytes is the identity encoding. Decoded slices alias the buffer.
	Bytes flatvec.Variable[[]byte] = bytesCodec{}
	// String holds UTF-8 text. Decoded strings alias the buffer.
	String flatvec.Variable[string] = stringCodec{}
)

type bytesCodec struct{}

func (bytesCodec) Validate([]byte) error       { return nil }
func (bytesCodec) EncodedLen(v []byte) int     { return len(v) }
func (bytesCodec) Encode(dst []byte, v []byte) { copy(dst, v) }
func (bytesCodec) Decode(b []byte) []byte      { return b[:len(b):len(b)] }

type stringCodec struct{}

func (stringCodec) Validate(b []byte) error {
	if !utf8.Valid(b) {
		return fmt.Errorf("%w: invalid utf-8", flatvec.ErrInvalidValue)
	}
	return nil
}

func (stringCodec) EncodedLen(v string) int     { return len(v) }
func (stringCodec) Encode(dst []byte, v string) { copy(dst, v) }
func (stringCodec) Decode(b []byte) string      { return common.String(b) }
