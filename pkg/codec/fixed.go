package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rawbytedev/flatvec"
)

// Scalar encodings. All integers and floats are little-endian and need no
// alignment.
var (
	Bool    flatvec.Fixed[bool]    = boolCodec{}
	Uint8   flatvec.Fixed[uint8]   = uint8Codec{}
	Uint16  flatvec.Fixed[uint16]  = uint16Codec{}
	Uint32  flatvec.Fixed[uint32]  = uint32Codec{}
	Uint64  flatvec.Fixed[uint64]  = uint64Codec{}
	Int8    flatvec.Fixed[int8]    = int8Codec{}
	Int16   flatvec.Fixed[int16]   = int16Codec{}
	Int32   flatvec.Fixed[int32]   = int32Codec{}
	Int64   flatvec.Fixed[int64]   = int64Codec{}
	Float32 flatvec.Fixed[float32] = float32Codec{}
	Float64 flatvec.Fixed[float64] = float64Codec{}
	// Rune stores a Unicode scalar value in 3 bytes.
	Rune flatvec.Fixed[rune] = runeCodec{}
)

type boolCodec struct{}

func (boolCodec) Width() int { return 1 }

func (boolCodec) ValidateChunk(b []byte) error {
	if b[0] > 1 {
		return fmt.Errorf("%w: bool byte 0x%02x", flatvec.ErrInvalidValue, b[0])
	}
	return nil
}

func (boolCodec) Encode(dst []byte, v bool) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
}

func (boolCodec) Decode(b []byte) bool { return b[0] == 1 }

type uint8Codec struct{}

func (uint8Codec) Width() int                 { return 1 }
func (uint8Codec) ValidateChunk([]byte) error { return nil }
func (uint8Codec) Encode(dst []byte, v uint8) { dst[0] = v }
func (uint8Codec) Decode(b []byte) uint8      { return b[0] }

type uint16Codec struct{}

func (uint16Codec) Width() int                 { return 2 }
func (uint16Codec) ValidateChunk([]byte) error { return nil }
func (uint16Codec) Encode(dst []byte, v uint16) {
	binary.LittleEndian.PutUint16(dst, v)
}
func (uint16Codec) Decode(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }

type uint32Codec struct{}

func (uint32Codec) Width() int                 { return 4 }
func (uint32Codec) ValidateChunk([]byte) error { return nil }
func (uint32Codec) Encode(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}
func (uint32Codec) Decode(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

type uint64Codec struct{}

func (uint64Codec) Width() int                 { return 8 }
func (uint64Codec) ValidateChunk([]byte) error { return nil }
func (uint64Codec) Encode(dst []byte, v uint64) {
	binary.LittleEndian.PutUint64(dst, v)
}
func (uint64Codec) Decode(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

type int8Codec struct{}

func (int8Codec) Width() int                 { return 1 }
func (int8Codec) ValidateChunk([]byte) error { return nil }
func (int8Codec) Encode(dst []byte, v int8)  { dst[0] = byte(v) }
func (int8Codec) Decode(b []byte) int8       { return int8(b[0]) }

type int16Codec struct{}

func (int16Codec) Width() int                 { return 2 }
func (int16Codec) ValidateChunk([]byte) error { return nil }
func (int16Codec) Encode(dst []byte, v int16) {
	binary.LittleEndian.PutUint16(dst, uint16(v))
}
func (int16Codec) Decode(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }

type int32Codec struct{}

func (int32Codec) Width() int                 { return 4 }
func (int32Codec) ValidateChunk([]byte) error { return nil }
func (int32Codec) Encode(dst []byte, v int32) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}
func (int32Codec) Decode(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }

type int64Codec struct{}

func (int64Codec) Width() int                 { return 8 }
func (int64Codec) ValidateChunk([]byte) error { return nil }
func (int64Codec) Encode(dst []byte, v int64) {
	binary.LittleEndian.PutUint64(dst, uint64(v))
}
func (int64Codec) Decode(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) }

// Floats compare by bit pattern: NaN payloads and -0 are distinct values.
type float32Codec struct{}

func (float32Codec) Width() int                 { return 4 }
func (float32Codec) ValidateChunk([]byte) error { return nil }
func (float32Codec) Encode(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}
func (float32Codec) Decode(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

type float64Codec struct{}

func (float64Codec) Width() int                 { return 8 }
func (float64Codec) ValidateChunk([]byte) error { return nil }
func (float64Codec) Encode(dst []byte, v float64) {
	binary.LittleEndian.PutUint64(dst, math.Float64bits(v))
}
func (float64Codec) Decode(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

type runeCodec struct{}

func (runeCodec) Width() int { return 3 }

func (runeCodec) ValidateChunk(b []byte) error {
	r := rune(b[0]) | rune(b[1])<<8 | rune(b[2])<<16
	if r > 0x10FFFF || (r >= 0xD800 && r <= 0xDFFF) {
		return fmt.Errorf("%w: rune U+%04X", flatvec.ErrInvalidValue, r)
	}
	return nil
}

func (runeCodec) Encode(dst []byte, v rune) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}

func (runeCodec) Decode(b []byte) rune {
	return rune(b[0]) | rune(b[1])<<8 | rune(b[2])<<16
}
