package common

import (
	"encoding/binary"
	"unsafe"
)

// ReadUint reads a little-endian unsigned integer of w bytes (1, 2 or 4).
func ReadUint(b []byte, w int) int {
	switch w {
	case 1:
		return int(b[0])
	case 2:
		return int(binary.LittleEndian.Uint16(b))
	case 4:
		return int(binary.LittleEndian.Uint32(b))
	default:
		panic("common: unsupported integer width")
	}
}

// PutUint writes v as a little-endian unsigned integer of w bytes.
// The caller has checked that v fits.
func PutUint(b []byte, w int, v int) {
	switch w {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	default:
		panic("common: unsupported integer width")
	}
}

// MaxUint returns the largest value representable in w bytes.
func MaxUint(w int) int {
	return int(uint64(1)<<(8*uint(w)) - 1)
}

// String views b as a string without copying. b must not be modified
// while the string is alive, and must already be valid UTF-8 if the caller
// relies on that.
func String(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
