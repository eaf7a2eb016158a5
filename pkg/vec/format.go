package vec

import (
	"fmt"

	"github.com/rawbytedev/flatvec/internal/common"
)

// Format is the byte width of the element count and of every offset in a
// VarVec. It bounds both the number of elements and the data size.
type Format uint8

const (
	Index8  Format = 1
	Index16 Format = 2
	Index32 Format = 4

	DefaultFormat = Index16
)

// Width returns the size in bytes of one index entry.
func (f Format) Width() int {
	if !f.Valid() {
		panic(fmt.Sprintf("vec: unknown index format %d", uint8(f)))
	}
	return int(f)
}

// Max returns the largest count or offset the format can hold.
func (f Format) Max() int { return common.MaxUint(f.Width()) }

func (f Format) Valid() bool {
	return f == Index8 || f == Index16 || f == Index32
}

func (f Format) String() string {
	switch f {
	case Index8:
		return "index8"
	case Index16:
		return "index16"
	case Index32:
		return "index32"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatFromBits maps 8, 16 or 32 to the matching Format.
func FormatFromBits(bits int) (Format, error) {
	switch bits {
	case 8:
		return Index8, nil
	case 16:
		return Index16, nil
	case 32:
		return Index32, nil
	default:
		return 0, fmt.Errorf("vec: unsupported index width %d bits", bits)
	}
}
