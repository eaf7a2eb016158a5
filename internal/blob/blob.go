// Package blob loads flatvec buffers from files and writes them back.
//
// Plain files are memory-mapped read-only where the platform allows it, so
// a parsed view reads straight from the page cache. Files ending in .zst are
// zstd-compressed on disk and decompressed into memory on load; compression
// is a property of the file, never of the flatvec format.
package blob

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// ZstdExt marks compressed files.
const ZstdExt = ".zst"

// zstd.Encoder and zstd.Decoder are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("blob: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("blob: zstd decoder initialization failed: " + err.Error())
	}
}

// Blob is a loaded buffer. Data must not be used after Close.
type Blob struct {
	Data []byte
	// Mapped reports whether Data is a read-only memory mapping.
	Mapped  bool
	release func() error
}

// Close releases the mapping, if any. It is safe to call more than once.
func (b *Blob) Close() error {
	if b.release == nil {
		return nil
	}
	err := b.release()
	b.release = nil
	b.Data = nil
	return err
}

// Load reads the file at path.
func Load(path string) (*Blob, error) {
	if !strings.HasSuffix(path, ZstdExt) {
		return mapFile(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data, err := zstdDecoder.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress %s: %w", path, err)
	}
	return &Blob{Data: data}, nil
}

// Write stores data at path. With compress set the data is zstd-encoded and
// ZstdExt is appended to path if missing. It returns the path written.
func Write(path string, data []byte, compress bool) (string, error) {
	if compress || strings.HasSuffix(path, ZstdExt) {
		if !strings.HasSuffix(path, ZstdExt) {
			path += ZstdExt
		}
		data = zstdEncoder.EncodeAll(data, nil)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Digest returns the hex-encoded BLAKE3-256 digest of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
