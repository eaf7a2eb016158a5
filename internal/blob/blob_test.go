package blob

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/flatvec/pkg/codec"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

func TestWriteLoadPlain(t *testing.T) {
	buf, err := vec.EncodeVar(codec.String, vec.Index16, []string{"mapped", "view"})
	require.NoError(t, err)
	path, err := Write(filepath.Join(t.TempDir(), "words.fv"), buf, false)
	require.NoError(t, err)

	b, err := Load(path)
	require.NoError(t, err)
	defer b.Close()
	require.Equal(t, buf, b.Data)
	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" {
		require.True(t, b.Mapped)
	}

	v, err := vec.ParseVar(codec.String, vec.Index16, b.Data)
	require.NoError(t, err)
	require.Equal(t, "view", v.At(1))
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
}

func TestWriteLoadZstd(t *testing.T) {
	buf := bytes.Repeat([]byte("flatvec "), 512)
	path, err := Write(filepath.Join(t.TempDir(), "data.fv"), buf, true)
	require.NoError(t, err)
	require.Equal(t, ZstdExt, filepath.Ext(path))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Less(t, len(onDisk), len(buf))

	b, err := Load(path)
	require.NoError(t, err)
	require.False(t, b.Mapped)
	require.Equal(t, buf, b.Data)
}

func TestLoadEmptyAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	b, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, b.Data)

	_, err = Load(filepath.Join(t.TempDir(), "missing.fv"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.fv.zst")
	require.NoError(t, os.WriteFile(bad, []byte("not zstd"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestDigest(t *testing.T) {
	d := Digest([]byte("abc"))
	require.Len(t, d, 64)
	require.Equal(t, d, Digest([]byte("abc")))
	require.NotEqual(t, d, Digest([]byte("abd")))
}
