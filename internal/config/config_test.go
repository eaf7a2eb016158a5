package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/flatvec/pkg/vec"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	f, err := c.Format()
	require.NoError(t, err)
	assert.Equal(t, vec.Index16, f)
	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flatvec.yaml")
	c := DefaultConfig()
	c.IndexWidth = 32
	c.StrictOrder = true
	c.Logging.Level = "debug"
	require.NoError(t, SaveConfig(c, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict_order: true\n"), 0600))
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, c.StrictOrder)
	assert.Equal(t, 16, c.IndexWidth)
	assert.Equal(t, "yaml", c.DumpFormat)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	cases := map[string]string{
		"width":  "index_width: 12\n",
		"format": "dump_format: toml\n",
		"level":  "logging:\n  level: loud\n",
		"syntax": "index_width: [\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0600))
		_, err := LoadConfig(path)
		require.Error(t, err, name)
	}
}
