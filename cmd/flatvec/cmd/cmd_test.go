package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/flatvec/internal/config"
	"github.com/rawbytedev/flatvec/pkg/interchange"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestPackAndGetVector(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "words.yaml", "- foo\n- bar\n- lorem ipsum\n")
	dst := filepath.Join(dir, "words.fv")

	out, err := run(t, "pack", "vector", "--in", src, "--out", dst, "--index", "8")
	require.NoError(t, err)
	assert.Equal(t, dst, strings.TrimSpace(out))

	out, err = run(t, "get", dst, "--index", "8", "2")
	require.NoError(t, err)
	assert.Equal(t, "lorem ipsum\n", out)

	_, err = run(t, "get", dst, "--index", "8", "3")
	require.ErrorIs(t, err, errNotFound)

	// the wrong index width does not validate
	_, err = run(t, "get", dst, "--index", "32", "0")
	require.Error(t, err)
}

func TestPackMapFromJSON(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "numbers.json", `[{"key":"3","value":"tres"},{"key":"1","value":"uno"},{"key":"2","value":"dos"}]`)
	dst := filepath.Join(dir, "numbers.fv")

	_, err := run(t, "pack", "map", "--in", src, "--out", dst, "--zstd")
	require.NoError(t, err)
	dst += ".zst"

	out, err := run(t, "get", dst, "--kind", "map", "2")
	require.NoError(t, err)
	assert.Equal(t, "dos\n", out)

	out, err = run(t, "dump", dst, "--kind", "map", "--format", "json", "--strict")
	require.NoError(t, err)
	entries, err := interchange.Decode[[]entry](interchange.JSON, []byte(out))
	require.NoError(t, err)
	assert.Equal(t, []entry{{Key: "1", Value: "uno"}, {Key: "2", Value: "dos"}, {Key: "3", Value: "tres"}}, entries)
}

func TestPackMap2DAndInspect(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "nested.yaml", `
- key0: "2"
  entries:
    - {key: two, value: baz}
    - {key: one, value: bar}
- key0: "1"
  entries:
    - {key: one, value: foo}
`)
	dst := filepath.Join(dir, "nested.fv")
	_, err := run(t, "pack", "map2d", "--in", src, "--out", dst)
	require.NoError(t, err)

	out, err := run(t, "get", dst, "--kind", "map2d", "1", "one")
	require.NoError(t, err)
	assert.Equal(t, "foo\n", out)
	_, err = run(t, "get", dst, "--kind", "map2d", "1", "two")
	require.ErrorIs(t, err, errNotFound)

	out, err = run(t, "inspect", dst, "--kind", "map2d", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "entries: 3")
	assert.Contains(t, out, "blake3:")

	out, err = run(t, "dump", dst, "--kind", "map2d")
	require.NoError(t, err)
	groups, err := interchange.Decode[[]group](interchange.YAML, []byte(out))
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "1", groups[0].Key0)
	assert.Equal(t, []entry{{Key: "one", Value: "bar"}, {Key: "two", Value: "baz"}}, groups[1].Entries)
}

func TestConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.IndexWidth = 32
	cfg.DumpFormat = "json"
	cfgPath := filepath.Join(dir, "flatvec.yaml")
	require.NoError(t, config.SaveConfig(cfg, cfgPath))

	src := writeFile(t, dir, "words.yaml", "- a\n- b\n")
	dst := filepath.Join(dir, "words.fv")
	_, err := run(t, "pack", "vector", "--in", src, "--out", dst, "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 'b'}, data)

	out, err := run(t, "dump", dst, "--config", cfgPath)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, out)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "pack", "vector", "--in", filepath.Join(dir, "missing.yaml"), "--out", filepath.Join(dir, "x"))
	require.Error(t, err)

	src := writeFile(t, dir, "words.toml", "x")
	_, err = run(t, "pack", "vector", "--in", src, "--out", filepath.Join(dir, "x"))
	require.Error(t, err)

	_, err = run(t, "inspect", src, "--kind", "tree")
	require.Error(t, err)

	_, err = run(t, "inspect", src, "--log-level", "loud")
	require.Error(t, err)
}
