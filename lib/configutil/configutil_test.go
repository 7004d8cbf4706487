package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `json:"name"`
	Depth   int      `json:"depth"`
	Anchors []string `json:"anchors"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "base",
		depth: 3,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ depth: 4 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "base", cfg.Name)
	require.Equal(t, 4, cfg.Depth)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadWithDefaults(t *testing.T) {
	dir := t.TempDir()
	defaults := testConfig{Name: "default", Depth: 3, Anchors: []string{"bank name"}}

	cfg, err := ReadWithDefaults(filepath.Join(dir, "config.json5"), defaults)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, defaults, cfg)

	writeFile(t, filepath.Join(dir, "config.json5"), `{ depth: 5 }`)
	cfg, err = ReadWithDefaults(filepath.Join(dir, "config.json5"), defaults)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, 5, cfg.Depth)
	require.Equal(t, []string{"bank name"}, cfg.Anchors)
}
