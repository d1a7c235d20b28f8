package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesSpecConstants(t *testing.T) {
	cfg := Default()
	require.Equal(t, 1150, cfg.MinDataHexLen)
	require.Equal(t, 3000, cfg.JITLowBound)
	require.Equal(t, 8000, cfg.JITHighBound)
	require.Equal(t, byte(0xe0), cfg.DecompressorAddress[19])
}

func TestLoadOverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `min-data-hex-len = 2000`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2000, cfg.MinDataHexLen)
	require.Equal(t, 3000, cfg.JITLowBound) // unspecified, stays at default
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
