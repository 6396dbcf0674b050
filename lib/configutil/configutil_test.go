package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port  int    `json:"port"`
	Token string `json:"token"`
}

func TestReadConfigMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{port: 8444, token: "checked-in"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"),
		[]byte(`{token: "per-machine"}`), 0o600))

	out, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, 8444, out.Port)
	require.Equal(t, "per-machine", out.Token)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.local.json5"),
		[]byte(`{port: 9000}`), 0o600))

	out, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 9000, out.Port)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
