package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, cfg.API.Timeout)
	require.Equal(t, "127.0.0.1:8099", cfg.Serve.Addr)
	require.Contains(t, cfg.Session.Path, ".pagos")
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".pagos"), 0o700))
	yaml := []byte("api:\n  base_url: https://file.example.com\n  timeout: 45s\nserve:\n  addr: 127.0.0.1:9000\n")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".pagos", "config.yaml"), yaml, 0o600))

	// Environment wins over the file.
	t.Setenv("PAGOS_API_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	require.Equal(t, 45*time.Second, cfg.API.Timeout)
	require.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".pagos"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".pagos", "config.yaml"), []byte("api:\n  timeout: pronto\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
}
