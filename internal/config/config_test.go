package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"REPAIRDESK_CONFIG_PATH", "REPAIRDESK_SERVER_HOST", "REPAIRDESK_SERVER_PORT",
		"REPAIRDESK_STORE_BACKEND", "REPAIRDESK_STORE_PATH", "REPAIRDESK_WATCH",
		"REPAIRDESK_DB_PATH", "REPAIRDESK_LOG_LEVEL", "REPAIRDESK_LOG_PATH", "REPAIRDESK_PDF_PATH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
store:
  backend: sqlite
db:
  path: /var/lib/repairdesk/shop.db
log:
  level: debug
pdf:
  path: /srv/price-list.pdf
`), 0o644))

	t.Setenv("REPAIRDESK_CONFIG_PATH", path)
	t.Setenv("REPAIRDESK_SERVER_PORT", "9100")
	t.Setenv("REPAIRDESK_WATCH", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, BackendSQLite, cfg.Store.Backend)
	require.False(t, cfg.Store.Watch)
	require.Equal(t, "/var/lib/repairdesk/shop.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "/srv/price-list.pdf", cfg.PDF.Path)
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.yaml")
	flagPath := filepath.Join(dir, "flag.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("server:\n  port: 1111\n"), 0o644))
	require.NoError(t, os.WriteFile(flagPath, []byte("server:\n  port: 2222\n"), 0o644))
	t.Setenv("REPAIRDESK_CONFIG_PATH", envPath)

	cfg, err := Load(flagPath)
	require.NoError(t, err)
	require.Equal(t, 2222, cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "port", env: map[string]string{"REPAIRDESK_SERVER_PORT": "http"}},
		{name: "watch", env: map[string]string{"REPAIRDESK_WATCH": "sometimes"}},
		{name: "backend", env: map[string]string{"REPAIRDESK_STORE_BACKEND": "postgres"}},
		{name: "missing file", env: map[string]string{"REPAIRDESK_CONFIG_PATH": "/nonexistent/config.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	require.Equal(t, slog.LevelError, ParseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLogLevel("verbose"))
}
