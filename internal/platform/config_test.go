package platform

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoadConfigLayering(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notesrv.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
host: 0.0.0.0
port: 8080
cache: /srv/notes
log_level: debug
shutdown_timeout: 3s
`), 0644))

	t.Setenv("NOTES_LOG_LEVEL", "warn")
	t.Setenv("NOTES_HOST", "10.0.0.1")
	t.Setenv("NOTES_PORT", "9090")
	t.Setenv("NOTES_CACHE_DIR", "/env/notes")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel, "env wins over file")
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout, "file value kept")
	assert.Empty(t, cfg.Host, "listen address is flag-only")
	assert.Zero(t, cfg.Port, "listen address is flag-only")
	assert.Empty(t, cfg.CacheDir, "cache directory is flag-only")
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout, "default survives when unset")
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "read config")
	})

	t.Run("Bad Env", func(t *testing.T) {
		t.Setenv("NOTES_SHUTDOWN_TIMEOUT", "soon")

		_, err := LoadConfig("")
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
	})
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.Host, valid.Port, valid.CacheDir = "localhost", 3000, "./cache"
	assert.NoError(t, valid.Validate())
	assert.Equal(t, "localhost:3000", valid.Addr())

	err := DefaultConfig().Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "host is required")
	assert.ErrorContains(t, err, "port 0 out of range")
	assert.ErrorContains(t, err, "cache directory is required")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)

	_, err = NewLogger(&buf, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&buf, "info", "xml")
	assert.Error(t, err)
}
