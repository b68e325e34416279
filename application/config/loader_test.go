package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kaleidort/kaleidort/domain/entities"
	"github.com/kaleidort/kaleidort/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kaleidort.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultConfig(), *cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: info
module_name: kaleido
allow: ["printd"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "kaleido", cfg.ModuleName)
	assert.Equal(t, []string{"printd"}, cfg.Allow)
	assert.Equal(t, "-", cfg.Stdout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadBytes_SchemaViolation(t *testing.T) {
	_, err := NewLoader().LoadBytes([]byte("log_level: loud\n"))
	var cfgErr *errors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "log_level", cfgErr.Field)
}

func TestLoadBytes_UnknownKey(t *testing.T) {
	_, err := NewLoader().LoadBytes([]byte("precision: 2\n"))
	require.Error(t, err)
}

func TestLoadBytes_StructViolation(t *testing.T) {
	_, err := NewLoader().LoadBytes([]byte("allow: [\"\"]\n"))
	require.Error(t, err)
}
