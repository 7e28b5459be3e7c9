package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("URSA_DEBUG", "")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "", cfg.TmuxPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "attach", cfg.DefaultAction)
	assert.True(t, cfg.Details())
	assert.Equal(t, "ursa.log", filepath.Base(cfg.LogFile))
}

func TestLoadFile(t *testing.T) {
	t.Setenv("URSA_DEBUG", "")
	t.Setenv("HOME", "/home/tester")
	path := writeConfig(t, `
tmux_path: /opt/tmux/bin/tmux
log_file: ~/logs/ursa.log
log_level: WARN
default_action: rename
show_details: false
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/tmux/bin/tmux", cfg.TmuxPath)
	assert.Equal(t, "/home/tester/logs/ursa.log", cfg.LogFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "rename", cfg.DefaultAction)
	assert.False(t, cfg.Details())
}

func TestLoadFileKeepsDefaultsForUnsetKeys(t *testing.T) {
	t.Setenv("URSA_DEBUG", "")
	cfg, err := LoadFile(writeConfig(t, "tmux_path: /usr/bin/tmux\n"))
	require.NoError(t, err)
	assert.Equal(t, "attach", cfg.DefaultAction)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Details())
}

func TestLoadFileInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "tmux_path: [unclosed"},
		{"bad log level", "log_level: loud\n"},
		{"bad action", "default_action: explode\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDebugEnv(t *testing.T) {
	t.Setenv("URSA_DEBUG", "1")
	cfg, err := LoadFile(writeConfig(t, "log_level: error\n"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/ursa/config.yaml", Path())
}
