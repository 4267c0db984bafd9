package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWTCTL_LOG_LEVEL", "")
	os.Unsetenv("JWTCTL_LOG_LEVEL")
	t.Setenv("JWTCTL_PEM_PASSWORD", "")
	os.Unsetenv("JWTCTL_PEM_PASSWORD")
	t.Setenv("JWTCTL_OUTPUT_FORMAT", "")
	os.Unsetenv("JWTCTL_OUTPUT_FORMAT")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.PEMPassword)
	assert.Equal(t, FormatStandard, cfg.OutputFormat)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWTCTL_LOG_LEVEL", "debug")
	t.Setenv("JWTCTL_PEM_PASSWORD", "from-env")
	t.Setenv("JWTCTL_OUTPUT_FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from-env", cfg.PEMPassword)
	assert.Equal(t, FormatJSON, cfg.OutputFormat)
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("JWTCTL_LOG_LEVEL", "error")
	t.Setenv("JWTCTL_PEM_PASSWORD", "")
	os.Unsetenv("JWTCTL_PEM_PASSWORD")

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("JWTCTL_LOG_LEVEL=info\nJWTCTL_PEM_PASSWORD=from-file\n"), 0o600))

	cfg, err := Load(file)
	require.NoError(t, err)

	// variables already set win over the file
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "from-file", cfg.PEMPassword)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{LogLevel: "info", OutputFormat: FormatJSON}, ""},
		{"bad level", Config{LogLevel: "loud", OutputFormat: FormatStandard}, "JWTCTL_LOG_LEVEL"},
		{"bad format", Config{LogLevel: "warn", OutputFormat: "yaml"}, "JWTCTL_OUTPUT_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
