package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comfygen/pkg/errors"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 8000, cfg.Services.FastAPIPort)
	assert.Equal(t, 8188, cfg.Services.ComfyUIPort)
	assert.Equal(t, 8, cfg.GPU.FallbackMemoryGB)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
work_dir: /data/service
services:
  fastapi_port: 9000
gpu:
  fallback_memory_gb: 16
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/service", cfg.WorkDir)
	assert.Equal(t, 9000, cfg.Services.FastAPIPort)
	assert.Equal(t, 16, cfg.GPU.FallbackMemoryGB)
	// untouched keys keep their defaults
	assert.Equal(t, 8188, cfg.Services.ComfyUIPort)
	assert.Equal(t, "/workspace/ComfyUI", cfg.ComfyUIDir)
}

func TestLoadTOML(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
work_dir = "/data/toml"

[proxy]
max_body_size = "500M"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/toml", cfg.WorkDir)
	assert.Equal(t, "500M", cfg.Proxy.MaxBodySize)
}

func TestLoadJSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"models_dir": "/mnt/models"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/mnt/models", cfg.ModelsDir)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTempConfig(t, "config.ini", "work_dir = /x")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "port out of range",
			content: "services:\n  fastapi_port: 70000\n",
		},
		{
			name:    "colliding ports",
			content: "services:\n  fastapi_port: 8188\n",
		},
		{
			name:    "empty work dir",
			content: "work_dir: \"\"\n",
		},
		{
			name:    "zero fallback memory",
			content: "gpu:\n  fallback_memory_gb: 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, "config.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("no path and no env uses defaults", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		cfg, source, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, "defaults", source)
		assert.Equal(t, DefaultConfig, cfg)
	})

	t.Run("env var supplies the path", func(t *testing.T) {
		path := writeTempConfig(t, "config.yaml", "work_dir: /from-env\n")
		t.Setenv(EnvConfigPath, path)

		cfg, source, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, path, source)
		assert.Equal(t, "/from-env", cfg.WorkDir)
	})

	t.Run("explicit path wins over env", func(t *testing.T) {
		flagPath := writeTempConfig(t, "flag.yaml", "work_dir: /from-flag\n")
		envPath := writeTempConfig(t, "env.yaml", "work_dir: /from-env\n")
		t.Setenv(EnvConfigPath, envPath)

		cfg, source, err := LoadOrDefault(flagPath)
		require.NoError(t, err)
		assert.Equal(t, flagPath, source)
		assert.Equal(t, "/from-flag", cfg.WorkDir)
	})
}
