package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"comfygen/pkg/errors"
)

// EnvConfigPath names the environment variable that points at a settings
// file when --config is not given.
const EnvConfigPath = "COMFYGEN_CONFIG"

// Config holds the complete generator configuration
type Config struct {
	WorkDir    string         `yaml:"work_dir" json:"work_dir" toml:"work_dir"`
	ComfyUIDir string         `yaml:"comfyui_dir" json:"comfyui_dir" toml:"comfyui_dir"`
	ModelsDir  string         `yaml:"models_dir" json:"models_dir" toml:"models_dir"`
	Services   ServicesConfig `yaml:"services" json:"services" toml:"services"`
	Proxy      ProxyConfig    `yaml:"proxy" json:"proxy" toml:"proxy"`
	GPU        GPUConfig      `yaml:"gpu" json:"gpu" toml:"gpu"`
	Logging    LoggingConfig  `yaml:"logging" json:"logging" toml:"logging"`
}

// ServicesConfig holds the backend service ports the generated configs
// route to
type ServicesConfig struct {
	FastAPIPort int `yaml:"fastapi_port" json:"fastapi_port" toml:"fastapi_port"`
	ComfyUIPort int `yaml:"comfyui_port" json:"comfyui_port" toml:"comfyui_port"`
}

// ProxyConfig holds reverse-proxy tuning knobs used by the nginx artifact
type ProxyConfig struct {
	MaxBodySize       string `yaml:"max_body_size" json:"max_body_size" toml:"max_body_size"`
	APITimeoutSec     int    `yaml:"api_timeout_sec" json:"api_timeout_sec" toml:"api_timeout_sec"`
	ComfyUITimeoutSec int    `yaml:"comfyui_timeout_sec" json:"comfyui_timeout_sec" toml:"comfyui_timeout_sec"`
}

// GPUConfig holds GPU probing configuration
type GPUConfig struct {
	FallbackMemoryGB int `yaml:"fallback_memory_gb" json:"fallback_memory_gb" toml:"fallback_memory_gb"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" toml:"level"`
}

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	WorkDir:    "/my-hybrid-service",
	ComfyUIDir: "/workspace/ComfyUI",
	ModelsDir:  "/models",
	Services: ServicesConfig{
		FastAPIPort: 8000,
		ComfyUIPort: 8188,
	},
	Proxy: ProxyConfig{
		MaxBodySize:       "100M",
		APITimeoutSec:     60,
		ComfyUITimeoutSec: 300,
	},
	GPU: GPUConfig{
		FallbackMemoryGB: 8,
	},
	Logging: LoggingConfig{
		Level: "info",
	},
}

// Load reads a settings file based on its extension, layered over the
// defaults. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := DefaultConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: unsupported config extension %q", errors.ErrInvalidConfig, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault resolves the settings source: the explicit path if given,
// else the COMFYGEN_CONFIG environment variable, else built-in defaults.
// The returned string names the source actually used.
func LoadOrDefault(path string) (Config, string, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return DefaultConfig, "defaults", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Validate checks the configuration for values the generators cannot work
// with.
func (c *Config) Validate() error {
	if c.WorkDir == "" {
		return fmt.Errorf("%w: work_dir must not be empty", errors.ErrInvalidConfig)
	}
	if c.ComfyUIDir == "" {
		return fmt.Errorf("%w: comfyui_dir must not be empty", errors.ErrInvalidConfig)
	}
	if c.Services.FastAPIPort <= 0 || c.Services.FastAPIPort > 65535 {
		return fmt.Errorf("%w: fastapi_port %d out of range", errors.ErrInvalidConfig, c.Services.FastAPIPort)
	}
	if c.Services.ComfyUIPort <= 0 || c.Services.ComfyUIPort > 65535 {
		return fmt.Errorf("%w: comfyui_port %d out of range", errors.ErrInvalidConfig, c.Services.ComfyUIPort)
	}
	if c.Services.FastAPIPort == c.Services.ComfyUIPort {
		return fmt.Errorf("%w: fastapi_port and comfyui_port must differ", errors.ErrInvalidConfig)
	}
	if c.GPU.FallbackMemoryGB <= 0 {
		return fmt.Errorf("%w: fallback_memory_gb must be positive", errors.ErrInvalidConfig)
	}
	if c.Proxy.APITimeoutSec <= 0 || c.Proxy.ComfyUITimeoutSec <= 0 {
		return fmt.Errorf("%w: proxy timeouts must be positive", errors.ErrInvalidConfig)
	}
	return nil
}
