// Package generator builds the deployment artifacts for the hybrid
// ComfyUI + FastAPI service: supervisord config, nginx vhost,
// docker-compose manifest, ComfyUI workflow graphs, and GPU tuning
// parameters. Every generator is a pure function of the Generator state;
// disk access is confined to Persist.
package generator

import (
	"github.com/rs/zerolog"

	"comfygen/pkg/config"
)

// Generator holds the immutable inputs shared by all artifact builders.
// Construct it once per invocation and do not mutate it afterwards.
type Generator struct {
	WorkDir     string
	ComfyUIDir  string
	GPUMemoryGB int

	cfg    config.Config
	logger zerolog.Logger
}

// New creates a generator. workDir and comfyUIDir override the configured
// directories when non-empty; gpuMemoryGB is the probed (or fallback)
// reading.
func New(cfg config.Config, workDir, comfyUIDir string, gpuMemoryGB int, logger zerolog.Logger) *Generator {
	if workDir == "" {
		workDir = cfg.WorkDir
	}
	if comfyUIDir == "" {
		comfyUIDir = cfg.ComfyUIDir
	}
	return &Generator{
		WorkDir:     workDir,
		ComfyUIDir:  comfyUIDir,
		GPUMemoryGB: gpuMemoryGB,
		cfg:         cfg,
		logger:      logger.With().Str("component", "generator").Logger(),
	}
}
