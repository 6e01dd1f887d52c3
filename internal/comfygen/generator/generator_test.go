package generator

import (
	"github.com/rs/zerolog"

	"comfygen/pkg/config"
)

func testConfig() config.Config {
	return config.DefaultConfig
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func newTestGenerator(workDir string, gpuMemoryGB int) *Generator {
	return New(testConfig(), workDir, "", gpuMemoryGB, testLogger())
}
