// Package gpu probes the total memory of the first NVIDIA GPU via
// nvidia-smi. The reading drives the memory-tiered tuning profile; every
// failure mode degrades to a configured fallback so generation never
// blocks on missing hardware.
package gpu

import (
	"bufio"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"comfygen/pkg/errors"
)

// Runner executes an external command and returns its combined output.
// It exists so tests can substitute a fake nvidia-smi.
type Runner interface {
	CombinedOutput(name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) CombinedOutput(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// DefaultRunner returns a Runner backed by os/exec.
func DefaultRunner() Runner {
	return execRunner{}
}

// Prober queries nvidia-smi once for the total memory of the first GPU.
type Prober struct {
	runner     Runner
	fallbackGB int
	logger     zerolog.Logger
}

// NewProber creates a prober that substitutes fallbackGB whenever the
// query fails.
func NewProber(runner Runner, fallbackGB int, logger zerolog.Logger) *Prober {
	return &Prober{
		runner:     runner,
		fallbackGB: fallbackGB,
		logger:     logger.With().Str("component", "gpu-probe").Logger(),
	}
}

// MemoryGB returns the total memory of the first GPU in whole gigabytes.
// A missing binary, non-zero exit, or unparseable output all fall back to
// the configured default with a logged warning.
func (p *Prober) MemoryGB() int {
	mib, err := p.queryMemoryMiB()
	if err != nil {
		p.logger.Warn().Err(err).Int("fallback_gb", p.fallbackGB).
			Msg("could not determine GPU memory, using fallback")
		return p.fallbackGB
	}

	gb := int(mib / 1024)
	p.logger.Debug().Int64("memory_mib", mib).Int("memory_gb", gb).Msg("detected GPU memory")
	return gb
}

func (p *Prober) queryMemoryMiB() (int64, error) {
	out, err := p.runner.CombinedOutput("nvidia-smi",
		"--query-gpu=memory.total",
		"--format=csv,noheader,nounits")
	if err != nil {
		return 0, &errors.ProbeError{Command: "nvidia-smi", Err: err}
	}
	return parseMemoryMiB(string(out))
}

// parseMemoryMiB takes the first non-empty line of nvidia-smi CSV output.
// With nounits that is a bare MiB number, but a trailing unit token is
// tolerated because driver versions differ.
func parseMemoryMiB(output string) (int64, error) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		value, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, &errors.ProbeError{
				Command: "nvidia-smi",
				Err:     fmt.Errorf("unparseable memory value %q", line),
			}
		}
		if value <= 0 {
			return 0, &errors.ProbeError{
				Command: "nvidia-smi",
				Err:     fmt.Errorf("non-positive memory value %q", line),
			}
		}
		return value, nil
	}
	return 0, &errors.ProbeError{
		Command: "nvidia-smi",
		Err:     fmt.Errorf("empty output"),
	}
}
