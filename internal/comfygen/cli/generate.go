package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"comfygen/internal/comfygen/generator"
	"comfygen/internal/comfygen/gpu"
	"comfygen/pkg/errors"
)

// generateOptions carries the flag values for one generate invocation.
type generateOptions struct {
	workDir      string
	comfyUIDir   string
	configType   string
	output       string
	domain       string
	workflowType string
}

// NewGenerateCmd creates the generate command. One invocation produces
// exactly one artifact in the working directory and exits.
func NewGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one deployment artifact",
		Long: `Generate a deployment artifact into the working directory.

Examples:
  # Supervisord config
  comfygen generate --config-type supervisor

  # Nginx vhost for a specific domain
  comfygen generate --config-type nginx --domain example.com

  # Docker-compose manifest with a custom output name
  comfygen generate --config-type docker --output compose.yml

  # ComfyUI workflow graph
  comfygen generate --config-type workflow --workflow-type basic

  # GPU tuning parameters for the detected card
  comfygen generate --config-type optimization`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.workDir, "work-dir", "",
		"Working directory artifacts are written to (default from settings)")
	cmd.Flags().StringVar(&opts.comfyUIDir, "comfyui-dir", "",
		"ComfyUI installation directory (default from settings)")
	cmd.Flags().StringVar(&opts.configType, "config-type", "",
		"Artifact to generate: supervisor|nginx|docker|workflow|optimization")
	cmd.Flags().StringVar(&opts.output, "output", "",
		"Output filename override")
	cmd.Flags().StringVar(&opts.domain, "domain", "",
		"Server domain (nginx config only; empty means wildcard)")
	cmd.Flags().StringVar(&opts.workflowType, "workflow-type", generator.DefaultWorkflowVariant,
		"Workflow variant name")
	_ = cmd.MarkFlagRequired("config-type")

	return cmd
}

func runGenerate(opts *generateOptions) error {
	prober := gpu.NewProber(gpu.DefaultRunner(), appConfig.GPU.FallbackMemoryGB, appLogger)
	gen := generator.New(appConfig, opts.workDir, opts.comfyUIDir, prober.MemoryGB(), appLogger)

	var (
		output string
		err    error
	)

	switch opts.configType {
	case "supervisor":
		output = defaultName(opts.output, "supervisord.conf")
		err = gen.Persist(gen.SupervisorConfig(), output, generator.FormatINI)
	case "nginx":
		output = defaultName(opts.output, "nginx_site.conf")
		err = gen.Persist(gen.NginxConfig(opts.domain), output, generator.FormatText)
	case "docker":
		output = defaultName(opts.output, "docker-compose.yml")
		err = gen.Persist(gen.ComposeManifest(), output, generator.FormatYAML)
	case "workflow":
		output = defaultName(opts.output, fmt.Sprintf("workflow_%s.json", opts.workflowType))
		workflow := gen.Workflow(opts.workflowType)
		if err = workflow.Validate(); err == nil {
			err = gen.Persist(workflow, output, generator.FormatJSON)
		}
	case "optimization":
		output = defaultName(opts.output, "gpu_optimization.json")
		err = gen.Persist(gen.TuningProfile(), output, generator.FormatJSON)
	default:
		return fmt.Errorf("%w: %q (expected supervisor|nginx|docker|workflow|optimization)",
			errors.ErrUnknownConfigType, opts.configType)
	}

	if err != nil {
		return fmt.Errorf("generate %s: %w", opts.configType, err)
	}

	fmt.Printf("%s configuration written to %s\n", opts.configType, filepath.Join(gen.WorkDir, output))
	return nil
}

func defaultName(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
