// Package cli wires the comfygen command tree.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"comfygen/pkg/config"
	"comfygen/pkg/logger"
)

var (
	configPath string
	logLevel   string

	// resolved in PersistentPreRunE, read by the subcommands
	appConfig config.Config
	appLogger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "comfygen",
	Short: "Deployment configuration generator for the hybrid ComfyUI + FastAPI service",
	Long: `comfygen generates the static deployment artifacts for a GPU-based
image-generation service: supervisord config, nginx virtual host,
docker-compose manifest, ComfyUI workflow graphs, and GPU tuning
parameters.

Examples:
  comfygen generate --config-type supervisor --work-dir /srv/hybrid
  comfygen generate --config-type nginx --domain example.com
  comfygen generate --config-type workflow --workflow-type img2img`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, source, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		appConfig = cfg
		appLogger = logger.New(cfg.Logging.Level)
		appLogger.Debug().Str("source", source).Msg("settings loaded")
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a settings file (.yaml/.json/.toml); defaults to $"+config.EnvConfigPath+" or built-in defaults")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug|info|warn|error")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewVersionCmd())
}
