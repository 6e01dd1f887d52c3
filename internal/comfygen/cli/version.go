package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"comfygen/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(version.GetLongVersion())
		},
	}
}
