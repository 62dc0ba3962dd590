// Package cli implements the cpmkit command-line interface: the extract,
// update, validate and logs tools supporting a packages.config to Central
// Package Management migration, plus an MCP server surface.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "cpmkit",
		Short:         "Migrate .NET solutions to Central Package Management",
		Long:          "cpmkit extracts package versions, batch-rewrites project files, validates migration completeness and analyzes build logs for a packages.config to CPM migration.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), verbose)))
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}
