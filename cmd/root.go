package cmd

import (
	"contextgen/pkg/logging"
	"contextgen/pkg/version"

	"github.com/spf13/cobra"
)

var debugLogging bool

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "contextgen",
	Short: "contextgen is a CLI tool for generating AI context documents",
	Long: `contextgen walks a project directory and concatenates its documentation and
source files into one or more Markdown documents, sized for pasting into an
AI assistant as project context.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(debugLogging, "contextgen", version.Version)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
}
