// Package cmd implements the jsongrid command line interface.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsongrid/backend/internal/logger"
	"github.com/jsongrid/backend/internal/services"
)

// NewCommand returns the root command for the jsongrid CLI
func NewCommand() (cmd *cobra.Command) {
	var logLevel string
	parser := services.NewParserService()

	cmd = &cobra.Command{
		Use:           "jsongrid",
		Short:         "Turn JSON documents and IIS logs into tables",
		Long:          `jsongrid flattens JSON documents and W3C extended logs into rows and columns and prints them as a table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Initialize(logger.Options{Level: logLevel, Output: cmd.ErrOrStderr()})
		},
	}

	cmd.AddCommand(
		NewParseCommand(parser),
		NewFixCommand(),
		NewExamplesCommand(),
		NewHashPasswordCommand(),
	)

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "Log level (DEBUG, INFO, WARN, ERROR)")

	return cmd
}

// readInput reads the file named by args[0], or stdin when no file or "-"
// is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}
