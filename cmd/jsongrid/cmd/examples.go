package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jsongrid/backend/internal/services"
)

// NewExamplesCommand returns the examples command
func NewExamplesCommand() (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:   "examples [label]",
		Short: "List the built-in examples or print one of them",
		Example: `jsongrid examples
jsongrid examples "Nested arrays in objects" | jsongrid parse`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) == 1 {
				ex, ok := services.FindExample(args[0])
				if !ok {
					return fmt.Errorf("unknown example %q", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), ex.Value)
				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Label", "Mode"})
			for _, ex := range services.Examples() {
				table.Append([]string{ex.Label, string(ex.Mode)})
			}
			table.Render()
			return nil
		},
	}
	return cmd
}
