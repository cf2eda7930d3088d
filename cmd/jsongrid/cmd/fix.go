package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsongrid/backend/internal/services"
)

// NewFixCommand returns the fix command
func NewFixCommand() (cmd *cobra.Command) {
	cmd = &cobra.Command{
		Use:     "fix [file|-]",
		Short:   "Quote bare object keys in hand-written JSON",
		Example: `echo '[{id:1, name:"a"}]' | jsongrid fix`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			text, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), services.RepairJSON(text))
			return nil
		},
	}
	return cmd
}
