package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/jsongrid/backend/internal/models"
	"github.com/jsongrid/backend/internal/services"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// NewParseCommand returns the parse command
func NewParseCommand(parser *services.ParserService) (cmd *cobra.Command) {
	var mode string
	var output string
	var collapse []int

	cmd = &cobra.Command{
		Use:     "parse [file|-]",
		Short:   "Parse JSON or an IIS log into a table",
		Example: `jsongrid parse orders.json --collapse 1,3
cat u_ex240315.log | jsongrid parse --mode log --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			m, err := models.ParseMode(mode)
			if err != nil {
				return err
			}
			if output != outputTable && output != outputJSON {
				return fmt.Errorf("invalid output %q (expected %s or %s)", output, outputTable, outputJSON)
			}

			text, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			result := parser.Parse(text, m)

			if output == outputJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else if !result.Failed() {
				collapsed := make(services.CollapseSet, len(collapse))
				for _, id := range collapse {
					collapsed.Collapse(id)
				}
				renderTable(cmd.OutOrStdout(), result.Columns, services.VisibleRows(result.Rows, collapsed))
			}

			if result.Failed() {
				return errors.New(result.Error.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(models.ModeJSON), "Input mode (json or log)")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format (table or json)")
	cmd.Flags().IntSliceVar(&collapse, "collapse", []int{}, "Parent IDs whose child rows are hidden")

	return cmd
}

// renderTable prints rows under their column headers. Cells a row lacks are
// left blank.
func renderTable(w io.Writer, columns []models.Column, rows []models.Row) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.HeaderName
	}
	table.SetHeader(header)

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if v, ok := row.Fields.Get(col.Field); ok {
				cells[i] = v.String()
			}
		}
		table.Append(cells)
	}
	table.Render()
}
