// File: cmd/schema.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/expectlint/internal/config"
	"github.com/xkilldash9x/expectlint/internal/reporting"
)

// newSchemaCmd creates the `schema` command, which prints the JSON Schemas
// that pin the tool's external contracts.
func newSchemaCmd() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema [rule-options|report]",
		Short: "Prints the JSON Schema for rule options or the JSON report format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "rule-options"
			if len(args) == 1 {
				which = args[0]
			}
			switch which {
			case "rule-options":
				fmt.Fprintln(cmd.OutOrStdout(), config.RuleOptionsSchema)
			case "report":
				fmt.Fprintln(cmd.OutOrStdout(), reporting.ReportSchema)
			default:
				return fmt.Errorf("unknown schema %q (want rule-options or report)", which)
			}
			return nil
		},
	}
	return schemaCmd
}
