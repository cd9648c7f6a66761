package cmd

import (
	"fmt"
	"os"

	"mdb-pump/internal/schema"

	"github.com/spf13/cobra"
)

var (
	targetTable string
	outputFile  string
)

var schemaCmd = &cobra.Command{
	Use:   "schema <file.mdb> <table>",
	Short: "Print the rewritten schema script of a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := targetName(args[1], targetTable)

		script, err := newTools().ColumnDefinition(cmd.Context(), args[0], args[1], target)
		if err != nil {
			return err
		}

		if outputFile == "" {
			fmt.Print(script)
			return nil
		}
		if err := os.WriteFile(outputFile, []byte(script), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
		fmt.Printf("✓ %s -> %s\n", args[1], outputFile)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringVarP(&targetTable, "target-table", "t", "", "Name of the table in the target database (default: sanitized source name)")
	schemaCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the script to a file instead of stdout")
}

// targetName falls back to the sanitized source table name.
func targetName(source, target string) string {
	if target != "" {
		return target
	}
	return schema.FixColumnName(source)
}
