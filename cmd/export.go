package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.mdb> <table> <output.csv>",
	Short: "Export the rows of a table as CSV",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newTools().ExtractTable(cmd.Context(), args[0], args[1], args[2], exportOptions())
		if err != nil {
			return err
		}
		fmt.Printf("✓ %s -> %s\n", args[1], out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)
}
