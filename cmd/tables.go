package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <file.mdb>",
	Short: "List the tables of an Access database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := newTools().ListTables(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for i, t := range tables {
			fmt.Printf("[%02d] %s\n", i+1, t)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
