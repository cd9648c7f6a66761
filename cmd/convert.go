package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mdb-pump/internal/mdbtools"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	convertTarget string
	outDir        string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.mdb> <table>",
	Short: "Export a table as CSV and write its schema script next to it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mdbPath, table := args[0], args[1]
		target := targetName(table, convertTarget)
		start := time.Now()

		scriptPath, csvPath, err := convertTable(cmd.Context(), newTools(), mdbPath, table, target, outDir, exportOptions())
		if err != nil {
			return err
		}

		fmt.Println("\n📊 Conversion Report:")
		fmt.Printf("  table  : %s -> %s\n", table, target)
		fmt.Printf("  schema : %s\n", scriptPath)
		fmt.Printf("  data   : %s\n", csvPath)
		logrus.WithField("elapsed", time.Since(start)).Info("conversion done")
		return nil
	},
}

// convertTable writes <target>.csv and <target>.sql into dir. The script is
// only written once the export succeeded.
func convertTable(ctx context.Context, tools *mdbtools.Tools, mdbPath, table, target, dir string, opts mdbtools.ExportOptions) (scriptPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// 1. Schema (fails early when the table does not exist)
	script, err := tools.ColumnDefinition(ctx, mdbPath, table, target)
	if err != nil {
		return "", "", err
	}

	// 2. Rows
	csvPath, err = tools.ExtractTable(ctx, mdbPath, table, filepath.Join(dir, target+".csv"), opts)
	if err != nil {
		return "", "", err
	}

	scriptPath = filepath.Join(dir, target+".sql")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}
	return scriptPath, csvPath, nil
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertTarget, "target-table", "t", "", "Name of the table in the target database (default: sanitized source name)")
	convertCmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory receiving <target>.sql and <target>.csv")
}
