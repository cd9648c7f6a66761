package cmd

import (
	"fmt"
	"os"
	"time"

	"mdb-pump/internal/csvstore"
	"mdb-pump/internal/dialect"
	"mdb-pump/internal/engine"
	"mdb-pump/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	skipSchema bool
	cleanFirst bool
	dryRun     bool
	withFKs    bool
)

var loadCmd = &cobra.Command{
	Use:   "load <script.sql> <data.csv>",
	Short: "Load a converted table into the active database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scriptPath, csvPath := args[0], args[1]

		raw, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", scriptPath, err)
		}
		script := string(raw)

		// 1. Analyze
		table, err := schema.Analyze(script)
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", scriptPath, err)
		}

		reader, err := csvstore.Open()
		if err != nil {
			return err
		}
		defer reader.Close()

		format := csvstore.Format{
			Delimiter: viper.GetString("export.delimiter"),
			Quote:     viper.GetString("export.quote"),
			Escape:    viper.GetString("export.escape"),
		}
		summary, err := reader.Summarize(cmd.Context(), csvPath, format)
		if err != nil {
			return err
		}
		if summary.Rows > 0 && summary.Columns != len(table.Columns) {
			return fmt.Errorf("%s has %d columns, table %s declares %d", csvPath, summary.Columns, table.Name, len(table.Columns))
		}

		// Dry Run
		if dryRun {
			logrus.Info("[SIMULATION] Dry-Run Mode Active: No data will be written.")
			fmt.Printf("🔍 Analysis Results:\n")
			fmt.Printf("Table %s (%d rows)\n", table.Name, summary.Rows)
			for i, c := range table.Columns {
				fmt.Printf("[%02d] %-30s %s\n", i+1, c.Name, c.DataType)
			}
			return nil
		}

		// 2. Connect
		config, err := GetActiveDBConfig()
		if err != nil {
			return err
		}
		db, err := openDB(config)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Printf("🦅 Connected to %s (%s)\n", config.Name, config.Driver)
		d := dialect.GetDialect(config.Driver)
		start := time.Now()

		// 3. Setup Progress Bar
		onProgress := func() {}
		if summary.Rows > 0 {
			uiprogress.Start()
			bar := uiprogress.AddBar(int(summary.Rows)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Loading " + table.Name + ": "
			})
			onProgress = func() { bar.Incr() }
		}

		// 4. Load
		result, err := engine.Load(cmd.Context(), db, d, engine.LoadRequest{
			Script:      script,
			ApplySchema: !skipSchema,
			Clean:       cleanFirst,
			ForeignKeys: withFKs,
		}, reader.File(csvPath, format), onProgress)

		if summary.Rows > 0 {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		// 5. Verification Step
		verified := engine.Verify(cmd.Context(), db, d, []schema.LoadResult{result})

		// 6. Final Report
		fmt.Println("\n📊 Summary Report:")
		for _, r := range verified {
			icon := "✓"
			if r.Status != "VERIFIED_OK" {
				icon = "!"
			}
			statusDisplay := r.Status
			if statusDisplay == "VERIFIED_OK" {
				statusDisplay = "OK (Verified)"
			}
			fmt.Printf("[%s] %-20s : %d rows (Source: %d) - %s\n", icon, r.TableName, r.Actual, r.Target, statusDisplay)
			if r.ErrorMsg != "" {
				fmt.Printf("    └ Error: %s\n", r.ErrorMsg)
			}
		}
		logrus.WithField("elapsed", time.Since(start)).Info("load done")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loadCmd)

	loadCmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "Insert into the existing table instead of running the script first")
	loadCmd.Flags().BoolVar(&cleanFirst, "clean", false, "Empty the table before loading")
	loadCmd.Flags().BoolVar(&withFKs, "foreign-keys", false, "Create the script's foreign keys after loading (referenced tables must exist)")
	loadCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Analyze script and data without writing to the database")
}
