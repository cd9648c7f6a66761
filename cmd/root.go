package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"mdb-pump/internal/mdbtools"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "mdb-pump",
	Short: "Convert Access tables to CSV and a portable schema script",
	Long: `
  __  __ ____  ____    ____  _   _ __  __ ____
 |  \/  |  _ \| __ )  |  _ \| | | |  \/  |  _ \
 | |\/| | | | |  _ \  | |_) | | | | |\/| | |_) |
 | |  | | |_| | |_) | |  __/| |_| | |  | |  __/
 |_|  |_|____/|____/  |_|    \___/|_|  |_|_|

MDB PUMP 🦅 - Access table exporter built on mdbtools
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(viper.GetString("log.level"))
		if err != nil {
			return fmt.Errorf("invalid log.level: %w", err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mdb-pump.yaml)")
	RootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	RootCmd.PersistentFlags().String("delimiter", "", "CSV column delimiter (overrides config)")
	RootCmd.PersistentFlags().String("escape", "", "character escaping quotes inside a CSV field (overrides config)")

	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("export.delimiter", RootCmd.PersistentFlags().Lookup("delimiter"))
	viper.BindPFlag("export.escape", RootCmd.PersistentFlags().Lookup("escape"))

	// Defaults (fallback if no config/flag)
	tools := mdbtools.DefaultConfig()
	viper.SetDefault("mdbtools.export_bin", tools.ExportBin)
	viper.SetDefault("mdbtools.schema_bin", tools.SchemaBin)
	viper.SetDefault("mdbtools.tables_bin", tools.TablesBin)
	viper.SetDefault("mdbtools.backend", tools.Backend)

	export := mdbtools.DefaultExportOptions()
	viper.SetDefault("export.delimiter", export.Delimiter)
	viper.SetDefault("export.escape", export.Escape)
	viper.SetDefault("export.quote", export.Quote)
	viper.SetDefault("export.date_format", export.DateFormat)
	viper.SetDefault("export.row_delimiter", export.RowDelimiter)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("mdb-pump")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// newTools builds the mdbtools wrapper from the current configuration.
func newTools() *mdbtools.Tools {
	logger := logrus.StandardLogger()
	return mdbtools.New(mdbtools.Config{
		ExportBin: viper.GetString("mdbtools.export_bin"),
		SchemaBin: viper.GetString("mdbtools.schema_bin"),
		TablesBin: viper.GetString("mdbtools.tables_bin"),
		Backend:   viper.GetString("mdbtools.backend"),
	}, mdbtools.ExecRunner{Logger: logger}, logger)
}

func exportOptions() mdbtools.ExportOptions {
	return mdbtools.ExportOptions{
		Delimiter:    viper.GetString("export.delimiter"),
		Escape:       viper.GetString("export.escape"),
		Quote:        viper.GetString("export.quote"),
		DateFormat:   viper.GetString("export.date_format"),
		RowDelimiter: viper.GetString("export.row_delimiter"),
	}
}
