package mdbtools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"mdb-pump/internal/schema"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Tools drives the mdbtools utilities for a single source table at a time.
type Tools struct {
	cfg    Config
	runner Runner
	log    logrus.FieldLogger
}

func New(cfg Config, runner Runner, logger logrus.FieldLogger) *Tools {
	d := DefaultConfig()
	if cfg.ExportBin == "" {
		cfg.ExportBin = d.ExportBin
	}
	if cfg.SchemaBin == "" {
		cfg.SchemaBin = d.SchemaBin
	}
	if cfg.TablesBin == "" {
		cfg.TablesBin = d.TablesBin
	}
	if cfg.Backend == "" {
		cfg.Backend = d.Backend
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Tools{cfg: cfg, runner: runner, log: logger}
}

// ListTables returns the user tables in the source file, one per line of
// mdb-tables -1 output.
func (t *Tools) ListTables(ctx context.Context, mdbPath string) ([]string, error) {
	var out bytes.Buffer
	if err := t.runner.Run(ctx, &out, t.cfg.TablesBin, "-1", mdbPath); err != nil {
		return nil, fmt.Errorf("failed to list tables of %s: %w", mdbPath, err)
	}

	var tables []string
	for _, line := range strings.Split(out.String(), "\n") {
		if name := strings.TrimRight(line, "\r"); name != "" {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

// ExportTable streams the rows of table as CSV into w.
func (t *Tools) ExportTable(ctx context.Context, mdbPath, table string, w io.Writer, opts ExportOptions) error {
	if err := t.runner.Run(ctx, w, t.cfg.ExportBin, opts.args(mdbPath, table)...); err != nil {
		return fmt.Errorf("failed to export %s from %s: %w", table, mdbPath, err)
	}
	return nil
}

// ExtractTable exports inputTable into outputPath. Rows are written to a
// sibling partial file first so a failed export never leaves a truncated
// CSV behind.
func (t *Tools) ExtractTable(ctx context.Context, mdbPath, inputTable, outputPath string, opts ExportOptions) (string, error) {
	partial := fmt.Sprintf("%s.%s.partial", outputPath, uuid.NewString())

	sink, err := os.Create(partial)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", partial, err)
	}

	err = t.ExportTable(ctx, mdbPath, inputTable, sink, opts)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", partial, cerr)
	}
	if err == nil {
		err = os.Rename(partial, outputPath)
	}
	if err != nil {
		os.Remove(partial)
		return "", err
	}

	t.log.WithFields(logrus.Fields{
		"table":  inputTable,
		"source": mdbPath,
		"output": outputPath,
	}).Info("successfully extracted table")
	return outputPath, nil
}

// ColumnDefinition fetches the DDL of mdbTable and rewrites it for the
// target, renaming the table to targetTable.
func (t *Tools) ColumnDefinition(ctx context.Context, mdbPath, mdbTable, targetTable string) (string, error) {
	t.log.WithFields(logrus.Fields{
		"source": mdbPath,
		"table":  mdbTable,
		"target": targetTable,
	}).Info("fetching column definition")

	tables, err := t.ListTables(ctx, mdbPath)
	if err != nil {
		return "", err
	}
	if !slices.Contains(tables, mdbTable) {
		return "", &TableNotFoundError{Table: mdbTable, Available: tables}
	}

	var out bytes.Buffer
	if err := t.runner.Run(ctx, &out, t.cfg.SchemaBin, schemaArgs(mdbPath, mdbTable, t.cfg.Backend)...); err != nil {
		return "", fmt.Errorf("failed to fetch schema of %s from %s: %w", mdbTable, mdbPath, err)
	}
	return schema.FixColumnDefinition(out.String(), mdbTable, targetTable), nil
}
