package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"mdb-pump/internal/dialect"
	"mdb-pump/internal/schema"

	"github.com/sirupsen/logrus"
)

// RowSource yields the rows of an exported table in file order.
type RowSource interface {
	Each(ctx context.Context, fn func(values []any) error) error
}

type LoadRequest struct {
	// Script is the rewritten schema script of the table.
	Script string
	// ApplySchema runs the script before loading (drop + create).
	ApplySchema bool
	// Clean empties the table before loading.
	Clean bool
	// ForeignKeys runs the script's FOREIGN KEY constraints after the rows
	// are inserted. Skipped otherwise.
	ForeignKeys bool
}

// Load inserts every row of rows into the table declared by req.Script,
// inside a single transaction. Any failed row aborts the load.
//
// MySQL and Oracle commit DROP, CREATE and TRUNCATE implicitly, so on those
// targets a failed load leaves the table recreated or emptied.
func Load(ctx context.Context, db *sql.DB, d dialect.Dialect, req LoadRequest, rows RowSource, onProgress func()) (result schema.LoadResult, err error) {
	table, err := schema.Analyze(req.Script)
	if err != nil {
		return result, err
	}
	log := logrus.WithField("table", table.Name)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// 1. Schema
	var foreignKeys []string
	if req.ApplySchema {
		if foreignKeys, err = applyScript(ctx, tx, d, req.Script, log); err != nil {
			return result, err
		}
	}

	// 2. Clean
	if req.Clean {
		log.Info("cleaning table")
		if _, err = tx.ExecContext(ctx, d.TruncateQuery(table.Name)); err != nil {
			return result, fmt.Errorf("failed to clean %s: %w", table.Name, err)
		}
	}

	var initialCount int
	if err = tx.QueryRowContext(ctx, d.CountQuery(table.Name)).Scan(&initialCount); err != nil {
		return result, fmt.Errorf("failed to count rows of %s: %w", table.Name, err)
	}

	if err = d.BeforeLoad(tx, table.Name); err != nil {
		return result, fmt.Errorf("BeforeLoad hook failed for %s: %w", table.Name, err)
	}

	// 3. Rows
	cols := table.ColumnNames()
	stmt, err := tx.PrepareContext(ctx, d.InsertQuery(table.Name, cols))
	if err != nil {
		return result, fmt.Errorf("failed to prepare insert into %s: %w", table.Name, err)
	}
	defer stmt.Close()

	read := 0
	err = rows.Each(ctx, func(values []any) error {
		read++
		if len(values) != len(cols) {
			return fmt.Errorf("row %d has %d fields, table %s has %d columns", read, len(values), table.Name, len(cols))
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", read, table.Name, err)
		}
		if onProgress != nil {
			onProgress()
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	if err = d.AfterLoad(tx, table.Name); err != nil {
		return result, fmt.Errorf("AfterLoad hook failed for %s: %w", table.Name, err)
	}

	// 4. Relationships
	for _, stmt := range foreignKeys {
		if !req.ForeignKeys {
			log.WithField("statement", stmt).Warn("skipping foreign key")
			continue
		}
		if err = execDDL(ctx, tx, d, stmt, log); err != nil {
			return result, err
		}
	}

	var finalCount int
	if err = tx.QueryRowContext(ctx, d.CountQuery(table.Name)).Scan(&finalCount); err != nil {
		return result, fmt.Errorf("failed to count rows of %s: %w", table.Name, err)
	}

	if err = tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit load of %s: %w", table.Name, err)
	}

	result = schema.LoadResult{
		TableName: table.Name,
		Target:    read,
		Actual:    finalCount - initialCount,
		Status:    "OK",
	}
	if result.Actual < result.Target {
		result.Status = "MISSING DATA"
		result.ErrorMsg = fmt.Sprintf("Only inserted %d out of %d.", result.Actual, result.Target)
	}
	log.WithField("rows", result.Actual).Info("load done")
	return result, nil
}

// applyScript runs the script statements except FOREIGN KEY constraints,
// which are returned for the caller to run once the rows are in.
func applyScript(ctx context.Context, tx *sql.Tx, d dialect.Dialect, script string, log logrus.FieldLogger) ([]string, error) {
	var foreignKeys []string
	for _, stmt := range schema.Statements(script) {
		if isForeignKey(stmt) {
			foreignKeys = append(foreignKeys, stmt)
			continue
		}
		if err := execDDL(ctx, tx, d, stmt, log); err != nil {
			return nil, err
		}
	}
	return foreignKeys, nil
}

func execDDL(ctx context.Context, tx *sql.Tx, d dialect.Dialect, stmt string, log logrus.FieldLogger) error {
	translated, ok := d.TranslateDDL(stmt)
	if !ok {
		log.WithField("statement", stmt).Warn("statement not supported by target, skipping")
		return nil
	}
	if _, err := tx.ExecContext(ctx, translated); err != nil {
		return fmt.Errorf("failed to apply schema statement %q: %w", translated, err)
	}
	return nil
}

func isForeignKey(stmt string) bool {
	upper := strings.ToUpper(stmt)
	return strings.HasPrefix(upper, "ALTER TABLE ") && strings.Contains(upper, " FOREIGN KEY ")
}

// Verify re-counts each loaded table after commit.
func Verify(ctx context.Context, db *sql.DB, d dialect.Dialect, results []schema.LoadResult) []schema.LoadResult {
	var verifiedResults []schema.LoadResult
	for _, res := range results {
		var currentCount int
		err := db.QueryRowContext(ctx, d.CountQuery(res.TableName)).Scan(&currentCount)

		status := "VERIFIED_OK"
		if err != nil {
			status = fmt.Sprintf("VERIFY_FAIL: %v", err)
		} else if currentCount < res.Target {
			status = fmt.Sprintf("PARTIAL: %d/%d", currentCount, res.Target)
		}

		verifiedResults = append(verifiedResults, schema.LoadResult{
			TableName: res.TableName,
			Target:    res.Target,
			Actual:    currentCount,
			Status:    status,
			ErrorMsg:  res.ErrorMsg,
		})
	}
	return verifiedResults
}
