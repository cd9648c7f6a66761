package dialect

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDialect struct{}

func (d *SQLiteDialect) TranslateDDL(stmt string) (string, bool) {
	// SQLite cannot add constraints to an existing table.
	if strings.HasPrefix(stmt, "ALTER TABLE ") && strings.Contains(stmt, " ADD CONSTRAINT ") {
		return "", false
	}
	return stmt, true
}

func (d *SQLiteDialect) BeforeLoad(tx *sql.Tx, tableName string) error {
	_, err := tx.Exec("PRAGMA defer_foreign_keys = ON")
	return err
}

func (d *SQLiteDialect) AfterLoad(tx *sql.Tx, tableName string) error {
	return nil
}

func (d *SQLiteDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

// SQLite has no TRUNCATE.
func (d *SQLiteDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("DELETE FROM %s", table)
}

func (d *SQLiteDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *SQLiteDialect) Placeholder(index int) string {
	return "?"
}
