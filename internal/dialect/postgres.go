package dialect

import (
	"database/sql"
	"fmt"
)

// PostgresDialect runs the script as produced; mdb-schema already emitted
// postgres DDL.
type PostgresDialect struct{}

func (d *PostgresDialect) TranslateDDL(stmt string) (string, bool) {
	return stmt, true
}

func (d *PostgresDialect) BeforeLoad(tx *sql.Tx, tableName string) error {
	// Use DEFERRED constraints so rows referencing each other can load in file order.
	// This works for foreign keys defined as DEFERRABLE.
	_, err := tx.Exec("SET CONSTRAINTS ALL DEFERRED")
	return err
}

func (d *PostgresDialect) AfterLoad(tx *sql.Tx, tableName string) error {
	_, err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE")
	return err
}

func (d *PostgresDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

func (d *PostgresDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", table)
}

func (d *PostgresDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}
