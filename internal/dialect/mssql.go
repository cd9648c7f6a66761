package dialect

import (
	"database/sql"
	"fmt"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

var mssqlTypes = []typeRule{
	rule(`^CREATE TABLE IF NOT EXISTS\b`, "CREATE TABLE"),
	rule(`\bTIMESTAMP WITHOUT TIME ZONE\b`, "DATETIME2"),
	rule(`\bDOUBLE PRECISION\b`, "FLOAT"),
	rule(`\bBOOL\b`, "BIT"),
	rule(`\bBYTEA\b`, "VARBINARY(MAX)"),
	rule(`\bTEXT\b`, "NVARCHAR(MAX)"),
	rule(`\bUUID\b`, "UNIQUEIDENTIFIER"),
}

func (d *MSSQLDialect) TranslateDDL(stmt string) (string, bool) {
	return translateTypes(stmt, mssqlTypes), true
}

func (d *MSSQLDialect) BeforeLoad(tx *sql.Tx, tableName string) error {
	// Disable all constraints on this table so self references load in file order
	_, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s NOCHECK CONSTRAINT all", tableName))
	return err
}

func (d *MSSQLDialect) AfterLoad(tx *sql.Tx, tableName string) error {
	// WITH CHECK CHECK validates the rows that were just loaded
	_, err := tx.Exec(fmt.Sprintf("ALTER TABLE %s WITH CHECK CHECK CONSTRAINT all", tableName))
	return err
}

func (d *MSSQLDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

func (d *MSSQLDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", table)
}

func (d *MSSQLDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

// MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?
func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}
