package dialect

import (
	"database/sql"
	"fmt"
)

type MysqlDialect struct{}

var mysqlTypes = []typeRule{
	rule(`\bTIMESTAMP WITHOUT TIME ZONE\b`, "DATETIME"),
	rule(`\bBYTEA\b`, "LONGBLOB"),
	rule(`\bUUID\b`, "CHAR(36)"),
}

func (d *MysqlDialect) TranslateDDL(stmt string) (string, bool) {
	return translateTypes(stmt, mysqlTypes), true
}

func (d *MysqlDialect) BeforeLoad(tx *sql.Tx, tableName string) error {
	_, err := tx.Exec("SET FOREIGN_KEY_CHECKS = 0")
	return err
}

func (d *MysqlDialect) AfterLoad(tx *sql.Tx, tableName string) error {
	_, err := tx.Exec("SET FOREIGN_KEY_CHECKS = 1")
	return err
}

func (d *MysqlDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

func (d *MysqlDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", table)
}

func (d *MysqlDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}
