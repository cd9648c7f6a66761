package dialect

import (
	"database/sql"
	"fmt"
)

type OracleDialect struct{}

// Oracle has no ON UPDATE referential action, and IF [NOT] EXISTS needs 23ai.
var oracleTypes = []typeRule{
	rule(`\bTIMESTAMP WITHOUT TIME ZONE\b`, "TIMESTAMP"),
	rule(`\bDOUBLE PRECISION\b`, "BINARY_DOUBLE"),
	rule(`\bVARCHAR\b`, "VARCHAR2"),
	rule(`\bBOOL\b`, "NUMBER(1)"),
	rule(`\bBYTEA\b`, "BLOB"),
	rule(`\bTEXT\b`, "CLOB"),
	rule(`\bUUID\b`, "VARCHAR2(36)"),
	rule(`\s+ON UPDATE (CASCADE|SET NULL|SET DEFAULT|RESTRICT|NO ACTION)\b`, ""),
}

func (d *OracleDialect) TranslateDDL(stmt string) (string, bool) {
	return translateTypes(stmt, oracleTypes), true
}

func (d *OracleDialect) BeforeLoad(tx *sql.Tx, tableName string) error {
	// Match the "%F %T" date format mdb-export writes.
	if _, err := tx.Exec("ALTER SESSION SET NLS_DATE_FORMAT = 'YYYY-MM-DD HH24:MI:SS'"); err != nil {
		return fmt.Errorf("failed to set NLS_DATE_FORMAT: %w", err)
	}
	if _, err := tx.Exec("ALTER SESSION SET NLS_TIMESTAMP_FORMAT = 'YYYY-MM-DD HH24:MI:SS'"); err != nil {
		return fmt.Errorf("failed to set NLS_TIMESTAMP_FORMAT: %w", err)
	}
	return nil
}

func (d *OracleDialect) AfterLoad(tx *sql.Tx, tableName string) error {
	return nil
}

func (d *OracleDialect) InsertQuery(table string, cols []string) string {
	return DefaultInsertQuery(table, cols, d.Placeholder)
}

func (d *OracleDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", table)
}

func (d *OracleDialect) CountQuery(table string) string {
	return DefaultCountQuery(table)
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}
