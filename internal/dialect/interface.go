package dialect

import "database/sql"

// Dialect abstracts target-engine specific operations used when loading a
// converted table.
type Dialect interface {
	// Script Translation (postgres-flavoured DDL in, engine DDL out).
	// ok=false means the statement is not supported and must be skipped.
	TranslateDDL(stmt string) (translated string, ok bool)

	// Execution Hooks (Table Level)
	BeforeLoad(tx *sql.Tx, tableName string) error
	AfterLoad(tx *sql.Tx, tableName string) error

	// Query Generation
	InsertQuery(table string, cols []string) string
	TruncateQuery(table string) string
	CountQuery(table string) string
	Placeholder(index int) string // Returns ?, $1, @p1, :1
}
