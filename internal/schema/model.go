package schema

// Table is the column layout recovered from a rewritten schema script.
type Table struct {
	Name    string
	Columns []*Column
}

type Column struct {
	Name       string
	DataType   string
	IsNullable bool
	IsAutoInc  bool
	Default    string
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// 리포트용 구조체
type LoadResult struct {
	TableName string
	Target    int
	Actual    int
	Status    string
	ErrorMsg  string
}
