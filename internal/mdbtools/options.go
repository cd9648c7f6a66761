package mdbtools

// Config names the mdbtools binaries and the mdb-schema backend.
type Config struct {
	ExportBin string
	SchemaBin string
	TablesBin string
	Backend   string
}

func DefaultConfig() Config {
	return Config{
		ExportBin: "mdb-export",
		SchemaBin: "mdb-schema",
		TablesBin: "mdb-tables",
		Backend:   "postgres",
	}
}

// ExportOptions controls the CSV dialect produced by mdb-export.
//
//	-H              suppress header row
//	-d <char>       column delimiter
//	-R <char>       row delimiter
//	-q <char>       quote text-like fields with <char>
//	-X <char>       escape quotes inside a field with <char>
//	-e              C-style escaping of \r, \t, \n and \\
//	-D <format>     strftime(3) date format
type ExportOptions struct {
	Delimiter    string
	Escape       string
	Quote        string
	DateFormat   string
	RowDelimiter string
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Delimiter:    ",",
		Escape:       "@",
		Quote:        `"`,
		DateFormat:   "%F %T",
		RowDelimiter: `\n`,
	}
}

func (o ExportOptions) withDefaults() ExportOptions {
	d := DefaultExportOptions()
	if o.Delimiter == "" {
		o.Delimiter = d.Delimiter
	}
	if o.Escape == "" {
		o.Escape = d.Escape
	}
	if o.Quote == "" {
		o.Quote = d.Quote
	}
	if o.DateFormat == "" {
		o.DateFormat = d.DateFormat
	}
	if o.RowDelimiter == "" {
		o.RowDelimiter = d.RowDelimiter
	}
	return o
}

func (o ExportOptions) args(mdbPath, table string) []string {
	o = o.withDefaults()
	return []string{
		"-X", o.Escape,
		"-H",
		"-d", o.Delimiter,
		"-D", o.DateFormat,
		"-R", o.RowDelimiter,
		"-q", o.Quote,
		"-e",
		mdbPath, table,
	}
}

func schemaArgs(mdbPath, table, backend string) []string {
	return []string{
		"--table", table,
		"--drop-table",
		"--relations",
		"--indexes",
		"--default-values",
		"--not-null",
		mdbPath,
		backend,
	}
}
