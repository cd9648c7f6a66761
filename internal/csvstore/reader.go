// Package csvstore reads CSV files written by mdb-export through an
// in-process DuckDB, which understands the export's custom escape character.
package csvstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Format mirrors the mdb-export options the file was written with.
type Format struct {
	Delimiter string
	Quote     string
	Escape    string
}

type Summary struct {
	Columns int
	Rows    int64
}

type Reader struct {
	db *sql.DB
}

// Open starts an in-memory DuckDB instance.
func Open() (*Reader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error {
	return r.db.Close()
}

// Summarize reports the column and row counts of an exported file.
func (r *Reader) Summarize(ctx context.Context, path string, f Format) (Summary, error) {
	empty, err := isEmpty(path)
	if err != nil || empty {
		return Summary{}, err
	}

	src := readCSV(path, f)
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+src+" LIMIT 0")
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cols, err := rows.Columns()
	rows.Close()
	if err != nil {
		return Summary{}, err
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM "+src).Scan(&count); err != nil {
		return Summary{}, fmt.Errorf("failed to count rows of %s: %w", path, err)
	}
	return Summary{Columns: len(cols), Rows: count}, nil
}

// Each calls fn for every row in file order. Values are strings, or nil
// for fields mdb-export wrote as NULL. The \r, \n, \t and \\ escapes
// written by mdb-export -e are decoded.
func (r *Reader) Each(ctx context.Context, path string, f Format, fn func(values []any) error) error {
	empty, err := isEmpty(path)
	if err != nil || empty {
		return err
	}

	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+readCSV(path, f))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	fields := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range fields {
		dest[i] = &fields[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan row of %s: %w", path, err)
		}
		values := make([]any, len(fields))
		for i, field := range fields {
			if field.Valid {
				values[i] = unescapeC.Replace(field.String)
			}
		}
		if err := fn(values); err != nil {
			return err
		}
	}
	return rows.Err()
}

// File binds a path and format so the pair can be handed to a loader.
func (r *Reader) File(path string, f Format) *File {
	return &File{reader: r, path: path, format: f}
}

type File struct {
	reader *Reader
	path   string
	format Format
}

func (f *File) Each(ctx context.Context, fn func(values []any) error) error {
	return f.reader.Each(ctx, f.path, f.format, fn)
}

// Reverses mdb-export -e.
var unescapeC = strings.NewReplacer(
	`\\`, `\`,
	`\r`, "\r",
	`\n`, "\n",
	`\t`, "\t",
)

func readCSV(path string, f Format) string {
	if f.Delimiter == "" {
		f.Delimiter = ","
	}
	if f.Quote == "" {
		f.Quote = `"`
	}
	if f.Escape == "" {
		f.Escape = f.Quote
	}
	return fmt.Sprintf(
		"read_csv(%s, delim=%s, quote=%s, escape=%s, header=false, all_varchar=true, allow_quoted_nulls=false)",
		literal(path), literal(f.Delimiter), literal(f.Quote), literal(f.Escape),
	)
}

func literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func isEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}
