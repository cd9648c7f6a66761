package dialect

import (
	"fmt"
	"regexp"
	"strings"
)

// GeneratePlaceholders is a helper function to create a slice of placeholder strings.
// It takes the number of placeholders needed and a function that returns the placeholder for a given index.
// It returns a comma-separated string of the generated placeholders.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// typeRule rewrites one postgres type name into the engine's equivalent.
type typeRule struct {
	pattern *regexp.Regexp
	repl    string
}

func rule(pattern, repl string) typeRule {
	return typeRule{pattern: regexp.MustCompile(pattern), repl: repl}
}

// translateTypes applies rules in order. Type names in mdb-schema output are
// upper case, so rules are case sensitive and leave identifiers alone.
func translateTypes(stmt string, rules []typeRule) string {
	for _, r := range rules {
		stmt = r.pattern.ReplaceAllString(stmt, r.repl)
	}
	return stmt
}

// DefaultInsertQuery builds a plain multi-column INSERT.
func DefaultInsertQuery(table string, cols []string, placeholder func(int) string) string {
	vals := GeneratePlaceholders(len(cols), placeholder)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(cols, ", "), vals)
}

// DefaultCountQuery counts the rows of a table.
func DefaultCountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
}
