package schema

import (
	"regexp"
	"strings"
)

var (
	unsafeChars     = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscoreRuns  = regexp.MustCompile(`_{2,}`)
	quotedIdent     = regexp.MustCompile(`"(.+?)"`)
	serialTypeToken = regexp.MustCompile(`(\t)SERIAL\b`)
)

// Global substitutions applied after the per-line pass. Order matters:
// CREATE UNIQUE INDEX must be commented out before CREATE INDEX is matched.
var scriptFixups = []struct{ old, new string }{
	{`"`, ``},
	{`SET client_encoding = 'UTF-8';`, ``},
	{`CREATE UNIQUE INDEX`, `-- CREATE UNIQUE INDEX`},
	{`CREATE INDEX`, `-- CREATE INDEX`},
	{`COMMENT ON COLUMN`, `-- COMMENT ON COLUMN`},
	{`COMMENT ON TABLE`, `-- COMMENT ON TABLE`},
	// Reserved words used as column names in Access databases.
	{"\tDesc\t", "\tDescription\t"},
	{"\tNew\t", "\tNewly\t"},
}

// FixColumnName maps an Access identifier onto [a-zA-Z0-9_].
// Unsafe characters become underscores and runs of underscores collapse,
// a leading digit gets an underscore prefix. Safe names pass through.
func FixColumnName(name string) string {
	if name == "" {
		return name
	}
	if unsafeChars.MatchString(name) {
		name = unsafeChars.ReplaceAllString(name, "_")
		name = underscoreRuns.ReplaceAllString(name, "_")
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// FixColumnDefinition rewrites an mdb-schema postgres script so it can be
// run against the target: the table is renamed to newTable in table-level
// DDL, every other identifier is sanitized with FixColumnName, quotes are
// stripped and statements the target does not support are commented out.
func FixColumnDefinition(definition, oldTable, newTable string) string {
	lines := strings.Split(definition, "\n")
	for i, line := range lines {
		for idx, m := range quotedIdent.FindAllStringSubmatch(line, -1) {
			quoted, ident := m[0], m[1]
			if ident == oldTable && idx == 0 && isTableStatement(line, quoted) {
				line = strings.Replace(line, quoted, `"`+newTable+`"`, 1)
				continue
			}
			line = strings.ReplaceAll(line, quoted, `"`+FixColumnName(ident)+`"`)
		}
		lines[i] = serialTypeToken.ReplaceAllString(line, "${1}INTEGER")
	}

	out := strings.Join(lines, "\n")
	for _, f := range scriptFixups {
		out = strings.ReplaceAll(out, f.old, f.new)
	}
	return out
}

func isTableStatement(line, quotedTable string) bool {
	for _, prefix := range []string{
		"ALTER TABLE ",
		"CREATE TABLE ",
		"CREATE TABLE IF NOT EXISTS ",
		"DROP TABLE IF EXISTS ",
	} {
		if strings.Contains(line, prefix+quotedTable) {
			return true
		}
	}
	return false
}
