package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrNoCreateTable = errors.New("no CREATE TABLE statement in script")

var createTableStmt = regexp.MustCompile(`(?s)^CREATE TABLE\s+(?:IF NOT EXISTS\s+)?([^\s(]+)\s*\((.*)\)$`)

// ---------------------------------------------------------------------
// 1. Statement Splitting
// ---------------------------------------------------------------------

// Statements splits a rewritten script into executable statements.
// Comment and blank lines are dropped; a statement ends on a line whose
// last character is a semicolon, which is not included in the result.
func Statements(script string) []string {
	var stmts []string
	var cur []string

	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur = append(cur, strings.TrimRight(line, " \t\r"))
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.Join(cur, "\n")
			stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
			if stmt != "" {
				stmts = append(stmts, stmt)
			}
			cur = nil
		}
	}
	// Unterminated trailing statement
	if len(cur) > 0 {
		if stmt := strings.TrimSpace(strings.Join(cur, "\n")); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ---------------------------------------------------------------------
// 2. Column Layout
// ---------------------------------------------------------------------

// Analyze recovers the table name and ordered column list from the
// CREATE TABLE statement of a rewritten script.
func Analyze(script string) (*Table, error) {
	for _, stmt := range Statements(script) {
		m := createTableStmt.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}

		t := &Table{Name: m[1]}
		for _, def := range splitTopLevel(m[2]) {
			col, ok := parseColumn(def)
			if !ok {
				continue
			}
			t.Columns = append(t.Columns, col)
		}
		if len(t.Columns) == 0 {
			return nil, fmt.Errorf("table %s declares no columns", t.Name)
		}
		return t, nil
	}
	return nil, ErrNoCreateTable
}

// splitTopLevel splits a column list on commas that are not nested in
// parentheses, so NUMERIC (10, 2) stays in one piece.
func splitTopLevel(body string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range body {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}

func parseColumn(def string) (*Column, bool) {
	def = strings.TrimSpace(def)
	if def == "" {
		return nil, false
	}
	upper := strings.ToUpper(def)
	for _, constraint := range []string{"CONSTRAINT ", "PRIMARY KEY", "UNIQUE ", "UNIQUE(", "FOREIGN KEY", "CHECK "} {
		if strings.HasPrefix(upper, constraint) {
			return nil, false
		}
	}

	fields := strings.Fields(def)
	col := &Column{Name: fields[0], IsNullable: true}

	rest := strings.TrimSpace(def[len(fields[0]):])
	upperRest := strings.ToUpper(rest)

	typeEnd := len(rest)
	if i := strings.Index(upperRest, "NOT NULL"); i >= 0 {
		col.IsNullable = false
		typeEnd = min(typeEnd, i)
	}
	if i := strings.Index(upperRest, "DEFAULT "); i >= 0 {
		typeEnd = min(typeEnd, i)
		col.Default = strings.TrimSpace(rest[i+len("DEFAULT "):])
		if j := strings.Index(strings.ToUpper(col.Default), "NOT NULL"); j >= 0 {
			col.Default = strings.TrimSpace(col.Default[:j])
		}
	}
	col.DataType = strings.Join(strings.Fields(rest[:typeEnd]), " ")
	col.IsAutoInc = strings.Contains(strings.ToUpper(col.DataType), "SERIAL")
	return col, true
}
