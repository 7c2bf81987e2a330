package erd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The functions in this file normalize the JSON document emitted by external
// DDL-to-JSON tools. Those tools change shape between versions, so every
// logical value is looked up through an ordered list of candidate paths and a
// missing value degrades to "absent" instead of an error.

// TypeString renders a column type that is either a plain string, absent, or
// a descriptor object into one display string. Falsy scalars render empty.
func TypeString(v any) string {
	if !truthy(v) {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		var pieces []string
		for _, key := range []string{"type", "datatype", "dataType", "name"} {
			if p, ok := t[key]; ok && truthy(p) {
				pieces = append(pieces, TypeString(p))
			}
		}
		if s := strings.Join(pieces, " "); s != "" {
			return s
		}
		return dump(t)
	case []any:
		return dump(t)
	default:
		return fmt.Sprint(t)
	}
}

func dump(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}

// NormalizeDocument converts a decoded parser document into canonical tables.
// Two shapes are recognized: an object carrying a "tables" array, whose
// entries are always emitted, and a bare array of statements, whose entries
// are emitted only when they have a name and at least one column.
func NormalizeDocument(doc any) []Table {
	switch d := doc.(type) {
	case map[string]any:
		entries, ok := d["tables"].([]any)
		if !ok {
			return []Table{}
		}
		tables := make([]Table, 0, len(entries))
		for _, e := range entries {
			stmt, _ := e.(map[string]any)
			tables = append(tables, Table{
				Name:        tableName(stmt),
				Columns:     normalizeColumns(lookup(stmt, "columns", "column", "table.columns")),
				ForeignKeys: statementForeignKeys(stmt),
			})
		}
		return tables
	case []any:
		tables := make([]Table, 0, len(d))
		for _, e := range d {
			stmt, _ := e.(map[string]any)
			name := tableName(stmt)
			cols := normalizeColumns(lookup(stmt, "columns", "column", "definition.columns", "table.columns"))
			if name == "" || len(cols) == 0 {
				continue
			}
			tables = append(tables, Table{Name: name, Columns: cols, ForeignKeys: statementForeignKeys(stmt)})
		}
		return tables
	default:
		return []Table{}
	}
}

func tableName(stmt map[string]any) string {
	return nameOf(lookup(stmt, "name", "tableName", "table.name"))
}

func normalizeColumns(v any) []Column {
	list, _ := v.([]any)
	cols := make([]Column, 0, len(list))
	for _, item := range list {
		c, _ := item.(map[string]any)
		name := nameOf(lookup(c, "name", "columnName", "column.name"))
		if name == "" {
			continue
		}
		cols = append(cols, Column{
			Name: name,
			Type: TypeString(lookup(c, "type", "datatype", "definition.dataType", "column.type")),
		})
	}
	return cols
}

// statementForeignKeys collects references declared on columns and in the
// statement's constraint list. Both sources contribute; nothing is deduplicated.
func statementForeignKeys(stmt map[string]any) []ForeignKeyRef {
	fks := []ForeignKeyRef{}
	push := func(from, toTable, toColumn string) {
		if from != "" && toTable != "" {
			fks = append(fks, ForeignKeyRef{From: from, ToTable: toTable, ToColumn: toColumn})
		}
	}

	columns, _ := lookup(stmt, "columns", "column", "definition.columns", "table.columns").([]any)
	for _, item := range columns {
		c, _ := item.(map[string]any)
		ref, ok := lookup(c, "references", "reference", "foreign", "definition.references", "definition.reference").(map[string]any)
		if !ok {
			continue
		}
		push(
			nameOf(lookup(c, "name", "columnName")),
			nameOf(lookup(ref, "table", "tableName", "reference.table", "reference.tableName")),
			nameOf(lookup(ref, "column", "columnName", "columns.0")),
		)
	}

	constraints, _ := lookup(stmt, "constraints", "constraint", "foreignKeys").([]any)
	for _, item := range constraints {
		k, _ := item.(map[string]any)
		ref, _ := lookup(k, "references", "reference", "ref").(map[string]any)
		push(
			nameOf(lookup(k, "columns.0", "column", "columnName", "from")),
			nameOf(firstOf(lookup(ref, "table", "tableName"), lookup(k, "toTable"))),
			nameOf(firstOf(lookup(ref, "columns.0", "column"), lookup(k, "toColumn"))),
		)
	}

	return fks
}

// lookup returns the first truthy value found at any of the dotted paths.
// A numeric path segment indexes into an array.
func lookup(m map[string]any, paths ...string) any {
	if m == nil {
		return nil
	}
	for _, p := range paths {
		if v := walk(m, strings.Split(p, ".")); truthy(v) {
			return v
		}
	}
	return nil
}

func walk(v any, segments []string) any {
	for _, seg := range segments {
		switch node := v.(type) {
		case map[string]any:
			v = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			v = node[i]
		default:
			return nil
		}
	}
	return v
}

func firstOf(values ...any) any {
	for _, v := range values {
		if truthy(v) {
			return v
		}
	}
	return nil
}

// nameOf reduces an identifier-like value to a string. Objects such as
// {"column": "id"} resolve through their column or name field.
func nameOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		return nameOf(lookup(t, "column", "name"))
	default:
		return ""
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}
