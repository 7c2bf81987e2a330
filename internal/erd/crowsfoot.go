package erd

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	unsafeIdentRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	doubleFloatRe = regexp.MustCompile(`\b(double|float)\b`)
)

// SanitizeName maps a table or column name to a Mermaid-safe identifier.
// Distinct names that differ only in punctuation may collide.
func SanitizeName(name string) string {
	if name == "" {
		return "unnamed"
	}
	s := unsafeIdentRe.ReplaceAllString(name, "_")
	if s[0] >= '0' && s[0] <= '9' {
		s = "_" + s
	}
	return s
}

// AttributeType classifies a column type string into the small type
// vocabulary used by the crow's-foot diagram.
func AttributeType(typ string) string {
	t := strings.ToLower(typ)
	switch {
	case strings.Contains(t, "int"):
		return "INT"
	case strings.Contains(t, "number"):
		return "INT"
	case strings.Contains(t, "char"), strings.Contains(t, "text"), strings.Contains(t, "string"):
		return "string"
	case strings.Contains(t, "bool"):
		return "boolean"
	case strings.Contains(t, "date"), strings.Contains(t, "time"):
		return "datetime"
	case strings.Contains(t, "decimal"), strings.Contains(t, "numeric"), doubleFloatRe.MatchString(t):
		return "float"
	default:
		return "string"
	}
}

// LooksLikePrimaryKey is the crow's-foot primary key heuristic: an explicit
// key or auto-increment marker, or an integer/serial column whose name
// contains "id".
func LooksLikePrimaryKey(c Column) bool {
	t := strings.ToLower(c.Type)
	if strings.Contains(t, "primary key") || strings.Contains(t, "auto_increment") || strings.Contains(t, "autoincrement") {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), "id") &&
		(strings.Contains(t, "int") || strings.Contains(t, "serial"))
}

// ToCrowsFoot renders tables as a Mermaid erDiagram: entity blocks first,
// then one many-to-one edge per foreign key whose target table exists.
func ToCrowsFoot(tables []Table) string {
	var sb strings.Builder
	sb.WriteString("erDiagram\n")

	for _, t := range tables {
		sb.WriteString(fmt.Sprintf("    %s {\n", SanitizeName(t.Name)))
		for _, col := range t.Columns {
			attr := fmt.Sprintf("%s %s", AttributeType(col.Type), SanitizeName(col.Name))
			if LooksLikePrimaryKey(col) {
				attr += " PK"
			}
			sb.WriteString(fmt.Sprintf("        %s\n", attr))
		}
		sb.WriteString("    }\n")
	}

	for _, src := range tables {
		for _, fk := range src.ForeignKeys {
			tgt, ok := findTable(tables, fk.ToTable)
			if !ok {
				continue
			}
			label := fk.From
			if label == "" {
				label = "references"
			}
			sb.WriteString(fmt.Sprintf("    %s }o--|| %s : \"%s\"\n",
				SanitizeName(src.Name),
				SanitizeName(tgt.Name),
				SanitizeName(label)))
		}
	}

	return sb.String()
}

// findTable returns the first table whose name matches name case-insensitively.
func findTable(tables []Table, name string) (Table, bool) {
	if name == "" {
		return Table{}, false
	}
	for _, t := range tables {
		if t.Name != "" && strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Table{}, false
}
