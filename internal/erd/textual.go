package erd

import (
	"regexp"
	"strings"
)

var (
	createTableRe = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+[`\"]?(\\w+)[`\"]?\\s*\\(([\\s\\S]*?)\\)\\s*;")
	foreignKeyRe  = regexp.MustCompile("(?i)FOREIGN\\s+KEY\\s*\\(([^)]+)\\)\\s*REFERENCES\\s+[`\"]?(\\w+)[`\"]?\\s*\\(([^)]+)\\)")
	identTrimRe   = regexp.MustCompile("[`\"\\s]")
)

// ExtractForeignKeysFromSQL scans raw DDL for table-level
// FOREIGN KEY (...) REFERENCES t (...) clauses. Composite keys are reduced to
// their first column on each side. Unmatched input yields an empty map.
func ExtractForeignKeysFromSQL(sql string) ForeignKeyMap {
	out := ForeignKeyMap{}
	for _, block := range createTableRe.FindAllStringSubmatch(sql, -1) {
		var fks []ForeignKeyRef
		for _, m := range foreignKeyRe.FindAllStringSubmatch(block[2], -1) {
			fks = append(fks, ForeignKeyRef{
				From:     firstIdent(m[1]),
				ToTable:  m[2],
				ToColumn: firstIdent(m[3]),
			})
		}
		if len(fks) > 0 {
			out[strings.ToLower(block[1])] = fks
		}
	}
	return out
}

func firstIdent(list string) string {
	first, _, _ := strings.Cut(list, ",")
	return identTrimRe.ReplaceAllString(first, "")
}
