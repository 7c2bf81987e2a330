package erd

import "strings"

// Reconcile backfills foreign keys from the textual scan. A table keeps its
// structurally extracted references whenever it has any; only tables with an
// empty list adopt the entry for their lower-cased name. The input slice is
// not modified.
func Reconcile(tables []Table, fks ForeignKeyMap) []Table {
	out := make([]Table, 0, len(tables))
	for _, t := range tables {
		t = t.clone()
		if len(t.ForeignKeys) == 0 {
			if extra, ok := fks[strings.ToLower(t.Name)]; ok && len(extra) > 0 {
				t.ForeignKeys = append([]ForeignKeyRef{}, extra...)
			}
		}
		out = append(out, t)
	}
	return out
}
