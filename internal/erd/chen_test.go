package erd

import (
	"strings"
	"testing"
)

func TestToChen(t *testing.T) {
	tables := []Table{
		{Name: "users", Columns: []Column{{"id", "INT PRIMARY KEY"}, {"name", "text"}}},
		{Name: "logs", Columns: []Column{{"user_id", "int"}}, ForeignKeys: []ForeignKeyRef{{From: "user_id", ToTable: "users"}}},
	}

	want := "graph TD\n" +
		"  classDef entity fill:#eef,stroke:#36f,stroke-width:2px;\n" +
		"  classDef attr fill:#fff,stroke:#999,stroke-width:1.5px;\n" +
		"  classDef pk fill:#fff,stroke:#090,stroke-width:2px;\n" +
		"  E0[\"users\"]:::entity\n" +
		"  E0_A0((\"id\")):::attr\n" +
		"  E0 --- E0_A0\n" +
		"  class E0_A0 pk;\n" +
		"  E0_A1((\"name\")):::attr\n" +
		"  E0 --- E0_A1\n" +
		"  E1[\"logs\"]:::entity\n" +
		"  E1_A0((\"user_id\")):::attr\n" +
		"  E1 --- E1_A0\n"

	if got := ToChen(tables); got != want {
		t.Errorf("ToChen() =\n%s\nwant\n%s", got, want)
	}
}

func TestToChenEscapesQuotes(t *testing.T) {
	got := ToChen([]Table{{Name: `we"ird`, Columns: []Column{{`c"1`, "int"}}}})
	if strings.Contains(got, `we"ird`) || !strings.Contains(got, `E0["we#quot;ird"]`) {
		t.Errorf("label not escaped:\n%s", got)
	}
}
