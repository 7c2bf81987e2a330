package erd

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return v
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain string", `"VARCHAR(50)"`, "VARCHAR(50)"},
		{"null", `null`, ""},
		{"datatype field", `{"datatype":"int"}`, "int"},
		{"several fields joined", `{"type":"int","name":"int"}`, "int int"},
		{"empty values skipped", `{"type":"","dataType":"text"}`, "text"},
		{"nested descriptor", `{"type":{"datatype":"varchar"}}`, "varchar"},
		{"structural fallback", `{"width":10}`, `{"width":10}`},
		{"number", `42`, "42"},
		{"false", `false`, ""},
		{"zero", `0`, ""},
		{"true", `true`, "true"},
		{"array dumped as json", `["a","b"]`, `["a","b"]`},
		{"empty array", `[]`, `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeString(decode(t, tt.in)); got != tt.want {
				t.Errorf("TypeString(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDocumentTablesShape(t *testing.T) {
	doc := decode(t, `{"tables":[
		{"name":"users","columns":[{"name":"id","type":{"datatype":"int"}},{"columnName":"email","datatype":"varchar"}]},
		{"tableName":"empty"},
		{"table":{"name":"nested","columns":[{"column":{"name":"x","type":"text"}}]}}
	]}`)

	got := NormalizeDocument(doc)
	want := []Table{
		{Name: "users", Columns: []Column{{"id", "int"}, {"email", "varchar"}}, ForeignKeys: []ForeignKeyRef{}},
		{Name: "empty", Columns: []Column{}, ForeignKeys: []ForeignKeyRef{}},
		{Name: "nested", Columns: []Column{{"x", "text"}}, ForeignKeys: []ForeignKeyRef{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeDocument() =\n%#v\nwant\n%#v", got, want)
	}
}

func TestNormalizeDocumentStatementShape(t *testing.T) {
	doc := decode(t, `[
		{"name":"orders","definition":{"columns":[{"name":"id","definition":{"dataType":"int"}},{"name":"user_id","type":"int"}]}},
		{"name":"no_columns","columns":[]},
		{"columns":[{"name":"orphan","type":"int"}]},
		{"name":"nameless_cols","columns":[{"type":"int"}]}
	]`)

	got := NormalizeDocument(doc)
	if len(got) != 1 {
		t.Fatalf("expected 1 table, got %d: %#v", len(got), got)
	}
	if got[0].Name != "orders" || len(got[0].Columns) != 2 {
		t.Errorf("unexpected table %#v", got[0])
	}
	if got[0].Columns[0] != (Column{"id", "int"}) {
		t.Errorf("unexpected first column %#v", got[0].Columns[0])
	}
}

func TestNormalizeDocumentUnknownShapes(t *testing.T) {
	for _, in := range []any{nil, "text", 3.0, map[string]any{"statements": []any{}}} {
		if got := NormalizeDocument(in); len(got) != 0 {
			t.Errorf("NormalizeDocument(%#v) = %#v, want empty", in, got)
		}
	}
}

func TestStatementForeignKeys(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want []ForeignKeyRef
	}{
		{
			name: "column reference",
			stmt: `{"columns":[{"name":"user_id","references":{"table":"users","column":"id"}}]}`,
			want: []ForeignKeyRef{{From: "user_id", ToTable: "users", ToColumn: "id"}},
		},
		{
			name: "nested column reference with column list",
			stmt: `{"columns":[{"name":"user_id","definition":{"reference":{"reference":{"tableName":"users"},"columns":["uid"]}}}]}`,
			want: []ForeignKeyRef{{From: "user_id", ToTable: "users", ToColumn: "uid"}},
		},
		{
			name: "constraint with object columns",
			stmt: `{"foreignKeys":[{"columns":[{"column":"a"},{"column":"b"}],"reference":{"table":"t2","columns":[{"column":"x"}]}}]}`,
			want: []ForeignKeyRef{{From: "a", ToTable: "t2", ToColumn: "x"}},
		},
		{
			name: "constraint flat fields",
			stmt: `{"constraints":[{"from":"c","toTable":"t3","toColumn":"y"}]}`,
			want: []ForeignKeyRef{{From: "c", ToTable: "t3", ToColumn: "y"}},
		},
		{
			name: "target column absent",
			stmt: `{"constraints":[{"column":"c","ref":{"table":"t4"}}]}`,
			want: []ForeignKeyRef{{From: "c", ToTable: "t4"}},
		},
		{
			name: "unresolvable dropped",
			stmt: `{"columns":[{"references":{"table":"users"}}],"constraints":[{"columns":["a"]},{"toTable":"t"}]}`,
			want: []ForeignKeyRef{},
		},
		{
			name: "both sources kept",
			stmt: `{"columns":[{"name":"a","references":{"table":"t"}}],"constraints":[{"columns":["a"],"references":{"table":"t"}}]}`,
			want: []ForeignKeyRef{{From: "a", ToTable: "t"}, {From: "a", ToTable: "t"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, _ := decode(t, tt.stmt).(map[string]any)
			got := statementForeignKeys(stmt)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("statementForeignKeys() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
