package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

type fixedParser []erd.Table

func (p fixedParser) Parse(context.Context, string) ([]erd.Table, error) {
	return p, nil
}

var shopTables = fixedParser{
	{Name: "customers", Columns: []erd.Column{{Name: "id", Type: "int primary key"}}},
	{Name: "orders", Columns: []erd.Column{{Name: "id", Type: "int primary key"}, {Name: "customer_id", Type: "int"}}},
}

const shopDDL = `CREATE TABLE customers (id INT PRIMARY KEY);
CREATE TABLE orders (id INT PRIMARY KEY, customer_id INT,
  FOREIGN KEY (customer_id) REFERENCES customers(id));`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd("test", func(f parserFlags) (erd.Parser, error) {
		if f.driver == "broken" {
			return nil, erd.ErrParserUnavailable
		}
		return shopTables, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeFile(t, "shop.sql", shopDDL)

	out, err := run(t, "", "parse", path)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !strings.Contains(out, `"name": "orders"`) || !strings.Contains(out, `"toTable": "customers"`) {
		t.Errorf("json output:\n%s", out)
	}

	out, err = run(t, shopDDL, "parse", "-", "--format", "yaml")
	if err != nil {
		t.Fatalf("parse yaml error: %v", err)
	}
	if !strings.Contains(out, "- name: customers") || !strings.Contains(out, "toTable: customers") {
		t.Errorf("yaml output:\n%s", out)
	}

	if _, err := run(t, "", "parse", path, "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
	if _, err := run(t, "", "parse", path, "--parser", "broken"); !errors.Is(err, erd.ErrParserUnavailable) {
		t.Errorf("broken parser error = %v", err)
	}
	if _, err := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.sql")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDiagramCommand(t *testing.T) {
	tests := []struct {
		notation string
		want     string
	}{
		{"crowsfoot", `orders }o--|| customers : "customer_id"`},
		{"chen", "graph TD"},
	}
	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			out, err := run(t, shopDDL, "diagram", "-", "--notation", tt.notation)
			if err != nil {
				t.Fatalf("diagram error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestToSQLCommand(t *testing.T) {
	model := `[{"name":"users","columns":[{"name":"id","type":"INT PRIMARY KEY"},{"name":"email","type":"VARCHAR(100)"}]}]`
	out, err := run(t, model, "tosql", "-")
	if err != nil {
		t.Fatalf("tosql error: %v", err)
	}
	want := "CREATE TABLE users (\n  id INT PRIMARY KEY,\n  email VARCHAR(100)\n);\n\n"
	if out != want {
		t.Errorf("tosql output = %q, want %q", out, want)
	}

	if _, err := run(t, `{"not":"a list"}`, "tosql", "-"); !errors.Is(err, erd.ErrMalformedModel) {
		t.Errorf("tosql malformed error = %v", err)
	}
}

func TestSetupCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	out, err := run(t, "", "setup", "--path", path)
	if err != nil {
		t.Fatalf("setup error: %v", err)
	}
	if !strings.Contains(out, "Created") {
		t.Errorf("setup output: %s", out)
	}
	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("read env: %v", err)
	}
	if env["PARSER_DRIVER"] != "vitess" || env["DB_PORT"] != "5432" {
		t.Errorf("env = %v", env)
	}

	out, err = run(t, "", "setup", "--path", path)
	if err != nil || !strings.Contains(out, "already exists") {
		t.Errorf("second setup = %q, %v", out, err)
	}
}
