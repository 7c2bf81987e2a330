package renderer

import (
	"bytes"
	"fmt"
	"html/template"
)

// DiagramType selects the title and download name of a diagram PDF.
type DiagramType string

const (
	DiagramER         DiagramType = "er"
	DiagramAttributes DiagramType = "attributes"
	DiagramTable      DiagramType = "table"
)

// ParseDiagramType maps request values onto a DiagramType. Anything unknown
// is treated as a table diagram.
func ParseDiagramType(s string) DiagramType {
	switch DiagramType(s) {
	case "", DiagramER:
		return DiagramER
	case DiagramAttributes:
		return DiagramAttributes
	default:
		return DiagramTable
	}
}

func (t DiagramType) Title() string {
	if t == DiagramER {
		return "Entity Relationship Diagram"
	}
	return "Database Schema Diagram"
}

func (t DiagramType) Filename() string {
	switch t {
	case DiagramER:
		return "er-diagram.pdf"
	case DiagramAttributes:
		return "attributes-diagram.pdf"
	default:
		return "table-diagram.pdf"
	}
}

var diagramTmpl = template.Must(template.New("diagram").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
  <style>
    body { font-family: Arial, sans-serif; margin: 20px; background: white; padding: 20px; }
    .mermaid { text-align: center; min-height: 400px; display: flex; justify-content: center; align-items: center; }
    h1 { text-align: center; color: #2563eb; margin-bottom: 30px; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="mermaid">
{{.Source}}
  </div>
  <script>
    mermaid.initialize({
      startOnLoad: true,
      theme: 'default',
      securityLevel: 'loose',
      er: { entityPadding: 15, fill: '#fff2cc', fontSize: 12 }
    });
  </script>
</body>
</html>
`))

var sqlTmpl = template.Must(template.New("sql").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: 'Courier New', monospace; padding: 40px; }
    h1 { color: #2563eb; }
    pre { background: #f8f9fa; padding: 20px; border-radius: 8px; }
  </style>
</head>
<body>
  <h1>Database Schema - SQL</h1>
  <pre>{{.}}</pre>
</body>
</html>
`))

// DiagramPage wraps Mermaid source in a page that renders it client side.
// The source is HTML-escaped; Mermaid reads the unescaped text content.
func DiagramPage(source string, typ DiagramType) (string, error) {
	var buf bytes.Buffer
	err := diagramTmpl.Execute(&buf, struct {
		Title  string
		Source string
	}{typ.Title(), source})
	if err != nil {
		return "", fmt.Errorf("render diagram page: %w", err)
	}
	return buf.String(), nil
}

// SQLPage renders DDL text as a printable listing.
func SQLPage(sql string) (string, error) {
	var buf bytes.Buffer
	if err := sqlTmpl.Execute(&buf, sql); err != nil {
		return "", fmt.Errorf("render sql page: %w", err)
	}
	return buf.String(), nil
}
