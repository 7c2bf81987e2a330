package erd

import (
	"fmt"
	"strings"
)

var labelEscaper = strings.NewReplacer(`"`, "#quot;")

// ToChen renders tables as a Mermaid flowchart in Chen style: one box per
// entity and one circle per attribute, primary keys in their own class.
// Foreign keys are not drawn. Node ids are positional, so names need no
// sanitizing.
func ToChen(tables []Table) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("  classDef entity fill:#eef,stroke:#36f,stroke-width:2px;\n")
	sb.WriteString("  classDef attr fill:#fff,stroke:#999,stroke-width:1.5px;\n")
	sb.WriteString("  classDef pk fill:#fff,stroke:#090,stroke-width:2px;\n")

	for ti, t := range tables {
		entityID := fmt.Sprintf("E%d", ti)
		sb.WriteString(fmt.Sprintf("  %s[\"%s\"]:::entity\n", entityID, labelEscaper.Replace(t.Name)))
		for ci, c := range t.Columns {
			name := c.Name
			if name == "" {
				name = "attr"
			}
			attrID := fmt.Sprintf("%s_A%d", entityID, ci)
			sb.WriteString(fmt.Sprintf("  %s((\"%s\")):::attr\n", attrID, labelEscaper.Replace(name)))
			sb.WriteString(fmt.Sprintf("  %s --- %s\n", entityID, attrID))
			if c.IsPrimaryKey() {
				sb.WriteString(fmt.Sprintf("  class %s pk;\n", attrID))
			}
		}
	}

	return sb.String()
}
