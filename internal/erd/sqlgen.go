package erd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ToSQL reconstructs one CREATE TABLE statement per table from the stored
// names and types. The text is substituted literally and is not validated.
func ToSQL(tables []Table) string {
	var sb strings.Builder
	for _, t := range tables {
		sb.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", t.Name))
		for i, col := range t.Columns {
			sep := ","
			if i == len(t.Columns)-1 {
				sep = ""
			}
			sb.WriteString(fmt.Sprintf("  %s %s%s\n", col.Name, col.Type, sep))
		}
		sb.WriteString(");\n\n")
	}
	return sb.String()
}

// DecodeTables parses a serialized table list. The payload is either a JSON
// array of tables or a JSON string holding that array. Unlike the DDL
// extractors, any decoding problem is reported as ErrMalformedModel.
func DecodeTables(data []byte) ([]Table, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
		}
		data = bytes.TrimSpace([]byte(inner))
	}

	var tables []Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}
	if tables == nil {
		return nil, fmt.Errorf("%w: expected an array of tables", ErrMalformedModel)
	}
	return tables, nil
}

// UnmarshalJSON accepts a column type given either as a string or as a type
// descriptor object, normalizing the latter through TypeString.
func (c *Column) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string `json:"name"`
		Type any    `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name = raw.Name
	c.Type = TypeString(raw.Type)
	return nil
}
