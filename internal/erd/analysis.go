package erd

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var (
	keyAttrRe     = regexp.MustCompile(`(?i)primary\s+key|\bpk\b`)
	primaryKeyRe  = regexp.MustCompile(`(?i)primary\s+key`)
	multiValuedRe = regexp.MustCompile(`(?i)\b(set|json|array|list)\b`)
	derivedRe     = regexp.MustCompile(`(?i)\b(age|total|count|balance|duration)\b`)
)

// AttributeRef names one column of one table.
type AttributeRef struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

func (a AttributeRef) String() string {
	return a.Table + "." + a.Column
}

// CompositeGroup is a set of columns sharing the prefix before their first underscore.
type CompositeGroup struct {
	Name  string   `json:"name"`
	Parts []string `json:"parts"`
}

// Analysis classifies the model against the classic ER building blocks.
type Analysis struct {
	Entities                 []string         `json:"entities"`
	AttributeCount           int              `json:"attributeCount"`
	KeyAttributes            []AttributeRef   `json:"keyAttributes"`
	MultiValuedAttributes    []AttributeRef   `json:"multiValuedAttributes"`
	DerivedAttributes        []AttributeRef   `json:"derivedAttributes"`
	CompositeAttributes      []CompositeGroup `json:"compositeAttributes"`
	Relationships            []string         `json:"relationships"`
	WeakEntities             []string         `json:"weakEntities"`
	IdentifyingRelationships []string         `json:"identifyingRelationships"`
}

// Analyze derives the ER rule table for tables. Detection is heuristic and
// keyword based.
func Analyze(tables []Table) Analysis {
	a := Analysis{
		Entities:                 []string{},
		KeyAttributes:            []AttributeRef{},
		MultiValuedAttributes:    []AttributeRef{},
		DerivedAttributes:        []AttributeRef{},
		CompositeAttributes:      []CompositeGroup{},
		Relationships:            []string{},
		WeakEntities:             []string{},
		IdentifyingRelationships: []string{},
	}

	var groupOrder []string
	groups := map[string][]string{}

	for _, t := range tables {
		if t.Name != "" {
			a.Entities = append(a.Entities, t.Name)
		}
		for _, c := range t.Columns {
			a.AttributeCount++
			ref := AttributeRef{Table: t.Name, Column: c.Name}
			if keyAttrRe.MatchString(c.Type) {
				a.KeyAttributes = append(a.KeyAttributes, ref)
			}
			if multiValuedRe.MatchString(c.Type) {
				a.MultiValuedAttributes = append(a.MultiValuedAttributes, ref)
			}
			if derivedRe.MatchString(c.Name) {
				a.DerivedAttributes = append(a.DerivedAttributes, ref)
			}
			if prefix, _, ok := strings.Cut(c.Name, "_"); ok {
				if _, seen := groups[prefix]; !seen {
					groupOrder = append(groupOrder, prefix)
				}
				if !slices.Contains(groups[prefix], c.Name) {
					groups[prefix] = append(groups[prefix], c.Name)
				}
			}
		}
	}

	for _, prefix := range groupOrder {
		if parts := groups[prefix]; len(parts) > 1 {
			a.CompositeAttributes = append(a.CompositeAttributes, CompositeGroup{Name: prefix, Parts: parts})
		}
	}

	for _, t := range tables {
		weak := isWeakEntity(t, tables)
		if weak {
			a.WeakEntities = append(a.WeakEntities, t.Name)
		}
		for _, fk := range t.ForeignKeys {
			if rel := describeRelationship(t.Name, fk); rel != "" {
				a.Relationships = append(a.Relationships, rel)
			}
			if owner, ok := findTable(tables, fk.ToTable); weak && ok {
				a.IdentifyingRelationships = append(a.IdentifyingRelationships,
					fmt.Sprintf("%s.%s -> %s", t.Name, fk.From, owner.Name))
			}
		}
	}

	return a
}

// isWeakEntity reports whether t has no primary key column and at least one
// foreign key whose target is a table of the model.
func isWeakEntity(t Table, tables []Table) bool {
	for _, c := range t.Columns {
		if primaryKeyRe.MatchString(c.Type) {
			return false
		}
	}
	for _, fk := range t.ForeignKeys {
		if _, ok := findTable(tables, fk.ToTable); ok {
			return true
		}
	}
	return false
}

func describeRelationship(table string, fk ForeignKeyRef) string {
	left := table
	if table != "" && fk.From != "" {
		left = table + "." + fk.From
	}
	right := fk.ToTable
	if fk.ToTable != "" && fk.ToColumn != "" {
		right = fk.ToTable + "." + fk.ToColumn
	}
	switch {
	case left != "" && right != "":
		return left + " -> " + right
	case left != "":
		return left
	default:
		return right
	}
}
