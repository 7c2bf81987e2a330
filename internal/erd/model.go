// Package erd holds the canonical table/column/foreign-key model built from
// SQL DDL and the projections of that model into diagram and SQL text.
//
// Every function in this package is pure: inputs are never mutated and the
// same input always yields the same output.
package erd

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrParserUnavailable is returned when no structural DDL parser could be
	// constructed or none was supplied.
	ErrParserUnavailable = errors.New("ddl parser unavailable")

	// ErrMalformedModel is returned when a serialized table list cannot be decoded.
	ErrMalformedModel = errors.New("malformed ER model")
)

type Column struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// ForeignKeyRef is one outgoing reference from the owning table. An empty
// ToColumn means the target column is unknown.
type ForeignKeyRef struct {
	From     string `json:"from" yaml:"from"`
	ToTable  string `json:"toTable" yaml:"toTable"`
	ToColumn string `json:"toColumn,omitempty" yaml:"toColumn,omitempty"`
}

type Table struct {
	Name        string          `json:"name" yaml:"name"`
	Columns     []Column        `json:"columns" yaml:"columns"`
	ForeignKeys []ForeignKeyRef `json:"foreignKeys" yaml:"foreignKeys"`
}

// ForeignKeyMap maps a lower-cased table name to the references found for it.
// A table without references has no entry.
type ForeignKeyMap map[string][]ForeignKeyRef

// Parser turns DDL text into canonical tables. Implementations live in the
// ddlparser package and are chosen once at startup.
type Parser interface {
	Parse(ctx context.Context, sql string) ([]Table, error)
}

// ParseSchema runs the structural parser and the textual foreign key scan
// over sql and merges them with Reconcile.
func ParseSchema(ctx context.Context, p Parser, sql string) ([]Table, error) {
	if strings.TrimSpace(sql) == "" {
		return []Table{}, nil
	}
	if p == nil {
		return nil, ErrParserUnavailable
	}

	tables, err := p.Parse(ctx, sql)
	if err != nil {
		return nil, err
	}

	return Reconcile(tables, ExtractForeignKeysFromSQL(sql)), nil
}

func (t Table) clone() Table {
	out := Table{Name: t.Name}
	out.Columns = append([]Column{}, t.Columns...)
	out.ForeignKeys = append([]ForeignKeyRef{}, t.ForeignKeys...)
	return out
}

// IsPrimaryKey reports whether the column's declared type marks it as the
// primary key. This is the strict check used by the Chen projection and the
// rule analysis; the crow's-foot projection uses a looser heuristic.
func (c Column) IsPrimaryKey() bool {
	return strings.Contains(strings.ToLower(c.Type), "primary key")
}
