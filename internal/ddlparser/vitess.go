package ddlparser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vitess.io/vitess/go/vt/sqlparser"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

// Vitess parses MySQL-flavoured DDL with the vitess SQL parser.
type Vitess struct {
	parser *sqlparser.Parser
	strict bool
}

func NewVitess(mysqlVersion string, strict bool) (*Vitess, error) {
	p, err := sqlparser.New(sqlparser.Options{MySQLServerVersion: mysqlVersion})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", erd.ErrParserUnavailable, err)
	}
	return &Vitess{parser: p, strict: strict}, nil
}

// Parse returns one table per CREATE TABLE statement that has a name and at
// least one column. Other statements are ignored. In strict mode a statement
// vitess cannot read completely is an ErrSyntax; lenient mode skips it.
func (v *Vitess) Parse(ctx context.Context, sql string) ([]erd.Table, error) {
	pieces, err := v.parser.SplitStatementToPieces(sql)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	tables := make([]erd.Table, 0, len(pieces))
	for i, piece := range pieces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(piece) == "" {
			continue
		}

		stmt, err := v.parser.Parse(piece)
		if err != nil {
			if errors.Is(err, sqlparser.ErrEmpty) || !v.strict {
				continue
			}
			return nil, fmt.Errorf("%w: statement %d: %v", ErrSyntax, i+1, err)
		}

		create, ok := stmt.(*sqlparser.CreateTable)
		if !ok {
			continue
		}
		// vitess recovers from unsupported column definitions by returning
		// the statement without a table spec.
		if !create.FullyParsed {
			if !v.strict {
				continue
			}
			return nil, fmt.Errorf("%w: statement %d: unsupported table definition %q", ErrSyntax, i+1, create.Table.Name.String())
		}
		if t, ok := tableFromCreate(create); ok {
			tables = append(tables, t)
		}
	}

	return tables, nil
}

func tableFromCreate(ct *sqlparser.CreateTable) (erd.Table, bool) {
	t := erd.Table{
		Name:        ct.Table.Name.String(),
		Columns:     []erd.Column{},
		ForeignKeys: []erd.ForeignKeyRef{},
	}
	if ct.TableSpec == nil {
		return t, false
	}

	for _, col := range ct.TableSpec.Columns {
		name := col.Name.String()
		if name == "" || col.Type == nil {
			continue
		}
		// The rendered type carries the column options (primary key,
		// auto_increment, references ...), which the projections rely on.
		t.Columns = append(t.Columns, erd.Column{Name: name, Type: sqlparser.String(col.Type)})
		if col.Type.Options != nil && col.Type.Options.Reference != nil {
			t.ForeignKeys = appendReference(t.ForeignKeys, name, col.Type.Options.Reference)
		}
	}

	for _, c := range ct.TableSpec.Constraints {
		fk, ok := c.Details.(*sqlparser.ForeignKeyDefinition)
		if !ok || len(fk.Source) == 0 || fk.ReferenceDefinition == nil {
			continue
		}
		t.ForeignKeys = appendReference(t.ForeignKeys, fk.Source[0].String(), fk.ReferenceDefinition)
	}

	return t, t.Name != "" && len(t.Columns) > 0
}

// appendReference records from -> ref, keeping only the first referenced column.
func appendReference(fks []erd.ForeignKeyRef, from string, ref *sqlparser.ReferenceDefinition) []erd.ForeignKeyRef {
	toTable := ref.ReferencedTable.Name.String()
	if from == "" || toTable == "" {
		return fks
	}
	fk := erd.ForeignKeyRef{From: from, ToTable: toTable}
	if len(ref.ReferencedColumns) > 0 {
		fk.ToColumn = ref.ReferencedColumns[0].String()
	}
	return append(fks, fk)
}
