package services

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/metrics"
)

var (
	ErrNoSQLInput = errors.New("no SQL input")
	ErrNoERInput  = errors.New("no ER input")
)

// ERResult is everything the client needs to draw and explain a schema.
type ERResult struct {
	ER       []erd.Table  `json:"er"`
	Mermaid  string       `json:"mermaid"`
	Chen     string       `json:"chen"`
	Analysis erd.Analysis `json:"analysis"`
	Visual   bool         `json:"visual"`
}

// ConvertService runs the DDL pipeline. A nil parser is allowed; ToER then
// reports erd.ErrParserUnavailable while ForeignKeys keeps working.
type ConvertService struct {
	parser erd.Parser
}

func NewConvertService(parser erd.Parser) *ConvertService {
	return &ConvertService{parser: parser}
}

func (s *ConvertService) ParserAvailable() bool {
	return s.parser != nil
}

func (s *ConvertService) ToER(ctx context.Context, sql string) (result *ERResult, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion("to_er", start, err) }()

	if sql == "" {
		return nil, ErrNoSQLInput
	}
	tables, err := erd.ParseSchema(ctx, s.parser, sql)
	if err != nil {
		return nil, err
	}
	metrics.TablesParsed.Add(float64(len(tables)))

	return &ERResult{
		ER:       tables,
		Mermaid:  erd.ToCrowsFoot(tables),
		Chen:     erd.ToChen(tables),
		Analysis: erd.Analyze(tables),
		Visual:   true,
	}, nil
}

// ToSQL accepts the model as a JSON array or as a JSON string holding one.
func (s *ConvertService) ToSQL(raw []byte) (sql string, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion("to_sql", start, err) }()

	if isEmptyPayload(raw) {
		return "", ErrNoERInput
	}
	tables, err := erd.DecodeTables(raw)
	if err != nil {
		return "", err
	}
	return erd.ToSQL(tables), nil
}

func (s *ConvertService) ForeignKeys(sql string) erd.ForeignKeyMap {
	return erd.ExtractForeignKeysFromSQL(sql)
}

// isEmptyPayload mirrors a falsy check on the decoded value.
func isEmptyPayload(raw []byte) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", `""`, "false", "0":
		return true
	}
	return false
}
