package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/metrics"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/renderer"
)

var (
	ErrNoDiagram = errors.New("no mermaid diagram provided")
	ErrNoContent = errors.New("no content provided")
)

const tableSchemaFilename = "table-schema.pdf"

// PDF is a rendered document and its download name.
type PDF struct {
	Filename string
	Data     []byte
}

type RenderService struct {
	renderer renderer.Renderer
}

func NewRenderService(r renderer.Renderer) *RenderService {
	return &RenderService{renderer: r}
}

// DiagramPDF renders Mermaid source. typ is "er", "attributes" or anything
// else for a table diagram.
func (s *RenderService) DiagramPDF(ctx context.Context, source, typ string) (pdf *PDF, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion("diagram_pdf", start, err) }()

	if source == "" {
		return nil, ErrNoDiagram
	}
	dt := renderer.ParseDiagramType(typ)
	page, err := renderer.DiagramPage(source, dt)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("render %s diagram: %w", dt, err)
	}
	return &PDF{Filename: dt.Filename(), Data: data}, nil
}

// TablePDF renders caller supplied HTML, or a listing of sql when html is empty.
func (s *RenderService) TablePDF(ctx context.Context, html, sql string) (pdf *PDF, err error) {
	start := time.Now()
	defer func() { metrics.RecordConversion("table_pdf", start, err) }()

	if html == "" && sql == "" {
		return nil, ErrNoContent
	}
	page := html
	if page == "" {
		if page, err = renderer.SQLPage(sql); err != nil {
			return nil, err
		}
	}
	data, err := s.renderer.RenderPDF(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("render table page: %w", err)
	}
	return &PDF{Filename: tableSchemaFilename, Data: data}, nil
}
