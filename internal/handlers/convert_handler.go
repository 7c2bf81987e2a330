package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/ddlparser"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/renderer"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/responses"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/services"
)

type ConvertHandler struct {
	convertService *services.ConvertService
	renderService  *services.RenderService
}

func NewConvertHandler(convertService *services.ConvertService, renderService *services.RenderService) *ConvertHandler {
	return &ConvertHandler{
		convertService: convertService,
		renderService:  renderService,
	}
}

type sqlRequest struct {
	SQL string `json:"sql"`
}

func (h *ConvertHandler) ToER(c *gin.Context) {
	var req sqlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SQL == "" {
		responses.Fail(c, http.StatusBadRequest, err, "No SQL input")
		return
	}

	result, err := h.convertService.ToER(c.Request.Context(), req.SQL)
	switch {
	case err == nil:
		responses.Success(c, http.StatusOK, result, "")
	case errors.Is(err, erd.ErrParserUnavailable):
		responses.Fail(c, http.StatusInternalServerError, err, "Parser not available")
	case errors.Is(err, ddlparser.ErrSyntax):
		responses.Fail(c, http.StatusBadRequest, err, "Error parsing SQL")
	default:
		log.Printf("toER error: %v", err)
		responses.Fail(c, http.StatusInternalServerError, err, "Error parsing SQL")
	}
}

func (h *ConvertHandler) ToSQL(c *gin.Context) {
	var req struct {
		ER json.RawMessage `json:"er"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "No ER input")
		return
	}

	sql, err := h.convertService.ToSQL(req.ER)
	switch {
	case err == nil:
		responses.Success(c, http.StatusOK, gin.H{"sql": sql}, "")
	case errors.Is(err, services.ErrNoERInput):
		responses.Fail(c, http.StatusBadRequest, err, "No ER input")
	case errors.Is(err, erd.ErrMalformedModel):
		responses.Fail(c, http.StatusBadRequest, err, "Error converting ER")
	default:
		responses.Fail(c, http.StatusInternalServerError, err, "Error converting ER")
	}
}

// ForeignKeys runs only the textual scan and works without a parser.
func (h *ConvertHandler) ForeignKeys(c *gin.Context) {
	var req sqlRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SQL == "" {
		responses.Fail(c, http.StatusBadRequest, err, "No SQL input")
		return
	}
	responses.Success(c, http.StatusOK, h.convertService.ForeignKeys(req.SQL), "")
}

func (h *ConvertHandler) DownloadPDF(c *gin.Context) {
	var req struct {
		Mermaid string `json:"mermaid"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Mermaid == "" {
		responses.Fail(c, http.StatusBadRequest, err, "No Mermaid diagram provided")
		return
	}

	pdf, err := h.renderService.DiagramPDF(c.Request.Context(), req.Mermaid, req.Type)
	if err != nil {
		h.renderFailed(c, err, "Error generating PDF")
		return
	}
	sendPDF(c, pdf)
}

func (h *ConvertHandler) DownloadTablePDF(c *gin.Context) {
	var req struct {
		HTML string `json:"html"`
		SQL  string `json:"sql"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.HTML == "" && req.SQL == "") {
		responses.Fail(c, http.StatusBadRequest, err, "No content provided")
		return
	}

	pdf, err := h.renderService.TablePDF(c.Request.Context(), req.HTML, req.SQL)
	if err != nil {
		h.renderFailed(c, err, "Error generating table PDF")
		return
	}
	sendPDF(c, pdf)
}

func (h *ConvertHandler) renderFailed(c *gin.Context, err error, message string) {
	log.Printf("PDF generation error: %v", err)
	if errors.Is(err, renderer.ErrRendererUnavailable) {
		responses.Fail(c, http.StatusServiceUnavailable, err, message)
		return
	}
	responses.Fail(c, http.StatusInternalServerError, err, message)
}

func sendPDF(c *gin.Context, pdf *services.PDF) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, pdf.Filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Data)
}
