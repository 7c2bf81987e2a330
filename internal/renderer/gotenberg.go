// Package renderer turns HTML pages into PDF documents through a headless
// Chromium conversion service.
package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

var ErrRendererUnavailable = errors.New("pdf renderer unavailable")

type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// New returns a Gotenberg client for baseURL, or a renderer that always
// fails with ErrRendererUnavailable when baseURL is empty.
func New(baseURL string, timeout time.Duration) Renderer {
	if strings.TrimSpace(baseURL) == "" {
		return Unavailable{}
	}
	return NewGotenberg(baseURL, timeout)
}

type Unavailable struct{}

func (Unavailable) RenderPDF(context.Context, string) ([]byte, error) {
	return nil, ErrRendererUnavailable
}

// Gotenberg posts pages to the chromium HTML route of a Gotenberg service.
type Gotenberg struct {
	endpoint string
	client   *http.Client
}

func NewGotenberg(baseURL string, timeout time.Duration) *Gotenberg {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gotenberg{
		endpoint: strings.TrimRight(baseURL, "/") + "/forms/chromium/convert/html",
		client:   &http.Client{Timeout: timeout},
	}
}

// page options mirror an A4 sheet with 20px (~0.21in) margins
var formFields = map[string]string{
	"paperWidth":        "8.27",
	"paperHeight":       "11.7",
	"marginTop":         "0.21",
	"marginBottom":      "0.21",
	"marginLeft":        "0.21",
	"marginRight":       "0.21",
	"printBackground":   "true",
	"preferCssPageSize": "true",
	"waitDelay":         "2s",
}

func (g *Gotenberg) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(fw, html); err != nil {
		return nil, err
	}
	for k, v := range formFields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRendererUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("renderer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return pdf, nil
}
