package ddlparser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

const defaultCommandTimeout = 10 * time.Second

// Command delegates parsing to an external DDL-to-JSON tool. The SQL is
// written to the tool's stdin and its stdout is decoded as a JSON document,
// which is normalized with erd.NormalizeDocument.
type Command struct {
	path    string
	args    []string
	timeout time.Duration
}

func NewCommand(name string, args []string, timeout time.Duration) (*Command, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: no parser command configured", erd.ErrParserUnavailable)
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", erd.ErrParserUnavailable, err)
	}
	if timeout <= 0 {
		timeout = defaultCommandTimeout
	}
	return &Command{path: path, args: args, timeout: timeout}, nil
}

func (c *Command) Parse(ctx context.Context, sql string) ([]erd.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, c.args...)
	cmd.Stdin = strings.NewReader(sql)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ddl parser command: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s", ErrSyntax, firstLine(stderr.String(), err.Error()))
	}

	var doc any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode ddl parser output: %w", err)
	}
	return erd.NormalizeDocument(doc), nil
}

func firstLine(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	line, _, _ := strings.Cut(s, "\n")
	return line
}
