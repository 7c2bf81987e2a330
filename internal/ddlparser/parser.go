// Package ddlparser provides the structural DDL parsers behind erd.Parser.
// The adapter is chosen once from configuration; callers only see the
// canonical erd tables.
package ddlparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

// ErrSyntax is returned when the DDL text cannot be parsed.
var ErrSyntax = errors.New("sql syntax error")

const (
	DriverVitess  = "vitess"
	DriverCommand = "command"
)

type Options struct {
	Driver string

	// Strict makes the vitess adapter fail on the first statement it cannot
	// parse instead of skipping it.
	Strict       bool
	MySQLVersion string

	// Command and Args name an external DDL-to-JSON tool reading SQL on stdin.
	Command string
	Args    []string
	Timeout time.Duration
}

// New builds the parser selected by opts.Driver. Any construction failure
// wraps erd.ErrParserUnavailable.
func New(opts Options) (erd.Parser, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverVitess:
		p, err := NewVitess(opts.MySQLVersion, opts.Strict)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverCommand:
		p, err := NewCommand(opts.Command, opts.Args, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown parser driver %q", erd.ErrParserUnavailable, opts.Driver)
	}
}
