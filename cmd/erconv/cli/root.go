package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/config"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/ddlparser"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

// parserFlags override the PARSER_* settings for one invocation.
type parserFlags struct {
	driver  string
	command string
	lenient bool
}

type app struct {
	parser    parserFlags
	newParser func(parserFlags) (erd.Parser, error)
}

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version, defaultParser).Execute()
}

func newRootCmd(version string, newParser func(parserFlags) (erd.Parser, error)) *cobra.Command {
	a := &app{newParser: newParser}

	cmd := &cobra.Command{
		Use:   "erconv",
		Short: "Convert SQL DDL into ER diagrams and back",
		Long: `erconv reads CREATE TABLE statements and produces the canonical table model,
Mermaid ER diagrams in crow's-foot or Chen notation, or CREATE TABLE text from a
saved model. It runs offline with the same pipeline as the HTTP API.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.parser.driver, "parser", "", "DDL parser driver: vitess or command (default from PARSER_DRIVER)")
	cmd.PersistentFlags().StringVar(&a.parser.command, "parser-command", "", "external DDL-to-JSON tool for --parser=command")
	cmd.PersistentFlags().BoolVar(&a.parser.lenient, "lenient", false, "skip statements the parser cannot read instead of failing")

	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(a.newParseCmd())
	cmd.AddCommand(a.newDiagramCmd())
	cmd.AddCommand(newToSQLCmd())

	return cmd
}

// defaultParser starts from the environment configuration and applies flags.
func defaultParser(f parserFlags) (erd.Parser, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	opts := ddlparser.Options{
		Driver:       cfg.Parser.Driver,
		Strict:       cfg.Parser.Strict,
		MySQLVersion: cfg.Parser.MySQLVersion,
		Command:      cfg.Parser.Command,
		Timeout:      cfg.Parser.Timeout,
	}
	if f.driver != "" {
		opts.Driver = f.driver
	}
	if f.command != "" {
		opts.Command = f.command
	}
	if f.lenient {
		opts.Strict = false
	}
	return ddlparser.New(opts)
}

// parseFile reads DDL from path ("-" for stdin) and runs the full pipeline.
func (a *app) parseFile(cmd *cobra.Command, path string) ([]erd.Table, error) {
	sql, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	p, err := a.newParser(a.parser)
	if err != nil {
		return nil, err
	}
	return erd.ParseSchema(cmd.Context(), p, string(sql))
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func oneOf(value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q (expected %s)", value, strings.Join(allowed, " or "))
}
