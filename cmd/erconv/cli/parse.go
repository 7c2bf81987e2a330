package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the table model extracted from a DDL file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oneOf(format, "json", "yaml"); err != nil {
				return err
			}
			tables, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			if format == "yaml" {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(tables); err != nil {
					return err
				}
				return enc.Close()
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tables)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")

	return cmd
}
