package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

func (a *app) newDiagramCmd() *cobra.Command {
	var notation string

	cmd := &cobra.Command{
		Use:   "diagram FILE",
		Short: "Print a Mermaid ER diagram for a DDL file (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := oneOf(notation, "crowsfoot", "chen"); err != nil {
				return err
			}
			tables, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			out := erd.ToCrowsFoot(tables)
			if notation == "chen" {
				out = erd.ToChen(tables)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&notation, "notation", "n", "crowsfoot", "diagram notation: crowsfoot or chen")

	return cmd
}
