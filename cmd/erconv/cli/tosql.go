package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
)

func newToSQLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tosql FILE",
		Short: "Print CREATE TABLE statements for a JSON table model (- for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			tables, err := erd.DecodeTables(data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), erd.ToSQL(tables))
			return err
		},
	}
}
