package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var envTemplate = map[string]string{
	"PORT":                  "8080",
	"GIN_MODE":              "debug",
	"DB_HOST":               "localhost",
	"DB_PORT":               "5432",
	"DB_USERNAME":           "postgres",
	"DB_PASSWORD":           "your_password_here",
	"DB_DATABASE":           "er_converter",
	"ACCESS_TOKEN_SECRET":   "change_this_to_a_long_random_string",
	"ACCESS_TOKEN_TTL":      "24h",
	"REDIS_ADDR":            "",
	"PARSER_DRIVER":         "vitess",
	"PARSER_STRICT":         "true",
	"RENDERER_URL":          "http://localhost:3000",
	"RATE_LIMIT_PER_MINUTE": "60",
	"RATE_LIMIT_BURST":      "10",
}

func newSetupCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create a .env file with the settings the server reads",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			_, err := os.Stat(path)
			switch {
			case err == nil && !force:
				fmt.Fprintf(out, "%s already exists (use --force to overwrite)\n", path)
				return nil
			case err != nil && !errors.Is(err, fs.ErrNotExist):
				return err
			}

			if err := godotenv.Write(envTemplate, path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(out, "Created %s\n", path)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Update the database credentials and ACCESS_TOKEN_SECRET")
			fmt.Fprintln(out, "  2. Start PostgreSQL (and optionally Redis and Gotenberg)")
			fmt.Fprintln(out, "  3. Run the API: go run ./cmd/api")
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".env", "where to write the file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
