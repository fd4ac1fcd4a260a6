package cli

import (
	"fmt"

	"github.com/ridwanfathin/invoice-dashboard/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database schema",
		Long: `Apply the embedded migrations that are not yet recorded in the
schema_migrations table. Each file runs once, in name order, inside a
single transaction; already applied files are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				migrations, err := database.Migrations()
				if err != nil {
					return err
				}
				for _, m := range migrations {
					fmt.Fprintln(cmd.OutOrStdout(), m.Name)
				}
				return nil
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.db.Migrate(cmd.Context(), e.log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migration successfully executed!")
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "print the embedded migrations without applying them")
	return cmd
}
