// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/bookreview/db"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Run the embedded schema migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back the latest migration
  status   - Show migration status
  version  - Print the current schema version`,
	}

	// run opens the database, calls fn, then prints the resulting version.
	run := func(fn func(conn *sql.DB, d db.Dialect) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			conn, dialect, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			if fn != nil {
				if err := fn(conn, dialect); err != nil {
					return err
				}
			}

			version, err := db.Version(conn, dialect)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		}
	}

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(db.Migrate),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE:  run(db.MigrateDown),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			Args:  cobra.NoArgs,
			RunE:  run(db.MigrationStatus),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE:  run(nil),
		},
	)

	return migrateCmd
}
