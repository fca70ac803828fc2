// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/bookreview/auth"
	"github.com/danielhkuo/bookreview/db"
	"github.com/danielhkuo/bookreview/store"
)

// SeedPassword is the password of every sample user.
const SeedPassword = "password123"

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users, books, and reviews",
		Long: `Insert three sample users, three books, and four reviews in one
transaction. Sample users log in with password "` + SeedPassword + `".

Seeding twice fails without inserting anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, dialect, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			defer conn.Close()

			if migrate {
				if err := db.Migrate(conn, dialect); err != nil {
					return err
				}
			}

			hash, err := auth.HashPassword(SeedPassword)
			if err != nil {
				return err
			}

			res, err := store.New(conn, dialect).Seed(cmd.Context(), hash)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d books, %d reviews\n", res.Users, res.Books, res.Reviews)
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations first")
	return cmd
}
