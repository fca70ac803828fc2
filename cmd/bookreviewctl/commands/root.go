// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/bookreview/cliparse"
	"github.com/danielhkuo/bookreview/db"
)

type rootOptions struct {
	dbURL  string
	dbType string
}

// NewRootCmd builds the bookreviewctl command tree. Flag defaults come from
// DATABASE_URL and DATABASE_TYPE.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bookreviewctl",
		Short: "Operator tooling for the book review server",
		Long: `bookreviewctl manages the book review database.

Commands:
  migrate  - Apply, roll back, or inspect schema migrations
  seed     - Insert sample users, books, and reviews`,
		SilenceUsage: true,
	}

	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = cliparse.DatabasePostgres
	}
	rootCmd.PersistentFlags().StringVar(&opts.dbURL, "db", os.Getenv("DATABASE_URL"), "Database URL or SQLite file path")
	rootCmd.PersistentFlags().StringVarP(&opts.dbType, "type", "t", dbType, "Database type (postgres or sqlite)")

	rootCmd.AddCommand(newMigrateCmd(opts), newSeedCmd(opts))
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := cliparse.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func (o *rootOptions) open(ctx context.Context) (*sql.DB, db.Dialect, error) {
	if o.dbURL == "" {
		return nil, "", errors.New("database URL is required (--db or DATABASE_URL)")
	}
	dialect, err := db.ParseDialect(o.dbType)
	if err != nil {
		return nil, "", err
	}
	conn, err := db.Open(ctx, dialect, o.dbURL)
	if err != nil {
		return nil, "", err
	}
	return conn, dialect, nil
}
