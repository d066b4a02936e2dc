package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hamster/internal/repository"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema to the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runMigrate(ctx, rootOpts, cmd)
		},
	}
}

func runMigrate(ctx context.Context, opts *RootOptions, cmd *cobra.Command) error {
	db, err := repository.Open(opts.DatabasePath, opts.logLevel())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	migrator := repository.NewMigrator(db)
	before, existed, err := migrator.Version(ctx)
	if err != nil {
		return err
	}

	after, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case !existed:
		fmt.Fprintf(out, "created schema version %d\n", after)
	case before == after:
		fmt.Fprintf(out, "schema is up to date (version %d)\n", after)
	default:
		fmt.Fprintf(out, "migrated schema from version %d to %d\n", before, after)
	}
	return nil
}
