package main

import (
	"fmt"

	"github.com/Veraticus/gallery/internal/cli"
	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the SQLite schema to the latest version.

Other storage backends have no schema and are left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMigrate(cmd)
		},
	}

	cmd.Flags().Bool("status", false, "show the current schema version without applying changes")

	return cmd
}

func (a *app) runMigrate(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	opts := a.settings.Storage

	if opts.Backend != storage.BackendSQLite {
		fmt.Fprintf(out, "Storage backend %q has no schema to migrate\n", opts.Backend)
		return nil
	}

	store, err := storage.NewSQLiteStorage(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if status, _ := cmd.Flags().GetBool("status"); status {
		fmt.Fprintln(out, cli.RenderBox("Database Migration Status", fmt.Sprintf(
			"Database: %s\nCurrent version: %d\nLatest version: %d",
			store.Path(), current, storage.ExpectedSchemaVersion)))
		return nil
	}

	common.LogInfo("Running database migrations", common.Fields{"database": store.Path(), "from": current})

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d", storage.ExpectedSchemaVersion)))
	return nil
}
