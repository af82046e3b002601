// Command atsctl administers the ATS key-value store from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ats-backend/internal/bootstrap"
	"ats-backend/internal/shared/config"
)

type globalFlags struct {
	backend    string
	sqlitePath string
	dbURL      string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags
	root := &cobra.Command{
		Use:           "atsctl",
		Short:         "ATS administration tool",
		Long:          "atsctl seeds demo data, inspects jobs and the stage catalog, and dry-runs candidate scoring against the configured store.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "KV backend: memory, sqlite or postgres (overrides KV_BACKEND)")
	root.PersistentFlags().StringVar(&flags.sqlitePath, "sqlite-path", "", "SQLite file (overrides SQLITE_PATH)")
	root.PersistentFlags().StringVar(&flags.dbURL, "db-url", "", "Postgres URL (overrides DATABASE_URL)")

	open := func(ctx context.Context) (*bootstrap.App, error) {
		return openApp(ctx, flags)
	}
	root.AddCommand(
		newSeedCmd(open),
		newStagesCmd(open),
		newJobsCmd(open),
		newScoreCmd(open),
	)
	return root
}

type appOpener func(ctx context.Context) (*bootstrap.App, error)

func openApp(ctx context.Context, flags globalFlags) (*bootstrap.App, error) {
	cfg := config.Load()
	if flags.dbURL != "" {
		cfg.DatabaseURL = flags.dbURL
		if flags.backend == "" {
			cfg.KVBackend = "postgres"
		}
	}
	if flags.sqlitePath != "" {
		cfg.SQLitePath = flags.sqlitePath
		if flags.backend == "" {
			cfg.KVBackend = "sqlite"
		}
	}
	if b := strings.TrimSpace(flags.backend); b != "" {
		cfg.KVBackend = b
	}
	// Seeding is an explicit command here.
	cfg.SeedDemoData = false
	return bootstrap.BuildContext(ctx, cfg)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
