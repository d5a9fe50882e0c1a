// Command admin is the operator CLI: database migrations, bootstrap admin
// accounts and a dump of the effective configuration.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"content-hub/internal/config"
	"content-hub/internal/infra/db"
	"content-hub/internal/observability/logging"
)

var version = "dev"

// deps are the side effects a command needs. Tests replace them.
type deps struct {
	loadConfig func() (*config.AppConfig, error)
	openDB     func(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error)
}

func main() {
	root := newRootCommand(deps{loadConfig: config.Load, openDB: db.Open})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(d deps) *cobra.Command {
	var cfg *config.AppConfig

	root := &cobra.Command{
		Use:           "admin",
		Short:         "content-hub operator commands",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := d.loadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), cfg.Log))
			return nil
		},
	}

	current := func() *config.AppConfig { return cfg }
	root.AddCommand(newMigrateCommand(d, current))
	root.AddCommand(newUserCommand(d, current))
	root.AddCommand(newConfigCommand(current))
	return root
}

// withDB opens the database for the duration of fn.
func withDB(ctx context.Context, d deps, cfg *config.AppConfig, fn func(*sql.DB) error) error {
	database, err := d.openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()
	return fn(database)
}
