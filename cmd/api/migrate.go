package main

import (
	"fmt"
	"os"
	"path"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"billdocs/internal/config"
	"billdocs/internal/database"
	"billdocs/internal/database/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply the embedded schema migrations (clients, documents, document_sequences)
to the database configured by the DB_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		db, err := database.NewPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		return migration.EnsureMigrated(cmd.Context(), db, cfg.Database.Host)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which migrations are applied",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		db, err := database.NewPostgres(cmd.Context(), cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		p, err := migration.NewProvider(db)
		if err != nil {
			return err
		}
		statuses, err := p.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("migration status: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VERSION\tFILE\tSTATE\tAPPLIED AT")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, path.Base(s.Source.Path), s.State, applied)
		}
		return w.Flush()
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
}
