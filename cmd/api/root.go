package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"billdocs/internal/config"
	"billdocs/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "billdocs",
	Short: "Billing documents back-office API",
	Long: `billdocs issues and amends quotes, invoices and credit notes.

Totals are always computed by the server from the submitted line items and
every document gets a yearly sequential reference such as F-2026-001.
Configuration is read from the environment (a .env file is loaded if present).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		return logger.Setup(cfg.Log, cfg.Location())
	},
	// Without a subcommand the API is served.
	RunE: runServe,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command_failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	addServeFlags(serveCmd)
	addServeFlags(rootCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd)
}
