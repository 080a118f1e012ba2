package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/minerva/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "minerva",
	Short: "Minerva - entity graph store and constraint engine",
	Long: `Minerva is a governance layer for autonomous-agent actions.

It keeps a typed graph of business entities, evaluates declarative
constraints against prospective actions, and records every verdict in
an append-only audit trail:
  - Domain schemas with entity types, properties, and relationships
  - Declarative constraints with block/warn/info severities
  - Per-action verdicts with plain-language explanations
  - Audit export to JSON and CSV

For more information, visit: https://github.com/mercator-hq/minerva`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// commandLogger builds the logger subcommands hand to engines and
// loaders. Debug level when --verbose is set, warn otherwise so command
// output stays clean.
func commandLogger() *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  level,
		Format: string(logging.FormatText),
		Writer: os.Stderr,
	})
	if err != nil {
		return slog.Default()
	}
	return logger.Slog()
}
