// =============================================================================
// Catalog Order Mapper - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// (generate, stats, find, build, version) are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (ordercsv)
//   ├── generateCmd (ordercsv generate)
//   ├── statsCmd    (ordercsv stats)
//   ├── findCmd     (ordercsv find)
//   ├── buildCmd    (ordercsv build)
//   └── versionCmd  (ordercsv version)
//
// The root command owns the global flags (--config, --catalog, --verbose)
// and the shared configuration/logging setup used by every subcommand.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/desideliver/catalog-mapper/internal/catalog"
	"github.com/desideliver/catalog-mapper/internal/config"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// catalogPath overrides the configured catalog location when set.
var catalogPath string

// verbose enables debug logging when set to true.
var verbose bool

// log is the shared logger for all commands.
var log = logrus.New()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ordercsv",
	Short: "Catalog Order Mapper - Generate order CSVs from customer order text",
	Long: `Catalog Order Mapper resolves free-text customer orders against the
canonical product catalog and generates CSV order files for fulfillment.

Customers send orders as plain text, one item per line, identified by item
code or item name:

  10026: 5
  BLACK CARDAMOM PP, 3

Each line is resolved against the catalog (by code, then exact name, then
case-insensitive name) and written to a validated CSV. Lines that cannot be
resolved are reported per row without aborting the rest of the order.

Example Usage:
  ordercsv generate -i order.txt -o order.csv   # Map one order file
  ordercsv generate                             # Process the orders directory
  ordercsv stats                                # Show catalog statistics
  ordercsv find 10026                           # Look up a catalog item
  ordercsv build --pricelists ./pricelists      # Rebuild catalog.json`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().StringVarP(
		&catalogPath,
		"catalog",
		"c",
		"",
		"Path to catalog.json (overrides the configured catalog location)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the main configuration and applies the logging level.
// A missing config file is not an error; defaults plus flags and
// environment variables are enough for the one-shot commands.
func loadConfig() (*config.MainConfig, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	return cfg, nil
}

// openCatalog creates the Catalog for the current invocation, honoring the
// --catalog flag over the configured path. The catalog is not read until
// first use.
func openCatalog(cfg *config.MainConfig) *catalog.Catalog {
	path := cfg.CatalogPath
	if catalogPath != "" {
		path = catalogPath
	}
	return catalog.New(path)
}
