// Package cmd provides the CLI commands for quote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quote-pricing/adapters/constants"
	"quote-pricing/core/pricing"
	"quote-pricing/internal/config"
	"quote-pricing/internal/logging"
)

// Version is the CLI version, overridden at build time
var Version = "0.1.0"

var (
	cfgFile       string
	constantsFile string
	verbose       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price bookkeeping and tax service quotes",
	Long: `quote prices an accounting-services quote from a versioned constants table.

Every figure is a whole currency unit. The same input, table and calendar
month always produce the same quote.

Examples:
  quote price input.json
  quote price --month 6 --format json input.json
  cat input.json | quote price --commission -
  quote commission --monthly 625 --setup 825
  quote constants validate configs/pricing.hcl`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON); QUOTE_* environment variables override it")
	rootCmd.PersistentFlags().StringVarP(&constantsFile, "constants", "c", "", "constants table file (.hcl, .yaml, .json); default is the built-in table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Add subcommands
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(commissionCmd)
	rootCmd.AddCommand(constantsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadTable resolves the constants table: the --constants flag wins over configuration
func loadTable() (*pricing.Table, error) {
	path := constantsFile
	if path == "" {
		path = config.Get().Pricing.ConstantsPath
	}
	return constants.Load(path)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quote version %s (built-in constants %s)\n", Version, pricing.DefaultVersion)
	},
}
