// Package cmd - config commands
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quote-pricing/internal/config"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Write the default configuration as JSON. QUOTE_* environment variables
still override the written values when the file is loaded.

Examples:
  quote config init
  quote config init /etc/quote-pricing/config.json --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "quote-pricing.json"
		if len(args) > 0 {
			path = args[0]
		}
		return initConfigFile(cmd.OutOrStdout(), path, forceInit)
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func initConfigFile(w io.Writer, path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(w, "✓ wrote %s\n", path)
	return nil
}
