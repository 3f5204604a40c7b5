package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dekoratoriai/storefront/internal/pkg/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Decorative molding storefront backend",
	Long: `storefront serves the catalog, cart and business pricing API of the
decorative molding shop and relays appointment emails.

Configuration is read from the file given by --config (or STOREFRONT_CONFIG)
and overridden by environment variables.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("STOREFRONT_CONFIG"), "path to the YAML configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
