package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/pkg/telemetry"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog <category>",
	Short: "Print the normalized products of a category as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalog,
}

var (
	tokenUID   string
	tokenEmail string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for a signed-in identity",
	Long: `Issue a bearer token signed with the configured JWT secret. Intended for
local development against the API.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUID, "uid", "", "identity uid (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "identity email (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("uid")
	_ = tokenCmd.MarkFlagRequired("email")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	telemetry.InitLogger(cfg.LogLevel)
	decimal.MarshalJSONWithoutQuotes = true

	// No shared cache: a one-shot command always reads the data files.
	cat, err := buildCatalog(cfg, nil)
	if err != nil {
		return err
	}
	if _, err := cat.Category(args[0]); err != nil {
		return err
	}

	products, err := cat.Products(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(products)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := identity.NewMiddleware(cfg.JWTSecret).Issue(identity.Identity{UID: tokenUID, Email: tokenEmail}, tokenTTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
