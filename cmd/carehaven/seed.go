// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/carehaven/carehaven/internal/catalog"
	"github.com/carehaven/carehaven/internal/config"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the service catalog",
		Long: `Creates the services listed in a catalog file, or in the built-in
catalog when no file is given. Services whose name already exists are
skipped, so the command can run any number of times.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appCfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := appCfg.ValidateDatabase(); err != nil {
				return err
			}
			return runSeedWithDeps(cmd, cfg, appCfg, setupLogging(appCfg), nil)
		},
	}

	cmd.Flags().StringVar(&cfg.file, "file", "", "catalog YAML file (default: built-in catalog)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	cmd.AddCommand(newSeedValidateCmd())
	cmd.AddCommand(newSeedSchemaCmd())

	return cmd
}

func runSeedWithDeps(cmd *cobra.Command, cfg *seedConfig, appCfg *config.Config, logger *slog.Logger, deps *Deps) error {
	deps = deps.withDefaults()

	c, err := loadCatalog(cfg.file)
	if err != nil {
		return err
	}

	// Use cmd.Context() to respect SIGINT/SIGTERM signals
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	db, err := deps.DatabaseFactory(ctx, appCfg.Database)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	app, err := buildApplication(ctx, appCfg, db, deps, appOptions{}, logger)
	if err != nil {
		return err
	}

	res, err := catalog.Seed(ctx, app.care, c, logger)
	if err != nil {
		return err
	}
	cmd.Printf("Catalog seeded: %d created, %d already present\n", res.Created, res.Skipped)
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func newSeedValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog file without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := loadCatalog(file)
			if err != nil {
				return err
			}
			cmd.Printf("Catalog %s is valid: %d service(s)\n", c.Version, len(c.Services))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "catalog YAML file (default: built-in catalog)")
	return cmd
}

func newSeedSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the catalog JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schema, err := catalog.GenerateSchema()
			if err != nil {
				return err
			}
			cmd.Println(string(schema))
			return nil
		},
	}
}
