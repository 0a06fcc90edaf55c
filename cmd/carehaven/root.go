// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/carehaven/carehaven/internal/config"
	"github.com/carehaven/carehaven/internal/logging"
	"github.com/carehaven/carehaven/internal/xdg"
)

const serviceName = "carehaven"

// Global flags available to all subcommands.
var (
	configFile string
	envFile    string
)

// NewRootCmd creates the root command for the CareHaven CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carehaven",
		Short: "CareHaven - elder care management API",
		Long: `CareHaven manages elders, caregivers, staff, services, bookings,
invoices, payments, documents and family contacts behind a REST API.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default $XDG_CONFIG_HOME/carehaven/config.yaml if present)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file path (ignored when missing)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewAccountCmd())

	return cmd
}

// loadConfig reads the layered configuration for cmd. Flags registered on
// the root command are merged into cmd.Flags() by cobra before RunE runs.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file := configFile
	if file == "" {
		found, err := xdg.DefaultConfigFile()
		if err != nil {
			return nil, err
		}
		file = found
	}
	return config.Load(config.LoadOptions{
		File:   file,
		DotEnv: envFile,
		Flags:  cmd.Flags(),
	})
}

// setupLogging installs the default logger described by cfg.
func setupLogging(cfg *config.Config) *slog.Logger {
	return logging.SetDefault(serviceName, version, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
}
