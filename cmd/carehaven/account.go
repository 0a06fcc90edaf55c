// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/carehaven/carehaven/internal/auth"
)

// accountAdmin is the subset of auth.Service the account commands drive.
type accountAdmin interface {
	EnsureAdmin(ctx context.Context, in auth.AccountInput) (*auth.Account, bool, error)
	SetPassword(ctx context.Context, email, password string) (*auth.Account, error)
}

// accountFinder looks accounts up by email.
type accountFinder interface {
	GetByEmail(ctx context.Context, email string) (*auth.Account, error)
}

// NewAccountCmd creates the account maintenance subcommand.
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts from the command line",
		Long: `Bootstrap administrators and recover accounts without going through
the API.`,
	}
	cmd.AddCommand(newCreateAdminCmd())
	cmd.AddCommand(newResetPasswordCmd())
	cmd.AddCommand(newAccountCheckCmd())
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var in auth.AccountInput
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator or promote an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, nil, func(ctx context.Context, app *application) error {
				return runCreateAdmin(ctx, cmd, app.auth, in)
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "Admin", "first name for a new account")
	cmd.Flags().StringVar(&in.LastName, "last-name", "User", "last name for a new account")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (required for a new account)")
	_ = cmd.MarkFlagRequired("email") //nolint:errcheck // flag is registered above
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, nil, func(ctx context.Context, app *application) error {
				return runResetPassword(ctx, cmd, app.auth, email, password)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("email")    //nolint:errcheck // flag is registered above
	_ = cmd.MarkFlagRequired("password") //nolint:errcheck // flag is registered above
	return cmd
}

func newAccountCheckCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show the role, status and password hash format of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApplication(cmd, nil, func(ctx context.Context, app *application) error {
				return runAccountCheck(ctx, cmd, app.accounts, app.hasher, email)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email") //nolint:errcheck // flag is registered above
	return cmd
}

// withApplication connects to the database and runs fn with the wired
// services. Mail and document storage stay disabled.
func withApplication(cmd *cobra.Command, deps *Deps, fn func(ctx context.Context, app *application) error) error {
	deps = deps.withDefaults()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}
	logger := setupLogging(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	db, err := deps.DatabaseFactory(ctx, cfg.Database)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	app, err := buildApplication(ctx, cfg, db, deps, appOptions{}, logger)
	if err != nil {
		return err
	}
	return fn(ctx, app)
}

func runCreateAdmin(ctx context.Context, cmd *cobra.Command, admin accountAdmin, in auth.AccountInput) error {
	in.Email = strings.TrimSpace(in.Email)
	account, created, err := admin.EnsureAdmin(ctx, in)
	if err != nil {
		return err
	}
	if created {
		cmd.Printf("Created administrator %s (%s)\n", account.Email, account.ID)
		return nil
	}
	cmd.Printf("Promoted %s (%s) to administrator\n", account.Email, account.ID)
	return nil
}

func runResetPassword(ctx context.Context, cmd *cobra.Command, admin accountAdmin, email, password string) error {
	account, err := admin.SetPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	cmd.Printf("Password updated for %s\n", account.Email)
	return nil
}

func runAccountCheck(ctx context.Context, cmd *cobra.Command, accounts accountFinder, hasher auth.PasswordHasher, email string) error {
	email = strings.TrimSpace(email)
	account, err := accounts.GetByEmail(ctx, email)
	if errors.Is(err, auth.ErrNotFound) {
		return oops.Code("ACCOUNT_NOT_FOUND").With("email", email).Wrap(auth.ErrAccountNotFound)
	}
	if err != nil {
		return err
	}

	format := "plaintext"
	switch {
	case hasher.IsHashed(account.PasswordHash) && hasher.NeedsUpgrade(account.PasswordHash):
		format = "bcrypt (upgraded on next login)"
	case hasher.IsHashed(account.PasswordHash):
		format = "argon2id"
	}

	cmd.Printf("ID:       %s\n", account.ID)
	cmd.Printf("Name:     %s\n", account.Name())
	cmd.Printf("Role:     %s\n", account.Role)
	cmd.Printf("Active:   %t\n", account.IsActive)
	cmd.Printf("Password: %s\n", format)
	return nil
}
