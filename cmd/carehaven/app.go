// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	authpg "github.com/carehaven/carehaven/internal/auth/postgres"
	"github.com/carehaven/carehaven/internal/care"
	carepg "github.com/carehaven/carehaven/internal/care/postgres"
	"github.com/carehaven/carehaven/internal/config"
	"github.com/carehaven/carehaven/internal/notify"
	"github.com/carehaven/carehaven/internal/store"
)

// application holds the services built over one database pool.
type application struct {
	auth     *auth.Service
	care     *care.Service
	gate     *auth.Gate
	tokens   *auth.TokenService
	hasher   auth.PasswordHasher
	accounts *authpg.AccountRepository
}

// appOptions selects the optional collaborators of buildApplication.
type appOptions struct {
	// mail wires the SMTP or log mailer as reset and contact notifier.
	mail bool
	// storage wires document storage when blob storage is configured.
	storage bool
}

// buildApplication wires repositories and services over db.
func buildApplication(ctx context.Context, cfg *config.Config, db store.Pool, deps *Deps, opts appOptions, logger *slog.Logger) (*application, error) {
	accounts := authpg.NewAccountRepository(db)
	tx := store.NewTransactor(db)
	hasher := auth.NewArgon2idHasher()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		// Maintenance commands never hand out the tokens they issue.
		secret = uuid.NewString()
	}
	tokens, err := auth.NewTokenService(secret, auth.WithTokenExpiry(cfg.Auth.JWTExpiry))
	if err != nil {
		return nil, err
	}

	var mailer *notify.Mailer
	if opts.mail {
		sender, err := deps.SenderFactory(cfg.Mail, logger)
		if err != nil {
			return nil, oops.Code("MAIL_SETUP_FAILED").Wrap(err)
		}
		mailer, err = notify.NewMailer(sender,
			notify.WithAdminAddress(cfg.Mail.AdminAddress),
			notify.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
	}

	var resetNotifier auth.ResetNotifier = discardReset{}
	if mailer != nil {
		resetNotifier = mailer
	}
	authSvc, err := auth.NewService(accounts, tx, hasher, tokens, resetNotifier,
		auth.WithLogger(logger),
		auth.WithResetURL(cfg.Auth.ResetURL),
		auth.WithAdminSignup(cfg.Auth.AllowAdminSignup),
	)
	if err != nil {
		return nil, err
	}

	careCfg := care.ServiceConfig{
		Accounts: accounts,
		Tx:       tx,
		Logger:   logger,
	}
	carepg.NewRepositories(db).Apply(&careCfg)
	if mailer != nil {
		careCfg.Notifier = mailer
	}
	if opts.storage && cfg.Blob.Enabled() {
		storage, err := deps.StorageFactory(ctx, cfg.Blob)
		if err != nil {
			return nil, oops.Code("BLOB_SETUP_FAILED").Wrap(err)
		}
		careCfg.Storage = storage
	}
	careSvc, err := care.NewService(careCfg)
	if err != nil {
		return nil, err
	}

	gate, err := auth.NewGate(tokens, accounts)
	if err != nil {
		return nil, err
	}

	return &application{
		auth:     authSvc,
		care:     careSvc,
		gate:     gate,
		tokens:   tokens,
		hasher:   hasher,
		accounts: accounts,
	}, nil
}

// discardReset drops reset links. Only maintenance commands use it; they
// never start a password reset.
type discardReset struct{}

func (discardReset) SendPasswordReset(context.Context, *auth.Account, string) error { return nil }
