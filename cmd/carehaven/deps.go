// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package main

import (
	"context"
	"log/slog"
	"net"

	"github.com/carehaven/carehaven/internal/blob"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/config"
	"github.com/carehaven/carehaven/internal/notify"
	"github.com/carehaven/carehaven/internal/observability"
	"github.com/carehaven/carehaven/internal/store"
)

// Deps contains injectable dependencies for the commands.
// All fields with nil values will use their default implementations.
type Deps struct {
	// DatabaseFactory opens the connection pool.
	// Default: store.Connect
	DatabaseFactory func(ctx context.Context, cfg config.DatabaseConfig) (Database, error)

	// MigratorFactory creates a schema migrator for a database URL.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)

	// StorageFactory creates document storage. Only called when blob
	// storage is configured.
	// Default: blob.New
	StorageFactory func(ctx context.Context, cfg config.BlobConfig) (care.DocumentStorage, error)

	// SenderFactory creates the outbound mail sender.
	// Default: notify.NewSMTPSender when mail is configured, otherwise
	// notify.NewLogSender
	SenderFactory func(cfg config.MailConfig, logger *slog.Logger) (notify.Sender, error)

	// ObservabilityServerFactory creates an observability server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// ListenerFactory creates the API listener.
	// Default: net.Listen
	ListenerFactory func(network, address string) (net.Listener, error)
}

// Database is the pool surface the commands use. *pgxpool.Pool satisfies it.
type Database interface {
	store.Pool
	Ping(ctx context.Context) error
	Close()
}

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
	PendingMigrations() ([]uint, error)
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// withDefaults returns a copy of d with every nil factory filled in.
func (d *Deps) withDefaults() *Deps {
	out := Deps{}
	if d != nil {
		out = *d
	}
	if out.DatabaseFactory == nil {
		out.DatabaseFactory = func(ctx context.Context, cfg config.DatabaseConfig) (Database, error) {
			opts := store.DefaultConnectOptions()
			if cfg.MaxConns > 0 {
				opts.MaxConns = cfg.MaxConns
			}
			pool, err := store.Connect(ctx, cfg.URL, opts)
			if err != nil {
				return nil, err
			}
			return pool, nil
		}
	}
	if out.MigratorFactory == nil {
		out.MigratorFactory = func(databaseURL string) (Migrator, error) {
			m, err := store.NewMigrator(databaseURL)
			if err != nil {
				return nil, err
			}
			return m, nil
		}
	}
	if out.StorageFactory == nil {
		out.StorageFactory = func(ctx context.Context, cfg config.BlobConfig) (care.DocumentStorage, error) {
			storage, err := blob.New(ctx, blob.Config{
				Endpoint:      cfg.Endpoint,
				Region:        cfg.Region,
				Bucket:        cfg.Bucket,
				AccessKey:     cfg.AccessKey,
				SecretKey:     cfg.SecretKey,
				PresignExpiry: cfg.PresignExpiry,
				AllowedTypes:  cfg.AllowedTypes,
			})
			if err != nil {
				return nil, err
			}
			return storage, nil
		}
	}
	if out.SenderFactory == nil {
		out.SenderFactory = defaultSender
	}
	if out.ObservabilityServerFactory == nil {
		out.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if out.ListenerFactory == nil {
		out.ListenerFactory = net.Listen
	}
	return &out
}

func defaultSender(cfg config.MailConfig, logger *slog.Logger) (notify.Sender, error) {
	if !cfg.Enabled() {
		return notify.NewLogSender(logger), nil
	}
	sender, err := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
	if err != nil {
		return nil, err
	}
	return sender, nil
}
