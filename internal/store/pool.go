// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package store bootstraps PostgreSQL access: the connection pool, the
// context-carried transaction and schema migrations.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Querier is the statement surface shared by *pgxpool.Pool, pgx.Tx and
// pgxmock, so repositories can run against any of them.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is a Querier that can open transactions.
type Pool interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectOptions tunes Connect.
type ConnectOptions struct {
	MaxConns    int32
	Attempts    uint64
	BaseBackoff time.Duration
}

// DefaultConnectOptions returns the options used when none are given.
func DefaultConnectOptions() ConnectOptions {
	return ConnectOptions{
		MaxConns:    10,
		Attempts:    5,
		BaseBackoff: 250 * time.Millisecond,
	}
}

// Connect opens a pool for dsn and pings it with exponential backoff until it
// answers or the attempts run out. The database usually comes up alongside
// the service in compose setups, so a few failed pings are expected.
func Connect(ctx context.Context, dsn string, opts ConnectOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").With("operation", "parse database url").Wrap(err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	if err := PingWithRetry(ctx, pool, opts); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// PingWithRetry pings p until it succeeds, ctx ends or opts.Attempts retries
// have failed.
func PingWithRetry(ctx context.Context, p Pinger, opts ConnectOptions) error {
	base := opts.BaseBackoff
	if base <= 0 {
		base = DefaultConnectOptions().BaseBackoff
	}
	backoff := retry.WithMaxRetries(opts.Attempts, retry.NewExponential(base))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := p.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			With("attempts", attempt).
			Wrap(err)
	}
	return nil
}
