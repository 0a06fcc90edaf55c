// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

//go:build integration

package store_test

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/carehaven/carehaven/internal/store"
)

var _ = Describe("Migrator", Ordered, func() {
	var migrator *store.Migrator

	BeforeAll(func() {
		var err error
		migrator, err = store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = migrator.Close() })
	})

	It("reports version zero on an empty schema", func() {
		Expect(migrator.Down()).To(Succeed())
		version, dirty, err := migrator.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(BeZero())
		Expect(dirty).To(BeFalse())
	})

	It("applies, steps and reverts every migration", func() {
		latest, err := store.LatestVersion()
		Expect(err).NotTo(HaveOccurred())

		Expect(migrator.Up()).To(Succeed())
		version, _, err := migrator.Version()
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(Equal(latest))

		Expect(migrator.Steps(-1)).To(Succeed())
		version, _, _ = migrator.Version()
		Expect(version).To(Equal(latest - 1))

		Expect(migrator.Steps(1)).To(Succeed())
		Expect(migrator.Down()).To(Succeed())
		version, _, _ = migrator.Version()
		Expect(version).To(BeZero())

		Expect(migrator.Up()).To(Succeed())
		pending, err := migrator.PendingMigrations()
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(BeEmpty())
	})
})

var _ = Describe("Connect and Transactor", Ordered, func() {
	var pool *pgxpool.Pool

	BeforeAll(func() {
		m, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Up()).To(Succeed())
		Expect(m.Close()).To(Succeed())

		pool, err = store.Connect(context.Background(), connStr, store.DefaultConnectOptions())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(pool.Close)
	})

	insert := func(ctx context.Context, q store.Querier, id string) error {
		_, err := q.Exec(ctx,
			`INSERT INTO contact_messages (id, name, email, subject, message) VALUES ($1, 'n', 'e@x.io', 's', 'm')`, id)
		return err
	}
	count := func(id string) int {
		var n int
		Expect(pool.QueryRow(context.Background(),
			`SELECT count(*) FROM contact_messages WHERE id = $1`, id).Scan(&n)).To(Succeed())
		return n
	}

	It("commits work done through Conn", func() {
		ctx := context.Background()
		err := store.NewTransactor(pool).InTransaction(ctx, func(ctx context.Context) error {
			return insert(ctx, store.Conn(ctx, pool), "tx-commit")
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(count("tx-commit")).To(Equal(1))
	})

	It("rolls back when the function fails", func() {
		ctx := context.Background()
		boom := errors.New("boom")
		err := store.NewTransactor(pool).InTransaction(ctx, func(ctx context.Context) error {
			Expect(insert(ctx, store.Conn(ctx, pool), "tx-rollback")).To(Succeed())
			return boom
		})
		Expect(err).To(MatchError(boom))
		Expect(count("tx-rollback")).To(BeZero())
	})
})
