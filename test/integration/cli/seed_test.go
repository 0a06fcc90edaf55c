// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

//go:build integration

package cli_test

import (
	"context"
	"os/exec"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

var _ = Describe("Seed Command", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		resetDatabase(ctx, env.pool)

		output, err := carehaven(ctx, "migrate")
		Expect(err).NotTo(HaveOccurred(), "migrate failed: %s", output)
	})

	Describe("Catalog seeding", func() {
		It("creates every service of the built-in catalog", func() {
			output, err := carehaven(ctx, "seed")
			Expect(err).NotTo(HaveOccurred(), "seed command failed: %s", output)
			Expect(output).To(ContainSubstring("Catalog seeded: 7 created, 0 already present"))

			var count int
			Expect(env.pool.QueryRow(ctx, "SELECT COUNT(*) FROM services").Scan(&count)).To(Succeed())
			Expect(count).To(Equal(7))
		})

		It("is idempotent (running twice succeeds without duplicates)", func() {
			output1, err := carehaven(ctx, "seed")
			Expect(err).NotTo(HaveOccurred(), "first seed failed: %s", output1)

			output2, err := carehaven(ctx, "seed")
			Expect(err).NotTo(HaveOccurred(), "second seed failed: %s", output2)
			Expect(output2).To(ContainSubstring("0 created, 7 already present"))

			var count int
			Expect(env.pool.QueryRow(ctx, "SELECT COUNT(*) FROM services").Scan(&count)).To(Succeed())
			Expect(count).To(Equal(7))
		})
	})

	Describe("Error handling", func() {
		It("fails with CONFIG_INVALID when the database URL is missing", func() {
			cmd := exec.CommandContext(ctx, "go", "run", ".", "seed")
			cmd.Dir = cmdDir
			cmd.Env = append(cmd.Environ(), "CAREHAVEN_DATABASE__URL=", "DATABASE_URL=")

			output, err := cmd.CombinedOutput()
			Expect(err).To(HaveOccurred())
			Expect(string(output)).To(ContainSubstring("database.url is required"))
		})
	})
})

var _ = Describe("Migrate Command", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		resetDatabase(ctx, env.pool)
	})

	It("lists pending migrations and applies them", func() {
		output, err := carehaven(ctx, "migrate", "status")
		Expect(err).NotTo(HaveOccurred(), output)
		Expect(output).To(ContainSubstring("Current version: 0 (clean)"))
		Expect(output).To(ContainSubstring("000001_accounts"))

		output, err = carehaven(ctx, "migrate", "up")
		Expect(err).NotTo(HaveOccurred(), output)
		Expect(output).To(ContainSubstring("Migrations completed successfully"))

		output, err = carehaven(ctx, "migrate", "status")
		Expect(err).NotTo(HaveOccurred(), output)
		Expect(output).To(ContainSubstring("No pending migrations"))
	})

	It("refuses to revert without confirmation", func() {
		output, err := carehaven(ctx, "migrate", "down")
		Expect(err).To(HaveOccurred())
		Expect(output).To(ContainSubstring("--yes"))
	})
})

var _ = Describe("Account Command", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		resetDatabase(ctx, env.pool)

		output, err := carehaven(ctx, "migrate")
		Expect(err).NotTo(HaveOccurred(), "migrate failed: %s", output)
	})

	It("bootstraps an administrator and resets its password", func() {
		output, err := carehaven(ctx, "account", "create-admin",
			"--email", "admin@example.com", "--password", "s3cret-pass")
		Expect(err).NotTo(HaveOccurred(), output)
		Expect(output).To(ContainSubstring("Created administrator admin@example.com"))

		output, err = carehaven(ctx, "account", "create-admin", "--email", "admin@example.com")
		Expect(err).NotTo(HaveOccurred(), output)
		Expect(output).To(ContainSubstring("Promoted admin@example.com"))

		output, err = carehaven(ctx, "account", "reset-password",
			"--email", "admin@example.com", "--password", "an0ther-pass")
		Expect(err).NotTo(HaveOccurred(), output)

		output, err = carehaven(ctx, "account", "check", "--email", "admin@example.com")
		Expect(err).NotTo(HaveOccurred(), output)
		Expect(output).To(ContainSubstring("Role:     Admin"))
		Expect(output).To(ContainSubstring("Password: argon2id"))
	})
})
