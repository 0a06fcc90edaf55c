// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package catalog

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
)

// Seeder inserts an offering unless one with the same name exists.
type Seeder interface {
	SeedOffering(ctx context.Context, o *care.Offering) (bool, error)
}

// Result counts the outcome of a Seed run.
type Result struct {
	Created int
	Skipped int
}

// Seed inserts every service in c. Services whose name is already taken
// are skipped, so reruns are safe. The first failure stops the run.
func Seed(ctx context.Context, seeder Seeder, c *Catalog, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var res Result
	for _, svc := range c.Services {
		if err := ctx.Err(); err != nil {
			return res, oops.Code("CATALOG_SEED_FAILED").Wrap(err)
		}
		created, err := seeder.SeedOffering(ctx, svc.Offering())
		if err != nil {
			return res, oops.Code("CATALOG_SEED_FAILED").With("service", svc.Name).Wrap(err)
		}
		if created {
			res.Created++
			logger.InfoContext(ctx, "service seeded", "service", svc.Name)
			continue
		}
		res.Skipped++
		logger.DebugContext(ctx, "service already present", "service", svc.Name)
	}
	return res, nil
}
