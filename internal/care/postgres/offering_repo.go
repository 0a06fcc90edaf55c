// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

const offeringColumns = `id, name, description, category, duration_minutes, price, currency, image,
	requires_caregiver, max_participants, is_active, created_at, updated_at`

// OfferingRepository implements care.OfferingRepository over the services
// table.
type OfferingRepository struct {
	pool store.Querier
}

// NewOfferingRepository creates a new OfferingRepository.
func NewOfferingRepository(pool store.Querier) *OfferingRepository {
	return &OfferingRepository{pool: pool}
}

func (r *OfferingRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// Create stores a new offering.
func (r *OfferingRepository) Create(ctx context.Context, o *care.Offering) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO services (`+offeringColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		o.ID.String(),
		o.Name,
		o.Description,
		string(o.Category),
		o.DurationMinutes,
		o.Price,
		o.Currency,
		o.Image,
		o.RequiresCaregiver,
		o.MaxParticipants,
		o.IsActive,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if store.IsUniqueViolation(err, "services_name_key") {
		return oops.Code("OFFERING_EXISTS").With("name", o.Name).Wrap(care.ErrOfferingExists)
	}
	if err != nil {
		return oops.Code("OFFERING_CREATE_FAILED").
			With("operation", "insert service").
			With("id", o.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves an offering by ID.
func (r *OfferingRepository) Get(ctx context.Context, id ulid.ULID) (*care.Offering, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+offeringColumns+`
		FROM services
		WHERE id = $1
	`, id.String())

	o, err := scanOffering(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("OFFERING_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("OFFERING_GET_FAILED").
			With("operation", "get service").
			With("id", id.String()).
			Wrap(err)
	}
	return o, nil
}

// Update writes the mutable offering fields.
func (r *OfferingRepository) Update(ctx context.Context, o *care.Offering) error {
	err := execOne(ctx, r.q(ctx), "OFFERING", "OFFERING_UPDATE_FAILED", "update service", o.ID, `
		UPDATE services SET
			name = $2,
			description = $3,
			category = $4,
			duration_minutes = $5,
			price = $6,
			currency = $7,
			image = $8,
			requires_caregiver = $9,
			max_participants = $10,
			is_active = $11,
			updated_at = $12
		WHERE id = $1
	`,
		o.ID.String(),
		o.Name,
		o.Description,
		string(o.Category),
		o.DurationMinutes,
		o.Price,
		o.Currency,
		o.Image,
		o.RequiresCaregiver,
		o.MaxParticipants,
		o.IsActive,
		o.UpdatedAt,
	)
	if store.IsUniqueViolation(err, "services_name_key") {
		return oops.Code("OFFERING_EXISTS").With("name", o.Name).Wrap(care.ErrOfferingExists)
	}
	return err
}

// Delete removes an offering.
func (r *OfferingRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "OFFERING", "OFFERING_DELETE_FAILED", "delete service", id,
		`DELETE FROM services WHERE id = $1`, id.String())
}

// List returns offerings ordered by name.
func (r *OfferingRepository) List(ctx context.Context, activeOnly bool) ([]*care.Offering, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+offeringColumns+`
		FROM services
		WHERE is_active OR NOT $1
		ORDER BY name
	`, activeOnly)
	if err != nil {
		return nil, oops.Code("OFFERING_LIST_FAILED").With("operation", "list services").Wrap(err)
	}
	offerings, err := collect(rows, scanOffering)
	if err != nil {
		return nil, oops.Code("OFFERING_LIST_FAILED").With("operation", "scan service rows").Wrap(err)
	}
	return offerings, nil
}

// scanOffering scans one row. Callers handle pgx.ErrNoRows.
func scanOffering(row pgx.Row) (*care.Offering, error) {
	var (
		o               care.Offering
		idStr, category string
	)
	err := row.Scan(
		&idStr,
		&o.Name,
		&o.Description,
		&category,
		&o.DurationMinutes,
		&o.Price,
		&o.Currency,
		&o.Image,
		&o.RequiresCaregiver,
		&o.MaxParticipants,
		&o.IsActive,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if o.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	o.Category = care.Category(category)
	return &o, nil
}

var _ care.OfferingRepository = (*OfferingRepository)(nil)
