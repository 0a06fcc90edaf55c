// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

// caregiverSelect joins the account summary onto each profile.
const caregiverSelect = `
	SELECT c.id, c.account_id, c.specialization, c.experience_years, c.bio, c.availability,
		c.status, c.skills, c.languages, c.certifications, c.address, c.hourly_rate,
		c.created_at, c.updated_at, c.deleted_at,
		a.first_name, a.last_name, a.email, a.role
	FROM caregivers c
	JOIN accounts a ON a.id = c.account_id`

// CaregiverRepository implements care.CaregiverRepository using PostgreSQL.
// Deleted profiles are invisible to every read.
type CaregiverRepository struct {
	pool store.Querier
}

// NewCaregiverRepository creates a new CaregiverRepository.
func NewCaregiverRepository(pool store.Querier) *CaregiverRepository {
	return &CaregiverRepository{pool: pool}
}

func (r *CaregiverRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

type caregiverDocs struct {
	availability, skills, languages, certifications, address []byte
}

func encodeCaregiver(c *care.Caregiver) (caregiverDocs, error) {
	var (
		d   caregiverDocs
		err error
	)
	if d.availability, err = jsonList(c.Availability); err != nil {
		return d, err
	}
	if d.skills, err = jsonList(c.Skills); err != nil {
		return d, err
	}
	if d.languages, err = jsonList(c.Languages); err != nil {
		return d, err
	}
	if d.certifications, err = jsonList(c.Certifications); err != nil {
		return d, err
	}
	d.address, err = jsonObject(c.Address)
	return d, err
}

// Create stores a new profile.
func (r *CaregiverRepository) Create(ctx context.Context, c *care.Caregiver) error {
	docs, err := encodeCaregiver(c)
	if err != nil {
		return oops.Code("CAREGIVER_CREATE_FAILED").With("id", c.ID.String()).Wrap(err)
	}
	_, err = r.q(ctx).Exec(ctx, `
		INSERT INTO caregivers (
			id, account_id, specialization, experience_years, bio, availability, status,
			skills, languages, certifications, address, hourly_rate, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		c.ID.String(),
		c.AccountID.String(),
		c.Specialization,
		c.ExperienceYears,
		c.Bio,
		docs.availability,
		string(c.Status),
		docs.skills,
		docs.languages,
		docs.certifications,
		docs.address,
		c.HourlyRate,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if store.IsUniqueViolation(err, "caregivers_account_live_key") {
		return oops.Code("CAREGIVER_EXISTS").With("account_id", c.AccountID.String()).Wrap(care.ErrCaregiverExists)
	}
	if err != nil {
		return oops.Code("CAREGIVER_CREATE_FAILED").
			With("operation", "insert caregiver").
			With("id", c.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a live profile by ID.
func (r *CaregiverRepository) Get(ctx context.Context, id ulid.ULID) (*care.Caregiver, error) {
	row := r.q(ctx).QueryRow(ctx, caregiverSelect+`
		WHERE c.id = $1 AND c.deleted_at IS NULL
	`, id.String())

	c, err := scanCaregiver(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("CAREGIVER_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("CAREGIVER_GET_FAILED").
			With("operation", "get caregiver").
			With("id", id.String()).
			Wrap(err)
	}
	return c, nil
}

// Update writes the mutable profile fields.
func (r *CaregiverRepository) Update(ctx context.Context, c *care.Caregiver) error {
	docs, err := encodeCaregiver(c)
	if err != nil {
		return oops.Code("CAREGIVER_UPDATE_FAILED").With("id", c.ID.String()).Wrap(err)
	}
	return execOne(ctx, r.q(ctx), "CAREGIVER", "CAREGIVER_UPDATE_FAILED", "update caregiver", c.ID, `
		UPDATE caregivers SET
			specialization = $2,
			experience_years = $3,
			bio = $4,
			availability = $5,
			status = $6,
			skills = $7,
			languages = $8,
			certifications = $9,
			address = $10,
			hourly_rate = $11,
			updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`,
		c.ID.String(),
		c.Specialization,
		c.ExperienceYears,
		c.Bio,
		docs.availability,
		string(c.Status),
		docs.skills,
		docs.languages,
		docs.certifications,
		docs.address,
		c.HourlyRate,
		c.UpdatedAt,
	)
}

// SoftDelete marks a profile deleted and inactive.
func (r *CaregiverRepository) SoftDelete(ctx context.Context, id ulid.ULID, at time.Time) error {
	return execOne(ctx, r.q(ctx), "CAREGIVER", "CAREGIVER_DELETE_FAILED", "soft delete caregiver", id, `
		UPDATE caregivers SET deleted_at = $2, status = 'Inactive', updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id.String(), at)
}

// List returns live profiles, newest first.
func (r *CaregiverRepository) List(ctx context.Context) ([]*care.Caregiver, error) {
	rows, err := r.q(ctx).Query(ctx, caregiverSelect+`
		WHERE c.deleted_at IS NULL
		ORDER BY c.created_at DESC, c.id DESC
	`)
	if err != nil {
		return nil, oops.Code("CAREGIVER_LIST_FAILED").With("operation", "list caregivers").Wrap(err)
	}
	caregivers, err := collect(rows, scanCaregiver)
	if err != nil {
		return nil, oops.Code("CAREGIVER_LIST_FAILED").With("operation", "scan caregiver rows").Wrap(err)
	}
	return caregivers, nil
}

// scanCaregiver scans one caregiverSelect row. Callers handle pgx.ErrNoRows.
func scanCaregiver(row pgx.Row) (*care.Caregiver, error) {
	var (
		c                 care.Caregiver
		summary           auth.Summary
		idStr, accountStr string
		status, role      string
		availability      []byte
		skills, languages []byte
		certifications    []byte
		address           []byte
	)
	err := row.Scan(
		&idStr,
		&accountStr,
		&c.Specialization,
		&c.ExperienceYears,
		&c.Bio,
		&availability,
		&status,
		&skills,
		&languages,
		&certifications,
		&address,
		&c.HourlyRate,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
		&summary.FirstName,
		&summary.LastName,
		&summary.Email,
		&role,
	)
	if err != nil {
		return nil, err
	}

	if c.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if c.AccountID, err = parseID(accountStr); err != nil {
		return nil, err
	}
	c.Status = care.CaregiverStatus(status)
	if c.Availability, err = decodeList[care.Availability](availability); err != nil {
		return nil, err
	}
	if c.Skills, err = decodeList[string](skills); err != nil {
		return nil, err
	}
	if c.Languages, err = decodeList[string](languages); err != nil {
		return nil, err
	}
	if c.Certifications, err = decodeList[string](certifications); err != nil {
		return nil, err
	}
	if c.Address, err = decodeObject[care.Address](address); err != nil {
		return nil, err
	}
	summary.ID = c.AccountID
	summary.Role = auth.Role(role)
	c.Account = &summary
	return &c, nil
}

var _ care.CaregiverRepository = (*CaregiverRepository)(nil)
