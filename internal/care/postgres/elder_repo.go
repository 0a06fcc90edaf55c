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

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

const elderColumns = `id, owner_id, full_name, date_of_birth, gender, blood_group, height, weight,
	medical_history, allergies, medications, emergency_contacts, address, profile_image,
	is_active, created_at, updated_at`

// ElderRepository implements care.ElderRepository using PostgreSQL.
type ElderRepository struct {
	pool store.Querier
}

// NewElderRepository creates a new ElderRepository.
func NewElderRepository(pool store.Querier) *ElderRepository {
	return &ElderRepository{pool: pool}
}

func (r *ElderRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// elderDocs holds the JSONB encodings of an elder.
type elderDocs struct {
	height, weight, history, allergies, medications, contacts, address []byte
}

func encodeElder(e *care.Elder) (elderDocs, error) {
	var (
		d   elderDocs
		err error
	)
	if d.height, err = jsonObject(e.Height); err != nil {
		return d, err
	}
	if d.weight, err = jsonObject(e.Weight); err != nil {
		return d, err
	}
	if d.history, err = jsonList(e.MedicalHistory); err != nil {
		return d, err
	}
	if d.allergies, err = jsonList(e.Allergies); err != nil {
		return d, err
	}
	if d.medications, err = jsonList(e.Medications); err != nil {
		return d, err
	}
	if d.contacts, err = jsonList(e.EmergencyContacts); err != nil {
		return d, err
	}
	d.address, err = jsonObject(e.Address)
	return d, err
}

// Create stores a new elder.
func (r *ElderRepository) Create(ctx context.Context, e *care.Elder) error {
	docs, err := encodeElder(e)
	if err != nil {
		return oops.Code("ELDER_CREATE_FAILED").With("id", e.ID.String()).Wrap(err)
	}
	_, err = r.q(ctx).Exec(ctx, `
		INSERT INTO elders (`+elderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		e.ID.String(),
		e.OwnerID.String(),
		e.FullName,
		dateArg(e.DateOfBirth),
		e.Gender,
		e.BloodGroup,
		docs.height,
		docs.weight,
		docs.history,
		docs.allergies,
		docs.medications,
		docs.contacts,
		docs.address,
		e.ProfileImage,
		e.IsActive,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return oops.Code("ELDER_CREATE_FAILED").
			With("operation", "insert elder").
			With("id", e.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves an elder by ID.
func (r *ElderRepository) Get(ctx context.Context, id ulid.ULID) (*care.Elder, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+elderColumns+`
		FROM elders
		WHERE id = $1
	`, id.String())

	e, err := scanElder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ELDER_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ELDER_GET_FAILED").
			With("operation", "get elder").
			With("id", id.String()).
			Wrap(err)
	}
	return e, nil
}

// Update writes the mutable elder fields.
func (r *ElderRepository) Update(ctx context.Context, e *care.Elder) error {
	docs, err := encodeElder(e)
	if err != nil {
		return oops.Code("ELDER_UPDATE_FAILED").With("id", e.ID.String()).Wrap(err)
	}
	return execOne(ctx, r.q(ctx), "ELDER", "ELDER_UPDATE_FAILED", "update elder", e.ID, `
		UPDATE elders SET
			full_name = $2,
			date_of_birth = $3,
			gender = $4,
			blood_group = $5,
			height = $6,
			weight = $7,
			medical_history = $8,
			allergies = $9,
			medications = $10,
			emergency_contacts = $11,
			address = $12,
			profile_image = $13,
			is_active = $14,
			updated_at = $15
		WHERE id = $1
	`,
		e.ID.String(),
		e.FullName,
		dateArg(e.DateOfBirth),
		e.Gender,
		e.BloodGroup,
		docs.height,
		docs.weight,
		docs.history,
		docs.allergies,
		docs.medications,
		docs.contacts,
		docs.address,
		e.ProfileImage,
		e.IsActive,
		e.UpdatedAt,
	)
}

// Delete removes an elder. Family links go with it.
func (r *ElderRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "ELDER", "ELDER_DELETE_FAILED", "delete elder", id,
		`DELETE FROM elders WHERE id = $1`, id.String())
}

// List returns elders newest first, restricted to owner when it is not nil.
func (r *ElderRepository) List(ctx context.Context, owner *ulid.ULID) ([]*care.Elder, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+elderColumns+`
		FROM elders
		WHERE $1::text IS NULL OR owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, optionalID(owner))
	if err != nil {
		return nil, oops.Code("ELDER_LIST_FAILED").With("operation", "list elders").Wrap(err)
	}
	elders, err := collect(rows, scanElder)
	if err != nil {
		return nil, oops.Code("ELDER_LIST_FAILED").With("operation", "scan elder rows").Wrap(err)
	}
	return elders, nil
}

// scanElder scans one row. Callers handle pgx.ErrNoRows.
func scanElder(row pgx.Row) (*care.Elder, error) {
	var (
		e                care.Elder
		idStr, ownerStr  string
		born             time.Time
		height, weight   []byte
		history, allergy []byte
		meds, contacts   []byte
		address          []byte
	)
	err := row.Scan(
		&idStr,
		&ownerStr,
		&e.FullName,
		&born,
		&e.Gender,
		&e.BloodGroup,
		&height,
		&weight,
		&history,
		&allergy,
		&meds,
		&contacts,
		&address,
		&e.ProfileImage,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if e.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if e.OwnerID, err = parseID(ownerStr); err != nil {
		return nil, err
	}
	e.DateOfBirth = care.DateOf(born)
	if e.Height, err = decodeObject[care.Measurement](height); err != nil {
		return nil, err
	}
	if e.Weight, err = decodeObject[care.Measurement](weight); err != nil {
		return nil, err
	}
	if e.MedicalHistory, err = decodeList[string](history); err != nil {
		return nil, err
	}
	if e.Allergies, err = decodeList[string](allergy); err != nil {
		return nil, err
	}
	if e.Medications, err = decodeList[care.Medication](meds); err != nil {
		return nil, err
	}
	if e.EmergencyContacts, err = decodeList[care.Contact](contacts); err != nil {
		return nil, err
	}
	if e.Address, err = decodeObject[care.Address](address); err != nil {
		return nil, err
	}
	return &e, nil
}

var _ care.ElderRepository = (*ElderRepository)(nil)
