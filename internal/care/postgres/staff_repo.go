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

const staffColumns = `id, employee_id, first_name, last_name, email, phone, date_of_birth, gender,
	address, emergency_contact, hire_date, position, department, salary, qualifications, skills,
	availability, status, notes, created_at, updated_at`

// StaffRepository implements care.StaffRepository using PostgreSQL.
type StaffRepository struct {
	pool store.Querier
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool store.Querier) *StaffRepository {
	return &StaffRepository{pool: pool}
}

func (r *StaffRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

type staffDocs struct {
	address, emergency, qualifications, skills, availability []byte
}

func encodeStaff(s *care.Staff) (staffDocs, error) {
	var (
		d   staffDocs
		err error
	)
	if d.address, err = jsonObject(s.Address); err != nil {
		return d, err
	}
	if d.emergency, err = jsonObject(s.EmergencyContact); err != nil {
		return d, err
	}
	if d.qualifications, err = jsonList(s.Qualifications); err != nil {
		return d, err
	}
	if d.skills, err = jsonList(s.Skills); err != nil {
		return d, err
	}
	d.availability, err = jsonList(s.Availability)
	return d, err
}

// staffConflict maps the unique employee id and email constraints.
func staffConflict(err error, s *care.Staff) error {
	if store.IsUniqueViolation(err, "staff_employee_id_key", "staff_email_key") {
		return oops.Code("STAFF_EXISTS").With("employee_id", s.EmployeeID).Wrap(care.ErrStaffExists)
	}
	return nil
}

// Create stores a new staff record.
func (r *StaffRepository) Create(ctx context.Context, s *care.Staff) error {
	docs, err := encodeStaff(s)
	if err != nil {
		return oops.Code("STAFF_CREATE_FAILED").With("id", s.ID.String()).Wrap(err)
	}
	_, err = r.q(ctx).Exec(ctx, `
		INSERT INTO staff (`+staffColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`,
		s.ID.String(),
		s.EmployeeID,
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		optionalDateArg(s.DateOfBirth),
		s.Gender,
		docs.address,
		docs.emergency,
		dateArg(s.HireDate),
		string(s.Position),
		s.Department,
		s.Salary,
		docs.qualifications,
		docs.skills,
		docs.availability,
		string(s.Status),
		s.Notes,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if conflict := staffConflict(err, s); conflict != nil {
		return conflict
	}
	if err != nil {
		return oops.Code("STAFF_CREATE_FAILED").
			With("operation", "insert staff").
			With("id", s.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a staff record by ID.
func (r *StaffRepository) Get(ctx context.Context, id ulid.ULID) (*care.Staff, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		WHERE id = $1
	`, id.String())

	s, err := scanStaff(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("STAFF_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("STAFF_GET_FAILED").
			With("operation", "get staff").
			With("id", id.String()).
			Wrap(err)
	}
	return s, nil
}

// Update writes the mutable staff fields.
func (r *StaffRepository) Update(ctx context.Context, s *care.Staff) error {
	docs, err := encodeStaff(s)
	if err != nil {
		return oops.Code("STAFF_UPDATE_FAILED").With("id", s.ID.String()).Wrap(err)
	}
	err = execOne(ctx, r.q(ctx), "STAFF", "STAFF_UPDATE_FAILED", "update staff", s.ID, `
		UPDATE staff SET
			employee_id = $2,
			first_name = $3,
			last_name = $4,
			email = $5,
			phone = $6,
			date_of_birth = $7,
			gender = $8,
			address = $9,
			emergency_contact = $10,
			hire_date = $11,
			position = $12,
			department = $13,
			salary = $14,
			qualifications = $15,
			skills = $16,
			availability = $17,
			status = $18,
			notes = $19,
			updated_at = $20
		WHERE id = $1
	`,
		s.ID.String(),
		s.EmployeeID,
		s.FirstName,
		s.LastName,
		s.Email,
		s.Phone,
		optionalDateArg(s.DateOfBirth),
		s.Gender,
		docs.address,
		docs.emergency,
		dateArg(s.HireDate),
		string(s.Position),
		s.Department,
		s.Salary,
		docs.qualifications,
		docs.skills,
		docs.availability,
		string(s.Status),
		s.Notes,
		s.UpdatedAt,
	)
	if conflict := staffConflict(err, s); conflict != nil {
		return conflict
	}
	return err
}

// Delete removes a staff record.
func (r *StaffRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "STAFF", "STAFF_DELETE_FAILED", "delete staff", id,
		`DELETE FROM staff WHERE id = $1`, id.String())
}

// List returns all staff ordered by name.
func (r *StaffRepository) List(ctx context.Context) ([]*care.Staff, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+staffColumns+`
		FROM staff
		ORDER BY last_name, first_name, id
	`)
	if err != nil {
		return nil, oops.Code("STAFF_LIST_FAILED").With("operation", "list staff").Wrap(err)
	}
	staff, err := collect(rows, scanStaff)
	if err != nil {
		return nil, oops.Code("STAFF_LIST_FAILED").With("operation", "scan staff rows").Wrap(err)
	}
	return staff, nil
}

// scanStaff scans one row. Callers handle pgx.ErrNoRows.
func scanStaff(row pgx.Row) (*care.Staff, error) {
	var (
		s                      care.Staff
		idStr                  string
		position, status       string
		born                   *time.Time
		hired                  time.Time
		address, emergency     []byte
		qualifications, skills []byte
		availability           []byte
	)
	err := row.Scan(
		&idStr,
		&s.EmployeeID,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.Phone,
		&born,
		&s.Gender,
		&address,
		&emergency,
		&hired,
		&position,
		&s.Department,
		&s.Salary,
		&qualifications,
		&skills,
		&availability,
		&status,
		&s.Notes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	s.DateOfBirth = optionalDate(born)
	s.HireDate = care.DateOf(hired)
	s.Position = care.StaffPosition(position)
	s.Status = care.StaffStatus(status)
	if s.Address, err = decodeObject[care.Address](address); err != nil {
		return nil, err
	}
	if s.EmergencyContact, err = decodeObject[care.Contact](emergency); err != nil {
		return nil, err
	}
	if s.Qualifications, err = decodeList[string](qualifications); err != nil {
		return nil, err
	}
	if s.Skills, err = decodeList[string](skills); err != nil {
		return nil, err
	}
	if s.Availability, err = decodeList[care.Availability](availability); err != nil {
		return nil, err
	}
	return &s, nil
}

var _ care.StaffRepository = (*StaffRepository)(nil)
