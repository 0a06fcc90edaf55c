// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
)

// ListStaff returns every staff record.
func (s *Service) ListStaff(ctx context.Context, actor Actor) ([]*Staff, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, oops.Code("STAFF_LIST_FAILED").Wrap(err)
	}
	return staff, nil
}

// GetStaff returns a staff record.
func (s *Service) GetStaff(ctx context.Context, actor Actor, id ulid.ULID) (*Staff, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	st, err := s.staff.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "STAFF", ErrStaffNotFound, id)
	}
	return st, nil
}

// CreateStaff adds a staff record. Employee ID and email are unique.
func (s *Service) CreateStaff(ctx context.Context, actor Actor, st *Staff) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return oops.Code("STAFF_INVALID").Wrap(err)
	}
	now := s.clock()
	st.ID = ulid.Make()
	st.CreatedAt = now
	st.UpdatedAt = now
	if err := s.staff.Create(ctx, st); err != nil {
		return oops.Code("STAFF_CREATE_FAILED").With("employee_id", st.EmployeeID).Wrap(err)
	}
	return nil
}

// UpdateStaff applies mutate to a staff record.
func (s *Service) UpdateStaff(ctx context.Context, actor Actor, id ulid.ULID, mutate Mutation[Staff]) (*Staff, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	current, err := s.staff.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "STAFF", ErrStaffNotFound, id)
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, oops.Code("STAFF_INVALID").Wrap(err)
	}
	updated.ID, updated.CreatedAt = current.ID, current.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, oops.Code("STAFF_INVALID").Wrap(err)
	}
	updated.UpdatedAt = s.clock()
	if err := s.staff.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, "STAFF_UPDATE_FAILED", ErrStaffNotFound, id)
	}
	return &updated, nil
}

// DeleteStaff removes a staff record.
func (s *Service) DeleteStaff(ctx context.Context, actor Actor, id ulid.ULID) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.staff.Delete(ctx, id); err != nil {
		return writeErr(err, "STAFF_DELETE_FAILED", ErrStaffNotFound, id)
	}
	return nil
}
