// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// ListCaregivers returns every live caregiver profile with its account.
func (s *Service) ListCaregivers(ctx context.Context, actor Actor) ([]*Caregiver, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	caregivers, err := s.caregivers.List(ctx)
	if err != nil {
		return nil, oops.Code("CAREGIVER_LIST_FAILED").Wrap(err)
	}
	return caregivers, nil
}

// GetCaregiver returns a live caregiver profile.
func (s *Service) GetCaregiver(ctx context.Context, _ Actor, id ulid.ULID) (*Caregiver, error) {
	c, err := s.caregivers.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "CAREGIVER", ErrCaregiverNotFound, id)
	}
	return c, nil
}

// CreateCaregiver creates a caregiver profile. A Caregiver always creates
// their own; an Admin names the account in c.AccountID.
func (s *Service) CreateCaregiver(ctx context.Context, actor Actor, c *Caregiver) error {
	if err := actor.require(auth.RoleAdmin, auth.RoleCaregiver); err != nil {
		return err
	}
	if !actor.Role.IsAdmin() {
		c.AccountID = actor.AccountID
	}
	if c.AccountID.IsZero() {
		return oops.Code("CAREGIVER_INVALID").Wrap(errutil.Invalid("userId", "Please provide userId"))
	}
	if err := c.Validate(); err != nil {
		return oops.Code("CAREGIVER_INVALID").Wrap(err)
	}

	account, err := s.accounts.GetByID(ctx, c.AccountID)
	if errors.Is(err, ErrNotFound) {
		return oops.Code("CAREGIVER_ACCOUNT_NOT_FOUND").With("account_id", c.AccountID.String()).Wrap(ErrUserNotFound)
	}
	if err != nil {
		return oops.Code("CAREGIVER_CREATE_FAILED").With("operation", "get account").Wrap(err)
	}

	now := s.clock()
	c.ID = ulid.Make()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.DeletedAt = nil
	if err := s.caregivers.Create(ctx, c); err != nil {
		return oops.Code("CAREGIVER_CREATE_FAILED").With("account_id", c.AccountID.String()).Wrap(err)
	}
	summary := account.Summary()
	c.Account = &summary
	return nil
}

// UpdateCaregiver applies mutate to a caregiver profile.
func (s *Service) UpdateCaregiver(ctx context.Context, actor Actor, id ulid.ULID, mutate Mutation[Caregiver]) (*Caregiver, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	current, err := s.caregivers.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "CAREGIVER", ErrCaregiverNotFound, id)
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, oops.Code("CAREGIVER_INVALID").Wrap(err)
	}
	updated.ID, updated.AccountID, updated.CreatedAt = current.ID, current.AccountID, current.CreatedAt
	updated.DeletedAt, updated.Account = nil, current.Account
	if err := updated.Validate(); err != nil {
		return nil, oops.Code("CAREGIVER_INVALID").Wrap(err)
	}
	updated.UpdatedAt = s.clock()
	if err := s.caregivers.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, "CAREGIVER_UPDATE_FAILED", ErrCaregiverNotFound, id)
	}
	return &updated, nil
}

// DeleteCaregiver soft-deletes a caregiver profile.
func (s *Service) DeleteCaregiver(ctx context.Context, actor Actor, id ulid.ULID) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.caregivers.SoftDelete(ctx, id, s.clock()); err != nil {
		return writeErr(err, "CAREGIVER_DELETE_FAILED", ErrCaregiverNotFound, id)
	}
	return nil
}
