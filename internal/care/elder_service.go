// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
)

// ListElders returns the actor's elders, or every elder for staff.
func (s *Service) ListElders(ctx context.Context, actor Actor) ([]*Elder, error) {
	elders, err := s.elders.List(ctx, actor.scope(staffRoles...))
	if err != nil {
		return nil, oops.Code("ELDER_LIST_FAILED").Wrap(err)
	}
	return elders, nil
}

// GetElder returns an elder the actor owns, or any elder for staff.
func (s *Service) GetElder(ctx context.Context, actor Actor, id ulid.ULID) (*Elder, error) {
	e, err := s.elders.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "ELDER", ErrElderNotFound, id)
	}
	if err := actor.ownerOr(e.OwnerID, "access", "elder", staffRoles...); err != nil {
		return nil, err
	}
	return e, nil
}

// CreateElder registers e under the actor's account.
func (s *Service) CreateElder(ctx context.Context, actor Actor, e *Elder) error {
	if err := e.Validate(); err != nil {
		return oops.Code("ELDER_INVALID").Wrap(err)
	}
	now := s.clock()
	e.ID = ulid.Make()
	e.OwnerID = actor.AccountID
	e.IsActive = true
	e.CreatedAt = now
	e.UpdatedAt = now
	if err := s.elders.Create(ctx, e); err != nil {
		return oops.Code("ELDER_CREATE_FAILED").With("id", e.ID.String()).Wrap(err)
	}
	return nil
}

// UpdateElder applies mutate to an elder the actor owns. Admins may update
// any elder.
func (s *Service) UpdateElder(ctx context.Context, actor Actor, id ulid.ULID, mutate Mutation[Elder]) (*Elder, error) {
	current, err := s.elders.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "ELDER", ErrElderNotFound, id)
	}
	if err := actor.ownerOr(current.OwnerID, "update", "elder", auth.RoleAdmin); err != nil {
		return nil, err
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, oops.Code("ELDER_INVALID").Wrap(err)
	}
	updated.ID, updated.OwnerID, updated.CreatedAt = current.ID, current.OwnerID, current.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, oops.Code("ELDER_INVALID").Wrap(err)
	}
	updated.UpdatedAt = s.clock()
	if err := s.elders.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, "ELDER_UPDATE_FAILED", ErrElderNotFound, id)
	}
	return &updated, nil
}

// DeleteElder removes an elder the actor owns. Admins may delete any elder.
func (s *Service) DeleteElder(ctx context.Context, actor Actor, id ulid.ULID) error {
	e, err := s.elders.Get(ctx, id)
	if err != nil {
		return lookupErr(err, "ELDER", ErrElderNotFound, id)
	}
	if err := actor.ownerOr(e.OwnerID, "delete", "elder", auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.elders.Delete(ctx, id); err != nil {
		return writeErr(err, "ELDER_DELETE_FAILED", ErrElderNotFound, id)
	}
	s.logger.InfoContext(ctx, "elder deleted", "elder_id", id.String(), "account_id", actor.AccountID.String())
	return nil
}
