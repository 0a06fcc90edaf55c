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

// ListOfferings returns the catalog. Only admins see inactive services.
func (s *Service) ListOfferings(ctx context.Context, actor Actor) ([]*Offering, error) {
	offerings, err := s.offerings.List(ctx, !actor.Role.IsAdmin())
	if err != nil {
		return nil, oops.Code("OFFERING_LIST_FAILED").Wrap(err)
	}
	return offerings, nil
}

// GetOffering returns a catalog service.
func (s *Service) GetOffering(ctx context.Context, _ Actor, id ulid.ULID) (*Offering, error) {
	o, err := s.offerings.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "OFFERING", ErrOfferingNotFound, id)
	}
	return o, nil
}

// CreateOffering adds a service to the catalog.
func (s *Service) CreateOffering(ctx context.Context, actor Actor, o *Offering) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	return s.createOffering(ctx, o)
}

// SeedOffering adds o unless a service with the same name exists. It reports
// whether o was inserted. It performs no access check and is meant for the
// catalog loader.
func (s *Service) SeedOffering(ctx context.Context, o *Offering) (bool, error) {
	err := s.createOffering(ctx, o)
	if errors.Is(err, errutil.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) createOffering(ctx context.Context, o *Offering) error {
	if err := o.Validate(); err != nil {
		return oops.Code("OFFERING_INVALID").With("name", o.Name).Wrap(err)
	}
	now := s.clock()
	o.ID = ulid.Make()
	o.IsActive = true
	o.CreatedAt = now
	o.UpdatedAt = now
	if err := s.offerings.Create(ctx, o); err != nil {
		return oops.Code("OFFERING_CREATE_FAILED").With("name", o.Name).Wrap(err)
	}
	return nil
}

// UpdateOffering applies mutate to a catalog service.
func (s *Service) UpdateOffering(ctx context.Context, actor Actor, id ulid.ULID, mutate Mutation[Offering]) (*Offering, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	current, err := s.offerings.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "OFFERING", ErrOfferingNotFound, id)
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, oops.Code("OFFERING_INVALID").Wrap(err)
	}
	updated.ID, updated.CreatedAt = current.ID, current.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, oops.Code("OFFERING_INVALID").Wrap(err)
	}
	updated.UpdatedAt = s.clock()
	if err := s.offerings.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, "OFFERING_UPDATE_FAILED", ErrOfferingNotFound, id)
	}
	return &updated, nil
}

// DeleteOffering removes a catalog service.
func (s *Service) DeleteOffering(ctx context.Context, actor Actor, id ulid.ULID) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.offerings.Delete(ctx, id); err != nil {
		return writeErr(err, "OFFERING_DELETE_FAILED", ErrOfferingNotFound, id)
	}
	return nil
}
