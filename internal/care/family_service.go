// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

var errFamilyInputMissing = &errutil.ValidationError{Message: "Please provide userId, elderId, and relationship"}

// AddFamilyMember links an account to an elder. The actor must own the elder
// or be an admin. Marking the link primary demotes the elder's previous
// primary member in the same transaction.
func (s *Service) AddFamilyMember(ctx context.Context, actor Actor, in FamilyMemberInput) (*FamilyMember, error) {
	if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.ElderID) == "" || in.Relationship == "" {
		return nil, oops.Code("FAMILY_MEMBER_INVALID").Wrap(errFamilyInputMissing)
	}
	accountID, err := ulid.ParseStrict(strings.TrimSpace(in.UserID))
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_INVALID").Wrap(errutil.Invalid("userId", "Invalid user id"))
	}
	elderID, err := ulid.ParseStrict(strings.TrimSpace(in.ElderID))
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_INVALID").Wrap(errutil.Invalid("elderId", "Invalid elder id"))
	}
	if err := oneOf("relationship", in.Relationship, Relationships); err != nil {
		return nil, oops.Code("FAMILY_MEMBER_INVALID").Wrap(err)
	}

	elder, err := s.elders.Get(ctx, elderID)
	if errors.Is(err, ErrNotFound) {
		return nil, oops.Code("FAMILY_MEMBER_REFERENCE_NOT_FOUND").With("elder_id", elderID.String()).Wrap(ErrUserOrElderNotFound)
	}
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_CREATE_FAILED").With("operation", "get elder").Wrap(err)
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if errors.Is(err, ErrNotFound) {
		return nil, oops.Code("FAMILY_MEMBER_REFERENCE_NOT_FOUND").With("account_id", accountID.String()).Wrap(ErrUserOrElderNotFound)
	}
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_CREATE_FAILED").With("operation", "get account").Wrap(err)
	}
	if err := actor.ownerOr(elder.OwnerID, "manage family of", "elder", auth.RoleAdmin); err != nil {
		return nil, err
	}
	if accountID == elder.OwnerID {
		return nil, oops.Code("FAMILY_MEMBER_INVALID").
			Wrap(errutil.Invalid("userId", "The elder's owner cannot be added as a family member"))
	}

	now := s.clock()
	summary := account.Summary()
	m := &FamilyMember{
		ID:              ulid.Make(),
		AccountID:       accountID,
		ElderID:         elderID,
		Relationship:    in.Relationship,
		IsPrimary:       in.IsPrimary,
		CanViewMedical:  in.CanViewMedical,
		CanEditProfile:  in.CanEditProfile,
		CanBookServices: in.CanBookServices,
		CreatedAt:       now,
		UpdatedAt:       now,
		Account:         &summary,
	}
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if m.IsPrimary {
			if err := s.familyMembers.ClearPrimary(ctx, elderID, m.ID); err != nil {
				return err
			}
		}
		return s.familyMembers.Create(ctx, m)
	})
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_CREATE_FAILED").
			With("account_id", accountID.String()).
			With("elder_id", elderID.String()).
			Wrap(err)
	}
	return m, nil
}

// ListFamilyMembers returns an elder's family links. The elder's owner and
// staff may list them.
func (s *Service) ListFamilyMembers(ctx context.Context, actor Actor, elderID ulid.ULID) ([]*FamilyMember, error) {
	elder, err := s.elders.Get(ctx, elderID)
	if err != nil {
		return nil, lookupErr(err, "ELDER", ErrElderNotFound, elderID)
	}
	if err := actor.ownerOr(elder.OwnerID, "view family of", "elder", staffRoles...); err != nil {
		return nil, err
	}
	members, err := s.familyMembers.ListByElder(ctx, elderID)
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_LIST_FAILED").With("elder_id", elderID.String()).Wrap(err)
	}
	return members, nil
}

// UpdateFamilyMember applies patch to a family link.
func (s *Service) UpdateFamilyMember(ctx context.Context, actor Actor, id ulid.ULID, patch FamilyMemberPatch) (*FamilyMember, error) {
	m, err := s.manageableFamilyMember(ctx, actor, id, "update")
	if err != nil {
		return nil, err
	}
	if patch.Relationship != nil {
		if err := oneOf("relationship", *patch.Relationship, Relationships); err != nil {
			return nil, oops.Code("FAMILY_MEMBER_INVALID").Wrap(err)
		}
		m.Relationship = *patch.Relationship
	}
	promote := patch.IsPrimary != nil && *patch.IsPrimary && !m.IsPrimary
	if patch.IsPrimary != nil {
		m.IsPrimary = *patch.IsPrimary
	}
	if patch.CanViewMedical != nil {
		m.CanViewMedical = *patch.CanViewMedical
	}
	if patch.CanEditProfile != nil {
		m.CanEditProfile = *patch.CanEditProfile
	}
	if patch.CanBookServices != nil {
		m.CanBookServices = *patch.CanBookServices
	}
	m.UpdatedAt = s.clock()

	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if promote {
			if err := s.familyMembers.ClearPrimary(ctx, m.ElderID, m.ID); err != nil {
				return err
			}
		}
		return s.familyMembers.Update(ctx, m)
	})
	if err != nil {
		return nil, writeErr(err, "FAMILY_MEMBER_UPDATE_FAILED", ErrFamilyMemberNotFound, id)
	}
	return m, nil
}

// RemoveFamilyMember deletes a family link.
func (s *Service) RemoveFamilyMember(ctx context.Context, actor Actor, id ulid.ULID) error {
	if _, err := s.manageableFamilyMember(ctx, actor, id, "remove"); err != nil {
		return err
	}
	if err := s.familyMembers.Delete(ctx, id); err != nil {
		return writeErr(err, "FAMILY_MEMBER_DELETE_FAILED", ErrFamilyMemberNotFound, id)
	}
	return nil
}

// manageableFamilyMember loads a link the actor may change: the elder's owner
// and admins qualify.
func (s *Service) manageableFamilyMember(ctx context.Context, actor Actor, id ulid.ULID, action string) (*FamilyMember, error) {
	m, err := s.familyMembers.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "FAMILY_MEMBER", ErrFamilyMemberNotFound, id)
	}
	elder, err := s.elders.Get(ctx, m.ElderID)
	if err != nil {
		return nil, lookupErr(err, "ELDER", ErrElderNotFound, m.ElderID)
	}
	if err := actor.ownerOr(elder.OwnerID, action, "family member", auth.RoleAdmin); err != nil {
		return nil, err
	}
	return m, nil
}
