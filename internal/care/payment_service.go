// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// ListPayments returns the actor's payments, or every payment for admins.
func (s *Service) ListPayments(ctx context.Context, actor Actor) ([]*Payment, error) {
	payments, err := s.payments.List(ctx, actor.scope(auth.RoleAdmin))
	if err != nil {
		return nil, oops.Code("PAYMENT_LIST_FAILED").Wrap(err)
	}
	return payments, nil
}

// GetPayment returns a payment the actor owns, or any payment for admins.
func (s *Service) GetPayment(ctx context.Context, actor Actor, id ulid.ULID) (*Payment, error) {
	p, err := s.payments.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "PAYMENT", ErrPaymentNotFound, id)
	}
	if err := actor.ownerOr(p.OwnerID, "access", "payment", auth.RoleAdmin); err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePayment records a payment by the actor. Only admins may record a
// payment in a state other than pending.
func (s *Service) CreatePayment(ctx context.Context, actor Actor, p *Payment) error {
	if !actor.Role.IsAdmin() {
		p.Status = PaymentPending
	}
	if err := p.Validate(); err != nil {
		return oops.Code("PAYMENT_INVALID").Wrap(err)
	}
	if p.BookingID != nil {
		if err := s.ownedBooking(ctx, actor, *p.BookingID); err != nil {
			return err
		}
	}
	now := s.clock()
	p.ID = ulid.Make()
	p.OwnerID = actor.AccountID
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.payments.Create(ctx, p); err != nil {
		return oops.Code("PAYMENT_CREATE_FAILED").With("id", p.ID.String()).Wrap(err)
	}
	return nil
}

// UpdatePayment applies mutate to a payment. Owners may change the method and
// transaction reference; amount and status changes are reserved for admins.
func (s *Service) UpdatePayment(ctx context.Context, actor Actor, id ulid.ULID, mutate Mutation[Payment]) (*Payment, error) {
	current, err := s.payments.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "PAYMENT", ErrPaymentNotFound, id)
	}
	if err := actor.ownerOr(current.OwnerID, "update", "payment", auth.RoleAdmin); err != nil {
		return nil, err
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, oops.Code("PAYMENT_INVALID").Wrap(err)
	}
	updated.ID, updated.OwnerID, updated.CreatedAt = current.ID, current.OwnerID, current.CreatedAt
	if !actor.Role.IsAdmin() && (updated.Amount != current.Amount || updated.Status != current.Status ||
		updated.Currency != current.Currency) {
		return nil, oops.Code("PAYMENT_FORBIDDEN").
			With("id", id.String()).
			Wrap(errutil.Forbidden("Only administrators can change a payment's amount or status"))
	}
	if err := updated.Validate(); err != nil {
		return nil, oops.Code("PAYMENT_INVALID").Wrap(err)
	}
	if updated.BookingID != nil && (current.BookingID == nil || *updated.BookingID != *current.BookingID) {
		if err := s.ownedBooking(ctx, actor, *updated.BookingID); err != nil {
			return nil, err
		}
	}
	updated.UpdatedAt = s.clock()
	if err := s.payments.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, "PAYMENT_UPDATE_FAILED", ErrPaymentNotFound, id)
	}
	return &updated, nil
}

// DeletePayment removes a payment.
func (s *Service) DeletePayment(ctx context.Context, actor Actor, id ulid.ULID) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return writeErr(err, "PAYMENT_DELETE_FAILED", ErrPaymentNotFound, id)
	}
	return nil
}
