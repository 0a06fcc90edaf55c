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

// ListBookings returns the actor's bookings, or every booking for staff.
func (s *Service) ListBookings(ctx context.Context, actor Actor) ([]*Booking, error) {
	bookings, err := s.bookings.List(ctx, actor.scope(staffRoles...))
	if err != nil {
		return nil, oops.Code("BOOKING_LIST_FAILED").Wrap(err)
	}
	return bookings, nil
}

// GetBooking returns a booking the actor owns, or any booking for staff.
func (s *Service) GetBooking(ctx context.Context, actor Actor, id ulid.ULID) (*Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "BOOKING", ErrBookingNotFound, id)
	}
	if err := actor.ownerOr(b.OwnerID, "access", "booking", staffRoles...); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking books a service for the actor. Only staff may create a
// booking in a state other than pending.
func (s *Service) CreateBooking(ctx context.Context, actor Actor, b *Booking) error {
	if !actor.Role.IsStaff() {
		b.Status = BookingPending
	}
	if err := b.Validate(); err != nil {
		return oops.Code("BOOKING_INVALID").Wrap(err)
	}
	now := s.clock()
	b.ID = ulid.Make()
	b.OwnerID = actor.AccountID
	b.IsActive = true
	b.CreatedAt = now
	b.UpdatedAt = now
	if err := s.bookings.Create(ctx, b); err != nil {
		return oops.Code("BOOKING_CREATE_FAILED").With("id", b.ID.String()).Wrap(err)
	}
	return nil
}

// UpdateBooking applies mutate to a booking. Owners may change their booking
// and cancel it; confirming is reserved for staff.
func (s *Service) UpdateBooking(ctx context.Context, actor Actor, id ulid.ULID, mutate Mutation[Booking]) (*Booking, error) {
	current, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "BOOKING", ErrBookingNotFound, id)
	}
	if err := actor.ownerOr(current.OwnerID, "update", "booking", staffRoles...); err != nil {
		return nil, err
	}

	updated := *current
	if err := mutate(&updated); err != nil {
		return nil, oops.Code("BOOKING_INVALID").Wrap(err)
	}
	updated.ID, updated.OwnerID, updated.CreatedAt = current.ID, current.OwnerID, current.CreatedAt
	if updated.Status != current.Status && updated.Status != BookingCancelled && !actor.Role.IsStaff() {
		return nil, oops.Code("BOOKING_FORBIDDEN").
			With("id", id.String()).
			With("status", string(updated.Status)).
			Wrap(errutil.Forbidden("Only staff can confirm bookings"))
	}
	if err := updated.Validate(); err != nil {
		return nil, oops.Code("BOOKING_INVALID").Wrap(err)
	}
	updated.UpdatedAt = s.clock()
	if err := s.bookings.Update(ctx, &updated); err != nil {
		return nil, writeErr(err, "BOOKING_UPDATE_FAILED", ErrBookingNotFound, id)
	}
	return &updated, nil
}

// DeleteBooking removes a booking.
func (s *Service) DeleteBooking(ctx context.Context, actor Actor, id ulid.ULID) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return writeErr(err, "BOOKING_DELETE_FAILED", ErrBookingNotFound, id)
	}
	return nil
}

// ownedBooking checks that bookingID exists and is visible to actor.
func (s *Service) ownedBooking(ctx context.Context, actor Actor, bookingID ulid.ULID) error {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return lookupErr(err, "BOOKING", ErrBookingNotFound, bookingID)
	}
	if !actor.Owns(b.OwnerID) && !actor.Role.IsStaff() {
		return oops.Code("BOOKING_NOT_FOUND").With("id", bookingID.String()).Wrap(ErrBookingNotFound)
	}
	return nil
}
