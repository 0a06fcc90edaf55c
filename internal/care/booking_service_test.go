// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care_test

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/pkg/errutil"
)

func newBooking(owner ulid.ULID) *care.Booking {
	return &care.Booking{
		ID:           ulid.Make(),
		OwnerID:      owner,
		ContactName:  "Ada",
		ContactPhone: "5551112222",
		ServiceName:  "Companion visit",
		Date:         care.NewDate(2026, time.November, 2),
		Status:       care.BookingPending,
		Recurrence:   care.RecurrenceNone,
		IsActive:     true,
	}
}

func TestService_CreateBooking_UserAlwaysPending(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	user := actor(auth.RoleUser)
	b := newBooking(ulid.Make())
	b.Status = care.BookingConfirmed

	f.bookings.On("Create", ctx, mock.MatchedBy(func(got *care.Booking) bool {
		return got.Status == care.BookingPending && got.OwnerID == user.AccountID
	})).Return(nil)

	require.NoError(t, f.svc.CreateBooking(ctx, user, b))
}

func TestService_CreateBooking_StaffMayConfirm(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	b := newBooking(ulid.Make())
	b.Status = care.BookingConfirmed
	f.bookings.On("Create", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.svc.CreateBooking(ctx, actor(auth.RoleCaregiver), b))
	assert.Equal(t, care.BookingConfirmed, b.Status)
}

func TestService_UpdateBooking_StatusRules(t *testing.T) {
	ctx := context.Background()
	owner := actor(auth.RoleUser)

	tests := []struct {
		name      string
		actor     care.Actor
		status    care.BookingStatus
		wantErr   bool
		forbidden bool
	}{
		{"owner cancels", owner, care.BookingCancelled, false, false},
		{"owner cannot confirm", owner, care.BookingConfirmed, true, true},
		{"caregiver confirms", actor(auth.RoleCaregiver), care.BookingConfirmed, false, false},
		{"stranger", actor(auth.RoleUser), care.BookingCancelled, true, true},
		{"unknown status", actor(auth.RoleAdmin), "done", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)
			current := newBooking(owner.AccountID)
			f.bookings.On("Get", ctx, current.ID).Return(current, nil)
			if !tt.wantErr {
				f.bookings.On("Update", ctx, mock.Anything).Return(nil)
			}

			updated, err := f.svc.UpdateBooking(ctx, tt.actor, current.ID, func(b *care.Booking) error {
				b.Status = tt.status
				return nil
			})
			switch {
			case tt.forbidden:
				assertForbidden(t, err)
			case tt.wantErr:
				errutil.AssertErrorCode(t, err, "BOOKING_INVALID")
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.status, updated.Status)
				assert.Equal(t, owner.AccountID, updated.OwnerID)
			}
		})
	}
}

func TestService_DeleteBooking_AdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	id := ulid.Make()

	assertForbidden(t, f.svc.DeleteBooking(ctx, actor(auth.RoleCaregiver), id))

	f.bookings.On("Delete", ctx, id).Return(notFound("BOOKING"))
	err := f.svc.DeleteBooking(ctx, actor(auth.RoleAdmin), id)
	assert.ErrorIs(t, err, errutil.ErrNotFound)
}
