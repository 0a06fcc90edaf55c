// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care_test

import (
	"context"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/pkg/errutil"
)

func newInvoice() *care.Invoice {
	return &care.Invoice{
		Items: []care.InvoiceItem{
			{Description: "Companion visit", Quantity: 2, UnitPrice: 4000},
			{Description: "Transport", Quantity: 1, UnitPrice: 1500},
		},
		Tax:          950,
		PaymentTerms: care.Net15,
	}
}

func TestService_CreateInvoice_NumbersWithinTransaction(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	user := actor(auth.RoleUser)
	f.runTx()
	f.invoices.On("NextSequence", ctx, "202603").Return(7, nil)
	f.invoices.On("Create", ctx, mock.MatchedBy(func(inv *care.Invoice) bool {
		return inv.Number == "INV-202603-0007" && inv.OwnerID == user.AccountID
	})).Return(nil)

	inv := newInvoice()
	inv.Status = care.InvoicePaid
	require.NoError(t, f.svc.CreateInvoice(ctx, user, inv))

	assert.Equal(t, care.InvoiceDraft, inv.Status, "only admins choose the initial status")
	assert.Nil(t, inv.PaidAt)
	assert.Equal(t, int64(9500), inv.Subtotal)
	assert.Equal(t, int64(10450), inv.Total)
	assert.Equal(t, fixedNow, inv.InvoiceDate)
	assert.Equal(t, fixedNow.AddDate(0, 0, 15), inv.DueDate)
	assert.Contains(t, f.logs.String(), "INV-202603-0007")
}

func TestService_CreateInvoice_AdminBillsAnotherAccount(t *testing.T) {
	ctx := context.Background()
	admin := actor(auth.RoleAdmin)
	customer := ulid.Make()

	t.Run("existing account", func(t *testing.T) {
		f := newServiceFixture(t)
		f.runTx()
		f.accounts.On("GetByID", ctx, customer).Return(&auth.Account{ID: customer}, nil)
		f.invoices.On("NextSequence", ctx, "202603").Return(1, nil)
		f.invoices.On("Create", ctx, mock.Anything).Return(nil)

		inv := newInvoice()
		inv.OwnerID = customer
		inv.Status = care.InvoiceSent
		require.NoError(t, f.svc.CreateInvoice(ctx, admin, inv))
		assert.Equal(t, customer, inv.OwnerID)
		require.NotNil(t, inv.SentAt)
		assert.Equal(t, fixedNow, *inv.SentAt)
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newServiceFixture(t)
		f.accounts.On("GetByID", ctx, customer).Return(nil, notFound("ACCOUNT"))

		inv := newInvoice()
		inv.OwnerID = customer
		err := f.svc.CreateInvoice(ctx, admin, inv)
		errutil.AssertErrorCode(t, err, "INVOICE_ACCOUNT_NOT_FOUND")
		var pub *errutil.PublicError
		require.ErrorAs(t, err, &pub)
		assert.Equal(t, "User not found", pub.Message)
	})
}

func TestService_CreateInvoice_ForeignBookingIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	user := actor(auth.RoleUser)
	booking := newBooking(ulid.Make())
	f.bookings.On("Get", ctx, booking.ID).Return(booking, nil)

	inv := newInvoice()
	inv.BookingID = &booking.ID
	err := f.svc.CreateInvoice(ctx, user, inv)
	errutil.AssertErrorCode(t, err, "BOOKING_NOT_FOUND")
	assert.ErrorIs(t, err, errutil.ErrNotFound)
}

func TestService_CreateInvoice_SequenceFailureAborts(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	f.runTx()
	f.invoices.On("NextSequence", ctx, "202603").Return(0, errors.New("deadlock detected"))

	err := f.svc.CreateInvoice(ctx, actor(auth.RoleUser), newInvoice())
	errutil.AssertErrorCode(t, err, "INVOICE_NUMBER_FAILED")
	f.invoices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ListInvoices_ForcesOwnerForUsers(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	user := actor(auth.RoleUser)
	other := ulid.Make()
	status := care.InvoicePaid

	f.invoices.On("List", ctx, mock.MatchedBy(func(filter care.InvoiceFilter) bool {
		return filter.OwnerID != nil && *filter.OwnerID == user.AccountID && *filter.Status == status
	})).Return([]*care.Invoice{}, nil)

	_, err := f.svc.ListInvoices(ctx, user, care.InvoiceFilter{OwnerID: &other, Status: &status})
	require.NoError(t, err)
}

func TestService_UpdateInvoiceStatus(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	inv := newInvoice()
	inv.ID = ulid.Make()
	inv.Status = care.InvoiceSent

	_, err := f.svc.UpdateInvoiceStatus(ctx, actor(auth.RoleUser), inv.ID, care.InvoicePaid)
	assertForbidden(t, err)

	f.invoices.On("Get", ctx, inv.ID).Return(inv, nil)
	f.invoices.On("Update", ctx, inv).Return(nil)
	updated, err := f.svc.UpdateInvoiceStatus(ctx, actor(auth.RoleAdmin), inv.ID, care.InvoicePaid)
	require.NoError(t, err)
	assert.Equal(t, care.InvoicePaid, updated.Status)
	require.NotNil(t, updated.PaidAt)
	assert.Equal(t, int64(10450), updated.Total)
}
