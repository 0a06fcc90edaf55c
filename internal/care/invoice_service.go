// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
)

// ListInvoices returns invoices matching filter. Accounts other than staff
// only ever see their own.
func (s *Service) ListInvoices(ctx context.Context, actor Actor, filter InvoiceFilter) ([]*Invoice, error) {
	if owner := actor.scope(staffRoles...); owner != nil {
		filter.OwnerID = owner
	}
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, oops.Code("INVOICE_LIST_FAILED").Wrap(err)
	}
	return invoices, nil
}

// GetInvoice returns an invoice the actor owns, or any invoice for staff.
func (s *Service) GetInvoice(ctx context.Context, actor Actor, id ulid.ULID) (*Invoice, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "INVOICE", ErrInvoiceNotFound, id)
	}
	if err := actor.ownerOr(inv.OwnerID, "access", "invoice", staffRoles...); err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvoice numbers and stores inv. Admins may bill another account by
// setting OwnerID; everyone else bills themselves and starts in draft.
func (s *Service) CreateInvoice(ctx context.Context, actor Actor, inv *Invoice) error {
	now := s.clock()
	if !actor.Role.IsAdmin() || inv.OwnerID.IsZero() {
		inv.OwnerID = actor.AccountID
	}
	if !actor.Role.IsAdmin() {
		inv.Status = InvoiceDraft
	}
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = now
	}
	inv.SentAt, inv.PaidAt = nil, nil
	if err := inv.Validate(); err != nil {
		return oops.Code("INVOICE_INVALID").Wrap(err)
	}
	if err := inv.SetStatus(inv.Status, now); err != nil {
		return oops.Code("INVOICE_INVALID").Wrap(err)
	}

	if !actor.Owns(inv.OwnerID) {
		_, err := s.accounts.GetByID(ctx, inv.OwnerID)
		if errors.Is(err, ErrNotFound) {
			return oops.Code("INVOICE_ACCOUNT_NOT_FOUND").With("account_id", inv.OwnerID.String()).Wrap(ErrUserNotFound)
		}
		if err != nil {
			return oops.Code("INVOICE_CREATE_FAILED").With("operation", "get account").Wrap(err)
		}
	}
	if inv.BookingID != nil {
		if err := s.ownedBooking(ctx, actor, *inv.BookingID); err != nil {
			return err
		}
	}

	inv.ID = ulid.Make()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	period := InvoicePeriod(inv.InvoiceDate)
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		seq, err := s.invoices.NextSequence(ctx, period)
		if err != nil {
			return oops.Code("INVOICE_NUMBER_FAILED").With("period", period).Wrap(err)
		}
		inv.Number = FormatInvoiceNumber(period, seq)
		return s.invoices.Create(ctx, inv)
	})
	if err != nil {
		return oops.Code("INVOICE_CREATE_FAILED").With("id", inv.ID.String()).Wrap(err)
	}
	s.logger.InfoContext(ctx, "invoice created", "invoice_id", inv.ID.String(), "number", inv.Number)
	return nil
}

// UpdateInvoiceStatus moves an invoice to status.
func (s *Service) UpdateInvoiceStatus(ctx context.Context, actor Actor, id ulid.ULID, status InvoiceStatus) (*Invoice, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "INVOICE", ErrInvoiceNotFound, id)
	}
	now := s.clock()
	if err := inv.SetStatus(status, now); err != nil {
		return nil, oops.Code("INVOICE_INVALID").Wrap(err)
	}
	inv.ComputeTotals()
	inv.UpdatedAt = now
	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, writeErr(err, "INVOICE_UPDATE_FAILED", ErrInvoiceNotFound, id)
	}
	return inv, nil
}

// DeleteInvoice removes an invoice.
func (s *Service) DeleteInvoice(ctx context.Context, actor Actor, id ulid.ULID) error {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return err
	}
	if err := s.invoices.Delete(ctx, id); err != nil {
		return writeErr(err, "INVOICE_DELETE_FAILED", ErrInvoiceNotFound, id)
	}
	return nil
}
