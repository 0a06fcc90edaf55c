// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

const invoiceColumns = `id, number, owner_id, booking_id, invoice_date, due_date, status, items,
	subtotal, tax, discount, total, currency, notes, terms, payment_terms, billing_address,
	sent_at, paid_at, created_at, updated_at`

// InvoiceRepository implements care.InvoiceRepository using PostgreSQL.
type InvoiceRepository struct {
	pool store.Querier
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool store.Querier) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

func (r *InvoiceRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// NextSequence allocates the next number for period. The upsert takes a row
// lock, so concurrent callers never share a value; inside a transaction the
// number is released again on rollback.
func (r *InvoiceRepository) NextSequence(ctx context.Context, period string) (int, error) {
	var seq int
	err := r.q(ctx).QueryRow(ctx, `
		INSERT INTO invoice_sequences (period, last_value) VALUES ($1, 1)
		ON CONFLICT (period) DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value
	`, period).Scan(&seq)
	if err != nil {
		return 0, oops.Code("INVOICE_SEQUENCE_FAILED").
			With("operation", "allocate invoice number").
			With("period", period).
			Wrap(err)
	}
	return seq, nil
}

// Create stores a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, inv *care.Invoice) error {
	items, err := jsonList(inv.Items)
	if err != nil {
		return oops.Code("INVOICE_CREATE_FAILED").With("id", inv.ID.String()).Wrap(err)
	}
	billing, err := jsonObject(inv.BillingAddress)
	if err != nil {
		return oops.Code("INVOICE_CREATE_FAILED").With("id", inv.ID.String()).Wrap(err)
	}
	_, err = r.q(ctx).Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`,
		inv.ID.String(),
		inv.Number,
		inv.OwnerID.String(),
		optionalID(inv.BookingID),
		inv.InvoiceDate,
		inv.DueDate,
		string(inv.Status),
		items,
		inv.Subtotal,
		inv.Tax,
		inv.Discount,
		inv.Total,
		inv.Currency,
		inv.Notes,
		inv.Terms,
		string(inv.PaymentTerms),
		billing,
		inv.SentAt,
		inv.PaidAt,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return oops.Code("INVOICE_CREATE_FAILED").
			With("operation", "insert invoice").
			With("id", inv.ID.String()).
			With("number", inv.Number).
			Wrap(err)
	}
	return nil
}

// Get retrieves an invoice by ID.
func (r *InvoiceRepository) Get(ctx context.Context, id ulid.ULID) (*care.Invoice, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE id = $1
	`, id.String())

	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("INVOICE_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("INVOICE_GET_FAILED").
			With("operation", "get invoice").
			With("id", id.String()).
			Wrap(err)
	}
	return inv, nil
}

// Update writes the mutable invoice fields. The number never changes.
func (r *InvoiceRepository) Update(ctx context.Context, inv *care.Invoice) error {
	items, err := jsonList(inv.Items)
	if err != nil {
		return oops.Code("INVOICE_UPDATE_FAILED").With("id", inv.ID.String()).Wrap(err)
	}
	billing, err := jsonObject(inv.BillingAddress)
	if err != nil {
		return oops.Code("INVOICE_UPDATE_FAILED").With("id", inv.ID.String()).Wrap(err)
	}
	return execOne(ctx, r.q(ctx), "INVOICE", "INVOICE_UPDATE_FAILED", "update invoice", inv.ID, `
		UPDATE invoices SET
			booking_id = $2,
			invoice_date = $3,
			due_date = $4,
			status = $5,
			items = $6,
			subtotal = $7,
			tax = $8,
			discount = $9,
			total = $10,
			currency = $11,
			notes = $12,
			terms = $13,
			payment_terms = $14,
			billing_address = $15,
			sent_at = $16,
			paid_at = $17,
			updated_at = $18
		WHERE id = $1
	`,
		inv.ID.String(),
		optionalID(inv.BookingID),
		inv.InvoiceDate,
		inv.DueDate,
		string(inv.Status),
		items,
		inv.Subtotal,
		inv.Tax,
		inv.Discount,
		inv.Total,
		inv.Currency,
		inv.Notes,
		inv.Terms,
		string(inv.PaymentTerms),
		billing,
		inv.SentAt,
		inv.PaidAt,
		inv.UpdatedAt,
	)
}

// Delete removes an invoice.
func (r *InvoiceRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "INVOICE", "INVOICE_DELETE_FAILED", "delete invoice", id,
		`DELETE FROM invoices WHERE id = $1`, id.String())
}

// List returns invoices matching filter, newest first. From and To bound the
// invoice date inclusively.
func (r *InvoiceRepository) List(ctx context.Context, filter care.InvoiceFilter) ([]*care.Invoice, error) {
	var (
		where []string
		args  []any
	)
	if filter.OwnerID != nil {
		args = append(args, filter.OwnerID.String())
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("invoice_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("invoice_date <= $%d", len(args)))
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		`+clause+`
		ORDER BY invoice_date DESC, id DESC
	`, args...)
	if err != nil {
		return nil, oops.Code("INVOICE_LIST_FAILED").With("operation", "list invoices").Wrap(err)
	}
	invoices, err := collect(rows, scanInvoice)
	if err != nil {
		return nil, oops.Code("INVOICE_LIST_FAILED").With("operation", "scan invoice rows").Wrap(err)
	}
	return invoices, nil
}

// scanInvoice scans one row. Callers handle pgx.ErrNoRows.
func scanInvoice(row pgx.Row) (*care.Invoice, error) {
	var (
		inv             care.Invoice
		idStr, ownerStr string
		bookingStr      *string
		status, terms   string
		items, billing  []byte
	)
	err := row.Scan(
		&idStr,
		&inv.Number,
		&ownerStr,
		&bookingStr,
		&inv.InvoiceDate,
		&inv.DueDate,
		&status,
		&items,
		&inv.Subtotal,
		&inv.Tax,
		&inv.Discount,
		&inv.Total,
		&inv.Currency,
		&inv.Notes,
		&inv.Terms,
		&terms,
		&billing,
		&inv.SentAt,
		&inv.PaidAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if inv.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if inv.OwnerID, err = parseID(ownerStr); err != nil {
		return nil, err
	}
	if inv.BookingID, err = parseOptionalID(bookingStr); err != nil {
		return nil, err
	}
	inv.Status = care.InvoiceStatus(status)
	inv.PaymentTerms = care.PaymentTerms(terms)
	if inv.Items, err = decodeList[care.InvoiceItem](items); err != nil {
		return nil, err
	}
	if inv.BillingAddress, err = decodeObject[care.Address](billing); err != nil {
		return nil, err
	}
	return &inv, nil
}

var _ care.InvoiceRepository = (*InvoiceRepository)(nil)
