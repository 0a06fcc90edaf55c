// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

const paymentColumns = `id, booking_id, owner_id, amount, currency, status, method, transaction_id,
	created_at, updated_at`

// PaymentRepository implements care.PaymentRepository using PostgreSQL.
type PaymentRepository struct {
	pool store.Querier
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool store.Querier) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func (r *PaymentRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// Create stores a new payment.
func (r *PaymentRepository) Create(ctx context.Context, p *care.Payment) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		p.ID.String(),
		optionalID(p.BookingID),
		p.OwnerID.String(),
		p.Amount,
		p.Currency,
		string(p.Status),
		string(p.Method),
		p.TransactionID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PAYMENT_CREATE_FAILED").
			With("operation", "insert payment").
			With("id", p.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a payment by ID.
func (r *PaymentRepository) Get(ctx context.Context, id ulid.ULID) (*care.Payment, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1
	`, id.String())

	p, err := scanPayment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PAYMENT_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PAYMENT_GET_FAILED").
			With("operation", "get payment").
			With("id", id.String()).
			Wrap(err)
	}
	return p, nil
}

// Update writes the mutable payment fields.
func (r *PaymentRepository) Update(ctx context.Context, p *care.Payment) error {
	return execOne(ctx, r.q(ctx), "PAYMENT", "PAYMENT_UPDATE_FAILED", "update payment", p.ID, `
		UPDATE payments SET
			booking_id = $2,
			amount = $3,
			currency = $4,
			status = $5,
			method = $6,
			transaction_id = $7,
			updated_at = $8
		WHERE id = $1
	`,
		p.ID.String(),
		optionalID(p.BookingID),
		p.Amount,
		p.Currency,
		string(p.Status),
		string(p.Method),
		p.TransactionID,
		p.UpdatedAt,
	)
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "PAYMENT", "PAYMENT_DELETE_FAILED", "delete payment", id,
		`DELETE FROM payments WHERE id = $1`, id.String())
}

// List returns payments newest first, restricted to owner when it is not nil.
func (r *PaymentRepository) List(ctx context.Context, owner *ulid.ULID) ([]*care.Payment, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE $1::text IS NULL OR owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, optionalID(owner))
	if err != nil {
		return nil, oops.Code("PAYMENT_LIST_FAILED").With("operation", "list payments").Wrap(err)
	}
	payments, err := collect(rows, scanPayment)
	if err != nil {
		return nil, oops.Code("PAYMENT_LIST_FAILED").With("operation", "scan payment rows").Wrap(err)
	}
	return payments, nil
}

// scanPayment scans one row. Callers handle pgx.ErrNoRows.
func scanPayment(row pgx.Row) (*care.Payment, error) {
	var (
		p               care.Payment
		idStr, ownerStr string
		bookingStr      *string
		status, method  string
	)
	err := row.Scan(
		&idStr,
		&bookingStr,
		&ownerStr,
		&p.Amount,
		&p.Currency,
		&status,
		&method,
		&p.TransactionID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if p.OwnerID, err = parseID(ownerStr); err != nil {
		return nil, err
	}
	if p.BookingID, err = parseOptionalID(bookingStr); err != nil {
		return nil, err
	}
	p.Status = care.PaymentStatus(status)
	p.Method = care.PaymentMethod(method)
	return &p, nil
}

var _ care.PaymentRepository = (*PaymentRepository)(nil)
