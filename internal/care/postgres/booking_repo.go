// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

const bookingColumns = `id, owner_id, contact_name, contact_phone, contact_email, address, service_name,
	scheduled_for, notes, status, recurrence, custom_recurrence, is_active, created_at, updated_at`

// BookingRepository implements care.BookingRepository using PostgreSQL.
type BookingRepository struct {
	pool store.Querier
}

// NewBookingRepository creates a new BookingRepository.
func NewBookingRepository(pool store.Querier) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// Create stores a new booking.
func (r *BookingRepository) Create(ctx context.Context, b *care.Booking) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		b.ID.String(),
		b.OwnerID.String(),
		b.ContactName,
		b.ContactPhone,
		b.ContactEmail,
		b.Address,
		b.ServiceName,
		dateArg(b.Date),
		b.Notes,
		string(b.Status),
		string(b.Recurrence),
		b.CustomRecurrence,
		b.IsActive,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return oops.Code("BOOKING_CREATE_FAILED").
			With("operation", "insert booking").
			With("id", b.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a booking by ID.
func (r *BookingRepository) Get(ctx context.Context, id ulid.ULID) (*care.Booking, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1
	`, id.String())

	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("BOOKING_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("BOOKING_GET_FAILED").
			With("operation", "get booking").
			With("id", id.String()).
			Wrap(err)
	}
	return b, nil
}

// Update writes the mutable booking fields.
func (r *BookingRepository) Update(ctx context.Context, b *care.Booking) error {
	return execOne(ctx, r.q(ctx), "BOOKING", "BOOKING_UPDATE_FAILED", "update booking", b.ID, `
		UPDATE bookings SET
			contact_name = $2,
			contact_phone = $3,
			contact_email = $4,
			address = $5,
			service_name = $6,
			scheduled_for = $7,
			notes = $8,
			status = $9,
			recurrence = $10,
			custom_recurrence = $11,
			is_active = $12,
			updated_at = $13
		WHERE id = $1
	`,
		b.ID.String(),
		b.ContactName,
		b.ContactPhone,
		b.ContactEmail,
		b.Address,
		b.ServiceName,
		dateArg(b.Date),
		b.Notes,
		string(b.Status),
		string(b.Recurrence),
		b.CustomRecurrence,
		b.IsActive,
		b.UpdatedAt,
	)
}

// Delete removes a booking.
func (r *BookingRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "BOOKING", "BOOKING_DELETE_FAILED", "delete booking", id,
		`DELETE FROM bookings WHERE id = $1`, id.String())
}

// List returns bookings by date, restricted to owner when it is not nil.
func (r *BookingRepository) List(ctx context.Context, owner *ulid.ULID) ([]*care.Booking, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE $1::text IS NULL OR owner_id = $1
		ORDER BY scheduled_for, created_at, id
	`, optionalID(owner))
	if err != nil {
		return nil, oops.Code("BOOKING_LIST_FAILED").With("operation", "list bookings").Wrap(err)
	}
	bookings, err := collect(rows, scanBooking)
	if err != nil {
		return nil, oops.Code("BOOKING_LIST_FAILED").With("operation", "scan booking rows").Wrap(err)
	}
	return bookings, nil
}

// scanBooking scans one row. Callers handle pgx.ErrNoRows.
func scanBooking(row pgx.Row) (*care.Booking, error) {
	var (
		b                  care.Booking
		idStr, ownerStr    string
		status, recurrence string
		scheduled          time.Time
	)
	err := row.Scan(
		&idStr,
		&ownerStr,
		&b.ContactName,
		&b.ContactPhone,
		&b.ContactEmail,
		&b.Address,
		&b.ServiceName,
		&scheduled,
		&b.Notes,
		&status,
		&recurrence,
		&b.CustomRecurrence,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if b.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if b.OwnerID, err = parseID(ownerStr); err != nil {
		return nil, err
	}
	b.Date = care.DateOf(scheduled)
	b.Status = care.BookingStatus(status)
	b.Recurrence = care.Recurrence(recurrence)
	return &b, nil
}

var _ care.BookingRepository = (*BookingRepository)(nil)
