// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package postgres provides the PostgreSQL care repositories.
//
// Identifiers are stored as ULID text. Structured values are JSONB documents
// and calendar dates use DATE columns.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

// Repositories bundles every care repository over one pool.
type Repositories struct {
	Elders        *ElderRepository
	Caregivers    *CaregiverRepository
	Staff         *StaffRepository
	Offerings     *OfferingRepository
	Bookings      *BookingRepository
	Invoices      *InvoiceRepository
	Payments      *PaymentRepository
	Documents     *DocumentRepository
	Contacts      *ContactRepository
	FamilyMembers *FamilyMemberRepository
}

// NewRepositories creates all care repositories.
func NewRepositories(pool store.Querier) *Repositories {
	return &Repositories{
		Elders:        NewElderRepository(pool),
		Caregivers:    NewCaregiverRepository(pool),
		Staff:         NewStaffRepository(pool),
		Offerings:     NewOfferingRepository(pool),
		Bookings:      NewBookingRepository(pool),
		Invoices:      NewInvoiceRepository(pool),
		Payments:      NewPaymentRepository(pool),
		Documents:     NewDocumentRepository(pool),
		Contacts:      NewContactRepository(pool),
		FamilyMembers: NewFamilyMemberRepository(pool),
	}
}

// Apply fills the repository fields of cfg.
func (r *Repositories) Apply(cfg *care.ServiceConfig) {
	cfg.Elders = r.Elders
	cfg.Caregivers = r.Caregivers
	cfg.Staff = r.Staff
	cfg.Offerings = r.Offerings
	cfg.Bookings = r.Bookings
	cfg.Invoices = r.Invoices
	cfg.Payments = r.Payments
	cfg.Documents = r.Documents
	cfg.Contacts = r.Contacts
	cfg.FamilyMembers = r.FamilyMembers
}

// execOne runs a single-row statement. Zero affected rows becomes
// PREFIX_NOT_FOUND wrapping care.ErrNotFound.
func execOne(ctx context.Context, q store.Querier, prefix, code, operation string, id ulid.ULID, sql string, args ...any) error {
	result, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return oops.Code(code).
			With("operation", operation).
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code(prefix+"_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	return nil
}

// collect scans every row with scan. The caller wraps the error.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// jsonList encodes a slice for a NOT NULL JSONB array column.
func jsonList[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, oops.With("operation", "encode jsonb").Wrap(err)
	}
	return b, nil
}

// jsonObject encodes v, or returns nil (SQL NULL) when v is nil.
func jsonObject[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, oops.With("operation", "encode jsonb").Wrap(err)
	}
	return b, nil
}

func decodeList[T any](b []byte) ([]T, error) {
	out := []T{}
	if len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, oops.With("operation", "decode jsonb").Wrap(err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func decodeObject[T any](b []byte) (*T, error) {
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, oops.With("operation", "decode jsonb").Wrap(err)
	}
	return &v, nil
}

func parseID(s string) (ulid.ULID, error) {
	id, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, oops.With("operation", "parse id").With("id", s).Wrap(err)
	}
	return id, nil
}

func parseOptionalID(s *string) (*ulid.ULID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := parseID(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalID(id *ulid.ULID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func dateArg(d care.Date) time.Time { return d.Time }

func optionalDateArg(d *care.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func optionalDate(t *time.Time) *care.Date {
	if t == nil {
		return nil
	}
	d := care.DateOf(*t)
	return &d
}
