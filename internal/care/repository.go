// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/internal/auth"
)

// Repositories return errors wrapping ErrNotFound for missing records and the
// matching Err*Exists value for uniqueness conflicts.

// ElderRepository manages elder persistence.
type ElderRepository interface {
	// Create persists a new elder.
	Create(ctx context.Context, e *Elder) error

	// Get retrieves an elder by ID.
	Get(ctx context.Context, id ulid.ULID) (*Elder, error)

	// Update modifies an existing elder.
	Update(ctx context.Context, e *Elder) error

	// Delete removes an elder and its family links.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns elders, restricted to owner when it is not nil.
	List(ctx context.Context, owner *ulid.ULID) ([]*Elder, error)
}

// CaregiverRepository manages caregiver profile persistence. Reads fill in
// the account summary.
type CaregiverRepository interface {
	// Create persists a new profile.
	Create(ctx context.Context, c *Caregiver) error

	// Get retrieves a live profile by ID.
	Get(ctx context.Context, id ulid.ULID) (*Caregiver, error)

	// Update modifies a live profile.
	Update(ctx context.Context, c *Caregiver) error

	// SoftDelete marks a profile deleted.
	SoftDelete(ctx context.Context, id ulid.ULID, at time.Time) error

	// List returns live profiles, newest first.
	List(ctx context.Context) ([]*Caregiver, error)
}

// StaffRepository manages staff persistence.
type StaffRepository interface {
	// Create persists a new staff record.
	Create(ctx context.Context, s *Staff) error

	// Get retrieves a staff record by ID.
	Get(ctx context.Context, id ulid.ULID) (*Staff, error)

	// Update modifies an existing staff record.
	Update(ctx context.Context, s *Staff) error

	// Delete removes a staff record.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns all staff ordered by last name.
	List(ctx context.Context) ([]*Staff, error)
}

// OfferingRepository manages the service catalog.
type OfferingRepository interface {
	// Create persists a new offering.
	Create(ctx context.Context, o *Offering) error

	// Get retrieves an offering by ID.
	Get(ctx context.Context, id ulid.ULID) (*Offering, error)

	// Update modifies an existing offering.
	Update(ctx context.Context, o *Offering) error

	// Delete removes an offering.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns offerings ordered by name, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]*Offering, error)
}

// BookingRepository manages booking persistence.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, b *Booking) error

	// Get retrieves a booking by ID.
	Get(ctx context.Context, id ulid.ULID) (*Booking, error)

	// Update modifies an existing booking.
	Update(ctx context.Context, b *Booking) error

	// Delete removes a booking.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns bookings by date, restricted to owner when it is not nil.
	List(ctx context.Context, owner *ulid.ULID) ([]*Booking, error)
}

// InvoiceRepository manages invoice persistence.
type InvoiceRepository interface {
	// NextSequence allocates the next invoice sequence number for period.
	NextSequence(ctx context.Context, period string) (int, error)

	// Create persists a new invoice.
	Create(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by ID.
	Get(ctx context.Context, id ulid.ULID) (*Invoice, error)

	// Update modifies an existing invoice.
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns invoices matching filter, newest first.
	List(ctx context.Context, filter InvoiceFilter) ([]*Invoice, error)
}

// PaymentRepository manages payment persistence.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, p *Payment) error

	// Get retrieves a payment by ID.
	Get(ctx context.Context, id ulid.ULID) (*Payment, error)

	// Update modifies an existing payment.
	Update(ctx context.Context, p *Payment) error

	// Delete removes a payment.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns payments newest first, restricted to owner when it is not nil.
	List(ctx context.Context, owner *ulid.ULID) ([]*Payment, error)
}

// DocumentRepository manages document metadata.
type DocumentRepository interface {
	// Create persists a new document.
	Create(ctx context.Context, d *Document) error

	// Get retrieves a document by ID.
	Get(ctx context.Context, id ulid.ULID) (*Document, error)

	// Update modifies an existing document.
	Update(ctx context.Context, d *Document) error

	// Delete removes a document.
	Delete(ctx context.Context, id ulid.ULID) error

	// List returns documents newest first, restricted to owner when it is not nil.
	List(ctx context.Context, owner *ulid.ULID) ([]*Document, error)
}

// ContactRepository stores contact-form submissions.
type ContactRepository interface {
	// Create persists a new message.
	Create(ctx context.Context, m *ContactMessage) error

	// List returns all messages, newest first.
	List(ctx context.Context) ([]*ContactMessage, error)
}

// FamilyMemberRepository manages family links.
type FamilyMemberRepository interface {
	// Create persists a new link.
	Create(ctx context.Context, m *FamilyMember) error

	// Get retrieves a link by ID.
	Get(ctx context.Context, id ulid.ULID) (*FamilyMember, error)

	// Update modifies an existing link.
	Update(ctx context.Context, m *FamilyMember) error

	// Delete removes a link.
	Delete(ctx context.Context, id ulid.ULID) error

	// ListByElder returns an elder's links with account summaries, primary first.
	ListByElder(ctx context.Context, elderID ulid.ULID) ([]*FamilyMember, error)

	// ClearPrimary unsets the primary flag on every link of elderID except keep.
	ClearPrimary(ctx context.Context, elderID, keep ulid.ULID) error
}

// AccountLookup resolves the accounts care records point at.
type AccountLookup interface {
	GetByID(ctx context.Context, id ulid.ULID) (*auth.Account, error)
}

// Transactor runs fn inside a single database transaction.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ContactNotifier tells the site administrator about a contact submission.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, msg *ContactMessage) error
}

// DocumentStorage holds document bytes. Clients move the bytes themselves
// through presigned URLs.
type DocumentStorage interface {
	// AllowsContentType reports whether uploads of contentType are accepted.
	AllowsContentType(contentType string) bool

	// NewObjectKey allocates a fresh key for a file owned by owner.
	NewObjectKey(owner ulid.ULID, name string) string

	// PresignUpload returns a URL the client PUTs the file to.
	PresignUpload(ctx context.Context, key, contentType string, size int64) (url string, expiresAt time.Time, err error)

	// PresignDownload returns a URL the client GETs the file from.
	PresignDownload(ctx context.Context, key, name string) (url string, expiresAt time.Time, err error)

	// Delete removes the object at key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}
