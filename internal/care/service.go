// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
)

// staffRoles may read and manage other accounts' care records.
var staffRoles = []auth.Role{auth.RoleAdmin, auth.RoleCaregiver}

// Mutation applies a partial update to a loaded record. Identity and
// ownership fields are restored after it runs.
type Mutation[T any] func(*T) error

// ServiceConfig holds dependencies for Service.
type ServiceConfig struct {
	Elders        ElderRepository
	Caregivers    CaregiverRepository
	Staff         StaffRepository
	Offerings     OfferingRepository
	Bookings      BookingRepository
	Invoices      InvoiceRepository
	Payments      PaymentRepository
	Documents     DocumentRepository
	Contacts      ContactRepository
	FamilyMembers FamilyMemberRepository
	Accounts      AccountLookup
	Tx            Transactor

	// Storage is optional. Without it document operations fail with
	// ErrStorageDisabled.
	Storage DocumentStorage
	// Notifier is optional. Without it contact submissions are only stored.
	Notifier ContactNotifier

	Logger *slog.Logger
	Clock  func() time.Time
}

// Service provides the care operations. Every method that takes an Actor
// checks it before touching a repository.
type Service struct {
	elders        ElderRepository
	caregivers    CaregiverRepository
	staff         StaffRepository
	offerings     OfferingRepository
	bookings      BookingRepository
	invoices      InvoiceRepository
	payments      PaymentRepository
	documents     DocumentRepository
	contacts      ContactRepository
	familyMembers FamilyMemberRepository
	accounts      AccountLookup
	tx            Transactor
	storage       DocumentStorage
	notifier      ContactNotifier
	logger        *slog.Logger
	now           func() time.Time
}

// NewService creates a Service from cfg.
func NewService(cfg ServiceConfig) (*Service, error) {
	deps := []struct {
		name string
		dep  any
	}{
		{"elders", cfg.Elders},
		{"caregivers", cfg.Caregivers},
		{"staff", cfg.Staff},
		{"offerings", cfg.Offerings},
		{"bookings", cfg.Bookings},
		{"invoices", cfg.Invoices},
		{"payments", cfg.Payments},
		{"documents", cfg.Documents},
		{"contacts", cfg.Contacts},
		{"family members", cfg.FamilyMembers},
		{"accounts", cfg.Accounts},
		{"transactor", cfg.Tx},
	}
	for _, d := range deps {
		if d.dep == nil {
			return nil, oops.Code("CARE_INVALID_SERVICE").Errorf("%s dependency is required", d.name)
		}
	}

	s := &Service{
		elders:        cfg.Elders,
		caregivers:    cfg.Caregivers,
		staff:         cfg.Staff,
		offerings:     cfg.Offerings,
		bookings:      cfg.Bookings,
		invoices:      cfg.Invoices,
		payments:      cfg.Payments,
		documents:     cfg.Documents,
		contacts:      cfg.Contacts,
		familyMembers: cfg.FamilyMembers,
		accounts:      cfg.Accounts,
		tx:            cfg.Tx,
		storage:       cfg.Storage,
		notifier:      cfg.Notifier,
		logger:        cfg.Logger,
		now:           cfg.Clock,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *Service) clock() time.Time { return s.now().UTC() }

// lookupErr converts a repository read failure, replacing ErrNotFound with
// the client-facing notFound error.
func lookupErr(err error, prefix string, notFound error, id ulid.ULID) error {
	if errors.Is(err, ErrNotFound) {
		return oops.Code(prefix+"_NOT_FOUND").With("id", id.String()).Wrap(notFound)
	}
	return oops.Code(prefix+"_GET_FAILED").With("id", id.String()).Wrap(err)
}

// writeErr converts a repository write failure. Missing rows become notFound;
// anything else (including conflicts, which keep their kind) is wrapped.
func writeErr(err error, code string, notFound error, id ulid.ULID) error {
	if errors.Is(err, ErrNotFound) {
		return oops.Code(code).With("id", id.String()).Wrap(notFound)
	}
	return oops.Code(code).With("id", id.String()).Wrap(err)
}
