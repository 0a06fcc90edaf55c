// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

// Booking statuses.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every valid status.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}

// Recurrence is how often a booking repeats.
type Recurrence string

// Recurrences.
const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceCustom  Recurrence = "custom"
)

// Recurrences lists every valid recurrence.
var Recurrences = []Recurrence{RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceCustom}

// Booking is a request for a catalog service on a date.
type Booking struct {
	ID               ulid.ULID     `json:"id"`
	OwnerID          ulid.ULID     `json:"userId"`
	ContactName      string        `json:"name"`
	ContactPhone     string        `json:"phone"`
	ContactEmail     string        `json:"email"`
	Address          string        `json:"address"`
	ServiceName      string        `json:"service"`
	Date             Date          `json:"date"`
	Notes            string        `json:"notes"`
	Status           BookingStatus `json:"status"`
	Recurrence       Recurrence    `json:"recurrence"`
	CustomRecurrence string        `json:"customRecurrence"`
	IsActive         bool          `json:"isActive"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Validate checks the booking's fields.
func (b *Booking) Validate() error {
	if err := required("name", b.ContactName, "Please add a contact name"); err != nil {
		return err
	}
	if err := required("phone", b.ContactPhone, "Please add a phone number"); err != nil {
		return err
	}
	if b.ContactEmail = strings.TrimSpace(b.ContactEmail); b.ContactEmail != "" {
		if err := validateEmail("email", b.ContactEmail); err != nil {
			return err
		}
	}
	if err := required("service", b.ServiceName, "Please choose a service"); err != nil {
		return err
	}
	if b.Date.IsZero() {
		return errutil.Invalid("date", "Please add a date")
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	if err := oneOf("status", b.Status, BookingStatuses); err != nil {
		return err
	}
	if b.Recurrence == "" {
		b.Recurrence = RecurrenceNone
	}
	if err := oneOf("recurrence", b.Recurrence, Recurrences); err != nil {
		return err
	}
	if b.Recurrence == RecurrenceCustom && strings.TrimSpace(b.CustomRecurrence) == "" {
		return errutil.Invalid("customRecurrence", "Please describe the custom recurrence")
	}
	return maxLength("notes", b.Notes, 2000)
}
