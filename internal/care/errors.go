// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"fmt"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errutil.ErrNotFound

// Client-facing failures.
var (
	ErrElderNotFound        = errutil.NotFound("Elder not found")
	ErrCaregiverNotFound    = errutil.NotFound("Caregiver not found")
	ErrStaffNotFound        = errutil.NotFound("Staff member not found")
	ErrOfferingNotFound     = errutil.NotFound("Service not found")
	ErrBookingNotFound      = errutil.NotFound("Booking not found")
	ErrInvoiceNotFound      = errutil.NotFound("Invoice not found")
	ErrPaymentNotFound      = errutil.NotFound("Payment not found")
	ErrDocumentNotFound     = errutil.NotFound("Document not found")
	ErrFamilyMemberNotFound = errutil.NotFound("Family member not found")
	ErrUserNotFound         = errutil.NotFound("User not found")
	ErrUserOrElderNotFound  = errutil.NotFound("User or Elder not found")

	ErrCaregiverExists    = errutil.Conflict("Caregiver profile already exists for this user")
	ErrStaffExists        = errutil.Conflict("A staff member with this employee ID or email already exists")
	ErrOfferingExists     = errutil.Conflict("A service with this name already exists")
	ErrFamilyMemberExists = errutil.Conflict("This family relationship already exists")

	ErrStorageDisabled = errutil.Internal("Document storage is not configured")
)

func notAuthorized(actor Actor, action, resource string) error {
	return errutil.Forbidden(fmt.Sprintf("User %s is not authorized to %s this %s", actor.AccountID, action, resource))
}
