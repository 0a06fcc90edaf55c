// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package care holds the CareHaven back-office records that hang off an
// account: elders, caregiver profiles, staff, the service catalog, bookings,
// invoices, payments, documents, contact messages and family links.
//
// Every operation takes the acting account as an Actor and applies the
// ownership rules itself, so callers other than the HTTP layer (CLI, seed)
// get the same checks. Structured fields are plain Go values; their storage
// encoding belongs to the postgres subpackage.
package care
