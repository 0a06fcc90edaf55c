// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

// Invoice statuses.
const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
	InvoiceRefunded  InvoiceStatus = "refunded"
)

// InvoiceStatuses lists every valid status.
var InvoiceStatuses = []InvoiceStatus{
	InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceCancelled, InvoiceRefunded,
}

// PaymentTerms sets when an invoice falls due.
type PaymentTerms string

// Payment terms.
const (
	DueOnReceipt PaymentTerms = "due_on_receipt"
	Net15        PaymentTerms = "net_15"
	Net30        PaymentTerms = "net_30"
	Net60        PaymentTerms = "net_60"
)

// AllPaymentTerms lists every valid payment term.
var AllPaymentTerms = []PaymentTerms{DueOnReceipt, Net15, Net30, Net60}

// Days returns the number of days after the invoice date the terms allow.
func (p PaymentTerms) Days() int {
	switch p {
	case Net15:
		return 15
	case Net30:
		return 30
	case Net60:
		return 60
	default:
		return 0
	}
}

// InvoiceItem is one billed line. UnitPrice is in minor units.
type InvoiceItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
}

// Amount returns Quantity * UnitPrice.
func (i InvoiceItem) Amount() int64 { return i.Quantity * i.UnitPrice }

// Invoice bills an account, optionally for a booking. Amounts are in minor
// units of Currency and the totals are derived from Items by ComputeTotals.
type Invoice struct {
	ID             ulid.ULID     `json:"id"`
	Number         string        `json:"invoiceNumber"`
	OwnerID        ulid.ULID     `json:"userId"`
	BookingID      *ulid.ULID    `json:"bookingId,omitempty"`
	InvoiceDate    time.Time     `json:"invoiceDate"`
	DueDate        time.Time     `json:"dueDate"`
	Status         InvoiceStatus `json:"status"`
	Items          []InvoiceItem `json:"items"`
	Subtotal       int64         `json:"subtotal"`
	Tax            int64         `json:"tax"`
	Discount       int64         `json:"discount"`
	Total          int64         `json:"total"`
	Currency       string        `json:"currency"`
	Notes          string        `json:"notes"`
	Terms          string        `json:"terms"`
	PaymentTerms   PaymentTerms  `json:"paymentTerms"`
	BillingAddress *Address      `json:"billingAddress,omitempty"`
	SentAt         *time.Time    `json:"sentAt,omitempty"`
	PaidAt         *time.Time    `json:"paidAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// ComputeTotals sets Subtotal to the sum of the item amounts and Total to
// Subtotal + Tax - Discount, floored at zero.
func (inv *Invoice) ComputeTotals() {
	var subtotal int64
	for _, item := range inv.Items {
		subtotal += item.Amount()
	}
	inv.Subtotal = subtotal
	inv.Total = max(0, subtotal+inv.Tax-inv.Discount)
}

// SetStatus moves the invoice to status, stamping SentAt or PaidAt the first
// time the invoice reaches those states.
func (inv *Invoice) SetStatus(status InvoiceStatus, now time.Time) error {
	if err := oneOf("status", status, InvoiceStatuses); err != nil {
		return err
	}
	inv.Status = status
	switch status {
	case InvoiceSent:
		if inv.SentAt == nil {
			inv.SentAt = &now
		}
	case InvoicePaid:
		if inv.PaidAt == nil {
			inv.PaidAt = &now
		}
	}
	return nil
}

// Validate checks the invoice's fields and recomputes its totals.
func (inv *Invoice) Validate() error {
	if len(inv.Items) == 0 {
		return errutil.Invalid("items", "Please add at least one item")
	}
	var subtotal int64
	for _, item := range inv.Items {
		if strings.TrimSpace(item.Description) == "" {
			return errutil.Invalid("items", "Every item needs a description")
		}
		if item.Quantity <= 0 {
			return errutil.Invalid("items", "Item quantity must be positive")
		}
		if item.UnitPrice < 0 {
			return errutil.Invalid("items", "Item price cannot be negative")
		}
		if item.UnitPrice > 0 && item.Quantity > math.MaxInt64/item.UnitPrice {
			return errutil.Invalid("items", "Item amount is too large")
		}
		amount := item.Amount()
		if subtotal > math.MaxInt64-amount {
			return errutil.Invalid("items", "Invoice subtotal is too large")
		}
		subtotal += amount
	}
	if inv.Tax < 0 {
		return errutil.Invalid("tax", "Tax cannot be negative")
	}
	if subtotal > math.MaxInt64-inv.Tax {
		return errutil.Invalid("tax", "Invoice total is too large")
	}
	if inv.Discount < 0 {
		return errutil.Invalid("discount", "Discount cannot be negative")
	}
	if inv.Status == "" {
		inv.Status = InvoiceDraft
	}
	if err := oneOf("status", inv.Status, InvoiceStatuses); err != nil {
		return err
	}
	if inv.PaymentTerms == "" {
		inv.PaymentTerms = DueOnReceipt
	}
	if err := oneOf("paymentTerms", inv.PaymentTerms, AllPaymentTerms); err != nil {
		return err
	}
	if inv.InvoiceDate.IsZero() {
		return errutil.Invalid("invoiceDate", "Please add an invoice date")
	}
	if inv.DueDate.IsZero() {
		inv.DueDate = inv.InvoiceDate.AddDate(0, 0, inv.PaymentTerms.Days())
	}
	if inv.DueDate.Before(inv.InvoiceDate) {
		return errutil.Invalid("dueDate", "Due date cannot be before the invoice date")
	}
	inv.Currency = defaultCurrency(inv.Currency)
	if err := validateCurrency(inv.Currency); err != nil {
		return err
	}
	inv.ComputeTotals()
	return nil
}

// InvoicePeriod returns the numbering period of t, formatted YYYYMM.
func InvoicePeriod(t time.Time) string {
	return t.UTC().Format("200601")
}

// FormatInvoiceNumber renders INV-YYYYMM-NNNN.
func FormatInvoiceNumber(period string, seq int) string {
	return fmt.Sprintf("INV-%s-%04d", period, seq)
}

// InvoiceFilter narrows invoice listings. Nil fields match everything.
type InvoiceFilter struct {
	OwnerID *ulid.ULID
	Status  *InvoiceStatus
	From    *time.Time
	To      *time.Time
}
