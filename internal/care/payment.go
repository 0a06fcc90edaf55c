// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

// Payment statuses.
const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentStatuses lists every valid status.
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded}

// PaymentMethod is how a payment was made.
type PaymentMethod string

// Payment methods.
const (
	MethodCard         PaymentMethod = "card"
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodOther        PaymentMethod = "other"
)

// PaymentMethods lists every valid method.
var PaymentMethods = []PaymentMethod{MethodCard, MethodCash, MethodBankTransfer, MethodOther}

// Payment records money received. Amount is in minor units of Currency.
type Payment struct {
	ID            ulid.ULID     `json:"id"`
	BookingID     *ulid.ULID    `json:"bookingId,omitempty"`
	OwnerID       ulid.ULID     `json:"userId"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	Status        PaymentStatus `json:"status"`
	Method        PaymentMethod `json:"paymentMethod"`
	TransactionID string        `json:"transactionId"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Validate checks the payment's fields.
func (p *Payment) Validate() error {
	if p.Amount <= 0 {
		return errutil.Invalid("amount", "Amount must be positive")
	}
	p.Currency = defaultCurrency(p.Currency)
	if err := validateCurrency(p.Currency); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	if err := oneOf("status", p.Status, PaymentStatuses); err != nil {
		return err
	}
	if p.Method == "" {
		return errutil.Invalid("paymentMethod", "Please add a payment method")
	}
	return oneOf("paymentMethod", p.Method, PaymentMethods)
}
