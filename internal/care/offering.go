// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// Category groups catalog services.
type Category string

// Service categories.
const (
	CategoryPersonalCare   Category = "personal_care"
	CategoryMedical        Category = "medical"
	CategoryCompanionship  Category = "companionship"
	CategoryHousekeeping   Category = "housekeeping"
	CategoryTransportation Category = "transportation"
	CategoryOther          Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryPersonalCare, CategoryMedical, CategoryCompanionship,
	CategoryHousekeeping, CategoryTransportation, CategoryOther,
}

// MinDurationMinutes is the shortest bookable service.
const MinDurationMinutes = 15

// Offering is a service in the care catalog. Price is in minor units of
// Currency.
type Offering struct {
	ID                ulid.ULID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          Category  `json:"category"`
	DurationMinutes   int       `json:"duration"`
	Price             int64     `json:"price"`
	Currency          string    `json:"currency"`
	Image             *string   `json:"image,omitempty"`
	RequiresCaregiver bool      `json:"requiresCaregiver"`
	MaxParticipants   int       `json:"maxParticipants"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Validate checks the offering's fields.
func (o *Offering) Validate() error {
	o.Name = strings.TrimSpace(o.Name)
	if err := required("name", o.Name, "Please add a service name"); err != nil {
		return err
	}
	if err := maxLength("name", o.Name, 100); err != nil {
		return err
	}
	if err := required("description", o.Description, "Please add a description"); err != nil {
		return err
	}
	if o.Category == "" {
		return errutil.Invalid("category", "Please add a category")
	}
	if err := oneOf("category", o.Category, Categories); err != nil {
		return err
	}
	if o.DurationMinutes < MinDurationMinutes {
		return errutil.Invalid("duration", "Duration must be at least 15 minutes")
	}
	if o.Price < 0 {
		return errutil.Invalid("price", "Price cannot be negative")
	}
	o.Currency = defaultCurrency(o.Currency)
	if err := validateCurrency(o.Currency); err != nil {
		return err
	}
	if o.MaxParticipants == 0 {
		o.MaxParticipants = 1
	}
	if o.MaxParticipants < 1 {
		return errutil.Invalid("maxParticipants", "At least one participant is required")
	}
	return nil
}
