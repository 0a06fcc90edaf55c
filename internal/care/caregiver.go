// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// CaregiverStatus is a caregiver's working status.
type CaregiverStatus string

// Caregiver statuses.
const (
	CaregiverActive   CaregiverStatus = "Active"
	CaregiverInactive CaregiverStatus = "Inactive"
	CaregiverOnLeave  CaregiverStatus = "On Leave"
)

// CaregiverStatuses lists every valid status.
var CaregiverStatuses = []CaregiverStatus{CaregiverActive, CaregiverInactive, CaregiverOnLeave}

// MaxExperienceYears bounds Caregiver.ExperienceYears.
const MaxExperienceYears = 70

// Caregiver is the professional profile attached to an account. An account
// has at most one live profile.
type Caregiver struct {
	ID              ulid.ULID       `json:"id"`
	AccountID       ulid.ULID       `json:"userId"`
	Specialization  string          `json:"specialization"`
	ExperienceYears int             `json:"experience"`
	Bio             string          `json:"bio"`
	Availability    []Availability  `json:"availability"`
	Status          CaregiverStatus `json:"status"`
	Skills          []string        `json:"skills"`
	Languages       []string        `json:"languages"`
	Certifications  []string        `json:"certifications"`
	Address         *Address        `json:"address,omitempty"`
	HourlyRate      int64           `json:"hourlyRate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"-"`

	// Account is filled in by reads.
	Account *auth.Summary `json:"user,omitempty"`
}

// Validate checks the profile's fields.
func (c *Caregiver) Validate() error {
	c.Specialization = strings.TrimSpace(c.Specialization)
	if err := required("specialization", c.Specialization, "Please add a specialization"); err != nil {
		return err
	}
	if c.ExperienceYears < 0 || c.ExperienceYears > MaxExperienceYears {
		return errutil.Invalid("experience", "Experience must be between 0 and 70 years")
	}
	if err := maxLength("bio", c.Bio, 2000); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = CaregiverActive
	}
	if err := oneOf("status", c.Status, CaregiverStatuses); err != nil {
		return err
	}
	if c.HourlyRate < 0 {
		return errutil.Invalid("hourlyRate", "Hourly rate cannot be negative")
	}
	return validateAvailability("availability", c.Availability)
}
