// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// BloodGroups lists the accepted ABO/Rh groups.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Elder is a person receiving care, registered by an account holder.
type Elder struct {
	ID                ulid.ULID    `json:"id"`
	OwnerID           ulid.ULID    `json:"userId"`
	FullName          string       `json:"fullName"`
	DateOfBirth       Date         `json:"dateOfBirth"`
	Gender            string       `json:"gender"`
	BloodGroup        *string      `json:"bloodGroup,omitempty"`
	Height            *Measurement `json:"height,omitempty"`
	Weight            *Measurement `json:"weight,omitempty"`
	MedicalHistory    []string     `json:"medicalHistory"`
	Allergies         []string     `json:"allergies"`
	Medications       []Medication `json:"medications"`
	EmergencyContacts []Contact    `json:"emergencyContacts"`
	Address           *Address     `json:"address,omitempty"`
	ProfileImage      *string      `json:"profileImage,omitempty"`
	IsActive          bool         `json:"isActive"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// Validate checks the elder's fields.
func (e *Elder) Validate() error {
	e.FullName = strings.TrimSpace(e.FullName)
	if err := required("fullName", e.FullName, "Please add the elder's full name"); err != nil {
		return err
	}
	if err := maxLength("fullName", e.FullName, 100); err != nil {
		return err
	}
	if e.DateOfBirth.IsZero() {
		return errutil.Invalid("dateOfBirth", "Please add a date of birth")
	}
	if e.DateOfBirth.After(time.Now()) {
		return errutil.Invalid("dateOfBirth", "Date of birth cannot be in the future")
	}
	e.Gender = strings.ToLower(e.Gender)
	if err := oneOf("gender", e.Gender, Genders); err != nil {
		return err
	}
	if e.BloodGroup != nil && !slices.Contains(BloodGroups, strings.ToUpper(*e.BloodGroup)) {
		return errutil.Invalid("bloodGroup", "Invalid blood group")
	}
	if err := validateMeasurement("height", e.Height); err != nil {
		return err
	}
	if err := validateMeasurement("weight", e.Weight); err != nil {
		return err
	}
	for _, m := range e.Medications {
		if strings.TrimSpace(m.Name) == "" {
			return errutil.Invalid("medications", "Medications need a name")
		}
	}
	return validateContacts("emergencyContacts", e.EmergencyContacts)
}
