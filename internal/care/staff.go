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

// StaffPosition is a staff member's job.
type StaffPosition string

// Staff positions.
const (
	PositionNurse     StaffPosition = "nurse"
	PositionCaregiver StaffPosition = "caregiver"
	PositionDoctor    StaffPosition = "doctor"
	PositionTherapist StaffPosition = "therapist"
	PositionAdmin     StaffPosition = "admin"
	PositionOther     StaffPosition = "other"
)

// StaffPositions lists every valid position.
var StaffPositions = []StaffPosition{
	PositionNurse, PositionCaregiver, PositionDoctor, PositionTherapist, PositionAdmin, PositionOther,
}

// StaffStatus is a staff member's employment status.
type StaffStatus string

// Staff statuses.
const (
	StaffActive     StaffStatus = "active"
	StaffOnLeave    StaffStatus = "on_leave"
	StaffTerminated StaffStatus = "terminated"
	StaffSuspended  StaffStatus = "suspended"
)

// StaffStatuses lists every valid status.
var StaffStatuses = []StaffStatus{StaffActive, StaffOnLeave, StaffTerminated, StaffSuspended}

// Staff is an employee record. Staff are not accounts.
type Staff struct {
	ID               ulid.ULID      `json:"id"`
	EmployeeID       string         `json:"employeeId"`
	FirstName        string         `json:"firstName"`
	LastName         string         `json:"lastName"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	DateOfBirth      *Date          `json:"dateOfBirth,omitempty"`
	Gender           *string        `json:"gender,omitempty"`
	Address          *Address       `json:"address,omitempty"`
	EmergencyContact *Contact       `json:"emergencyContact,omitempty"`
	HireDate         Date           `json:"hireDate"`
	Position         StaffPosition  `json:"position"`
	Department       string         `json:"department"`
	Salary           int64          `json:"salary"`
	Qualifications   []string       `json:"qualifications"`
	Skills           []string       `json:"skills"`
	Availability     []Availability `json:"availability"`
	Status           StaffStatus    `json:"status"`
	Notes            string         `json:"notes"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// Validate checks the staff record's fields.
func (s *Staff) Validate() error {
	s.EmployeeID = strings.TrimSpace(s.EmployeeID)
	s.Email = strings.TrimSpace(s.Email)
	if err := required("employeeId", s.EmployeeID, "Employee ID is required"); err != nil {
		return err
	}
	if err := auth.ValidateName("firstName", s.FirstName); err != nil {
		return err
	}
	if err := auth.ValidateName("lastName", s.LastName); err != nil {
		return err
	}
	if err := required("email", s.Email, "Email is required"); err != nil {
		return err
	}
	if err := validateEmail("email", s.Email); err != nil {
		return err
	}
	if err := required("phone", s.Phone, "Phone number is required"); err != nil {
		return err
	}
	if s.Gender != nil {
		if err := oneOf("gender", strings.ToLower(*s.Gender), Genders); err != nil {
			return err
		}
	}
	if s.HireDate.IsZero() {
		return errutil.Invalid("hireDate", "Hire date is required")
	}
	if s.Position == "" {
		return errutil.Invalid("position", "Position is required")
	}
	if err := oneOf("position", s.Position, StaffPositions); err != nil {
		return err
	}
	if s.Salary < 0 {
		return errutil.Invalid("salary", "Salary cannot be negative")
	}
	if s.Status == "" {
		s.Status = StaffActive
	}
	if err := oneOf("status", s.Status, StaffStatuses); err != nil {
		return err
	}
	if s.EmergencyContact != nil {
		if err := validateContacts("emergencyContact", []Contact{*s.EmergencyContact}); err != nil {
			return err
		}
	}
	return validateAvailability("availability", s.Availability)
}
