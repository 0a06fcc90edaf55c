// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"encoding/json"
	"net/mail"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// DefaultCurrency is used when a record does not name one.
const DefaultCurrency = "USD"

const dateLayout = time.DateOnly

// Date is a calendar date. It travels as "2006-01-02" in JSON and also
// accepts full RFC 3339 timestamps, keeping only the date part.
type Date struct {
	time.Time
}

// NewDate returns the date y-m-d.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses s as a date or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String formats d as 2006-01-02.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON encodes d as a date string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a date string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Address is a postal address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Contact is a person to reach, such as an emergency contact.
type Contact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

// Measurement is a value with its unit, for example 72 kg.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Medication is a prescribed medication.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// Availability is a weekly time slot, for example Monday 09:00-17:00.
type Availability struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Genders accepted on elders and staff.
var Genders = []string{"male", "female", "other"}

func validateAvailability(field string, slots []Availability) error {
	for _, slot := range slots {
		if !slices.Contains(weekdays, strings.ToLower(slot.Day)) {
			return errutil.Invalid(field, "Invalid day "+slot.Day)
		}
		start, err := time.Parse("15:04", slot.StartTime)
		if err != nil {
			return errutil.Invalid(field, "Start time must be HH:MM")
		}
		end, err := time.Parse("15:04", slot.EndTime)
		if err != nil {
			return errutil.Invalid(field, "End time must be HH:MM")
		}
		if !end.After(start) {
			return errutil.Invalid(field, "End time must be after start time")
		}
	}
	return nil
}

func validateContacts(field string, contacts []Contact) error {
	for _, c := range contacts {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
			return errutil.Invalid(field, "Contacts need a name and phone number")
		}
		if c.Email != "" {
			if err := validateEmail(field, c.Email); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateMeasurement(field string, m *Measurement) error {
	if m == nil {
		return nil
	}
	if m.Value <= 0 {
		return errutil.Invalid(field, "Measurement must be positive")
	}
	if m.Unit == "" {
		return errutil.Invalid(field, "Measurement needs a unit")
	}
	return nil
}

func required(field, value, msg string) error {
	if strings.TrimSpace(value) == "" {
		return errutil.Invalid(field, msg)
	}
	return nil
}

func maxLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return errutil.Invalid(field, "Too long")
	}
	return nil
}

func oneOf[T ~string](field string, value T, allowed []T) error {
	if !slices.Contains(allowed, value) {
		return errutil.Invalid(field, "Invalid "+field+" "+string(value))
	}
	return nil
}

func validateEmail(field, email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errutil.Invalid(field, "Please add a valid email")
	}
	return nil
}

func validateCurrency(currency string) error {
	if len(currency) != 3 || strings.ToUpper(currency) != currency {
		return errutil.Invalid("currency", "Currency must be a three-letter ISO code")
	}
	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return errutil.Invalid("currency", "Currency must be a three-letter ISO code")
		}
	}
	return nil
}

func defaultCurrency(c string) string {
	if c == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(c)
}
