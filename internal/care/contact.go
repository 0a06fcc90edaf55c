// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	ID        ulid.ULID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the submission's fields.
func (m *ContactMessage) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
	if m.Name == "" || m.Email == "" || m.Subject == "" || m.Message == "" {
		return &errutil.ValidationError{Message: "All fields are required"}
	}
	if err := validateEmail("email", m.Email); err != nil {
		return err
	}
	if err := maxLength("subject", m.Subject, 200); err != nil {
		return err
	}
	return maxLength("message", m.Message, 5000)
}
