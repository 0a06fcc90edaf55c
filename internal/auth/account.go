// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// Account validation constraints.
const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinPasswordLength = 6
	MaxPasswordLength = 128
	MinPhoneDigits    = 10
	MaxPhoneDigits    = 15
)

// Account is a login identity. PasswordHash and the reset fields never leave
// the process in JSON.
type Account struct {
	ID                  ulid.ULID  `json:"id"`
	FirstName           string     `json:"firstName"`
	LastName            string     `json:"lastName"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Role                Role       `json:"role"`
	Phone               *string    `json:"phone,omitempty"`
	ProfileImage        *string    `json:"profileImage,omitempty"`
	IsActive            bool       `json:"isActive"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
	ResetTokenHash      *string    `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	DeletedAt           *time.Time `json:"-"`
}

// Name returns the display name.
func (a *Account) Name() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Summary is the subset of an account returned alongside a session token.
type Summary struct {
	ID        ulid.ULID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
}

// Summary returns the public summary of a.
func (a *Account) Summary() Summary {
	return Summary{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// NewAccount creates a validated, active Account. passwordHash must already be
// in hashed form.
func NewAccount(firstName, lastName, email string, phone *string, role Role, passwordHash string) (*Account, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	if err := ValidateName("firstName", firstName); err != nil {
		return nil, err
	}
	if err := ValidateName("lastName", lastName); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, errutil.Invalid("role", "Invalid role")
	}
	if passwordHash == "" {
		return nil, errutil.Invalid("password", "Please add a password")
	}

	now := time.Now().UTC()
	return &Account{
		ID:           ulid.Make(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Phone:        phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateName checks a first or last name.
func ValidateName(field, name string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	if n == 0 {
		return errutil.Invalid(field, "Please add a "+humanField(field))
	}
	if n < MinNameLength || n > MaxNameLength {
		return errutil.Invalid(field, humanField(field)+" must be between 2 and 50 characters")
	}
	return nil
}

// ValidateEmail checks that email is a bare address (no display name).
func ValidateEmail(email string) error {
	if email == "" {
		return errutil.Invalid("email", "Please add an email")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errutil.Invalid("email", "Please add a valid email")
	}
	return nil
}

// ValidatePassword checks a plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if password == "" {
		return errutil.Invalid("password", "Please add a password")
	}
	if len(password) < MinPasswordLength {
		return errutil.Invalid("password", "Password must be at least 6 characters")
	}
	if len(password) > MaxPasswordLength {
		return errutil.Invalid("password", "Password must be at most 128 characters")
	}
	return nil
}

// ValidatePhone checks an optional phone number: digits only, 10 to 15 of them.
func ValidatePhone(phone *string) error {
	if phone == nil || *phone == "" {
		return nil
	}
	p := *phone
	if len(p) < MinPhoneDigits || len(p) > MaxPhoneDigits {
		return errutil.Invalid("phone", "Please add a valid phone number")
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return errutil.Invalid("phone", "Please add a valid phone number")
		}
	}
	return nil
}

func humanField(field string) string {
	switch field {
	case "firstName":
		return "first name"
	case "lastName":
		return "last name"
	default:
		return field
	}
}

// AccountFilter narrows List results.
type AccountFilter struct {
	Role       *Role
	ActiveOnly bool
}

// AccountStats summarizes non-deleted accounts.
type AccountStats struct {
	Total  int          `json:"total"`
	Active int          `json:"active"`
	ByRole map[Role]int `json:"byRole"`
}

// AccountRepository manages account persistence. All reads exclude
// soft-deleted accounts.
type AccountRepository interface {
	// Create stores a new account. Returns an error wrapping ErrEmailTaken
	// if a non-deleted account already uses the email.
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByEmail retrieves an account by exact (case-sensitive) email.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// List returns accounts ordered by creation time.
	List(ctx context.Context, filter AccountFilter) ([]*Account, error)

	// Update writes profile, role, active flag and password hash.
	Update(ctx context.Context, account *Account) error

	// UpdatePassword replaces the password hash.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error

	// RecordLogin stamps the last-login time and, when upgradedHash is not
	// nil, replaces the password hash in the same write.
	RecordLogin(ctx context.Context, id ulid.ULID, at time.Time, upgradedHash *string) error

	// SetResetToken stores a reset-token digest and its expiry.
	SetResetToken(ctx context.Context, id ulid.ULID, tokenHash string, expiresAt time.Time) error

	// ClearResetToken removes any stored reset token.
	ClearResetToken(ctx context.Context, id ulid.ULID) error

	// ConsumeResetToken atomically finds the account holding tokenHash,
	// clears its reset fields and returns the account ID with the expiry the
	// token had. Returns ErrNotFound if no account holds the digest.
	ConsumeResetToken(ctx context.Context, tokenHash string) (ulid.ULID, time.Time, error)

	// SoftDelete marks the account deleted.
	SoftDelete(ctx context.Context, id ulid.ULID, at time.Time) error

	// Stats counts accounts by role and active flag.
	Stats(ctx context.Context) (*AccountStats, error)

	// EmailExists reports whether a non-deleted account uses email.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Transactor runs fn inside a storage transaction carried by ctx.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
