// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// ResetNotifier delivers password-reset links out of band.
type ResetNotifier interface {
	SendPasswordReset(ctx context.Context, account *Account, resetURL string) error
}

// Session is the result of a successful register, login or password reset.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   *Account
}

// Service provides authentication and account operations.
type Service struct {
	accounts         AccountRepository
	tx               Transactor
	hasher           PasswordHasher
	tokens           TokenIssuer
	notifier         ResetNotifier
	logger           *slog.Logger
	resetURL         string
	allowAdminSignup bool
	now              func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = logger }
}

// WithResetURL sets the base URL reset tokens are appended to.
func WithResetURL(base string) ServiceOption {
	return func(s *Service) { s.resetURL = strings.TrimRight(base, "/") }
}

// WithAdminSignup allows public registration with the Admin role.
func WithAdminSignup(allow bool) ServiceOption {
	return func(s *Service) { s.allowAdminSignup = allow }
}

// WithClock sets the service time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service.
func NewService(
	accounts AccountRepository,
	tx Transactor,
	hasher PasswordHasher,
	tokens TokenIssuer,
	notifier ResetNotifier,
	opts ...ServiceOption,
) (*Service, error) {
	if accounts == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("accounts repository is required")
	}
	if tx == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("transactor is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("password hasher is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("token issuer is required")
	}
	if notifier == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("reset notifier is required")
	}
	s := &Service{
		accounts: accounts,
		tx:       tx,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("logger is required")
	}
	return s, nil
}

// dummyPasswordHash is used when an account doesn't exist to prevent timing attacks.
// We still run password verification to make response time consistent.
// This is NOT a real credential - it's a fake hash that will never match any password.
//
//nolint:gosec // G101: This is an intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// RegisterInput is the public sign-up payload.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	role, err := ParseRole(in.Role)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_INVALID").Wrap(err)
	}
	if role == RoleAdmin && !s.allowAdminSignup {
		return nil, oops.Code("AUTH_REGISTER_INVALID").
			With("role", role).
			Wrap(errutil.Invalid("role", "Invalid role"))
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, oops.Code("AUTH_REGISTER_INVALID").Wrap(err)
	}

	var phone *string
	if p := strings.TrimSpace(in.Phone); p != "" {
		phone = &p
	}

	// Validate profile fields before paying for a hash.
	if _, err := NewAccount(in.FirstName, in.LastName, in.Email, phone, role, dummyPasswordHash); err != nil {
		return nil, oops.Code("AUTH_REGISTER_INVALID").Wrap(err)
	}

	email := strings.TrimSpace(in.Email)
	exists, err := s.accounts.EmailExists(ctx, email)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "check email").
			Wrap(err)
	}
	if exists {
		return nil, oops.Code("AUTH_EMAIL_TAKEN").Wrap(ErrEmailTaken)
	}

	hash, err := HashIfNeeded(s.hasher, in.Password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	account, err := NewAccount(in.FirstName, in.LastName, email, phone, role, hash)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_INVALID").Wrap(err)
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, oops.Code("AUTH_EMAIL_TAKEN").Wrap(ErrEmailTaken)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create account").
			Wrap(err)
	}

	s.logger.InfoContext(ctx, "account registered",
		"account_id", account.ID.String(),
		"role", string(account.Role))

	return s.issue(account)
}

// Login authenticates an account by email and password.
// Uses constant-time operations to prevent timing-based email enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, oops.Code("AUTH_LOGIN_INVALID").
			Wrap(errutil.Invalid("email", "Please provide an email and password"))
	}

	account, lookupErr := s.accounts.GetByEmail(ctx, email)

	var targetHash string
	var accountExists bool

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return nil, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get account by email").
				Wrap(lookupErr)
		}
		targetHash = dummyPasswordHash
	} else {
		targetHash = account.PasswordHash
		accountExists = true
	}

	// Always verify, even against the dummy hash.
	valid := Matches(s.hasher, password, targetHash)

	if !accountExists || !valid || !account.IsActive {
		return nil, oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	// Check if password needs upgrade (e.g., from bcrypt to argon2id)
	var upgraded *string
	if s.hasher.NeedsUpgrade(account.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			upgraded = &newHash
		}
	}

	now := s.now().UTC()
	if err := s.accounts.RecordLogin(ctx, account.ID, now, upgraded); err != nil {
		// Login succeeds regardless.
		s.logger.WarnContext(ctx, "failed to record login",
			"account_id", account.ID.String(),
			"error", err)
	} else {
		account.LastLogin = &now
		if upgraded != nil {
			account.PasswordHash = *upgraded
		}
	}

	return s.issue(account)
}

// Me returns the live account for id.
func (s *Service) Me(ctx context.Context, id ulid.ULID) (*Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("ACCOUNT_NOT_FOUND").
				With("account_id", id.String()).
				Wrap(ErrAccountNotFound)
		}
		return nil, oops.Code("ACCOUNT_GET_FAILED").
			With("account_id", id.String()).
			Wrap(err)
	}
	return account, nil
}

func (s *Service) issue(account *Account) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return nil, oops.Code("AUTH_TOKEN_ISSUE_FAILED").
			With("account_id", account.ID.String()).
			Wrap(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Account: account}, nil
}
