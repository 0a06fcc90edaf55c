// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// AccountInput creates an account on behalf of an administrator. Unlike
// RegisterInput any role is accepted, and Password may already be hashed
// (bulk imports).
type AccountInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

// AccountPatch is a partial account update. Nil fields are left untouched.
type AccountPatch struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	ProfileImage *string `json:"profileImage"`
	Role         *string `json:"role"`
	IsActive     *bool   `json:"isActive"`
	Password     *string `json:"password"`
}

// CreateAccount creates an account with any role.
func (s *Service) CreateAccount(ctx context.Context, in AccountInput) (*Account, error) {
	role, err := ParseRole(in.Role)
	if err != nil {
		return nil, oops.Code("ACCOUNT_CREATE_INVALID").Wrap(err)
	}
	if !s.hasher.IsHashed(in.Password) {
		if err := ValidatePassword(in.Password); err != nil {
			return nil, oops.Code("ACCOUNT_CREATE_INVALID").Wrap(err)
		}
	}

	var phone *string
	if p := strings.TrimSpace(in.Phone); p != "" {
		phone = &p
	}
	email := strings.TrimSpace(in.Email)

	if _, err := NewAccount(in.FirstName, in.LastName, email, phone, role, dummyPasswordHash); err != nil {
		return nil, oops.Code("ACCOUNT_CREATE_INVALID").Wrap(err)
	}

	exists, err := s.accounts.EmailExists(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").With("operation", "check email").Wrap(err)
	}
	if exists {
		return nil, oops.Code("AUTH_EMAIL_TAKEN").Wrap(ErrEmailTaken)
	}

	hash, err := HashIfNeeded(s.hasher, in.Password)
	if err != nil {
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").With("operation", "hash password").Wrap(err)
	}

	account, err := NewAccount(in.FirstName, in.LastName, email, phone, role, hash)
	if err != nil {
		return nil, oops.Code("ACCOUNT_CREATE_INVALID").Wrap(err)
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, oops.Code("AUTH_EMAIL_TAKEN").Wrap(ErrEmailTaken)
		}
		return nil, oops.Code("ACCOUNT_CREATE_FAILED").With("operation", "create account").Wrap(err)
	}
	return account, nil
}

// UpdateAccount applies patch to the account with id.
func (s *Service) UpdateAccount(ctx context.Context, id ulid.ULID, patch AccountPatch) (*Account, error) {
	account, err := s.Me(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		if err := ValidateName("firstName", *patch.FirstName); err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_INVALID").Wrap(err)
		}
		account.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		if err := ValidateName("lastName", *patch.LastName); err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_INVALID").Wrap(err)
		}
		account.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil && *patch.Email != account.Email {
		email := strings.TrimSpace(*patch.Email)
		if err := ValidateEmail(email); err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_INVALID").Wrap(err)
		}
		exists, err := s.accounts.EmailExists(ctx, strings.TrimSpace(email))
		if err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_FAILED").With("operation", "check email").Wrap(err)
		}
		if exists {
			return nil, oops.Code("AUTH_EMAIL_TAKEN").Wrap(ErrEmailTaken)
		}
		account.Email = email
	}
	if patch.Phone != nil {
		if err := ValidatePhone(patch.Phone); err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_INVALID").Wrap(err)
		}
		if *patch.Phone == "" {
			account.Phone = nil
		} else {
			account.Phone = patch.Phone
		}
	}
	if patch.ProfileImage != nil {
		account.ProfileImage = patch.ProfileImage
	}
	if patch.Role != nil {
		role, err := ParseRole(*patch.Role)
		if err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_INVALID").Wrap(err)
		}
		account.Role = role
	}
	if patch.IsActive != nil {
		account.IsActive = *patch.IsActive
	}
	if patch.Password != nil {
		if !s.hasher.IsHashed(*patch.Password) {
			if err := ValidatePassword(*patch.Password); err != nil {
				return nil, oops.Code("ACCOUNT_UPDATE_INVALID").Wrap(err)
			}
		}
		hash, err := HashIfNeeded(s.hasher, *patch.Password)
		if err != nil {
			return nil, oops.Code("ACCOUNT_UPDATE_FAILED").With("operation", "hash password").Wrap(err)
		}
		account.PasswordHash = hash
	}

	account.UpdatedAt = s.now().UTC()
	if err := s.accounts.Update(ctx, account); err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return nil, oops.Code("AUTH_EMAIL_TAKEN").Wrap(ErrEmailTaken)
		case errors.Is(err, ErrNotFound):
			return nil, oops.Code("ACCOUNT_NOT_FOUND").With("account_id", id.String()).Wrap(ErrAccountNotFound)
		}
		return nil, oops.Code("ACCOUNT_UPDATE_FAILED").With("account_id", id.String()).Wrap(err)
	}
	return account, nil
}

// DeleteAccount soft-deletes the account with id.
func (s *Service) DeleteAccount(ctx context.Context, id ulid.ULID) error {
	if err := s.accounts.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("ACCOUNT_NOT_FOUND").With("account_id", id.String()).Wrap(ErrAccountNotFound)
		}
		return oops.Code("ACCOUNT_DELETE_FAILED").With("account_id", id.String()).Wrap(err)
	}
	s.logger.InfoContext(ctx, "account deleted", "account_id", id.String())
	return nil
}

// ListAccounts returns non-deleted accounts matching filter.
func (s *Service) ListAccounts(ctx context.Context, filter AccountFilter) ([]*Account, error) {
	accounts, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").Wrap(err)
	}
	return accounts, nil
}

// Stats returns account counts.
func (s *Service) Stats(ctx context.Context) (*AccountStats, error) {
	stats, err := s.accounts.Stats(ctx)
	if err != nil {
		return nil, oops.Code("ACCOUNT_STATS_FAILED").Wrap(err)
	}
	return stats, nil
}

// EmailTaken reports whether a non-deleted account uses email.
func (s *Service) EmailTaken(ctx context.Context, email string) (bool, error) {
	exists, err := s.accounts.EmailExists(ctx, strings.TrimSpace(email))
	if err != nil {
		return false, oops.Code("ACCOUNT_EMAIL_CHECK_FAILED").Wrap(err)
	}
	return exists, nil
}

// SetPassword replaces the password of the account holding email and clears
// any outstanding reset token.
func (s *Service) SetPassword(ctx context.Context, email, password string) (*Account, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, oops.Code("ACCOUNT_PASSWORD_INVALID").Wrap(err)
	}
	email = strings.TrimSpace(email)
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("ACCOUNT_NOT_FOUND").With("email", email).Wrap(ErrAccountNotFound)
		}
		return nil, oops.Code("ACCOUNT_PASSWORD_FAILED").With("operation", "get account by email").Wrap(err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("ACCOUNT_PASSWORD_FAILED").With("operation", "hash password").Wrap(err)
	}
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.accounts.UpdatePassword(ctx, account.ID, hash); err != nil {
			return err
		}
		return s.accounts.ClearResetToken(ctx, account.ID)
	})
	if err != nil {
		return nil, oops.Code("ACCOUNT_PASSWORD_FAILED").With("account_id", account.ID.String()).Wrap(err)
	}
	account.PasswordHash = hash
	return account, nil
}

// EnsureAdmin creates an administrator, or promotes and reactivates the
// existing account with the same email. The bool reports whether an account
// was created.
func (s *Service) EnsureAdmin(ctx context.Context, in AccountInput) (*Account, bool, error) {
	in.Email = strings.TrimSpace(in.Email)
	existing, err := s.accounts.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		admin := string(RoleAdmin)
		active := true
		patch := AccountPatch{Role: &admin, IsActive: &active}
		if in.Password != "" {
			patch.Password = &in.Password
		}
		account, err := s.UpdateAccount(ctx, existing.ID, patch)
		return account, false, err
	case errors.Is(err, ErrNotFound):
		in.Role = string(RoleAdmin)
		account, err := s.CreateAccount(ctx, in)
		return account, err == nil, err
	default:
		return nil, false, oops.Code("ACCOUNT_ENSURE_ADMIN_FAILED").With("operation", "get account by email").Wrap(err)
	}
}
