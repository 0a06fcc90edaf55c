// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/oops"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// ForgotPassword starts password recovery for email. An unknown email is not
// an error, so callers cannot use this to enumerate accounts. Failing to
// generate, store or deliver the token is a separate error path; any token
// already stored is cleared before returning.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return oops.Code("RESET_REQUEST_INVALID").
			Wrap(errutil.Invalid("email", "Please provide an email"))
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.DebugContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	if !account.IsActive {
		s.logger.DebugContext(ctx, "password reset requested for inactive account",
			"account_id", account.ID.String())
		return nil
	}

	token, err := GenerateResetToken(s.now())
	if err != nil {
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "generate reset token").
			With("account_id", account.ID.String()).
			Wrap(err)
	}

	if err := s.accounts.SetResetToken(ctx, account.ID, token.Hash, token.ExpiresAt); err != nil {
		return oops.Code("RESET_REQUEST_FAILED").
			With("operation", "store reset token").
			With("account_id", account.ID.String()).
			Wrap(err)
	}

	if err := s.notifier.SendPasswordReset(ctx, account, s.resetLink(token.Plaintext)); err != nil {
		if clearErr := s.accounts.ClearResetToken(ctx, account.ID); clearErr != nil {
			s.logger.WarnContext(ctx, "failed to clear reset token after delivery failure",
				"account_id", account.ID.String(),
				"error", clearErr)
		}
		errutil.LogErrorContext(ctx, s.logger, "reset email delivery failed",
			oops.With("account_id", account.ID.String()).Wrap(err))
		return oops.Code("RESET_EMAIL_FAILED").
			With("account_id", account.ID.String()).
			Wrap(ErrResetEmailFailed)
	}

	s.logger.InfoContext(ctx, "password reset requested", "account_id", account.ID.String())
	return nil
}

// ResetPassword consumes a reset token and sets a new password. The token is
// cleared by any attempt that presents it, including one where it turns out
// to be expired or to belong to an inactive account. Returns a fresh session
// on success.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) (*Session, error) {
	if token == "" {
		return nil, oops.Code("RESET_TOKEN_INVALID").Wrap(ErrInvalidResetToken)
	}
	if err := ValidatePassword(newPassword); err != nil {
		return nil, oops.Code("RESET_PASSWORD_INVALID").Wrap(err)
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, oops.Code("RESET_PASSWORD_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	digest := HashResetToken(token)
	now := s.now()

	var account *Account
	var rejected bool
	err = s.tx.InTransaction(ctx, func(ctx context.Context) error {
		id, expiresAt, err := s.accounts.ConsumeResetToken(ctx, digest)
		if errors.Is(err, ErrNotFound) {
			rejected = true
			return nil
		}
		if err != nil {
			return oops.Code("RESET_PASSWORD_FAILED").
				With("operation", "consume reset token").
				Wrap(err)
		}
		if !expiresAt.After(now) {
			// Commit so the expired token stays cleared.
			rejected = true
			return nil
		}
		found, err := s.accounts.GetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			rejected = true
			return nil
		}
		if err != nil {
			return oops.Code("RESET_PASSWORD_FAILED").
				With("operation", "get account").
				With("account_id", id.String()).
				Wrap(err)
		}
		if !found.IsActive {
			rejected = true
			return nil
		}
		if err := s.accounts.UpdatePassword(ctx, id, hashedPassword); err != nil {
			return oops.Code("RESET_PASSWORD_FAILED").
				With("operation", "update password").
				With("account_id", id.String()).
				Wrap(err)
		}
		found.PasswordHash = hashedPassword
		account = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rejected {
		return nil, oops.Code("RESET_TOKEN_INVALID").Wrap(ErrInvalidResetToken)
	}

	s.logger.InfoContext(ctx, "password reset completed", "account_id", account.ID.String())
	return s.issue(account)
}

func (s *Service) resetLink(token string) string {
	if s.resetURL == "" {
		return "/reset-password/" + token
	}
	return s.resetURL + "/" + token
}
