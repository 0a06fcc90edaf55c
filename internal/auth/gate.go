// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/oops"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// Gate resolves a presented session token to a live account and checks the
// account's role against a route's allowed set.
type Gate struct {
	verifier TokenVerifier
	accounts AccountRepository
}

// NewGate creates a Gate.
func NewGate(verifier TokenVerifier, accounts AccountRepository) (*Gate, error) {
	if verifier == nil {
		return nil, oops.Code("AUTH_INVALID_GATE").Errorf("token verifier is required")
	}
	if accounts == nil {
		return nil, oops.Code("AUTH_INVALID_GATE").Errorf("accounts repository is required")
	}
	return &Gate{verifier: verifier, accounts: accounts}, nil
}

// Resolve verifies token and re-fetches the account it names. Profile fields
// embedded in the token are never trusted; only the account ID is used.
func (g *Gate) Resolve(ctx context.Context, token string) (*Account, error) {
	if token == "" {
		return nil, oops.Code("AUTH_TOKEN_MISSING").Wrap(ErrNotAuthorized)
	}

	identity, err := g.verifier.Verify(token)
	if err != nil {
		return nil, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrNotAuthorized)
	}

	account, err := g.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, oops.Code("ACCOUNT_NOT_FOUND").
				With("account_id", identity.AccountID.String()).
				Wrap(ErrAccountNotFound)
		}
		return nil, oops.Code("AUTH_GATE_FAILED").
			With("operation", "get account by id").
			With("account_id", identity.AccountID.String()).
			Wrap(err)
	}

	if !account.IsActive {
		return nil, oops.Code("AUTH_ACCOUNT_INACTIVE").
			With("account_id", account.ID.String()).
			Wrap(ErrNotAuthorized)
	}
	return account, nil
}

// Authorize returns a forbidden error unless account's role is one of allowed.
// An empty allowed set admits any authenticated account.
func Authorize(account *Account, allowed ...Role) error {
	if account == nil {
		return oops.Code("AUTH_TOKEN_MISSING").Wrap(ErrNotAuthorized)
	}
	if len(allowed) == 0 || account.Role.In(allowed...) {
		return nil
	}
	return oops.Code("AUTH_FORBIDDEN").
		With("account_id", account.ID.String()).
		With("role", string(account.Role)).
		Wrap(errutil.Forbidden(fmt.Sprintf("User role %s is not authorized to access this route", account.Role)))
}
