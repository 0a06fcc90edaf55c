// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// Actor is the account performing an operation.
type Actor struct {
	AccountID ulid.ULID
	Role      auth.Role
}

// ActorFor returns the Actor for a resolved account.
func ActorFor(account *auth.Account) Actor {
	return Actor{AccountID: account.ID, Role: account.Role}
}

// Owns reports whether id is the actor's account.
func (a Actor) Owns(id ulid.ULID) bool { return a.AccountID == id }

// require fails with 403 unless the actor holds one of roles.
func (a Actor) require(roles ...auth.Role) error {
	if a.Role.In(roles...) {
		return nil
	}
	return oops.Code("CARE_FORBIDDEN").
		With("account_id", a.AccountID.String()).
		With("role", string(a.Role)).
		Wrap(errutil.Forbidden(fmt.Sprintf("User role %s is not authorized to access this route", a.Role)))
}

// ownerOr fails with 403 unless the actor owns the record or holds one of
// roles.
func (a Actor) ownerOr(owner ulid.ULID, action, resource string, roles ...auth.Role) error {
	if a.Owns(owner) || a.Role.In(roles...) {
		return nil
	}
	return oops.Code("CARE_FORBIDDEN").
		With("account_id", a.AccountID.String()).
		With("resource", resource).
		With("action", action).
		Wrap(notAuthorized(a, action, resource))
}

// scope returns nil when the actor sees every record, else the actor's own id.
func (a Actor) scope(roles ...auth.Role) *ulid.ULID {
	if a.Role.In(roles...) {
		return nil
	}
	id := a.AccountID
	return &id
}
