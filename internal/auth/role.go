// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"strings"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// Role is an account's authorization role.
type Role string

// The closed set of roles.
const (
	RoleUser      Role = "User"
	RoleCaregiver Role = "Caregiver"
	RoleAdmin     Role = "Admin"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleCaregiver, RoleAdmin}

// ParseRole normalizes s to one of Roles. Matching is case-insensitive and an
// empty string yields RoleUser.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleUser, nil
	}
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", errutil.Invalid("role", "Invalid role")
}

// Valid reports whether r is one of Roles, ignoring case.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil && r != ""
}

// In reports whether r matches any of roles, ignoring case.
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if strings.EqualFold(string(r), string(allowed)) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether r is the administrator role.
func (r Role) IsAdmin() bool { return r.In(RoleAdmin) }

// IsStaff reports whether r may act on other accounts' care records.
func (r Role) IsStaff() bool { return r.In(RoleAdmin, RoleCaregiver) }
