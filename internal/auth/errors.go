// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"github.com/carehaven/carehaven/pkg/errutil"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errutil.ErrNotFound

// Client-facing failures. Messages are deliberately uninformative about which
// half of a credential check failed.
var (
	ErrInvalidCredentials = errutil.Unauthorized("Invalid credentials")
	ErrNotAuthorized      = errutil.Unauthorized("Not authorized to access this route")
	ErrAccountNotFound    = errutil.NotFound("User not found")
	ErrEmailTaken         = errutil.Conflict("User already exists")
	ErrInvalidResetToken  = &errutil.ValidationError{Field: "token", Message: "Invalid or expired token"}
	ErrResetEmailFailed   = errutil.Internal("Email could not be sent")
)
