// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package auth provides credential and session authentication for CareHaven.
//
// # Domain Types
//
// Accounts should be created with NewAccount, which validates names, email,
// phone and role before a password hash is attached. Direct struct
// initialization bypasses validation and may create invalid state.
//
// # Components
//
//   - PasswordHasher - one-way secret hashing with an explicit IsHashed guard
//   - TokenService - signed, time-limited session tokens (stateless)
//   - GenerateResetToken - single-use password recovery tokens
//   - Gate - resolves a presented token to a live account and checks roles
//
// # Services
//
// Service coordinates registration, login, password recovery and the
// administrative account operations. It is created with NewService, which
// validates its dependencies.
package auth
