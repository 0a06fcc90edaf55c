// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/samber/oops"
)

// Reset token configuration.
const (
	ResetTokenBytes  = 20               // 20 bytes = 40 hex chars
	ResetTokenExpiry = 10 * time.Minute // single use, short lived
)

// ResetToken is a freshly generated password-reset token. Plaintext goes to
// the account holder once; only Hash is stored.
type ResetToken struct {
	Plaintext string
	Hash      string
	ExpiresAt time.Time
}

// GenerateResetToken creates a secure random token, its SHA-256 lookup digest
// and an expiry ResetTokenExpiry after now.
func GenerateResetToken(now time.Time) (*ResetToken, error) {
	tokenBytes := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, oops.Code("RESET_TOKEN_GENERATE_FAILED").Wrap(err)
	}

	token := hex.EncodeToString(tokenBytes)
	return &ResetToken{
		Plaintext: token,
		Hash:      HashResetToken(token),
		ExpiresAt: now.Add(ResetTokenExpiry),
	}, nil
}

// HashResetToken computes the hex SHA-256 digest used to look a token up.
func HashResetToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
