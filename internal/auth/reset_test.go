// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/auth"
)

func TestGenerateResetToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("generates secure token", func(t *testing.T) {
		tok, err := auth.GenerateResetToken(now)
		require.NoError(t, err)
		assert.Len(t, tok.Plaintext, 40) // 20 bytes hex-encoded
		assert.NotEmpty(t, tok.Hash)
		assert.NotEqual(t, tok.Plaintext, tok.Hash)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		tok1, err := auth.GenerateResetToken(now)
		require.NoError(t, err)

		tok2, err := auth.GenerateResetToken(now)
		require.NoError(t, err)

		assert.NotEqual(t, tok1.Plaintext, tok2.Plaintext)
		assert.NotEqual(t, tok1.Hash, tok2.Hash)
	})

	t.Run("hash is SHA256 hex-encoded digest of plaintext", func(t *testing.T) {
		tok, err := auth.GenerateResetToken(now)
		require.NoError(t, err)

		sum := sha256.Sum256([]byte(tok.Plaintext))
		assert.Equal(t, hex.EncodeToString(sum[:]), tok.Hash)
		assert.Equal(t, tok.Hash, auth.HashResetToken(tok.Plaintext))
	})

	t.Run("expires exactly ten minutes after issuance", func(t *testing.T) {
		tok, err := auth.GenerateResetToken(now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(10*time.Minute), tok.ExpiresAt)
	})
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, auth.HashResetToken("abc"), auth.HashResetToken("abc"))
	assert.NotEqual(t, auth.HashResetToken("abc"), auth.HashResetToken("abd"))
}

func TestResetTokenConstants(t *testing.T) {
	t.Run("token has at least 20 bytes of entropy", func(t *testing.T) {
		assert.GreaterOrEqual(t, auth.ResetTokenBytes, 20)
	})

	t.Run("token expiry is 10 minutes", func(t *testing.T) {
		assert.Equal(t, 10*time.Minute, auth.ResetTokenExpiry)
	})
}
