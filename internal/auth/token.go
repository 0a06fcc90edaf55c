// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// DefaultTokenExpiry is the session token lifetime when none is configured.
const DefaultTokenExpiry = 7 * 24 * time.Hour

// Claims is the signed payload of a session token. The subject is the account ID.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// Identity is what a verified token asserts.
type Identity struct {
	AccountID ulid.ULID
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenIssuer produces signed session tokens.
type TokenIssuer interface {
	// Issue returns a signed token for the account and the time it expires.
	Issue(accountID ulid.ULID, role Role) (string, time.Time, error)
}

// TokenVerifier checks session tokens.
type TokenVerifier interface {
	// Verify returns the identity embedded in token. Every failure (bad
	// signature, malformed, expired) yields the same AUTH_TOKEN_INVALID error.
	Verify(token string) (*Identity, error)
}

// TokenService issues and verifies HS256 session tokens. It holds no session
// state; a token is verifiable from its signature alone.
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithTokenExpiry overrides DefaultTokenExpiry. Non-positive values are ignored.
func WithTokenExpiry(d time.Duration) TokenOption {
	return func(s *TokenService) {
		if d > 0 {
			s.expiry = d
		}
	}
}

// WithTokenClock sets the time source used for issuance and expiry checks.
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService creates a TokenService signing with secret. An empty secret
// is a configuration error: no token is ever issued unsigned.
func NewTokenService(secret string, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, oops.Code("AUTH_CONFIG_INVALID").Errorf("token signing secret is not configured")
	}
	s := &TokenService{
		secret: []byte(secret),
		expiry: DefaultTokenExpiry,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Expiry returns the configured token lifetime.
func (s *TokenService) Expiry() time.Duration {
	return s.expiry
}

// Issue builds and signs a token for accountID and role.
func (s *TokenService) Issue(accountID ulid.ULID, role Role) (string, time.Time, error) {
	if s == nil || len(s.secret) == 0 {
		return "", time.Time{}, oops.Code("AUTH_CONFIG_INVALID").Errorf("token signing secret is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.expiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: role,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, oops.Code("AUTH_TOKEN_SIGN_FAILED").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	return signed, expiresAt, nil
}

// Verify checks the token's signature and expiry.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, invalidToken()
	}

	id, err := ulid.Parse(claims.Subject)
	if err != nil {
		return nil, invalidToken()
	}

	identity := &Identity{
		AccountID: id,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	return identity, nil
}

// invalidToken deliberately drops the underlying parse error.
func invalidToken() error {
	return oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrNotAuthorized)
}
