// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package postgres provides the PostgreSQL account repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/store"
)

const accountColumns = `id, first_name, last_name, email, password_hash, role, phone, profile_image,
	is_active, last_login, reset_token_hash, reset_token_expires_at, created_at, updated_at, deleted_at`

// AccountRepository implements auth.AccountRepository using PostgreSQL.
// Statements run in the transaction carried by the context, if any.
type AccountRepository struct {
	pool store.Querier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool store.Querier) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// Create stores a new account.
func (r *AccountRepository) Create(ctx context.Context, a *auth.Account) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO accounts (
			id, first_name, last_name, email, password_hash, role, phone,
			profile_image, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		a.ID.String(),
		a.FirstName,
		a.LastName,
		a.Email,
		a.PasswordHash,
		string(a.Role),
		a.Phone,
		a.ProfileImage,
		a.IsActive,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if store.IsUniqueViolation(err) {
		return oops.Code("ACCOUNT_EMAIL_TAKEN").With("account_id", a.ID.String()).Wrap(auth.ErrEmailTaken)
	}
	if err != nil {
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("account_id", a.ID.String()).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a live account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.Account, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1 AND deleted_at IS NULL
	`, id.String())

	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With("account_id", id.String()).Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").
			With("operation", "get account by id").
			With("account_id", id.String()).
			Wrap(err)
	}
	return a, nil
}

// GetByEmail retrieves a live account by exact email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*auth.Account, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE email = $1 AND deleted_at IS NULL
	`, email)

	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ACCOUNT_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	return a, nil
}

// List returns live accounts matching filter, newest first.
func (r *AccountRepository) List(ctx context.Context, filter auth.AccountFilter) ([]*auth.Account, error) {
	var (
		where = []string{"deleted_at IS NULL"}
		args  []any
	)
	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.ActiveOnly {
		where = append(where, "is_active")
	}

	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at DESC, id DESC
	`, args...)
	if err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").With("operation", "list accounts").Wrap(err)
	}
	defer rows.Close()

	var accounts []*auth.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, oops.Code("ACCOUNT_LIST_FAILED").With("operation", "scan account row").Wrap(err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ACCOUNT_LIST_FAILED").With("operation", "iterate accounts").Wrap(err)
	}
	return accounts, nil
}

// Update writes the mutable account fields.
func (r *AccountRepository) Update(ctx context.Context, a *auth.Account) error {
	result, err := r.q(ctx).Exec(ctx, `
		UPDATE accounts SET
			first_name = $2,
			last_name = $3,
			email = $4,
			password_hash = $5,
			role = $6,
			phone = $7,
			profile_image = $8,
			is_active = $9,
			updated_at = $10
		WHERE id = $1 AND deleted_at IS NULL
	`,
		a.ID.String(),
		a.FirstName,
		a.LastName,
		a.Email,
		a.PasswordHash,
		string(a.Role),
		a.Phone,
		a.ProfileImage,
		a.IsActive,
		a.UpdatedAt,
	)
	if store.IsUniqueViolation(err) {
		return oops.Code("ACCOUNT_EMAIL_TAKEN").With("account_id", a.ID.String()).Wrap(auth.ErrEmailTaken)
	}
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "update account").
			With("account_id", a.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").With("account_id", a.ID.String()).Wrap(auth.ErrNotFound)
	}
	return nil
}

// UpdatePassword replaces the password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	return r.execOne(ctx, "update password", id, `
		UPDATE accounts SET password_hash = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id.String(), passwordHash)
}

// RecordLogin stamps last_login and swaps in upgradedHash when it is set.
func (r *AccountRepository) RecordLogin(ctx context.Context, id ulid.ULID, at time.Time, upgradedHash *string) error {
	return r.execOne(ctx, "record login", id, `
		UPDATE accounts SET
			last_login = $2,
			password_hash = COALESCE($3, password_hash),
			updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id.String(), at, upgradedHash)
}

// SetResetToken stores a reset digest and its expiry, replacing any previous one.
func (r *AccountRepository) SetResetToken(ctx context.Context, id ulid.ULID, tokenHash string, expiresAt time.Time) error {
	return r.execOne(ctx, "set reset token", id, `
		UPDATE accounts SET reset_token_hash = $2, reset_token_expires_at = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id.String(), tokenHash, expiresAt)
}

// ClearResetToken removes any stored reset token.
func (r *AccountRepository) ClearResetToken(ctx context.Context, id ulid.ULID) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE accounts SET reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = now()
		WHERE id = $1
	`, id.String())
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "clear reset token").
			With("account_id", id.String()).
			Wrap(err)
	}
	return nil
}

// ConsumeResetToken clears the reset token matching tokenHash and returns the
// owning account with the expiry the token had. The row lock makes two
// concurrent consumers of one token see exactly one success.
func (r *AccountRepository) ConsumeResetToken(ctx context.Context, tokenHash string) (ulid.ULID, time.Time, error) {
	var (
		idStr     string
		expiresAt *time.Time
	)
	err := r.q(ctx).QueryRow(ctx, `
		UPDATE accounts a SET
			reset_token_hash = NULL,
			reset_token_expires_at = NULL,
			updated_at = now()
		FROM (
			SELECT id, reset_token_expires_at
			FROM accounts
			WHERE reset_token_hash = $1 AND deleted_at IS NULL
			FOR UPDATE
		) t
		WHERE a.id = t.id
		RETURNING a.id, t.reset_token_expires_at
	`, tokenHash).Scan(&idStr, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ulid.ULID{}, time.Time{}, oops.Code("RESET_TOKEN_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return ulid.ULID{}, time.Time{}, oops.Code("RESET_TOKEN_CONSUME_FAILED").
			With("operation", "consume reset token").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return ulid.ULID{}, time.Time{}, oops.Code("RESET_TOKEN_CONSUME_FAILED").
			With("operation", "parse account id").
			With("account_id", idStr).
			Wrap(err)
	}
	var exp time.Time
	if expiresAt != nil {
		exp = *expiresAt
	}
	return id, exp, nil
}

// SoftDelete marks the account deleted and inactive.
func (r *AccountRepository) SoftDelete(ctx context.Context, id ulid.ULID, at time.Time) error {
	return r.execOne(ctx, "soft delete account", id, `
		UPDATE accounts SET deleted_at = $2, is_active = FALSE, updated_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`, id.String(), at)
}

// Stats counts live accounts per role.
func (r *AccountRepository) Stats(ctx context.Context) (*auth.AccountStats, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT role, count(*), count(*) FILTER (WHERE is_active)
		FROM accounts
		WHERE deleted_at IS NULL
		GROUP BY role
	`)
	if err != nil {
		return nil, oops.Code("ACCOUNT_STATS_FAILED").With("operation", "count accounts").Wrap(err)
	}
	defer rows.Close()

	stats := &auth.AccountStats{ByRole: make(map[auth.Role]int, len(auth.Roles))}
	for _, role := range auth.Roles {
		stats.ByRole[role] = 0
	}
	for rows.Next() {
		var (
			role          string
			total, active int
		)
		if err := rows.Scan(&role, &total, &active); err != nil {
			return nil, oops.Code("ACCOUNT_STATS_FAILED").With("operation", "scan stats row").Wrap(err)
		}
		stats.ByRole[auth.Role(role)] = total
		stats.Total += total
		stats.Active += active
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ACCOUNT_STATS_FAILED").With("operation", "iterate stats").Wrap(err)
	}
	return stats, nil
}

// EmailExists reports whether a live account uses email.
func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q(ctx).QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1 AND deleted_at IS NULL)
	`, email).Scan(&exists)
	if err != nil {
		return false, oops.Code("ACCOUNT_GET_FAILED").With("operation", "check email").Wrap(err)
	}
	return exists, nil
}

// execOne runs a single-row update and maps zero affected rows to ErrNotFound.
func (r *AccountRepository) execOne(ctx context.Context, operation string, id ulid.ULID, sql string, args ...any) error {
	result, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", operation).
			With("account_id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ACCOUNT_NOT_FOUND").With("account_id", id.String()).Wrap(auth.ErrNotFound)
	}
	return nil
}

// scanAccount scans one row. Callers handle pgx.ErrNoRows.
func scanAccount(row pgx.Row) (*auth.Account, error) {
	var (
		a     auth.Account
		idStr string
		role  string
	)
	err := row.Scan(
		&idStr,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.PasswordHash,
		&role,
		&a.Phone,
		&a.ProfileImage,
		&a.IsActive,
		&a.LastLogin,
		&a.ResetTokenHash,
		&a.ResetTokenExpiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse account id").With("account_id", idStr).Wrap(err)
	}
	a.ID = id
	a.Role = auth.Role(role)
	return &a, nil
}

var _ auth.AccountRepository = (*AccountRepository)(nil)
