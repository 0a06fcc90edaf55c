// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

// familySelect joins the member's account summary onto each link.
const familySelect = `
	SELECT f.id, f.account_id, f.elder_id, f.relationship, f.is_primary, f.can_view_medical,
		f.can_edit_profile, f.can_book_services, f.created_at, f.updated_at,
		a.first_name, a.last_name, a.email, a.role
	FROM family_members f
	JOIN accounts a ON a.id = f.account_id`

// FamilyMemberRepository implements care.FamilyMemberRepository using
// PostgreSQL.
type FamilyMemberRepository struct {
	pool store.Querier
}

// NewFamilyMemberRepository creates a new FamilyMemberRepository.
func NewFamilyMemberRepository(pool store.Querier) *FamilyMemberRepository {
	return &FamilyMemberRepository{pool: pool}
}

func (r *FamilyMemberRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// familyConflict maps the one-link-per-pair and one-primary-per-elder
// constraints.
func familyConflict(err error, m *care.FamilyMember) error {
	if store.IsUniqueViolation(err, "family_members_account_elder_key", "family_members_primary_key") {
		return oops.Code("FAMILY_MEMBER_EXISTS").
			With("account_id", m.AccountID.String()).
			With("elder_id", m.ElderID.String()).
			Wrap(care.ErrFamilyMemberExists)
	}
	return nil
}

// Create stores a new link.
func (r *FamilyMemberRepository) Create(ctx context.Context, m *care.FamilyMember) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO family_members (
			id, account_id, elder_id, relationship, is_primary, can_view_medical,
			can_edit_profile, can_book_services, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		m.ID.String(),
		m.AccountID.String(),
		m.ElderID.String(),
		string(m.Relationship),
		m.IsPrimary,
		m.CanViewMedical,
		m.CanEditProfile,
		m.CanBookServices,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if conflict := familyConflict(err, m); conflict != nil {
		return conflict
	}
	if err != nil {
		return oops.Code("FAMILY_MEMBER_CREATE_FAILED").
			With("operation", "insert family member").
			With("id", m.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a link by ID.
func (r *FamilyMemberRepository) Get(ctx context.Context, id ulid.ULID) (*care.FamilyMember, error) {
	row := r.q(ctx).QueryRow(ctx, familySelect+`
		WHERE f.id = $1
	`, id.String())

	m, err := scanFamilyMember(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("FAMILY_MEMBER_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_GET_FAILED").
			With("operation", "get family member").
			With("id", id.String()).
			Wrap(err)
	}
	return m, nil
}

// Update writes the relationship and permission flags.
func (r *FamilyMemberRepository) Update(ctx context.Context, m *care.FamilyMember) error {
	err := execOne(ctx, r.q(ctx), "FAMILY_MEMBER", "FAMILY_MEMBER_UPDATE_FAILED", "update family member", m.ID, `
		UPDATE family_members SET
			relationship = $2,
			is_primary = $3,
			can_view_medical = $4,
			can_edit_profile = $5,
			can_book_services = $6,
			updated_at = $7
		WHERE id = $1
	`,
		m.ID.String(),
		string(m.Relationship),
		m.IsPrimary,
		m.CanViewMedical,
		m.CanEditProfile,
		m.CanBookServices,
		m.UpdatedAt,
	)
	if conflict := familyConflict(err, m); conflict != nil {
		return conflict
	}
	return err
}

// Delete removes a link.
func (r *FamilyMemberRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "FAMILY_MEMBER", "FAMILY_MEMBER_DELETE_FAILED", "delete family member", id,
		`DELETE FROM family_members WHERE id = $1`, id.String())
}

// ListByElder returns an elder's links, primary first.
func (r *FamilyMemberRepository) ListByElder(ctx context.Context, elderID ulid.ULID) ([]*care.FamilyMember, error) {
	rows, err := r.q(ctx).Query(ctx, familySelect+`
		WHERE f.elder_id = $1
		ORDER BY f.is_primary DESC, f.created_at, f.id
	`, elderID.String())
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_LIST_FAILED").
			With("operation", "list family members").
			With("elder_id", elderID.String()).
			Wrap(err)
	}
	members, err := collect(rows, scanFamilyMember)
	if err != nil {
		return nil, oops.Code("FAMILY_MEMBER_LIST_FAILED").With("operation", "scan family rows").Wrap(err)
	}
	return members, nil
}

// ClearPrimary unsets the primary flag on every other link of elderID.
func (r *FamilyMemberRepository) ClearPrimary(ctx context.Context, elderID, keep ulid.ULID) error {
	_, err := r.q(ctx).Exec(ctx, `
		UPDATE family_members SET is_primary = FALSE, updated_at = now()
		WHERE elder_id = $1 AND id <> $2 AND is_primary
	`, elderID.String(), keep.String())
	if err != nil {
		return oops.Code("FAMILY_MEMBER_UPDATE_FAILED").
			With("operation", "clear primary").
			With("elder_id", elderID.String()).
			Wrap(err)
	}
	return nil
}

// scanFamilyMember scans one familySelect row. Callers handle pgx.ErrNoRows.
func scanFamilyMember(row pgx.Row) (*care.FamilyMember, error) {
	var (
		m                          care.FamilyMember
		summary                    auth.Summary
		idStr, accountStr, elderID string
		relationship, role         string
	)
	err := row.Scan(
		&idStr,
		&accountStr,
		&elderID,
		&relationship,
		&m.IsPrimary,
		&m.CanViewMedical,
		&m.CanEditProfile,
		&m.CanBookServices,
		&m.CreatedAt,
		&m.UpdatedAt,
		&summary.FirstName,
		&summary.LastName,
		&summary.Email,
		&role,
	)
	if err != nil {
		return nil, err
	}
	if m.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if m.AccountID, err = parseID(accountStr); err != nil {
		return nil, err
	}
	if m.ElderID, err = parseID(elderID); err != nil {
		return nil, err
	}
	m.Relationship = care.Relationship(relationship)
	summary.ID = m.AccountID
	summary.Role = auth.Role(role)
	m.Account = &summary
	return &m, nil
}

var _ care.FamilyMemberRepository = (*FamilyMemberRepository)(nil)
