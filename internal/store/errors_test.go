// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "staff_email_key"}
	wrapped := fmt.Errorf("insert staff: %w", unique)

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(wrapped))
	assert.True(t, IsUniqueViolation(wrapped, "staff_employee_id_key", "staff_email_key"))
	assert.False(t, IsUniqueViolation(wrapped, "services_name_key"))
	assert.False(t, IsUniqueViolation(errors.New("unique")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "family_members_elder_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsForeignKeyViolation(fk, "family_members_elder_id_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "other"))
	assert.False(t, IsForeignKeyViolation(nil))
}
