// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether err is a PostgreSQL unique violation,
// optionally restricted to the named constraints or indexes.
func IsUniqueViolation(err error, constraints ...string) bool {
	return hasCode(err, pgerrcode.UniqueViolation, constraints)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation, optionally restricted to the named constraints.
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation, constraints)
}

func hasCode(err error, code string, constraints []string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
