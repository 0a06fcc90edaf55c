// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/carehaven/carehaven/pkg/errutil"
)

func TestAssertErrorCode_DeepestCodeWins(t *testing.T) {
	inner := oops.Code("ACCOUNT_NOT_FOUND").Wrap(errutil.NotFound("User not found"))
	err := oops.Code("ACCOUNT_LOOKUP_FAILED").Wrap(inner)
	errutil.AssertErrorCode(t, err, "ACCOUNT_NOT_FOUND")
}

func TestAssertErrorContext_FindsAttachedValue(t *testing.T) {
	err := oops.Code("DOCUMENT_FORBIDDEN").With("document_id", "doc-7").Wrap(errutil.Forbidden("Not allowed"))
	errutil.AssertErrorContext(t, err, "document_id", "doc-7")
}

func TestAssertValidationField_Wrapped(t *testing.T) {
	err := oops.Code("BAD_INPUT").Wrap(errutil.Invalid("email", "Please provide a valid email"))
	errutil.AssertValidationField(t, err, "email")
}
