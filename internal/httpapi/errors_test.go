// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"

	"github.com/carehaven/carehaven/pkg/errutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation error",
			err:        oops.Code("ELDER_INVALID").Wrap(errutil.Invalid("fullName", "Please add a name")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please add a name",
		},
		{
			name:       "bad path id",
			err:        oops.Code("HTTP_INVALID_ID").Wrap(errutil.Invalid("id", "Invalid id")),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid id",
		},
		{
			name:       "missing signing secret is a server fault",
			err:        oops.Code("AUTH_CONFIG_INVALID").Errorf("token signing secret is not configured"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    serverErrorMessage,
		},
		{
			name:       "corrupt stored hash is a server fault",
			err:        oops.Code("AUTH_INVALID_HASH").Errorf("invalid hash format"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    serverErrorMessage,
		},
		{
			name:       "unauthorized",
			err:        oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(errutil.Unauthorized("Invalid credentials")),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid credentials",
		},
		{
			name:       "forbidden",
			err:        errutil.Forbidden("Not allowed"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "Not allowed",
		},
		{
			name:       "not found",
			err:        oops.Wrap(errutil.NotFound("Elder not found")),
			wantStatus: http.StatusNotFound,
			wantMsg:    "Elder not found",
		},
		{
			name:       "conflict",
			err:        errutil.Conflict("User already exists"),
			wantStatus: http.StatusConflict,
			wantMsg:    "User already exists",
		},
		{
			name:       "internal with safe message",
			err:        errutil.Internal("Email could not be sent"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Email could not be sent",
		},
		{
			name:       "fiber error",
			err:        fiber.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "Method Not Allowed",
		},
		{
			name:       "plain error",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    serverErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
