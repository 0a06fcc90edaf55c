// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care_test

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/pkg/errutil"
)

func TestService_CreateCaregiver_CaregiverCreatesOwnProfile(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	me := actor(auth.RoleCaregiver)
	account := &auth.Account{ID: me.AccountID, FirstName: "Mary", LastName: "Seacole", Role: auth.RoleCaregiver}
	f.accounts.On("GetByID", ctx, me.AccountID).Return(account, nil)
	f.caregivers.On("Create", ctx, mock.MatchedBy(func(c *care.Caregiver) bool {
		return c.AccountID == me.AccountID
	})).Return(nil)

	c := &care.Caregiver{AccountID: ulid.Make(), Specialization: "Wound care", ExperienceYears: 12}
	require.NoError(t, f.svc.CreateCaregiver(ctx, me, c))
	require.NotNil(t, c.Account)
	assert.Equal(t, "Seacole", c.Account.LastName)
}

func TestService_CreateCaregiver_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("plain user", func(t *testing.T) {
		f := newServiceFixture(t)
		err := f.svc.CreateCaregiver(ctx, actor(auth.RoleUser), &care.Caregiver{Specialization: "x"})
		assertForbidden(t, err)
		var pub *errutil.PublicError
		require.ErrorAs(t, err, &pub)
		assert.Equal(t, "User role User is not authorized to access this route", pub.Message)
	})

	t.Run("admin without account", func(t *testing.T) {
		f := newServiceFixture(t)
		err := f.svc.CreateCaregiver(ctx, actor(auth.RoleAdmin), &care.Caregiver{Specialization: "x"})
		errutil.AssertValidationField(t, err, "userId")
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newServiceFixture(t)
		id := ulid.Make()
		f.accounts.On("GetByID", ctx, id).Return(nil, notFound("ACCOUNT"))
		err := f.svc.CreateCaregiver(ctx, actor(auth.RoleAdmin), &care.Caregiver{AccountID: id, Specialization: "x"})
		errutil.AssertErrorCode(t, err, "CAREGIVER_ACCOUNT_NOT_FOUND")
	})

	t.Run("profile exists", func(t *testing.T) {
		f := newServiceFixture(t)
		me := actor(auth.RoleCaregiver)
		f.accounts.On("GetByID", ctx, me.AccountID).Return(&auth.Account{ID: me.AccountID}, nil)
		f.caregivers.On("Create", ctx, mock.Anything).
			Return(oops.Code("CAREGIVER_EXISTS").Wrap(care.ErrCaregiverExists))
		err := f.svc.CreateCaregiver(ctx, me, &care.Caregiver{Specialization: "x"})
		assert.ErrorIs(t, err, errutil.ErrConflict)
		errutil.AssertErrorCode(t, err, "CAREGIVER_EXISTS")
	})
}

func TestService_UpdateCaregiver_KeepsAccount(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	current := &care.Caregiver{ID: ulid.Make(), AccountID: ulid.Make(), Specialization: "Wound care", Status: care.CaregiverActive}
	f.caregivers.On("Get", ctx, current.ID).Return(current, nil)
	f.caregivers.On("Update", ctx, mock.Anything).Return(nil)

	updated, err := f.svc.UpdateCaregiver(ctx, actor(auth.RoleAdmin), current.ID, func(c *care.Caregiver) error {
		c.AccountID = ulid.Make()
		c.Status = care.CaregiverOnLeave
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, current.AccountID, updated.AccountID)
	assert.Equal(t, care.CaregiverOnLeave, updated.Status)
}

func TestService_DeleteCaregiver_SoftDeletes(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	id := ulid.Make()
	f.caregivers.On("SoftDelete", ctx, id, fixedNow).Return(nil)

	require.NoError(t, f.svc.DeleteCaregiver(ctx, actor(auth.RoleAdmin), id))
	assertForbidden(t, f.svc.DeleteCaregiver(ctx, actor(auth.RoleCaregiver), id))
}

func TestService_GetCaregiver_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	id := ulid.Make()
	f.caregivers.On("Get", ctx, id).Return(nil, notFound("CAREGIVER"))

	_, err := f.svc.GetCaregiver(ctx, actor(auth.RoleUser), id)
	assert.ErrorIs(t, err, errutil.ErrNotFound)
}
