// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/pkg/errutil"
)

func newContact() *care.ContactMessage {
	return &care.ContactMessage{
		Name:    "Grace",
		Email:   "grace@example.com",
		Subject: "Night care",
		Message: "Do you offer overnight visits?",
	}
}

func TestService_SubmitContact_NotifiesAdmin(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	msg := newContact()
	f.contacts.On("Create", ctx, msg).Return(nil)
	f.notifier.On("NotifyContact", ctx, msg).Return(nil)

	require.NoError(t, f.svc.SubmitContact(ctx, msg))
	assert.False(t, msg.ID.IsZero())
	assert.Equal(t, fixedNow, msg.CreatedAt)
}

func TestService_SubmitContact_NotifyFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)
	msg := newContact()
	f.contacts.On("Create", ctx, msg).Return(nil)
	f.notifier.On("NotifyContact", ctx, msg).Return(errors.New("smtp: 421 try again"))

	require.NoError(t, f.svc.SubmitContact(ctx, msg))
	assert.Contains(t, f.logs.String(), "contact notification failed")
}

func TestService_SubmitContact_WithoutNotifier(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, withoutNotifier())
	f.contacts.On("Create", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.svc.SubmitContact(ctx, newContact()))
}

func TestService_SubmitContact_MissingFields(t *testing.T) {
	f := newServiceFixture(t)
	msg := newContact()
	msg.Subject = " "

	err := f.svc.SubmitContact(context.Background(), msg)
	var verr *errutil.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "All fields are required", verr.Message)
}

func TestService_ListContacts_AdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	_, err := f.svc.ListContacts(ctx, actor(auth.RoleCaregiver))
	assertForbidden(t, err)

	f.contacts.On("List", ctx).Return([]*care.ContactMessage{newContact()}, nil)
	msgs, err := f.svc.ListContacts(ctx, actor(auth.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
