// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// SubmitContact stores a public contact-form submission and notifies the
// administrator. Notification failures are logged and do not fail the call.
func (s *Service) SubmitContact(ctx context.Context, msg *ContactMessage) error {
	if err := msg.Validate(); err != nil {
		return oops.Code("CONTACT_INVALID").Wrap(err)
	}
	msg.ID = ulid.Make()
	msg.CreatedAt = s.clock()
	if err := s.contacts.Create(ctx, msg); err != nil {
		return oops.Code("CONTACT_CREATE_FAILED").With("id", msg.ID.String()).Wrap(err)
	}

	if s.notifier == nil {
		return nil
	}
	if err := s.notifier.NotifyContact(ctx, msg); err != nil {
		errutil.LogErrorContext(ctx, s.logger, "contact notification failed", err)
	}
	return nil
}

// ListContacts returns every submission, newest first.
func (s *Service) ListContacts(ctx context.Context, actor Actor) ([]*ContactMessage, error) {
	if err := actor.require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	msgs, err := s.contacts.List(ctx)
	if err != nil {
		return nil, oops.Code("CONTACT_LIST_FAILED").Wrap(err)
	}
	return msgs, nil
}
