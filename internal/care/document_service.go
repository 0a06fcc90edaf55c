// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"context"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/auth"
	"github.com/carehaven/carehaven/pkg/errutil"
)

// DocumentPatch renames a document.
type DocumentPatch struct {
	Name *string `json:"name"`
}

func (s *Service) requireStorage() error {
	if s.storage == nil {
		return oops.Code("DOCUMENT_STORAGE_DISABLED").Wrap(ErrStorageDisabled)
	}
	return nil
}

// ListDocuments returns the actor's documents, or every document for admins.
func (s *Service) ListDocuments(ctx context.Context, actor Actor) ([]*Document, error) {
	docs, err := s.documents.List(ctx, actor.scope(auth.RoleAdmin))
	if err != nil {
		return nil, oops.Code("DOCUMENT_LIST_FAILED").Wrap(err)
	}
	return docs, nil
}

// CreateDocument records a document for the actor and returns the URL the
// client uploads the bytes to.
func (s *Service) CreateDocument(ctx context.Context, actor Actor, in DocumentInput) (*DocumentLink, error) {
	if err := s.requireStorage(); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.ContentType = strings.ToLower(strings.TrimSpace(in.ContentType))
	if err := in.Validate(); err != nil {
		return nil, oops.Code("DOCUMENT_INVALID").Wrap(err)
	}
	if !s.storage.AllowsContentType(in.ContentType) {
		return nil, oops.Code("DOCUMENT_INVALID").
			With("content_type", in.ContentType).
			Wrap(errutil.Invalid("contentType", "File type not allowed"))
	}

	now := s.clock()
	doc := &Document{
		ID:          ulid.Make(),
		OwnerID:     actor.AccountID,
		Name:        in.Name,
		ObjectKey:   s.storage.NewObjectKey(actor.AccountID, in.Name),
		ContentType: in.ContentType,
		SizeBytes:   in.Size,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	url, expiresAt, err := s.storage.PresignUpload(ctx, doc.ObjectKey, doc.ContentType, doc.SizeBytes)
	if err != nil {
		return nil, oops.Code("DOCUMENT_PRESIGN_FAILED").With("id", doc.ID.String()).Wrap(err)
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, oops.Code("DOCUMENT_CREATE_FAILED").With("id", doc.ID.String()).Wrap(err)
	}
	return &DocumentLink{Document: doc, URL: url, Method: http.MethodPut, ExpiresAt: expiresAt}, nil
}

// GetDocument returns a document the actor owns, with a download URL.
// Admins may fetch any document.
func (s *Service) GetDocument(ctx context.Context, actor Actor, id ulid.ULID) (*DocumentLink, error) {
	if err := s.requireStorage(); err != nil {
		return nil, err
	}
	doc, err := s.ownedDocument(ctx, actor, id, "access")
	if err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.PresignDownload(ctx, doc.ObjectKey, doc.Name)
	if err != nil {
		return nil, oops.Code("DOCUMENT_PRESIGN_FAILED").With("id", id.String()).Wrap(err)
	}
	return &DocumentLink{Document: doc, URL: url, Method: http.MethodGet, ExpiresAt: expiresAt}, nil
}

// UpdateDocument renames a document the actor owns.
func (s *Service) UpdateDocument(ctx context.Context, actor Actor, id ulid.ULID, patch DocumentPatch) (*Document, error) {
	doc, err := s.ownedDocument(ctx, actor, id, "update")
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateDocumentName(name); err != nil {
			return nil, oops.Code("DOCUMENT_INVALID").Wrap(err)
		}
		doc.Name = name
	}
	doc.UpdatedAt = s.clock()
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, writeErr(err, "DOCUMENT_UPDATE_FAILED", ErrDocumentNotFound, id)
	}
	return doc, nil
}

// DeleteDocument removes a document the actor owns along with its bytes.
// A failure to remove the object is logged; the record is gone either way.
func (s *Service) DeleteDocument(ctx context.Context, actor Actor, id ulid.ULID) error {
	doc, err := s.ownedDocument(ctx, actor, id, "delete")
	if err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, id); err != nil {
		return writeErr(err, "DOCUMENT_DELETE_FAILED", ErrDocumentNotFound, id)
	}
	if s.storage == nil {
		return nil
	}
	if err := s.storage.Delete(ctx, doc.ObjectKey); err != nil {
		errutil.LogErrorContext(ctx, s.logger, "document object not removed",
			oops.Code("DOCUMENT_OBJECT_DELETE_FAILED").With("id", id.String()).Wrap(err))
	}
	return nil
}

func (s *Service) ownedDocument(ctx context.Context, actor Actor, id ulid.ULID, action string) (*Document, error) {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "DOCUMENT", ErrDocumentNotFound, id)
	}
	if err := actor.ownerOr(doc.OwnerID, action, "document", auth.RoleAdmin); err != nil {
		return nil, err
	}
	return doc, nil
}
