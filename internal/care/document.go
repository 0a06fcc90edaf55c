// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/pkg/errutil"
)

// MaxDocumentSize is the largest upload accepted, in bytes.
const MaxDocumentSize = 25 << 20

// Document is an uploaded file. The bytes live in object storage under
// ObjectKey; the record holds only metadata.
type Document struct {
	ID          ulid.ULID `json:"id"`
	OwnerID     ulid.ULID `json:"userId"`
	Name        string    `json:"name"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DocumentInput describes a file the client is about to upload.
type DocumentInput struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// DocumentLink is a document with a time-limited URL for moving its bytes.
type DocumentLink struct {
	*Document
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"urlExpiresAt"`
}

func validateDocumentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errutil.Invalid("name", "Please upload a file")
	}
	if strings.ContainsAny(name, "/\\") || path.Clean(name) != name {
		return errutil.Invalid("name", "File name cannot contain a path")
	}
	return maxLength("name", name, 255)
}

// Validate checks the upload description.
func (in DocumentInput) Validate() error {
	if err := validateDocumentName(in.Name); err != nil {
		return err
	}
	if err := required("contentType", in.ContentType, "Please add a content type"); err != nil {
		return err
	}
	if in.Size <= 0 {
		return errutil.Invalid("size", "File is empty")
	}
	if in.Size > MaxDocumentSize {
		return errutil.Invalid("size", "File is larger than 25 MB")
	}
	return nil
}
