// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carehaven/carehaven/internal/auth"
)

// Relationship is how a family member relates to an elder.
type Relationship string

// Relationships.
const (
	RelationshipSpouse     Relationship = "spouse"
	RelationshipChild      Relationship = "child"
	RelationshipSibling    Relationship = "sibling"
	RelationshipParent     Relationship = "parent"
	RelationshipGrandchild Relationship = "grandchild"
	RelationshipFriend     Relationship = "friend"
	RelationshipOther      Relationship = "other"
)

// Relationships lists every valid relationship.
var Relationships = []Relationship{
	RelationshipSpouse, RelationshipChild, RelationshipSibling, RelationshipParent,
	RelationshipGrandchild, RelationshipFriend, RelationshipOther,
}

// FamilyMember links an account to an elder with per-link permissions. Each
// (account, elder) pair is linked at most once and each elder has at most
// one primary member.
type FamilyMember struct {
	ID              ulid.ULID    `json:"id"`
	AccountID       ulid.ULID    `json:"userId"`
	ElderID         ulid.ULID    `json:"elderId"`
	Relationship    Relationship `json:"relationship"`
	IsPrimary       bool         `json:"isPrimary"`
	CanViewMedical  bool         `json:"canViewMedical"`
	CanEditProfile  bool         `json:"canEditProfile"`
	CanBookServices bool         `json:"canBookServices"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	// Account is filled in by ListByElder.
	Account *auth.Summary `json:"user,omitempty"`
}

// FamilyMemberInput links an account to an elder.
type FamilyMemberInput struct {
	UserID          string       `json:"userId"`
	ElderID         string       `json:"elderId"`
	Relationship    Relationship `json:"relationship"`
	IsPrimary       bool         `json:"isPrimary"`
	CanViewMedical  bool         `json:"canViewMedical"`
	CanEditProfile  bool         `json:"canEditProfile"`
	CanBookServices bool         `json:"canBookServices"`
}

// FamilyMemberPatch updates a link's permissions. Nil fields are left untouched.
type FamilyMemberPatch struct {
	Relationship    *Relationship `json:"relationship"`
	IsPrimary       *bool         `json:"isPrimary"`
	CanViewMedical  *bool         `json:"canViewMedical"`
	CanEditProfile  *bool         `json:"canEditProfile"`
	CanBookServices *bool         `json:"canBookServices"`
}
