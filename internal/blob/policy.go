// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package blob

import (
	"mime"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
)

// TypePolicy is an allowlist of content-type patterns such as "image/*".
type TypePolicy struct {
	patterns []glob.Glob
}

// NewTypePolicy compiles patterns. An empty list allows nothing.
func NewTypePolicy(patterns []string) (*TypePolicy, error) {
	p := &TypePolicy{patterns: make([]glob.Glob, 0, len(patterns))}
	for _, raw := range patterns {
		pattern := strings.ToLower(strings.TrimSpace(raw))
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, oops.Code("BLOB_CONFIG_INVALID").With("pattern", raw).Wrap(err)
		}
		p.patterns = append(p.patterns, g)
	}
	return p, nil
}

// Allows reports whether contentType matches a pattern. Media type
// parameters are ignored, so "text/plain; charset=utf-8" is text/plain.
func (p *TypePolicy) Allows(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, g := range p.patterns {
		if g.Match(mediaType) {
			return true
		}
	}
	return false
}
