// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

// Package catalog loads the service catalog, a YAML file listing the care
// services offered, and seeds it into the offerings table.
package catalog

import (
	_ "embed"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/carehaven/carehaven/internal/care"
)

//go:embed default.yaml
var defaultCatalog []byte

// minVersion is the oldest catalog format this build reads.
var minVersion = semver.MustParse("1.0.0")

// Catalog is the root of a catalog file.
type Catalog struct {
	Version  string    `yaml:"version" json:"version" jsonschema:"required,description=Catalog format version (semver)"`
	Services []Service `yaml:"services" json:"services" jsonschema:"required,minItems=1"`
}

// Service describes one catalog entry. Prices are in minor currency units.
type Service struct {
	Name              string `yaml:"name" json:"name" jsonschema:"required,minLength=1,maxLength=100"`
	Description       string `yaml:"description" json:"description" jsonschema:"required,minLength=1,maxLength=500"`
	Category          string `yaml:"category" json:"category" jsonschema:"required,enum=personal_care,enum=medical,enum=companionship,enum=housekeeping,enum=transportation,enum=other"`
	DurationMinutes   int    `yaml:"durationMinutes" json:"durationMinutes" jsonschema:"required,minimum=15"`
	Price             int64  `yaml:"price" json:"price" jsonschema:"required,minimum=0"`
	Currency          string `yaml:"currency,omitempty" json:"currency,omitempty" jsonschema:"pattern=^[A-Z]{3}$"`
	Image             string `yaml:"image,omitempty" json:"image,omitempty"`
	RequiresCaregiver *bool  `yaml:"requiresCaregiver,omitempty" json:"requiresCaregiver,omitempty"`
	MaxParticipants   int    `yaml:"maxParticipants,omitempty" json:"maxParticipants,omitempty" jsonschema:"minimum=1"`
}

// Parse validates data against the catalog schema and decodes it.
func Parse(data []byte) (*Catalog, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, oops.Code("CATALOG_INVALID").With("operation", "decode catalog").Wrap(err)
	}

	v, err := semver.StrictNewVersion(strings.TrimSpace(c.Version))
	if err != nil {
		return nil, oops.Code("CATALOG_INVALID").With("version", c.Version).Wrap(err)
	}
	if v.LessThan(minVersion) {
		return nil, oops.Code("CATALOG_INVALID").
			With("version", c.Version).
			Errorf("catalog version %s is older than %s", v, minVersion)
	}
	return &c, nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, oops.Code("CATALOG_LOAD_FAILED").With("path", path).Wrap(err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Offering converts s to a care.Offering, applying defaults for omitted
// fields.
func (s Service) Offering() *care.Offering {
	o := &care.Offering{
		Name:              strings.TrimSpace(s.Name),
		Description:       strings.TrimSpace(s.Description),
		Category:          care.Category(s.Category),
		DurationMinutes:   s.DurationMinutes,
		Price:             s.Price,
		Currency:          s.Currency,
		RequiresCaregiver: true,
		MaxParticipants:   s.MaxParticipants,
	}
	if o.Currency == "" {
		o.Currency = care.DefaultCurrency
	}
	if o.MaxParticipants == 0 {
		o.MaxParticipants = 1
	}
	if s.RequiresCaregiver != nil {
		o.RequiresCaregiver = *s.RequiresCaregiver
	}
	if s.Image != "" {
		image := s.Image
		o.Image = &image
	}
	return o
}
