// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genealogy defines the core domain entities of the Stamtavla family tree.

The model deliberately has no "family" concept. Relationships are stored as
independent facts:

  - Spouse: two people joined by a (possibly undated) marriage.
  - ParentChild: one or two parents and a single child.

Conversion to and from family-grouped formats (GEDCOM) lives in package gedcom.
This package is the source of truth for the shapes exchanged by the codec, the
persistence layer and the HTTP API.
*/
package genealogy

import "regexp"

// # Domain Enums

// Gender is the recorded sex of an individual.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// IsValid reports whether g is a recognised [Gender] value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// ParseGender maps free text to a [Gender]. Unrecognised input yields [GenderUnknown].
func ParseGender(value string) Gender {
	gender := Gender(value)
	if gender.IsValid() {
		return gender
	}
	return GenderUnknown
}

// # Entities

// Move is a change of residence. Moves keep their insertion order.
type Move struct {
	ID           string `json:"id" yaml:"id"`
	Date         string `json:"date,omitempty" yaml:"date,omitempty"`
	City         string `json:"city,omitempty" yaml:"city,omitempty"`
	Region       string `json:"region,omitempty" yaml:"region,omitempty"`
	Congregation string `json:"congregation,omitempty" yaml:"congregation,omitempty"`
	Note         string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Individual is a single person in the tree.
//
// Dates are partial ISO strings (see [IsPartialDate]); every optional text
// field uses the empty string for "absent".
type Individual struct {
	ID              string `json:"id" yaml:"id"`
	GivenName       string `json:"givenName,omitempty" yaml:"givenName,omitempty"`
	FamilyName      string `json:"familyName,omitempty" yaml:"familyName,omitempty"`
	BirthFamilyName string `json:"birthFamilyName,omitempty" yaml:"birthFamilyName,omitempty"`
	Gender          Gender `json:"gender" yaml:"gender"`

	DateOfBirth       string `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	BirthCity         string `json:"birthCity,omitempty" yaml:"birthCity,omitempty"`
	BirthRegion       string `json:"birthRegion,omitempty" yaml:"birthRegion,omitempty"`
	BirthCongregation string `json:"birthCongregation,omitempty" yaml:"birthCongregation,omitempty"`

	DateOfDeath       string `json:"dateOfDeath,omitempty" yaml:"dateOfDeath,omitempty"`
	DeathCity         string `json:"deathCity,omitempty" yaml:"deathCity,omitempty"`
	DeathRegion       string `json:"deathRegion,omitempty" yaml:"deathRegion,omitempty"`
	DeathCongregation string `json:"deathCongregation,omitempty" yaml:"deathCongregation,omitempty"`

	Story string `json:"story,omitempty" yaml:"story,omitempty"`
	Moves []Move `json:"moves,omitempty" yaml:"moves,omitempty"`
}

// Normalize forces Gender into the recognised set.
func (individual *Individual) Normalize() {
	individual.Gender = ParseGender(string(individual.Gender))
}

// DisplayName returns "given family", falling back to the birth family name.
func (individual Individual) DisplayName() string {
	family := individual.FamilyName
	if family == "" {
		family = individual.BirthFamilyName
	}
	switch {
	case individual.GivenName == "":
		return family
	case family == "":
		return individual.GivenName
	}
	return individual.GivenName + " " + family
}

// # Partial Dates

var partialDateRegex = regexp.MustCompile(`^\d{4}(-(0[1-9]|1[0-2])(-(0[1-9]|[12]\d|3[01]))?)?$`)

// IsPartialDate reports whether value is YYYY, YYYY-MM or YYYY-MM-DD.
func IsPartialDate(value string) bool {
	return partialDateRegex.MatchString(value)
}
