// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the Stamtavla database so
// SQL strings never hard-code identifiers.
package schema

// CoreIndividualTable represents the 'core.individual' table
type CoreIndividualTable struct {
	Table             string
	ID                string
	Position          string
	GivenName         string
	FamilyName        string
	BirthFamilyName   string
	Gender            string
	DateOfBirth       string
	BirthCity         string
	BirthRegion       string
	BirthCongregation string
	DateOfDeath       string
	DeathCity         string
	DeathRegion       string
	DeathCongregation string
	Story             string
	CreatedAt         string
	UpdatedAt         string
}

// CoreIndividual is the schema definition for core.individual
var CoreIndividual = CoreIndividualTable{
	Table:             "core.individual",
	ID:                "id",
	Position:          "position",
	GivenName:         "givenname",
	FamilyName:        "familyname",
	BirthFamilyName:   "birthfamilyname",
	Gender:            "gender",
	DateOfBirth:       "dateofbirth",
	BirthCity:         "birthcity",
	BirthRegion:       "birthregion",
	BirthCongregation: "birthcongregation",
	DateOfDeath:       "dateofdeath",
	DeathCity:         "deathcity",
	DeathRegion:       "deathregion",
	DeathCongregation: "deathcongregation",
	Story:             "story",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns lists the writable columns in scan order. Position and the
// timestamps are maintained by the database.
func (t CoreIndividualTable) Columns() []string {
	return []string{
		t.ID, t.GivenName, t.FamilyName, t.BirthFamilyName, t.Gender,
		t.DateOfBirth, t.BirthCity, t.BirthRegion, t.BirthCongregation,
		t.DateOfDeath, t.DeathCity, t.DeathRegion, t.DeathCongregation,
		t.Story,
	}
}
