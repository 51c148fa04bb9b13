// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stamtavla/internal/gedcom"
	"github.com/taibuivan/stamtavla/internal/genealogy"
)

func outputLines(text string) []string {
	return strings.Split(text, "\n")
}

/*
TestGenerate_Empty still produces a header and trailer.
*/
func TestGenerate_Empty(t *testing.T) {
	text := gedcom.Generate(nil, nil)

	assert.Equal(t, gedcomText(
		"0 HEAD",
		"1 SOUR STAMTAVLA",
		"1 GEDC",
		"2 VERS 5.5.1",
		"2 FORM LINEAGE-LINKED",
		"1 CHAR UTF-8",
		"0 TRLR",
	), text)
	assert.False(t, strings.HasSuffix(text, "\n"))
}

/*
TestGenerate_Source overrides the header source unless empty.
*/
func TestGenerate_Source(t *testing.T) {
	assert.Contains(t, outputLines(gedcom.Generate(nil, nil, gedcom.WithSource("MYTREE"))), "1 SOUR MYTREE")
	assert.Contains(t, outputLines(gedcom.Generate(nil, nil, gedcom.WithSource(""))), "1 SOUR STAMTAVLA")
}

/*
TestGenerate_Individual renders every individual field.
*/
func TestGenerate_Individual(t *testing.T) {
	anna := genealogy.Individual{
		ID:                "a",
		GivenName:         "Anna",
		FamilyName:        "Svensson",
		Gender:            genealogy.GenderFemale,
		DateOfBirth:       "1900-01-02",
		BirthCity:         "Stockholm",
		BirthRegion:       "Uppland",
		BirthCongregation: "Storkyrkan",
		Story:             "A\nB\nC",
		Moves: []genealogy.Move{
			{ID: "m1", Date: "1920", City: "Uppsala"},
			{ID: "m2", Region: "Skåne", Note: "Farm work"},
			{ID: "m3"},
		},
	}

	text := gedcom.Generate([]genealogy.Individual{anna}, nil)

	assert.Contains(t, text, gedcomText(
		"0 @I1@ INDI",
		"1 NAME Anna /Svensson/",
		"1 SEX F",
		"1 BIRT",
		"2 DATE 02 JAN 1900",
		"2 PLAC Stockholm, Uppland",
		"2 NOTE Församling: Storkyrkan",
		"1 RESI",
		"2 DATE 1920",
		"2 PLAC Uppsala",
		"1 RESI",
		"2 PLAC Skåne",
		"2 NOTE Farm work",
		"1 RESI",
		"1 NOTE A",
		"2 CONT B",
		"2 CONT C",
		"0 TRLR",
	))
	assert.NotContains(t, text, "1 DEAT")
	assert.NotContains(t, text, "FAM")
}

/*
TestGenerate_NameAndSex covers the fallbacks.
*/
func TestGenerate_NameAndSex(t *testing.T) {
	individuals := []genealogy.Individual{
		{ID: "1", GivenName: "Karl", BirthFamilyName: "Berg", Gender: genealogy.GenderMale},
		{ID: "2", FamilyName: "Lind"},
		{ID: "3", GivenName: "Eva", Gender: "other"},
	}

	lines := outputLines(gedcom.Generate(individuals, nil))
	assert.Contains(t, lines, "1 NAME Karl /Berg/")
	assert.Contains(t, lines, "1 SEX M")
	assert.Contains(t, lines, "1 NAME /Lind/")
	assert.Contains(t, lines, "1 NAME Eva //")

	sexLines := 0
	for _, entry := range lines {
		if entry == "1 SEX U" {
			sexLines++
		}
	}
	assert.Equal(t, 2, sexLines)
}

/*
TestGenerate_Wedding emits the spouse family with its marriage event.
*/
func TestGenerate_Wedding(t *testing.T) {
	individuals := []genealogy.Individual{
		{ID: "karl", GivenName: "Karl", Gender: genealogy.GenderMale},
		{ID: "eva", GivenName: "Eva", Gender: genealogy.GenderFemale},
	}
	wedding := genealogy.NewSpouse("r1", "karl", "eva")
	wedding.WeddingDate = "1905-06-12"
	wedding.WeddingCity = "Stockholm"
	wedding.WeddingCongregation = "Storkyrkan"

	text := gedcom.Generate(individuals, []genealogy.Relationship{wedding})

	assert.Contains(t, text, gedcomText(
		"0 @F1@ FAM",
		"1 HUSB @I1@",
		"1 WIFE @I2@",
		"1 MARR",
		"2 DATE 12 JUN 1905",
		"2 PLAC Stockholm",
		"2 NOTE Församling: Storkyrkan",
		"0 TRLR",
	))
	assert.Contains(t, text, "0 @I1@ INDI\n1 NAME Karl //\n1 SEX M\n1 FAMS @F1@")
	assert.Contains(t, text, "1 SEX F\n1 FAMS @F1@")
}

/*
TestGenerate_FamilyReuse groups children of the same parent set and marks
the spouse family as married even without wedding details.
*/
func TestGenerate_FamilyReuse(t *testing.T) {
	individuals := []genealogy.Individual{
		{ID: "mother", Gender: genealogy.GenderFemale},
		{ID: "father", Gender: genealogy.GenderMale},
		{ID: "lisa"},
		{ID: "olle"},
		{ID: "half"},
	}
	relationships := []genealogy.Relationship{
		genealogy.NewParentChild("r1", []string{"mother", "father"}, "lisa"),
		genealogy.NewSpouse("r2", "father", "mother"),
		genealogy.NewParentChild("r3", []string{"father", "mother"}, "olle"),
		genealogy.NewParentChild("r4", []string{"mother"}, "half"),
		genealogy.NewParentChild("r5", []string{"mother", "father"}, "lisa"),
	}

	text := gedcom.Generate(individuals, relationships)

	assert.Contains(t, text, gedcomText(
		"0 @F1@ FAM",
		"1 HUSB @I2@",
		"1 WIFE @I1@",
		"1 CHIL @I3@",
		"1 CHIL @I4@",
		"1 MARR",
		"0 @F2@ FAM",
		"1 WIFE @I1@",
		"1 CHIL @I5@",
		"0 TRLR",
	))
	assert.Equal(t, 2, strings.Count(text, " FAM\n"))
	assert.Contains(t, text, "0 @I1@ INDI\n1 NAME //\n1 SEX F\n1 FAMS @F1@\n1 FAMS @F2@")
	assert.Contains(t, text, "0 @I3@ INDI\n1 NAME //\n1 SEX U\n1 FAMC @F1@")
}

/*
TestGenerate_ParentsWithoutMarriage never emits MARR.
*/
func TestGenerate_ParentsWithoutMarriage(t *testing.T) {
	individuals := []genealogy.Individual{{ID: "p1"}, {ID: "p2"}, {ID: "c"}}
	relationships := []genealogy.Relationship{
		genealogy.NewParentChild("r1", []string{"p1", "p2"}, "c"),
	}

	text := gedcom.Generate(individuals, relationships)

	assert.Contains(t, text, "0 @F1@ FAM\n1 HUSB @I1@\n1 WIFE @I2@\n1 CHIL @I3@\n0 TRLR")
	assert.NotContains(t, text, "MARR")
}

/*
TestGenerate_DanglingReferences drops facts about unknown individuals.
*/
func TestGenerate_DanglingReferences(t *testing.T) {
	individuals := []genealogy.Individual{{ID: "known"}}
	relationships := []genealogy.Relationship{
		genealogy.NewSpouse("r1", "known", "ghost"),
		genealogy.NewParentChild("r2", []string{"ghost"}, "known"),
		genealogy.NewParentChild("r3", []string{"known", "ghost"}, "ghost"),
	}

	text := gedcom.Generate(individuals, relationships)
	assert.NotContains(t, text, "FAM")
}

/*
TestRoundTrip keeps individual fields and relationship structure.
*/
func TestRoundTrip(t *testing.T) {
	individuals := []genealogy.Individual{
		{
			ID: "karl", GivenName: "Karl Johan", FamilyName: "Berg", Gender: genealogy.GenderMale,
			DateOfBirth: "1870-05", BirthCity: "Uppsala", BirthRegion: "Uppland",
			DateOfDeath: "1940", DeathCongregation: "Domkyrkoförsamlingen",
			Story: "Smith.\nLater farmer.",
			Moves: []genealogy.Move{{ID: "m", Date: "1899-10-01", City: "Stockholm", Note: "Work\nand family"}},
		},
		{ID: "eva", GivenName: "Eva", FamilyName: "Berg", Gender: genealogy.GenderFemale},
		{ID: "lisa", GivenName: "Lisa", FamilyName: "Berg", Gender: genealogy.GenderUnknown},
	}
	wedding := genealogy.NewSpouse("w", "karl", "eva")
	wedding.WeddingDate = "1898"
	relationships := []genealogy.Relationship{
		wedding,
		genealogy.NewParentChild("pc", []string{"karl", "eva"}, "lisa"),
	}

	document := gedcom.Parse(gedcom.Generate(individuals, relationships), sequentialIDs())

	require.Len(t, document.Individuals, 3)
	for index, original := range individuals {
		parsed := document.Individuals[index]
		assert.Equal(t, original.GivenName, parsed.GivenName)
		assert.Equal(t, original.FamilyName, parsed.FamilyName)
		assert.Equal(t, original.Gender, parsed.Gender)
		assert.Equal(t, original.DateOfBirth, parsed.DateOfBirth)
		assert.Equal(t, original.BirthCity, parsed.BirthCity)
		assert.Equal(t, original.BirthRegion, parsed.BirthRegion)
		assert.Equal(t, original.DateOfDeath, parsed.DateOfDeath)
		assert.Equal(t, original.DeathCongregation, parsed.DeathCongregation)
		assert.Equal(t, original.Story, parsed.Story)
		require.Len(t, parsed.Moves, len(original.Moves))
		for moveIndex, move := range original.Moves {
			move.ID = parsed.Moves[moveIndex].ID
			assert.Equal(t, move, parsed.Moves[moveIndex])
		}
	}

	karl, eva, lisa := document.Individuals[0].ID, document.Individuals[1].ID, document.Individuals[2].ID
	require.Len(t, document.Relationships, 2)
	assert.Equal(t, genealogy.KindSpouse, document.Relationships[0].Kind)
	assert.Equal(t, karl, document.Relationships[0].Person1ID)
	assert.Equal(t, eva, document.Relationships[0].Person2ID)
	assert.Equal(t, "1898", document.Relationships[0].WeddingDate)
	assert.Equal(t, []string{karl, eva}, document.Relationships[1].ParentIDs)
	assert.Equal(t, lisa, document.Relationships[1].ChildID)
}

/*
TestGenerate_SelfSpouseFamily keeps a one-person marriage apart from real
parent sets, so every parent keeps their FAMS link.
*/
func TestGenerate_SelfSpouseFamily(t *testing.T) {
	individuals := []genealogy.Individual{
		{ID: "u"},
		{ID: "m", Gender: genealogy.GenderMale},
		{ID: "c"},
		{ID: "u2"},
	}
	relationships := []genealogy.Relationship{
		genealogy.NewParentChild("r1", []string{"u", "m"}, "c"),
		genealogy.NewParentChild("r2", []string{"u", "u2"}, "c"),
		genealogy.NewSpouse("r3", "u", "u"),
		genealogy.NewParentChild("r4", []string{"u", "m"}, "u2"),
	}

	text := gedcom.Generate(individuals, relationships)

	assert.Contains(t, text, "0 @F1@ FAM\n1 HUSB @I1@\n1 WIFE @I1@\n1 MARR\n")
	assert.Contains(t, text, "0 @F2@ FAM\n1 HUSB @I2@\n1 WIFE @I1@\n1 CHIL @I3@\n1 CHIL @I4@\n")
	assert.Contains(t, text, "0 @F3@ FAM\n1 HUSB @I1@\n1 WIFE @I4@\n1 CHIL @I3@\n")
	assert.Contains(t, text, "0 @I2@ INDI\n1 NAME //\n1 SEX M\n1 FAMS @F2@\n")
	assert.Equal(t, 1, strings.Count(text, "1 FAMS @F1@"))

	document := gedcom.Parse(text, sequentialIDs())
	u, m := document.Individuals[0].ID, document.Individuals[1].ID

	var spouses, fatheredByM int
	for _, relationship := range document.Relationships {
		switch {
		case relationship.IsSpouse():
			spouses++
			assert.Equal(t, u, relationship.Person1ID)
		case slicesContain(relationship.ParentIDs, m):
			fatheredByM++
			assert.ElementsMatch(t, []string{m, u}, relationship.ParentIDs)
		}
	}
	assert.Equal(t, 1, spouses)
	assert.Equal(t, 2, fatheredByM)
}

func slicesContain(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

/*
TestRoundTrip_Moves keeps every move and which of its fields are set.
*/
func TestRoundTrip_Moves(t *testing.T) {
	moves := []genealogy.Move{
		{ID: "full", Date: "1901-04-02", City: "Falun", Region: "Dalarna", Congregation: "Kristine", Note: "Mine work"},
		{ID: "place", City: "Mora", Region: "Dalarna"},
		{ID: "parish", Congregation: "Stora Kopparberg"},
	}
	individuals := []genealogy.Individual{{ID: "a", GivenName: "Erik", Moves: moves}}

	document := gedcom.Parse(gedcom.Generate(individuals, nil), sequentialIDs())

	require.Len(t, document.Individuals, 1)
	parsed := document.Individuals[0].Moves
	require.Len(t, parsed, len(moves))
	for index, move := range moves {
		move.ID = parsed[index].ID
		assert.Equal(t, move, parsed[index])
	}
}

/*
TestRoundTrip_ParentsWithoutMarriage brings back children but no spouse fact.
*/
func TestRoundTrip_ParentsWithoutMarriage(t *testing.T) {
	individuals := []genealogy.Individual{{ID: "p1"}, {ID: "p2"}, {ID: "c1"}, {ID: "c2"}}
	relationships := []genealogy.Relationship{
		genealogy.NewParentChild("r1", []string{"p1", "p2"}, "c1"),
		genealogy.NewParentChild("r2", []string{"p1", "p2"}, "c2"),
	}

	document := gedcom.Parse(gedcom.Generate(individuals, relationships), sequentialIDs())

	require.Len(t, document.Relationships, 2)
	parents := []string{document.Individuals[0].ID, document.Individuals[1].ID}
	for index, relationship := range document.Relationships {
		assert.False(t, relationship.IsSpouse())
		assert.Equal(t, parents, relationship.ParentIDs)
		assert.Equal(t, document.Individuals[2+index].ID, relationship.ChildID)
	}
}

/*
TestRoundTrip_NoteWhitespace keeps spaces at the edges of story lines.
*/
func TestRoundTrip_NoteWhitespace(t *testing.T) {
	story := "A \n  indented\ntrailing  "
	individuals := []genealogy.Individual{{
		ID:    "a",
		Story: story,
		Moves: []genealogy.Move{{ID: "m", City: "Lund", Note: "left "}},
	}}

	text := gedcom.Generate(individuals, nil)
	assert.Contains(t, text, "1 NOTE A \n2 CONT   indented\n")

	document := gedcom.Parse(text, sequentialIDs())
	require.Len(t, document.Individuals, 1)
	assert.Equal(t, story, document.Individuals[0].Story)
	assert.Equal(t, "left ", document.Individuals[0].Moves[0].Note)
}
