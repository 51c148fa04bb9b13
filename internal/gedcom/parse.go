// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom

import (
	"strings"

	"github.com/taibuivan/stamtavla/internal/genealogy"
	"github.com/taibuivan/stamtavla/pkg/uuid"
)

// Document is the result of parsing a GEDCOM file.
type Document struct {
	Individuals   []genealogy.Individual   `json:"individuals" yaml:"individuals"`
	Relationships []genealogy.Relationship `json:"relationships" yaml:"relationships"`
}

// ParseOption customises [Parse].
type ParseOption func(*parseConfig)

type parseConfig struct {
	newID func() string
}

// WithIDGenerator replaces the UUIDv7 generator used for fresh record IDs.
func WithIDGenerator(generator func() string) ParseOption {
	return func(config *parseConfig) {
		config.newID = generator
	}
}

// familyRecord is the raw content of a FAM record before relationship synthesis.
type familyRecord struct {
	husband  string
	wife     string
	children []string
	married  bool
	wedding  genealogy.Relationship
}

// parser holds the state of one Parse call.
type parser struct {
	config      parseConfig
	document    *Document
	idByPointer map[string]string
	families    []*familyRecord
}

/*
Parse converts GEDCOM text into individuals and relationships.

It never fails: blank lines, malformed lines, unknown tags and unsupported
date grammars are skipped or degraded. Every individual, move and
relationship receives a fresh ID; GEDCOM pointers are only used to resolve
references inside this call.
*/
func Parse(text string, opts ...ParseOption) *Document {
	config := parseConfig{newID: uuid.New}
	for _, opt := range opts {
		opt(&config)
	}

	state := &parser{
		config:      config,
		document:    &Document{},
		idByPointer: make(map[string]string),
	}

	lines := newCursor(tokenize(text))
	for {
		current, ok := lines.next()
		if !ok {
			break
		}
		if current.Level != 0 {
			continue
		}
		body := block(lines.children(0))

		switch recordKind(current) {
		case "INDI":
			state.parseIndividual(current, body)
		case "FAM":
			state.parseFamily(body)
		}
	}

	state.synthesizeRelationships()
	return state.document
}

// recordKind classifies a level-0 line by its record type, falling back to
// the pointer prefix when the type is missing or non-standard.
func recordKind(record line) string {
	switch record.Tag {
	case "INDI", "FAM":
		return record.Tag
	}
	switch {
	case strings.HasPrefix(record.Pointer, "@I"):
		return "INDI"
	case strings.HasPrefix(record.Pointer, "@F"):
		return "FAM"
	}
	return ""
}

// # Individuals

func (state *parser) parseIndividual(record line, body block) {
	individual := genealogy.Individual{
		ID:     state.config.newID(),
		Gender: genealogy.GenderUnknown,
	}
	if record.Pointer != "" {
		state.idByPointer[record.Pointer] = individual.ID
	}

	named := false
	for _, field := range body.direct(0) {
		switch field.Line.Tag {
		case "NAME":
			if !named {
				individual.GivenName, individual.FamilyName = parseName(field)
				named = true
			}
		case "SEX":
			individual.Gender = parseSex(field.Line.Value)
		case "BIRT":
			event := parseEvent(field)
			individual.DateOfBirth = event.date
			individual.BirthCity, individual.BirthRegion = event.city, event.region
			individual.BirthCongregation = event.congregation
		case "DEAT":
			event := parseEvent(field)
			individual.DateOfDeath = event.date
			individual.DeathCity, individual.DeathRegion = event.city, event.region
			individual.DeathCongregation = event.congregation
		case "RESI":
			event := parseEvent(field)
			individual.Moves = append(individual.Moves, genealogy.Move{
				ID:           state.config.newID(),
				Date:         event.date,
				City:         event.city,
				Region:       event.region,
				Congregation: event.congregation,
				Note:         event.note,
			})
		case "NOTE":
			individual.Story = appendLine(individual.Story, noteText(field))
		}
	}

	state.document.Individuals = append(state.document.Individuals, individual)
}

// parseName splits "Given /Family/ suffix". GIVN and SURN sub-lines fill in
// whichever part the slash form left empty.
func parseName(field node) (given, family string) {
	value := field.Line.Value
	before, after, hasSlash := strings.Cut(value, "/")
	given = strings.TrimSpace(before)
	if hasSlash {
		surname, _, _ := strings.Cut(after, "/")
		family = strings.TrimSpace(surname)
	}

	for _, part := range field.Children.direct(field.Line.Level) {
		switch part.Line.Tag {
		case "GIVN":
			if given == "" {
				given = strings.TrimSpace(part.Line.Value)
			}
		case "SURN":
			if family == "" {
				family = strings.TrimSpace(part.Line.Value)
			}
		}
	}
	return given, family
}

func parseSex(value string) genealogy.Gender {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "M":
		return genealogy.GenderMale
	case "F":
		return genealogy.GenderFemale
	}
	return genealogy.GenderUnknown
}

// event collects the fields of a BIRT, DEAT, RESI or MARR sub-block.
type event struct {
	date         string
	city         string
	region       string
	congregation string
	note         string
}

// parseEvent reads the direct children of an event line. A NOTE carrying the
// congregation prefix sets the congregation; any other NOTE becomes free
// text, which only RESI keeps.
func parseEvent(field node) event {
	var result event
	for _, part := range field.Children.direct(field.Line.Level) {
		switch part.Line.Tag {
		case "DATE":
			result.date = ParsePartialDate(part.Line.Value)
		case "PLAC":
			result.city, result.region = SplitPlace(part.Line.Value)
		case "NOTE":
			text := noteText(part)
			if congregation, ok := cutCongregation(text); ok {
				result.congregation = congregation
				continue
			}
			result.note = appendLine(result.note, text)
		}
	}
	return result
}

// noteText joins a NOTE value with its CONT (new line) and CONC (same line)
// continuations.
func noteText(field node) string {
	var builder strings.Builder
	builder.WriteString(field.Line.Value)
	for _, part := range field.Children.direct(field.Line.Level) {
		switch part.Line.Tag {
		case "CONT":
			builder.WriteString("\n")
			builder.WriteString(part.Line.Value)
		case "CONC":
			builder.WriteString(part.Line.Value)
		}
	}
	return builder.String()
}

// cutCongregation strips the congregation prefix, matched case-insensitively.
func cutCongregation(text string) (string, bool) {
	prefix := []rune(congregationPrefix)
	runes := []rune(strings.TrimSpace(text))
	if len(runes) < len(prefix) || !strings.EqualFold(string(runes[:len(prefix)]), congregationPrefix) {
		return "", false
	}
	return strings.TrimSpace(string(runes[len(prefix):])), true
}

func appendLine(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + "\n" + addition
}

// # Families

func (state *parser) parseFamily(body block) {
	family := &familyRecord{}
	for _, field := range body.direct(0) {
		value := strings.TrimSpace(field.Line.Value)
		switch field.Line.Tag {
		case "HUSB":
			family.husband = value
		case "WIFE":
			family.wife = value
		case "CHIL":
			family.children = append(family.children, value)
		case "MARR":
			family.married = true
			wedding := parseEvent(field)
			family.wedding.WeddingDate = wedding.date
			family.wedding.WeddingCity = wedding.city
			family.wedding.WeddingRegion = wedding.region
			family.wedding.WeddingCongregation = wedding.congregation
		}
	}
	state.families = append(state.families, family)
}

// synthesizeRelationships converts every family record, in file order, into
// at most one spouse fact followed by one parent-child fact per child.
func (state *parser) synthesizeRelationships() {
	for _, family := range state.families {
		husbandID, hasHusband := state.idByPointer[family.husband]
		wifeID, hasWife := state.idByPointer[family.wife]

		if hasHusband && hasWife && family.married {
			spouse := family.wedding
			spouse.ID = state.config.newID()
			spouse.Kind = genealogy.KindSpouse
			spouse.Person1ID = husbandID
			spouse.Person2ID = wifeID
			state.document.Relationships = append(state.document.Relationships, spouse)
		}

		var parentIDs []string
		if hasHusband {
			parentIDs = append(parentIDs, husbandID)
		}
		if hasWife && !(hasHusband && wifeID == husbandID) {
			parentIDs = append(parentIDs, wifeID)
		}
		if len(parentIDs) == 0 {
			continue
		}

		for _, childPointer := range family.children {
			childID, ok := state.idByPointer[childPointer]
			if !ok {
				continue
			}
			state.document.Relationships = append(state.document.Relationships,
				genealogy.NewParentChild(state.config.newID(), append([]string(nil), parentIDs...), childID))
		}
	}
}
