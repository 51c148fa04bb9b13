// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom

import (
	"strconv"
	"strings"

	"github.com/taibuivan/stamtavla/internal/genealogy"
)

const (
	// congregationPrefix marks a NOTE that carries a parish. GEDCOM has no tag
	// for it; the prefix is matched case-insensitively on import and always
	// written with this casing followed by a single space.
	congregationPrefix = "Församling:"

	// DefaultSource is the SOUR value written into the header.
	DefaultSource = "STAMTAVLA"
)

// GenerateOption customises [Generate].
type GenerateOption func(*generateConfig)

type generateConfig struct {
	source string
}

// WithSource sets the "1 SOUR" header value.
func WithSource(source string) GenerateOption {
	return func(config *generateConfig) {
		if source != "" {
			config.source = source
		}
	}
}

/*
Generate renders individuals and relationships as GEDCOM 5.5.1 text.

Individuals get pointers @I1@, @I2@, ... in input order. Relationships are
grouped into FAM records by a per-call [familyBuilder]; see its methods for
the grouping rules. References to individuals missing from the input are
dropped. The output starts with "0 HEAD" and ends with "0 TRLR" without a
trailing newline.
*/
func Generate(individuals []genealogy.Individual, relationships []genealogy.Relationship, opts ...GenerateOption) string {
	config := generateConfig{source: DefaultSource}
	for _, opt := range opts {
		opt(&config)
	}

	builder := newFamilyBuilder(individuals)
	for _, relationship := range relationships {
		if relationship.IsSpouse() {
			builder.addSpouse(relationship)
		}
	}
	for _, relationship := range relationships {
		if relationship.IsParentChild() {
			builder.addParentChild(relationship)
		}
	}
	spouseOf, childOf := builder.index()

	out := &emitter{}
	out.line(0, "HEAD", "")
	out.line(1, "SOUR", config.source)
	out.line(1, "GEDC", "")
	out.line(2, "VERS", "5.5.1")
	out.line(2, "FORM", "LINEAGE-LINKED")
	out.line(1, "CHAR", "UTF-8")

	for position, individual := range individuals {
		pointer := individualPointer(position)
		out.record(pointer, "INDI")
		out.line(1, "NAME", formatName(individual))
		out.line(1, "SEX", formatSex(individual.Gender))
		out.event(1, "BIRT", individual.DateOfBirth, individual.BirthCity, individual.BirthRegion, individual.BirthCongregation)
		out.event(1, "DEAT", individual.DateOfDeath, individual.DeathCity, individual.DeathRegion, individual.DeathCongregation)
		for _, move := range individual.Moves {
			out.line(1, "RESI", "")
			out.eventFields(2, move.Date, move.City, move.Region, move.Congregation)
			if move.Note != "" {
				out.note(2, move.Note)
			}
		}
		if individual.Story != "" {
			out.note(1, individual.Story)
		}
		for _, family := range spouseOf[pointer] {
			out.line(1, "FAMS", family)
		}
		for _, family := range childOf[pointer] {
			out.line(1, "FAMC", family)
		}
	}

	for _, family := range builder.families {
		out.record(family.pointer, "FAM")
		if family.husband != "" {
			out.line(1, "HUSB", family.husband)
		}
		if family.wife != "" {
			out.line(1, "WIFE", family.wife)
		}
		for _, child := range family.children {
			out.line(1, "CHIL", child)
		}
		// The parser only reads a spouse fact from a FAM with MARR, so every
		// spouse family gets one even without wedding details.
		if family.wedding != nil {
			out.line(1, "MARR", "")
			out.eventFields(2, family.wedding.WeddingDate, family.wedding.WeddingCity,
				family.wedding.WeddingRegion, family.wedding.WeddingCongregation)
		}
	}

	out.line(0, "TRLR", "")
	return out.String()
}

func individualPointer(position int) string {
	return "@I" + strconv.Itoa(position+1) + "@"
}

func formatName(individual genealogy.Individual) string {
	family := individual.FamilyName
	if family == "" {
		family = individual.BirthFamilyName
	}
	surname := "/" + strings.TrimSpace(family) + "/"
	if given := strings.TrimSpace(individual.GivenName); given != "" {
		return given + " " + surname
	}
	return surname
}

func formatSex(gender genealogy.Gender) string {
	switch gender {
	case genealogy.GenderMale:
		return "M"
	case genealogy.GenderFemale:
		return "F"
	}
	return "U"
}

// # Family Grouping

// family is a transient FAM record. Pointers are GEDCOM-space (@I1@).
type family struct {
	pointer  string
	husband  string
	wife     string
	children []string
	wedding  *genealogy.Relationship
}

// parents returns the distinct non-empty spouse slots. A family whose
// husband and wife are the same pointer has a single parent.
func (f *family) parents() []string {
	var result []string
	if f.husband != "" {
		result = append(result, f.husband)
	}
	if f.wife != "" && f.wife != f.husband {
		result = append(result, f.wife)
	}
	return result
}

func (f *family) addChild(child string) {
	for _, existing := range f.children {
		if existing == child {
			return
		}
	}
	f.children = append(f.children, child)
}

// familyBuilder is the accumulator for one Generate call. It owns the
// pointer map and the family counter.
type familyBuilder struct {
	pointers map[string]string
	genders  map[string]genealogy.Gender
	families []*family
}

func newFamilyBuilder(individuals []genealogy.Individual) *familyBuilder {
	builder := &familyBuilder{
		pointers: make(map[string]string, len(individuals)),
		genders:  make(map[string]genealogy.Gender, len(individuals)),
	}
	for position, individual := range individuals {
		pointer := individualPointer(position)
		builder.pointers[individual.ID] = pointer
		builder.genders[pointer] = genealogy.ParseGender(string(individual.Gender))
	}
	return builder
}

func (builder *familyBuilder) open() *family {
	created := &family{pointer: "@F" + strconv.Itoa(len(builder.families)+1) + "@"}
	builder.families = append(builder.families, created)
	return created
}

// addSpouse opens one family per spouse fact. Slots are positional:
// person1 is the husband and person2 the wife, regardless of gender.
func (builder *familyBuilder) addSpouse(relationship genealogy.Relationship) {
	husband, okHusband := builder.pointers[relationship.Person1ID]
	wife, okWife := builder.pointers[relationship.Person2ID]
	if !okHusband || !okWife {
		return
	}
	created := builder.open()
	created.husband = husband
	created.wife = wife
	wedding := relationship
	created.wedding = &wedding
}

// addParentChild appends the child to the first family whose parent set
// equals the relationship's, or opens a new family for that set. Families
// where one person fills both slots never take children.
func (builder *familyBuilder) addParentChild(relationship genealogy.Relationship) {
	child, ok := builder.pointers[relationship.ChildID]
	if !ok {
		return
	}

	var parents []string
	for _, parentID := range relationship.ParentIDs {
		pointer, known := builder.pointers[parentID]
		if known && !contains(parents, pointer) {
			parents = append(parents, pointer)
		}
	}
	if len(parents) == 0 || len(parents) > 2 {
		return
	}

	for _, existing := range builder.families {
		if existing.husband == existing.wife {
			continue
		}
		if sameSet(existing.parents(), parents) {
			existing.addChild(child)
			return
		}
	}

	created := builder.open()
	builder.assignSlots(created, parents)
	created.addChild(child)
}

/*
assignSlots places parents into husband and wife by gender.

Males take the husband slot and females the wife slot. Parents of unknown
gender, and a second parent of the same gender, take the first free slot
with the husband slot preferred. For two unknown parents the result follows
relationship order; it says nothing about real-world roles.
*/
func (builder *familyBuilder) assignSlots(target *family, parents []string) {
	var deferred []string
	for _, parent := range parents {
		switch builder.genders[parent] {
		case genealogy.GenderMale:
			if target.husband == "" {
				target.husband = parent
				continue
			}
		case genealogy.GenderFemale:
			if target.wife == "" {
				target.wife = parent
				continue
			}
		}
		deferred = append(deferred, parent)
	}
	for _, parent := range deferred {
		if target.husband == "" {
			target.husband = parent
		} else {
			target.wife = parent
		}
	}
}

// index builds the FAMS and FAMC back-references per individual pointer.
func (builder *familyBuilder) index() (spouseOf, childOf map[string][]string) {
	spouseOf = make(map[string][]string)
	childOf = make(map[string][]string)
	for _, f := range builder.families {
		for _, parent := range f.parents() {
			if !contains(spouseOf[parent], f.pointer) {
				spouseOf[parent] = append(spouseOf[parent], f.pointer)
			}
		}
		for _, child := range f.children {
			childOf[child] = append(childOf[child], f.pointer)
		}
	}
	return spouseOf, childOf
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// sameSet compares two sets of distinct pointers, ignoring order.
func sameSet(left, right []string) bool {
	if len(left) != len(right) {
		return false
	}
	for _, value := range left {
		if !contains(right, value) {
			return false
		}
	}
	for _, value := range right {
		if !contains(left, value) {
			return false
		}
	}
	return true
}

// # Line Emission

// emitter accumulates GEDCOM lines.
type emitter struct {
	lines []string
}

func (out *emitter) line(level int, tag, value string) {
	text := strconv.Itoa(level) + " " + tag
	if value != "" {
		text += " " + value
	}
	out.lines = append(out.lines, text)
}

func (out *emitter) record(pointer, kind string) {
	out.lines = append(out.lines, "0 "+pointer+" "+kind)
}

// event writes an event line and its fields, or nothing when all are empty.
func (out *emitter) event(level int, tag, date, city, region, congregation string) {
	if date == "" && city == "" && region == "" && congregation == "" {
		return
	}
	out.line(level, tag, "")
	out.eventFields(level+1, date, city, region, congregation)
}

func (out *emitter) eventFields(level int, date, city, region, congregation string) {
	if formatted := FormatPartialDate(date); formatted != "" {
		out.line(level, "DATE", formatted)
	}
	if place := JoinPlace(city, region); place != "" {
		out.line(level, "PLAC", place)
	}
	if congregation = strings.TrimSpace(congregation); congregation != "" {
		out.line(level, "NOTE", congregationPrefix+" "+congregation)
	}
}

// note writes multi-line text as NOTE plus one CONT line per extra line.
func (out *emitter) note(level int, text string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out.line(level, "NOTE", lines[0])
	for _, extra := range lines[1:] {
		out.line(level+1, "CONT", extra)
	}
}

func (out *emitter) String() string {
	return strings.Join(out.lines, "\n")
}
