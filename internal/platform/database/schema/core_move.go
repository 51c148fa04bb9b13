// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreMoveTable represents the 'core.move' table
type CoreMoveTable struct {
	Table        string
	ID           string
	IndividualID string
	Position     string
	Date         string
	City         string
	Region       string
	Congregation string
	Note         string
}

// CoreMove is the schema definition for core.move
var CoreMove = CoreMoveTable{
	Table:        "core.move",
	ID:           "id",
	IndividualID: "individualid",
	Position:     "position",
	Date:         "date",
	City:         "city",
	Region:       "region",
	Congregation: "congregation",
	Note:         "note",
}

func (t CoreMoveTable) Columns() []string {
	return []string{t.ID, t.IndividualID, t.Position, t.Date, t.City, t.Region, t.Congregation, t.Note}
}
