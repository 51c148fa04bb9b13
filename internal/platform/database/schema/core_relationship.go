// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CoreRelationshipTable represents the 'core.relationship' table
type CoreRelationshipTable struct {
	Table               string
	ID                  string
	Position            string
	Kind                string
	Person1ID           string
	Person2ID           string
	WeddingDate         string
	WeddingCity         string
	WeddingRegion       string
	WeddingCongregation string
	ParentIDs           string
	ChildID             string
	CreatedAt           string
}

// CoreRelationship is the schema definition for core.relationship
var CoreRelationship = CoreRelationshipTable{
	Table:               "core.relationship",
	ID:                  "id",
	Position:            "position",
	Kind:                "kind",
	Person1ID:           "person1id",
	Person2ID:           "person2id",
	WeddingDate:         "weddingdate",
	WeddingCity:         "weddingcity",
	WeddingRegion:       "weddingregion",
	WeddingCongregation: "weddingcongregation",
	ParentIDs:           "parentids",
	ChildID:             "childid",
	CreatedAt:           "createdat",
}

// Columns lists the writable columns in scan order.
func (t CoreRelationshipTable) Columns() []string {
	return []string{
		t.ID, t.Kind, t.Person1ID, t.Person2ID,
		t.WeddingDate, t.WeddingCity, t.WeddingRegion, t.WeddingCongregation,
		t.ParentIDs, t.ChildID,
	}
}
