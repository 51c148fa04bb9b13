// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package genealogy

// RelationshipKind discriminates the [Relationship] union.
type RelationshipKind string

const (
	// KindSpouse links two people by marriage. Person order carries no meaning.
	KindSpouse RelationshipKind = "spouse"

	// KindParentChild links one or two parents to a child.
	KindParentChild RelationshipKind = "parent-child"
)

// IsValid reports whether k is a recognised [RelationshipKind].
func (k RelationshipKind) IsValid() bool {
	return k == KindSpouse || k == KindParentChild
}

// Relationship is a tagged union over spouse and parent-child facts.
//
// Only the fields of the active Kind are meaningful:
//
//   - KindSpouse: Person1ID, Person2ID and the Wedding* fields.
//   - KindParentChild: ParentIDs (one or two entries) and ChildID.
type Relationship struct {
	ID   string           `json:"id" yaml:"id"`
	Kind RelationshipKind `json:"type" yaml:"type"`

	Person1ID           string `json:"person1Id,omitempty" yaml:"person1Id,omitempty"`
	Person2ID           string `json:"person2Id,omitempty" yaml:"person2Id,omitempty"`
	WeddingDate         string `json:"weddingDate,omitempty" yaml:"weddingDate,omitempty"`
	WeddingCity         string `json:"weddingCity,omitempty" yaml:"weddingCity,omitempty"`
	WeddingRegion       string `json:"weddingRegion,omitempty" yaml:"weddingRegion,omitempty"`
	WeddingCongregation string `json:"weddingCongregation,omitempty" yaml:"weddingCongregation,omitempty"`

	ParentIDs []string `json:"parentIds,omitempty" yaml:"parentIds,omitempty"`
	ChildID   string   `json:"childId,omitempty" yaml:"childId,omitempty"`
}

// NewSpouse builds a spouse relationship without wedding details.
func NewSpouse(id, person1ID, person2ID string) Relationship {
	return Relationship{ID: id, Kind: KindSpouse, Person1ID: person1ID, Person2ID: person2ID}
}

// NewParentChild builds a parent-child relationship.
func NewParentChild(id string, parentIDs []string, childID string) Relationship {
	return Relationship{ID: id, Kind: KindParentChild, ParentIDs: parentIDs, ChildID: childID}
}

// IsSpouse reports whether r is a spouse relationship.
func (r Relationship) IsSpouse() bool { return r.Kind == KindSpouse }

// IsParentChild reports whether r is a parent-child relationship.
func (r Relationship) IsParentChild() bool { return r.Kind == KindParentChild }

// HasWedding reports whether any wedding detail is recorded.
func (r Relationship) HasWedding() bool {
	return r.WeddingDate != "" || r.WeddingCity != "" || r.WeddingRegion != "" || r.WeddingCongregation != ""
}

// Involves reports whether the individual takes part in r in any role.
func (r Relationship) Involves(individualID string) bool {
	if r.IsSpouse() {
		return r.Person1ID == individualID || r.Person2ID == individualID
	}
	if r.ChildID == individualID {
		return true
	}
	for _, parentID := range r.ParentIDs {
		if parentID == individualID {
			return true
		}
	}
	return false
}
