// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree

import (
	"context"

	"github.com/taibuivan/stamtavla/internal/genealogy"
)

// Repository persists individuals and relationships.
//
// Listing methods return records in insertion order. Lookups of missing
// records fail with an apperr NOT_FOUND error.
type Repository interface {
	ListIndividuals(context context.Context, limit, offset int) ([]genealogy.Individual, int, error)
	AllIndividuals(context context.Context) ([]genealogy.Individual, error)
	FindIndividual(context context.Context, id string) (*genealogy.Individual, error)
	CreateIndividual(context context.Context, individual genealogy.Individual) error
	UpdateIndividual(context context.Context, individual genealogy.Individual) error

	// DeleteIndividual also removes every relationship naming the individual.
	DeleteIndividual(context context.Context, id string) error

	ListRelationships(context context.Context) ([]genealogy.Relationship, error)
	FindRelationship(context context.Context, id string) (*genealogy.Relationship, error)

	// CreateRelationship stores relationship if check, run against the
	// stored relationships, passes. A nil check always passes.
	CreateRelationship(context context.Context, relationship genealogy.Relationship, check RelationshipCheck) error
	DeleteRelationship(context context.Context, id string) error

	// Replace atomically swaps the whole tree.
	Replace(context context.Context, individuals []genealogy.Individual, relationships []genealogy.Relationship) error

	// Append atomically adds individuals and the relationships admit selects
	// after the existing records.
	Append(context context.Context, individuals []genealogy.Individual, admit RelationshipFilter) error
}

// RelationshipCheck vets a new relationship against the stored ones.
//
// Repositories run checks and filters in the same critical section as the
// write they guard, so no other relationship write can interleave.
type RelationshipCheck func(existing []genealogy.Relationship) error

// RelationshipFilter returns the relationships that may join existing.
type RelationshipFilter func(existing []genealogy.Relationship) []genealogy.Relationship

// ExportCache holds the last rendered GEDCOM export.
//
// Every Invalidate advances a generation counter. A render started at one
// generation is only stored while the cache is still at that generation, so
// an export computed before a mutation never outlives it.
type ExportCache interface {
	// Get returns the cached text, or ok=false and the generation a
	// following Set must present.
	Get(context context.Context) (text string, generation int64, ok bool, err error)

	// Set stores text unless the cache moved past generation.
	Set(context context.Context, generation int64, text string) error
	Invalidate(context context.Context) error
}
