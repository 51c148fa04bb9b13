// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree

import (
	"context"
	"slices"
	"sync"

	"github.com/taibuivan/stamtavla/internal/genealogy"
	"github.com/taibuivan/stamtavla/internal/platform/apperr"
)

// MemoryRepository is a [Repository] held in process memory. It has the same
// ordering and cascade behaviour as [PostgresRepository].
type MemoryRepository struct {
	mu            sync.RWMutex
	individuals   []genealogy.Individual
	relationships []genealogy.Relationship
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (repository *MemoryRepository) ListIndividuals(_ context.Context, limit, offset int) ([]genealogy.Individual, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	total := len(repository.individuals)
	start := min(max(offset, 0), total)
	end := min(start+max(limit, 0), total)
	return cloneIndividuals(repository.individuals[start:end]), total, nil
}

func (repository *MemoryRepository) AllIndividuals(_ context.Context) ([]genealogy.Individual, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return cloneIndividuals(repository.individuals), nil
}

func (repository *MemoryRepository) FindIndividual(_ context.Context, id string) (*genealogy.Individual, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	index := repository.individualIndex(id)
	if index < 0 {
		return nil, apperr.NotFound("Individual")
	}
	found := cloneIndividual(repository.individuals[index])
	return &found, nil
}

func (repository *MemoryRepository) CreateIndividual(_ context.Context, individual genealogy.Individual) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.individualIndex(individual.ID) >= 0 {
		return apperr.Conflict("Individual already exists")
	}
	repository.individuals = append(repository.individuals, cloneIndividual(individual))
	return nil
}

func (repository *MemoryRepository) UpdateIndividual(_ context.Context, individual genealogy.Individual) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.individualIndex(individual.ID)
	if index < 0 {
		return apperr.NotFound("Individual")
	}
	repository.individuals[index] = cloneIndividual(individual)
	return nil
}

func (repository *MemoryRepository) DeleteIndividual(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	index := repository.individualIndex(id)
	if index < 0 {
		return apperr.NotFound("Individual")
	}
	repository.individuals = slices.Delete(repository.individuals, index, index+1)
	repository.relationships = slices.DeleteFunc(repository.relationships, func(relationship genealogy.Relationship) bool {
		return relationship.Involves(id)
	})
	return nil
}

func (repository *MemoryRepository) ListRelationships(_ context.Context) ([]genealogy.Relationship, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return cloneRelationships(repository.relationships), nil
}

func (repository *MemoryRepository) FindRelationship(_ context.Context, id string) (*genealogy.Relationship, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, relationship := range repository.relationships {
		if relationship.ID == id {
			found := cloneRelationship(relationship)
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Relationship")
}

func (repository *MemoryRepository) CreateRelationship(_ context.Context, relationship genealogy.Relationship, check RelationshipCheck) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if check != nil {
		if err := check(cloneRelationships(repository.relationships)); err != nil {
			return err
		}
	}
	repository.relationships = append(repository.relationships, cloneRelationship(relationship))
	return nil
}

func (repository *MemoryRepository) DeleteRelationship(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	before := len(repository.relationships)
	repository.relationships = slices.DeleteFunc(repository.relationships, func(relationship genealogy.Relationship) bool {
		return relationship.ID == id
	})
	if len(repository.relationships) == before {
		return apperr.NotFound("Relationship")
	}
	return nil
}

func (repository *MemoryRepository) Replace(_ context.Context, individuals []genealogy.Individual, relationships []genealogy.Relationship) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.individuals = cloneIndividuals(individuals)
	repository.relationships = cloneRelationships(relationships)
	return nil
}

func (repository *MemoryRepository) Append(_ context.Context, individuals []genealogy.Individual, admit RelationshipFilter) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	relationships := admit(cloneRelationships(repository.relationships))
	repository.individuals = append(repository.individuals, cloneIndividuals(individuals)...)
	repository.relationships = append(repository.relationships, cloneRelationships(relationships)...)
	return nil
}

func (repository *MemoryRepository) individualIndex(id string) int {
	return slices.IndexFunc(repository.individuals, func(individual genealogy.Individual) bool {
		return individual.ID == id
	})
}

// # Copies

func cloneIndividual(individual genealogy.Individual) genealogy.Individual {
	individual.Moves = slices.Clone(individual.Moves)
	return individual
}

func cloneIndividuals(individuals []genealogy.Individual) []genealogy.Individual {
	result := make([]genealogy.Individual, len(individuals))
	for index, individual := range individuals {
		result[index] = cloneIndividual(individual)
	}
	return result
}

func cloneRelationship(relationship genealogy.Relationship) genealogy.Relationship {
	relationship.ParentIDs = slices.Clone(relationship.ParentIDs)
	return relationship
}

func cloneRelationships(relationships []genealogy.Relationship) []genealogy.Relationship {
	result := make([]genealogy.Relationship, len(relationships))
	for index, relationship := range relationships {
		result[index] = cloneRelationship(relationship)
	}
	return result
}

// MemoryExportCache is an [ExportCache] held in process memory, without expiry.
type MemoryExportCache struct {
	mu         sync.Mutex
	text       string
	cached     bool
	generation int64
}

func (cache *MemoryExportCache) Get(_ context.Context) (string, int64, bool, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return cache.text, cache.generation, cache.cached, nil
}

func (cache *MemoryExportCache) Set(_ context.Context, generation int64, text string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if generation != cache.generation {
		return nil
	}
	cache.text, cache.cached = text, true
	return nil
}

func (cache *MemoryExportCache) Invalidate(_ context.Context) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.text, cache.cached = "", false
	cache.generation++
	return nil
}
