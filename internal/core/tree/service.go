// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree

import (
	"context"
	"log/slog"

	"github.com/taibuivan/stamtavla/internal/gedcom"
	"github.com/taibuivan/stamtavla/internal/genealogy"
	"github.com/taibuivan/stamtavla/internal/platform/apperr"
	"github.com/taibuivan/stamtavla/internal/platform/metrics"
	"github.com/taibuivan/stamtavla/internal/platform/validate"
	"github.com/taibuivan/stamtavla/pkg/pagination"
	"github.com/taibuivan/stamtavla/pkg/uuid"
)

// # Fields

const (
	FieldGender      = "gender"
	FieldGivenName   = "givenName"
	FieldFamilyName  = "familyName"
	FieldBirthFamily = "birthFamilyName"
	FieldDateOfBirth = "dateOfBirth"
	FieldDateOfDeath = "dateOfDeath"
	FieldStory       = "story"
	FieldMoves       = "moves"
	FieldType        = "type"
	FieldPerson1ID   = "person1Id"
	FieldPerson2ID   = "person2Id"
	FieldWeddingDate = "weddingDate"
	FieldParentIDs   = "parentIds"
	FieldChildID     = "childId"
)

const (
	maxNameLength     = 200
	maxPlaceLength    = 200
	maxStoryLength    = 20000
	maxParentsPerLink = 2
)

// CodeCycle is the error code of relationships rejected by cycle prevention.
const CodeCycle = "CYCLE"

type Service struct {
	repo     Repository
	cache    ExportCache
	logger   *slog.Logger
	recorder *metrics.Recorder
	source   string
	newID    func() string
}

// NewService wires the tree service. source is the GEDCOM SOUR value of
// exports; recorder may be nil.
func NewService(repo Repository, cache ExportCache, logger *slog.Logger, recorder *metrics.Recorder, source string) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		logger:   logger,
		recorder: recorder,
		source:   source,
		newID:    uuid.New,
	}
}

// # Individuals

func (service *Service) ListIndividuals(context context.Context, params pagination.Params) ([]genealogy.Individual, pagination.Meta, error) {
	individuals, total, err := service.repo.ListIndividuals(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return individuals, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (service *Service) GetIndividual(context context.Context, id string) (*genealogy.Individual, error) {
	return service.repo.FindIndividual(context, id)
}

func (service *Service) CreateIndividual(context context.Context, individual *genealogy.Individual) error {
	individual.ID = service.newID()
	service.prepareIndividual(individual)

	if err := validateIndividual(individual); err != nil {
		return err
	}
	if err := service.repo.CreateIndividual(context, *individual); err != nil {
		return err
	}

	service.invalidateExport(context)
	service.logger.Info("individual_created", slog.String("individual_id", individual.ID))
	return nil
}

func (service *Service) UpdateIndividual(context context.Context, id string, individual *genealogy.Individual) error {
	individual.ID = id
	service.prepareIndividual(individual)

	if err := validateIndividual(individual); err != nil {
		return err
	}
	if err := service.repo.UpdateIndividual(context, *individual); err != nil {
		return err
	}

	service.invalidateExport(context)
	service.logger.Info("individual_updated", slog.String("individual_id", id))
	return nil
}

func (service *Service) DeleteIndividual(context context.Context, id string) error {
	if err := service.repo.DeleteIndividual(context, id); err != nil {
		return err
	}

	service.invalidateExport(context)
	service.logger.Warn("individual_deleted", slog.String("individual_id", id))
	return nil
}

// prepareIndividual defaults the gender and gives new moves an ID.
func (service *Service) prepareIndividual(individual *genealogy.Individual) {
	if individual.Gender == "" {
		individual.Gender = genealogy.GenderUnknown
	}
	for index := range individual.Moves {
		if individual.Moves[index].ID == "" {
			individual.Moves[index].ID = service.newID()
		}
	}
}

func validateIndividual(individual *genealogy.Individual) error {
	validator := &validate.Validator{}
	validator.
		OneOf(FieldGender, string(individual.Gender), string(genealogy.GenderMale), string(genealogy.GenderFemale), string(genealogy.GenderUnknown)).
		MaxLen(FieldGivenName, individual.GivenName, maxNameLength).
		MaxLen(FieldFamilyName, individual.FamilyName, maxNameLength).
		MaxLen(FieldBirthFamily, individual.BirthFamilyName, maxNameLength).
		PartialDate(FieldDateOfBirth, individual.DateOfBirth).
		PartialDate(FieldDateOfDeath, individual.DateOfDeath).
		MaxLen("birthCity", individual.BirthCity, maxPlaceLength).
		MaxLen("deathCity", individual.DeathCity, maxPlaceLength).
		MaxLen(FieldStory, individual.Story, maxStoryLength)

	for _, move := range individual.Moves {
		validator.
			PartialDate(FieldMoves+".date", move.Date).
			MaxLen(FieldMoves+".city", move.City, maxPlaceLength)
	}
	return validator.Err()
}

// # Relationships

func (service *Service) ListRelationships(context context.Context) ([]genealogy.Relationship, error) {
	return service.repo.ListRelationships(context)
}

func (service *Service) GetRelationship(context context.Context, id string) (*genealogy.Relationship, error) {
	return service.repo.FindRelationship(context, id)
}

/*
CreateRelationship validates and stores a new relationship.

Every referenced individual must exist. A parent-child relationship is
rejected with a CYCLE error when one of its parents is already a descendant
of the child.
*/
func (service *Service) CreateRelationship(context context.Context, relationship *genealogy.Relationship) error {
	relationship.ID = service.newID()

	validator := &validate.Validator{}
	validator.OneOf(FieldType, string(relationship.Kind), string(genealogy.KindSpouse), string(genealogy.KindParentChild))
	if err := validator.Err(); err != nil {
		return err
	}

	if relationship.IsSpouse() {
		relationship.ParentIDs, relationship.ChildID = nil, ""
		validator.
			Required(FieldPerson1ID, relationship.Person1ID).
			Required(FieldPerson2ID, relationship.Person2ID).
			Custom(FieldPerson2ID, relationship.Person1ID != "" && relationship.Person1ID == relationship.Person2ID, "A person cannot marry themselves").
			PartialDate(FieldWeddingDate, relationship.WeddingDate).
			MaxLen("weddingCity", relationship.WeddingCity, maxPlaceLength)
	} else {
		relationship.Person1ID, relationship.Person2ID = "", ""
		relationship.WeddingDate, relationship.WeddingCity = "", ""
		relationship.WeddingRegion, relationship.WeddingCongregation = "", ""
		relationship.ParentIDs = uniqueIDs(relationship.ParentIDs)
		validator.
			Required(FieldChildID, relationship.ChildID).
			Custom(FieldParentIDs, len(relationship.ParentIDs) == 0, "At least one parent is required").
			Custom(FieldParentIDs, len(relationship.ParentIDs) > maxParentsPerLink, "At most two parents").
			Custom(FieldParentIDs, containsID(relationship.ParentIDs, relationship.ChildID), "A child cannot be its own parent")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.requireIndividuals(context, relationship); err != nil {
		return err
	}

	var check RelationshipCheck
	if relationship.IsParentChild() {
		candidate := *relationship
		check = func(existing []genealogy.Relationship) error {
			if err := genealogy.NewGraph(existing).Admit(candidate); err != nil {
				return apperr.Unprocessable(CodeCycle, "Relationship would make someone their own ancestor").WithCause(err)
			}
			return nil
		}
	}

	if err := service.repo.CreateRelationship(context, *relationship, check); err != nil {
		if apperr.HasCode(err, CodeCycle) {
			service.logger.Warn("relationship_rejected_cycle",
				slog.String("child_id", relationship.ChildID),
				slog.Any("parent_ids", relationship.ParentIDs),
			)
		}
		return err
	}

	service.invalidateExport(context)
	service.logger.Info("relationship_created",
		slog.String("relationship_id", relationship.ID),
		slog.String("type", string(relationship.Kind)),
	)
	return nil
}

func (service *Service) DeleteRelationship(context context.Context, id string) error {
	if err := service.repo.DeleteRelationship(context, id); err != nil {
		return err
	}

	service.invalidateExport(context)
	service.logger.Warn("relationship_deleted", slog.String("relationship_id", id))
	return nil
}

// requireIndividuals turns missing references into field errors.
func (service *Service) requireIndividuals(context context.Context, relationship *genealogy.Relationship) error {
	type reference struct{ field, id string }

	var references []reference
	if relationship.IsSpouse() {
		references = []reference{{FieldPerson1ID, relationship.Person1ID}, {FieldPerson2ID, relationship.Person2ID}}
	} else {
		for _, parentID := range relationship.ParentIDs {
			references = append(references, reference{FieldParentIDs, parentID})
		}
		references = append(references, reference{FieldChildID, relationship.ChildID})
	}

	validator := &validate.Validator{}
	for _, ref := range references {
		_, err := service.repo.FindIndividual(context, ref.id)
		if apperr.HasCode(err, "NOT_FOUND") {
			validator.Custom(ref.field, true, "Unknown individual "+ref.id)
			continue
		}
		if err != nil {
			return err
		}
	}
	return validator.Err()
}

// # Lineage

// Ancestors returns every ancestor of the individual, nearest generation first.
func (service *Service) Ancestors(context context.Context, id string) (*Lineage, error) {
	return service.lineage(context, id, (*genealogy.Graph).Ancestors)
}

// Descendants returns every descendant of the individual, nearest generation first.
func (service *Service) Descendants(context context.Context, id string) (*Lineage, error) {
	return service.lineage(context, id, (*genealogy.Graph).Descendants)
}

func (service *Service) lineage(context context.Context, id string, walk func(*genealogy.Graph, string) []string) (*Lineage, error) {
	individual, err := service.repo.FindIndividual(context, id)
	if err != nil {
		return nil, err
	}
	relationships, err := service.repo.ListRelationships(context)
	if err != nil {
		return nil, err
	}
	individuals, err := service.repo.AllIndividuals(context)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]genealogy.Individual, len(individuals))
	for _, candidate := range individuals {
		byID[candidate.ID] = candidate
	}

	relatives := []genealogy.Individual{}
	for _, relativeID := range walk(genealogy.NewGraph(relationships), id) {
		if relative, ok := byID[relativeID]; ok {
			relatives = append(relatives, relative)
		}
	}
	return &Lineage{Individual: *individual, Relatives: relatives}, nil
}

// # GEDCOM

/*
ImportGedcom decodes, parses and stores a GEDCOM file.

The only failure a file itself can cause is undecodable (binary) content.
Relationships that name the same person twice or that would create an
ancestry cycle are dropped and counted in [ImportSummary.Skipped]; in append
mode the cycle check includes the relationships already stored.
*/
func (service *Service) ImportGedcom(context context.Context, data []byte, mode ImportMode) (*ImportSummary, error) {
	text, err := gedcom.Decode(data)
	if err != nil {
		service.recorder.ImportFailed(string(mode))
		return nil, apperr.ValidationError("File is not a readable GEDCOM text file").WithCause(err)
	}

	document := gedcom.Parse(text, gedcom.WithIDGenerator(service.newID))

	var (
		relationships []genealogy.Relationship
		skipped       int
	)
	if mode == ImportAppend {
		err = service.repo.Append(context, document.Individuals, func(existing []genealogy.Relationship) []genealogy.Relationship {
			relationships, skipped = admitRelationships(genealogy.NewGraph(existing), document.Relationships)
			return relationships
		})
	} else {
		relationships, skipped = admitRelationships(genealogy.NewGraph(nil), document.Relationships)
		err = service.repo.Replace(context, document.Individuals, relationships)
	}
	if err != nil {
		service.recorder.ImportFailed(string(mode))
		return nil, err
	}

	service.invalidateExport(context)

	summary := &ImportSummary{
		Mode:          mode,
		Individuals:   len(document.Individuals),
		Relationships: len(relationships),
		Skipped:       skipped,
	}
	service.recorder.ImportSucceeded(string(mode), summary.Individuals, summary.Skipped)
	service.logger.Info("gedcom_imported",
		slog.String("mode", string(mode)),
		slog.Int("individuals", summary.Individuals),
		slog.Int("relationships", summary.Relationships),
		slog.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// admitRelationships keeps the relationships that are safe to store.
func admitRelationships(graph *genealogy.Graph, candidates []genealogy.Relationship) ([]genealogy.Relationship, int) {
	admitted := make([]genealogy.Relationship, 0, len(candidates))
	skipped := 0
	for _, relationship := range candidates {
		if relationship.IsSpouse() {
			if relationship.Person1ID == relationship.Person2ID {
				skipped++
				continue
			}
			admitted = append(admitted, relationship)
			continue
		}

		relationship.ParentIDs = uniqueIDs(relationship.ParentIDs)
		if len(relationship.ParentIDs) == 0 || graph.Admit(relationship) != nil {
			skipped++
			continue
		}
		admitted = append(admitted, relationship)
	}
	return admitted, skipped
}

// ExportGedcom renders the whole tree as GEDCOM text, using the cache when warm.
func (service *Service) ExportGedcom(context context.Context) (string, error) {
	text, generation, ok, err := service.cache.Get(context)
	cacheable := err == nil
	if err != nil {
		service.logger.Warn("gedcom_export_cache_unavailable", slog.String("error", err.Error()))
	}
	if ok {
		service.recorder.Exported(true)
		return text, nil
	}

	individuals, err := service.repo.AllIndividuals(context)
	if err != nil {
		return "", err
	}
	relationships, err := service.repo.ListRelationships(context)
	if err != nil {
		return "", err
	}

	text = gedcom.Generate(individuals, relationships, gedcom.WithSource(service.source))
	if cacheable {
		if err := service.cache.Set(context, generation, text); err != nil {
			service.logger.Warn("gedcom_export_cache_unavailable", slog.String("error", err.Error()))
		}
	}

	service.recorder.Exported(false)
	return text, nil
}

// invalidateExport drops the cached export. Failures only shorten the
// cache's usefulness until its TTL, so they are logged.
func (service *Service) invalidateExport(context context.Context) {
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.Warn("gedcom_export_cache_invalidate_failed", slog.String("error", err.Error()))
	}
}

// # Helpers

func uniqueIDs(ids []string) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !containsID(result, id) {
			result = append(result, id)
		}
	}
	return result
}

func containsID(ids []string, target string) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
