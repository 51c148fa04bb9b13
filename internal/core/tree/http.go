// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stamtavla/internal/genealogy"
	"github.com/taibuivan/stamtavla/internal/platform/apperr"
	"github.com/taibuivan/stamtavla/internal/platform/middleware"
	requestutil "github.com/taibuivan/stamtavla/internal/platform/request"
	"github.com/taibuivan/stamtavla/internal/platform/respond"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
	"github.com/taibuivan/stamtavla/pkg/pagination"
	"github.com/taibuivan/stamtavla/pkg/slug"
)

// gedcomContentType is served for exports. GEDCOM has no registered media type.
const gedcomContentType = "text/plain; charset=utf-8"

type Handler struct {
	service     *Service
	filename    string
	importLimit int64
}

// NewHandler builds the tree routes. The export filename is derived from
// treeName; importLimit caps GEDCOM uploads in bytes.
func NewHandler(service *Service, treeName string, importLimit int64) *Handler {
	base := slug.From(treeName)
	if base == "" {
		base = "tree"
	}
	return &Handler{service: service, filename: base + ".ged", importLimit: importLimit}
}

// Routes returns the router mounted under /api/v1.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public
	router.Get("/individuals", handler.listIndividuals)
	router.Get("/individuals/{id}", handler.getIndividual)
	router.Get("/individuals/{id}/ancestors", handler.ancestors)
	router.Get("/individuals/{id}/descendants", handler.descendants)
	router.Get("/relationships", handler.listRelationships)
	router.Get("/relationships/{id}", handler.getRelationship)
	router.Get("/gedcom/export", handler.exportGedcom)

	// Editors
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/individuals", handler.createIndividual)
		editorRoute.Put("/individuals/{id}", handler.updateIndividual)
		editorRoute.Delete("/individuals/{id}", handler.deleteIndividual)

		editorRoute.Post("/relationships", handler.createRelationship)
		editorRoute.Delete("/relationships/{id}", handler.deleteRelationship)

		editorRoute.Post("/gedcom/import", handler.importGedcom)
	})

	return router
}

// # Individuals

func (handler *Handler) listIndividuals(writer http.ResponseWriter, request *http.Request) {
	individuals, metadata, err := handler.service.ListIndividuals(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, individuals, metadata)
}

func (handler *Handler) getIndividual(writer http.ResponseWriter, request *http.Request) {
	individual, err := handler.service.GetIndividual(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, individual)
}

func (handler *Handler) createIndividual(writer http.ResponseWriter, request *http.Request) {
	var input genealogy.Individual
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateIndividual(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateIndividual(writer http.ResponseWriter, request *http.Request) {
	var input genealogy.Individual
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateIndividual(request.Context(), requestutil.ID(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteIndividual(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteIndividual(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) ancestors(writer http.ResponseWriter, request *http.Request) {
	lineage, err := handler.service.Ancestors(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lineage)
}

func (handler *Handler) descendants(writer http.ResponseWriter, request *http.Request) {
	lineage, err := handler.service.Descendants(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, lineage)
}

// # Relationships

func (handler *Handler) listRelationships(writer http.ResponseWriter, request *http.Request) {
	relationships, err := handler.service.ListRelationships(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, relationships)
}

func (handler *Handler) getRelationship(writer http.ResponseWriter, request *http.Request) {
	relationship, err := handler.service.GetRelationship(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, relationship)
}

func (handler *Handler) createRelationship(writer http.ResponseWriter, request *http.Request) {
	var input genealogy.Relationship
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateRelationship(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteRelationship(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteRelationship(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # GEDCOM

func (handler *Handler) importGedcom(writer http.ResponseWriter, request *http.Request) {
	mode, err := ParseImportMode(request.URL.Query().Get("mode"))
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Unknown import mode",
			apperr.FieldError{Field: "mode", Message: "Must be one of: replace, append"}))
		return
	}

	data, err := requestutil.ReadBody(writer, request, handler.importLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.ImportGedcom(request.Context(), data, mode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}

func (handler *Handler) exportGedcom(writer http.ResponseWriter, request *http.Request) {
	text, err := handler.service.ExportGedcom(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Attachment(writer, gedcomContentType, handler.filename, text)
}
