// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tree_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stamtavla/internal/core/tree"
	"github.com/taibuivan/stamtavla/internal/genealogy"
	"github.com/taibuivan/stamtavla/internal/platform/middleware"
	"github.com/taibuivan/stamtavla/internal/platform/sec"
)

// stubVerifier accepts "Bearer <role>" for any known role.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.EditorClaims, error) {
	if !sec.UserRole(token).IsValid() {
		return nil, errors.New("unknown token")
	}
	return &sec.EditorClaims{Role: token}, nil
}

func newTestServer(f *fixture, importLimit int64) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(stubVerifier{}))
	router.Mount("/api/v1", tree.NewHandler(f.service, "Släkten Ådahl", importLimit).Routes())
	return router
}

func call(t *testing.T, server http.Handler, method, path, role string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, path, body)
	if role != "" {
		request.Header.Set("Authorization", "Bearer "+role)
	}
	response := httptest.NewRecorder()
	server.ServeHTTP(response, request)
	return response
}

func jsonBody(t *testing.T, value any) io.Reader {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

/*
TestHandler_Authorization lets anyone read and only editors write.
*/
func TestHandler_Authorization(t *testing.T) {
	server := newTestServer(newFixture(), 1<<20)
	person := map[string]any{"givenName": "Signe", "gender": "female"}

	tests := []struct {
		name   string
		method string
		path   string
		role   string
		body   any
		status int
	}{
		{"anonymous_read", http.MethodGet, "/api/v1/individuals", "", nil, http.StatusOK},
		{"anonymous_write", http.MethodPost, "/api/v1/individuals", "", person, http.StatusUnauthorized},
		{"viewer_write", http.MethodPost, "/api/v1/individuals", "viewer", person, http.StatusForbidden},
		{"editor_write", http.MethodPost, "/api/v1/individuals", "editor", person, http.StatusCreated},
		{"admin_write", http.MethodPost, "/api/v1/individuals", "admin", person, http.StatusCreated},
		{"bad_token", http.MethodGet, "/api/v1/individuals", "nobody", nil, http.StatusUnauthorized},
		{"anonymous_import", http.MethodPost, "/api/v1/gedcom/import", "", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != nil {
				body = jsonBody(t, tt.body)
			}
			response := call(t, server, tt.method, tt.path, tt.role, body)
			assert.Equal(t, tt.status, response.Code, response.Body.String())
		})
	}
}

/*
TestHandler_IndividualLifecycle creates, reads, lists, updates and deletes.
*/
func TestHandler_IndividualLifecycle(t *testing.T) {
	server := newTestServer(newFixture(), 1<<20)

	response := call(t, server, http.MethodPost, "/api/v1/individuals", "editor",
		jsonBody(t, map[string]any{"givenName": "Olof", "gender": "male", "dateOfBirth": "1850"}))
	require.Equal(t, http.StatusCreated, response.Code)

	var created struct {
		Data genealogy.Individual `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&created))
	id := created.Data.ID
	require.NotEmpty(t, id)

	response = call(t, server, http.MethodGet, "/api/v1/individuals/"+id, "", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"dateOfBirth":"1850"`)

	response = call(t, server, http.MethodGet, "/api/v1/individuals?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"total":1`)

	response = call(t, server, http.MethodPut, "/api/v1/individuals/"+id, "editor",
		jsonBody(t, map[string]any{"givenName": "Olof", "gender": "male", "dateOfBirth": "1850-02"}))
	require.Equal(t, http.StatusOK, response.Code)

	response = call(t, server, http.MethodDelete, "/api/v1/individuals/"+id, "editor", nil)
	require.Equal(t, http.StatusNoContent, response.Code)

	response = call(t, server, http.MethodGet, "/api/v1/individuals/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), `"code":"NOT_FOUND"`)
}

/*
TestHandler_UnknownField rejects misspelled JSON fields.
*/
func TestHandler_UnknownField(t *testing.T) {
	server := newTestServer(newFixture(), 1<<20)

	response := call(t, server, http.MethodPost, "/api/v1/individuals", "editor",
		strings.NewReader(`{"givenName":"Olof","birthday":"1850"}`))
	assert.Equal(t, http.StatusBadRequest, response.Code)
}

/*
TestHandler_CycleRejected answers 422 for a relationship closing a loop.
*/
func TestHandler_CycleRejected(t *testing.T) {
	f := newFixture()
	parent := f.person(t, "Parent", genealogy.GenderFemale)
	child := f.person(t, "Child", genealogy.GenderFemale)
	require.NoError(t, f.parentChild(t, child, parent))
	server := newTestServer(f, 1<<20)

	response := call(t, server, http.MethodPost, "/api/v1/relationships", "editor",
		jsonBody(t, map[string]any{"type": "parent-child", "parentIds": []string{child}, "childId": parent}))
	assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	assert.Contains(t, response.Body.String(), `"code":"CYCLE"`)

	response = call(t, server, http.MethodGet, "/api/v1/individuals/"+child+"/ancestors", "", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), parent)
}

/*
TestHandler_GetRelationship serves one relationship publicly.
*/
func TestHandler_GetRelationship(t *testing.T) {
	f := newFixture()
	parent := f.person(t, "Parent", genealogy.GenderFemale)
	child := f.person(t, "Child", genealogy.GenderMale)
	require.NoError(t, f.parentChild(t, child, parent))
	stored, err := f.repo.ListRelationships(context.Background())
	require.NoError(t, err)
	server := newTestServer(f, 1<<20)

	response := call(t, server, http.MethodGet, "/api/v1/relationships/"+stored[0].ID, "", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), `"childId":"`+child+`"`)

	response = call(t, server, http.MethodGet, "/api/v1/relationships/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, response.Code)
}

/*
TestHandler_GedcomImportExport round-trips a file through the API.
*/
func TestHandler_GedcomImportExport(t *testing.T) {
	server := newTestServer(newFixture(), 1<<20)
	file := strings.Join([]string{
		"0 HEAD",
		"0 @I1@ INDI",
		"1 NAME Nils /Ek/",
		"1 SEX M",
		"1 BIRT",
		"2 DATE 3 MAR 1888",
		"0 TRLR",
	}, "\n")

	response := call(t, server, http.MethodPost, "/api/v1/gedcom/import?mode=append", "editor", strings.NewReader(file))
	require.Equal(t, http.StatusOK, response.Code, response.Body.String())
	assert.JSONEq(t, `{"data":{"mode":"append","individuals":1,"relationships":0,"skipped":0}}`, response.Body.String())

	response = call(t, server, http.MethodGet, "/api/v1/gedcom/export", "", nil)
	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "text/plain; charset=utf-8", response.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=slakten-adahl.ged`, response.Header().Get("Content-Disposition"))
	assert.Contains(t, response.Body.String(), "1 NAME Nils /Ek/")
	assert.Contains(t, response.Body.String(), "2 DATE 03 MAR 1888")
}

/*
TestHandler_GedcomImportErrors covers bad modes, oversized and binary uploads.
*/
func TestHandler_GedcomImportErrors(t *testing.T) {
	server := newTestServer(newFixture(), 16)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown_mode", "/api/v1/gedcom/import?mode=merge", "0 HEAD", http.StatusBadRequest},
		{"too_large", "/api/v1/gedcom/import", strings.Repeat("0 HEAD\n", 10), http.StatusRequestEntityTooLarge},
		{"binary", "/api/v1/gedcom/import", "\x00\x01\x02", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := call(t, server, http.MethodPost, tt.path, "editor", strings.NewReader(tt.body))
			assert.Equal(t, tt.status, response.Code, response.Body.String())
		})
	}
}
