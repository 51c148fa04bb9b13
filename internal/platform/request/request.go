// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil extracts path parameters and bodies from HTTP requests.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/stamtavla/internal/platform/apperr"
	"github.com/taibuivan/stamtavla/internal/platform/validate"
)

// jsonBodyLimit caps JSON payloads; GEDCOM uploads use [ReadBody].
const jsonBodyLimit = 1 << 20

/*
DecodeJSON decodes the request body into target.

Unknown fields are rejected so a misspelled field never silently becomes an
empty value.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(writer, request.Body, jsonBodyLimit))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ReadBody reads the raw body, failing with 413 when it exceeds limit.
*/
func ReadBody(writer http.ResponseWriter, request *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(writer, request.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperr.PayloadTooLarge(limit)
		}
		return nil, apperr.ValidationError("Could not read request body").WithCause(err)
	}
	return data, nil
}

// ID returns a named URL parameter.
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
