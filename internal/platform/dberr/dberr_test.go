// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stamtavla/internal/platform/apperr"
	"github.com/taibuivan/stamtavla/internal/platform/dberr"
)

/*
TestWrap maps driver errors to HTTP statuses.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no_rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest},
		{"check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"other_pg", &pgconn.PgError{Code: "40001"}, http.StatusInternalServerError},
		{"plain", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "Individual", "find_individual")
			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			assert.ErrorIs(t, wrapped, tt.err)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "Individual", "noop"))

	cycle := apperr.Unprocessable("CYCLE", "cycle")
	assert.Same(t, cycle, apperr.As(dberr.Wrap(cycle, "Relationship", "create_relationship")))
}
