// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr translates PostgreSQL errors into [apperr.AppError] values.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/stamtavla/internal/platform/apperr"
)

// SQLSTATE codes mapped to client errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Wrap classifies a database error. resource names the entity in NotFound
// messages; action is recorded in the cause for logs. Errors that already
// carry an [apperr.AppError] pass through unchanged.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}
	if apperr.As(err) != nil {
		return err
	}

	cause := fmt.Errorf("%s: %w", action, err)

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(cause)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case codeUniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(cause)
		case codeForeignKeyViolation:
			return apperr.ValidationError("Referenced individual does not exist").WithCause(cause)
		case codeCheckViolation:
			return apperr.ValidationError("Value violates a constraint").WithCause(cause)
		}
	}

	return apperr.Internal(cause)
}
