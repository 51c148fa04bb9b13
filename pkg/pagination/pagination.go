// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page requests and builds the "meta" block of
// list responses.
//
// Pages are 1-indexed. Requests may ask for at most [MaxLimit] records; a
// family tree rarely needs more on one screen and the export endpoint
// serves the complete tree.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 200
)

// Params is a requested page.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of records before the page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes a returned page.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta computes TotalPages from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// FromRequest reads the "page" and "limit" query parameters. Missing or
// unusable values fall back to the defaults; a limit above [MaxLimit] is
// capped rather than rejected.
func FromRequest(request *http.Request) Params {
	query := request.URL.Query()
	page := intParam(query.Get("page"), DefaultPage)
	limit := intParam(query.Get("limit"), DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
