// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters,
// how an in-memory result set is sliced into pages, and how the resulting
// metadata is delivered in the API response envelope. Pages are 0-indexed.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 30
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (0-indexed).
	DefaultPage = 0
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the index of the first item on [Page].
func (p Params) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pageCount(total, limit),
	}
}

// # Slicing

// Page is one window over an ordered result set.
type Page[T any] struct {
	Items      []T
	ActualPage int
	NumPages   int
	TotalCount int
}

// Meta describes the page for the response envelope.
func (p Page[T]) Meta(limit int) Meta {
	return NewMeta(p.ActualPage, limit, p.TotalCount)
}

/*
Paginate slices items into the page at index requested.

Rules:
  - NumPages is ceil(len(items)/pageSize), 0 for an empty sequence.
  - requested is clamped to [0, NumPages-1]; out of range never fails.
  - reset forces page 0 (used when the upstream filter changed).
  - When NumPages <= 1 the whole sequence is returned as page 0.

The returned Items share the backing array of items but have their capacity
capped, so appending to them never clobbers the source.
*/
func Paginate[T any](items []T, pageSize, requested int, reset bool) Page[T] {
	total := len(items)
	numPages := pageCount(total, pageSize)

	if numPages <= 1 {
		return Page[T]{Items: items[:total:total], ActualPage: 0, NumPages: numPages, TotalCount: total}
	}

	page := requested
	if reset || page < 0 {
		page = 0
	}
	if page > numPages-1 {
		page = numPages - 1
	}

	start := Params{Page: page, Limit: pageSize}.Offset()
	end := min(start+pageSize, total)

	return Page[T]{
		Items:      items[start:end:end],
		ActualPage: page,
		NumPages:   numPages,
		TotalCount: total,
	}
}

// pageCount is ceil(total/size), treating a non-positive size as one page.
func pageCount(total, size int) int {
	if total == 0 {
		return 0
	}
	if size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// # Request Parsing

// FromRequestOr parses "page" and "limit" query parameters, falling back to
// fallbackLimit when the limit is absent or invalid.
//
// # Clamping
//
// A negative or malformed page becomes [DefaultPage]. A limit outside
// [1, MaxLimit] becomes fallbackLimit.
func FromRequestOr(r *http.Request, fallbackLimit int) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", fallbackLimit)

	if page < 0 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = fallbackLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
