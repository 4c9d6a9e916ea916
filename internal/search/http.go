// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/digideck/internal/platform/ctxutil"
	"github.com/taibuivan/digideck/internal/platform/respond"
	"github.com/taibuivan/digideck/pkg/pagination"
	"github.com/taibuivan/digideck/pkg/query"
)

// Handler serves paginated card searches.
type Handler struct {
	browser  *Browser
	pageSize int
}

// NewHandler creates a search Handler. pageSize applies when a request has no limit.
func NewHandler(browser *Browser, pageSize int) *Handler {
	return &Handler{browser: browser, pageSize: pageSize}
}

// RegisterRoutes mounts the search endpoint on a /cards sub-router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listCards)
}

/*
listCards handles GET /cards.

Query: q, color, type, rarity, set (repeatable or comma-separated), level,
sort (color|level|dp), page (0-indexed), limit.
*/
func (handler *Handler) listCards(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequestOr(request, handler.pageSize)
	criteria := CriteriaFromRequest(request)

	page := handler.browser.Browse(ctxutil.GetSessionID(request.Context()), criteria, params)

	respond.Paginated(writer, page.Items, page.Meta(params.Limit))
}

// CriteriaFromRequest reads search criteria from URL query parameters.
func CriteriaFromRequest(request *http.Request) Criteria {
	values := request.URL.Query()

	return Criteria{
		Text:      values.Get("q"),
		Colors:    query.List(values["color"]),
		CardTypes: query.List(values["type"]),
		Rarities:  query.List(values["rarity"]),
		Sets:      query.List(values["set"]),
		Level:     values.Get("level"),
		Sort:      ParseSortKey(values.Get("sort")),
	}
}
