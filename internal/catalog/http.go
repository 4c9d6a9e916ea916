// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/digideck/internal/platform/apperr"
	requestutil "github.com/taibuivan/digideck/internal/platform/request"
	"github.com/taibuivan/digideck/internal/platform/respond"
	"github.com/taibuivan/digideck/internal/platform/validate"
)

// Handler serves read-only catalog lookups.
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a new catalog Handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes mounts the lookup endpoints on a /cards sub-router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/facets", handler.facets)
	router.Get("/{number}", handler.getCard)
}

func (handler *Handler) facets(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.catalog.Facets())
}

func (handler *Handler) getCard(writer http.ResponseWriter, request *http.Request) {
	number := requestutil.Param(request, "number")

	validator := &validate.Validator{}
	if err := validator.CardNumber("number", number).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	card, found := handler.catalog.Card(number)
	if !found {
		respond.Error(writer, request, apperr.NotFound("Card"))
		return
	}

	respond.OK(writer, card)
}
