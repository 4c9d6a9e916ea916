// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/internal/platform/apperr"
	"github.com/taibuivan/digideck/internal/platform/ctxutil"
	"github.com/taibuivan/digideck/internal/platform/middleware"
	requestutil "github.com/taibuivan/digideck/internal/platform/request"
	"github.com/taibuivan/digideck/internal/platform/respond"
	"github.com/taibuivan/digideck/internal/platform/sec"
	"github.com/taibuivan/digideck/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the session deck and the remote collection over HTTP.
type Handler struct {
	workspaces *Workspaces
	cloud      *Cloud
	cards      catalog.Lookup
}

// NewHandler constructs a deck [Handler].
func NewHandler(workspaces *Workspaces, cloud *Cloud, cards catalog.Lookup) *Handler {
	return &Handler{workspaces: workspaces, cloud: cloud, cards: cards}
}

/*
RegisterRoutes mounts the session deck endpoints on a /deck sub-router.

  - Anonymous: read, edit, clear, stats, export and import.
  - Signed in: save and publish.
*/
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getDeck)
	router.Delete("/", handler.clearDeck)
	router.Post("/cards", handler.changeQuantity)
	router.Get("/stats", handler.stats)
	router.Get("/export", handler.export)
	router.Post("/import", handler.importText)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/save", handler.save)
		member.Post("/publish", handler.publish)
	})
}

// RegisterCloudRoutes mounts the remote collection endpoints on a /decks sub-router.
func (handler *Handler) RegisterCloudRoutes(router chi.Router) {
	router.Get("/{id}", handler.view)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Get("/", handler.list)
		member.Post("/{id}/load", handler.load)
	})
}

// # Request Bodies

type changeQuantityRequest struct {
	Number  string `json:"number"`
	Delta   int    `json:"delta"`
	Section string `json:"section"`
}

type saveRequest struct {
	Name string `json:"name"`
}

type importResponse struct {
	Deck     Deck     `json:"deck"`
	Warnings []string `json:"warnings"`
}

// # Session Deck

func (handler *Handler) workspace(request *http.Request) (*Workspace, error) {
	session, err := requestutil.SessionID(request)
	if err != nil {
		return nil, err
	}
	return handler.workspaces.For(session), nil
}

func (handler *Handler) getDeck(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := workspace.Current(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, current)
}

func (handler *Handler) clearDeck(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cleared, err := workspace.Clear(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, cleared)
}

/*
changeQuantity adds or removes copies of one card.

Placement follows [Place].
*/
func (handler *Handler) changeQuantity(writer http.ResponseWriter, request *http.Request) {
	var body changeQuantityRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.CardNumber("number", body.Number).
		Range("delta", body.Delta, -MaxCopies, MaxCopies).
		Custom("delta", body.Delta == 0, "Must not be zero")
	if body.Section != "" {
		validator.OneOf("section", body.Section, string(SectionMain), string(SectionEgg))
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	section, _ := ParseSection(body.Section)
	cardID, section, err := Place(handler.cards, body.Number, section, body.Delta)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := workspace.ChangeQuantity(request.Context(), cardID, body.Delta, section)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := workspace.Current(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats := ComputeStats(current, handler.cards)
	logMissing(request, stats.Missing)

	respond.OK(writer, stats)
}

func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := workspace.Current(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	logMissing(request, ComputeStats(current, handler.cards).Missing)
	respond.Attachment(writer, ExportFilename, ExportText(current, handler.cards))
}

// importText replaces the session deck with a pasted deck list.
func (handler *Handler) importText(writer http.ResponseWriter, request *http.Request) {
	text, err := requestutil.ReadText(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	parsed, warnings := ParseText(text, handler.cards)
	if parsed.IsEmpty() {
		respond.Error(writer, request, apperr.ValidationError("The deck list has no readable entries"))
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	imported, err := workspace.Replace(request.Context(), func(Deck) Deck { return parsed })
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if warnings == nil {
		warnings = []string{}
	}
	respond.OK(writer, importResponse{Deck: imported, Warnings: warnings})
}

// # Remote Collection

func (handler *Handler) save(writer http.ResponseWriter, request *http.Request) {
	owner, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body saveRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.MaxLen("name", body.Name, 100).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	saved, err := handler.cloud.Save(request.Context(), workspace, owner, body.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, saved)
}

func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	owner, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	published, err := handler.cloud.Publish(request.Context(), workspace, owner)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, published)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	owner, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.cloud.List(request.Context(), owner)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}

func (handler *Handler) load(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if err := (&validate.Validator{}).UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.workspace(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	loaded, err := handler.cloud.Load(request.Context(), workspace, id, viewerOf(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, loaded)
}

// view serves a shared deck link.
func (handler *Handler) view(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	if err := (&validate.Validator{}).UUID("id", id).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.cloud.View(request.Context(), id, viewerOf(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// # Helpers

func viewerOf(request *http.Request) Viewer {
	claims := requestutil.Claims(request)
	if claims == nil {
		return Viewer{}
	}
	return Viewer{UserID: claims.UserID, CanReadPrivate: sec.UserRole(claims.Role).CanReadPrivate()}
}

func logMissing(request *http.Request, missing []string) {
	if len(missing) == 0 {
		return
	}
	ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "deck_cards_missing",
		slog.Any("numbers", missing),
	)
}
