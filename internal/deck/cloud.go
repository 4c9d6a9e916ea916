// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/digideck/internal/platform/apperr"
	"github.com/taibuivan/digideck/internal/platform/validate"
	"github.com/taibuivan/digideck/pkg/pointer"
)

// Viewer is who asks to read a remote deck.
type Viewer struct {
	UserID string

	// CanReadPrivate lets the viewer read private decks of other owners.
	CanReadPrivate bool
}

func (viewer Viewer) canRead(record *Record) bool {
	if record.UserID == viewer.UserID || viewer.CanReadPrivate {
		return true
	}
	return pointer.Fallback(record.Status, PrivacyPrivate) == PrivacyPublic
}

/*
Cloud mirrors workspaces to the remote deck collection.

Every remote call runs under its own timeout. Failures other than client
errors (not found, forbidden) are reported as a retryable
apperr.RemoteFailure and are never retried here. There is no optimistic
concurrency check: the last save of a record wins.
*/
type Cloud struct {
	repository Repository
	timeout    time.Duration
	logger     *slog.Logger
}

// NewCloud creates a Cloud. A non-positive timeout disables the per-call deadline.
func NewCloud(repository Repository, timeout time.Duration, logger *slog.Logger) *Cloud {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cloud{repository: repository, timeout: timeout, logger: logger}
}

/*
Save writes the workspace deck to the remote collection as owner.

A temporary deck is created as a private record and becomes persisted. A
persisted deck has its record overwritten; when owner has no such record
(it was deleted, or another account saved it on this session) a new private
record is created instead. Either way the deck ends up clean, unless it was
edited while the call was in flight, in which case it stays dirty. An empty
name keeps the current one.

Returns:
  - Deck: The workspace deck after the save
  - error: apperr.ValidationError or apperr.RemoteFailure
*/
func (cloud *Cloud) Save(ctx context.Context, workspace *Workspace, owner, name string) (Deck, error) {
	snapshot, revision, err := workspace.Snapshot(ctx)
	if err != nil {
		return Deck{}, err
	}

	name = strings.TrimSpace(name)
	persisted, isPersisted := snapshot.Persisted()
	if name == "" && isPersisted {
		name = persisted.Name
	}
	if name == "" {
		return Deck{}, validate.RequiredError("name", "A name is required for the first save")
	}

	if isPersisted {
		err := cloud.call(ctx, "update", func(callCtx context.Context) error {
			return cloud.repository.Update(callCtx, persisted.CloudID, owner, DraftOf(snapshot, name, persisted.Privacy))
		})
		switch {
		case err == nil:
			return workspace.ReplaceSince(ctx, revision, func(current Deck, changed bool) Deck {
				now, ok := current.Persisted()
				if !ok || now.CloudID != persisted.CloudID {
					return current
				}
				now.Name = name
				now.Dirty = changed
				return current.WithOrigin(now)
			})
		case !apperr.HasCode(err, "NOT_FOUND"):
			return Deck{}, err
		}

		// The record is gone or belongs to another account: save a copy.
		cloud.logger.InfoContext(ctx, "remote_deck_forked",
			slog.String("deck_id", persisted.CloudID),
		)
	}

	var cloudID string
	err = cloud.call(ctx, "create", func(callCtx context.Context) error {
		var createErr error
		cloudID, createErr = cloud.repository.Create(callCtx, owner, DraftOf(snapshot, name, PrivacyPrivate))
		return createErr
	})
	if err != nil {
		return Deck{}, err
	}

	return workspace.ReplaceSince(ctx, revision, func(current Deck, changed bool) Deck {
		if !sameOrigin(current.Origin, snapshot.Origin) {
			// Another deck was loaded meanwhile; the new record stays unreferenced.
			return current
		}
		origin := Temporary{}.Persist(cloudID, name, PrivacyPrivate)
		origin.Dirty = changed
		return current.WithOrigin(origin)
	})
}

// sameOrigin reports whether two origins refer to the same deck: both
// temporary, or persisted under one record.
func sameOrigin(a, b Origin) bool {
	switch a := a.(type) {
	case Temporary:
		_, ok := b.(Temporary)
		return ok
	case Persisted:
		other, ok := b.(Persisted)
		return ok && other.CloudID == a.CloudID
	}
	return false
}

/*
Load adopts a remote record into the workspace, replacing its deck.

The owner gets a clean persisted deck. Another viewer of a public record
gets a temporary copy, so their later saves create their own record.

Returns:
  - Deck: The adopted deck
  - error: apperr.NotFound, apperr.Corrupted (nothing adopted) or apperr.RemoteFailure
*/
func (cloud *Cloud) Load(ctx context.Context, workspace *Workspace, id string, viewer Viewer) (Deck, error) {
	record, err := cloud.View(ctx, id, viewer)
	if err != nil {
		return Deck{}, err
	}

	loaded, err := FromRecord(record)
	if err != nil {
		cloud.logger.WarnContext(ctx, "remote_deck_corrupted",
			slog.String("deck_id", id),
			slog.String("error", err.Error()),
		)
		return Deck{}, apperr.Corrupted(resourceDeck, err)
	}

	if record.UserID != viewer.UserID {
		loaded = loaded.WithOrigin(Temporary{})
	}

	return workspace.Replace(ctx, func(Deck) Deck { return loaded })
}

/*
Publish makes the workspace's persisted deck public.

Returns:
  - Deck: The workspace deck with its new privacy
  - error: apperr.Unprocessable for a temporary deck, apperr.RemoteFailure
*/
func (cloud *Cloud) Publish(ctx context.Context, workspace *Workspace, owner string) (Deck, error) {
	snapshot, err := workspace.Current(ctx)
	if err != nil {
		return Deck{}, err
	}

	persisted, ok := snapshot.Persisted()
	if !ok {
		return Deck{}, apperr.Unprocessable("Save the deck before publishing it")
	}
	if persisted.Privacy == PrivacyPublic {
		return snapshot, nil
	}

	err = cloud.call(ctx, "set_status", func(callCtx context.Context) error {
		return cloud.repository.SetStatus(callCtx, persisted.CloudID, owner, PrivacyPublic)
	})
	if err != nil {
		return Deck{}, err
	}

	return workspace.Replace(ctx, func(current Deck) Deck {
		now, ok := current.Persisted()
		if !ok || now.CloudID != persisted.CloudID {
			return current
		}
		now.Privacy = PrivacyPublic
		return current.WithOrigin(now)
	})
}

// List returns the owner's [ListLimit] most recently modified decks.
func (cloud *Cloud) List(ctx context.Context, owner string) ([]*Record, error) {
	var records []*Record
	err := cloud.call(ctx, "list", func(callCtx context.Context) error {
		var listErr error
		records, listErr = cloud.repository.ListByOwner(callCtx, owner, ListLimit)
		return listErr
	})
	return records, err
}

// View returns a record the viewer may read. Private records of other
// owners are reported as not found.
func (cloud *Cloud) View(ctx context.Context, id string, viewer Viewer) (*Record, error) {
	var record *Record
	err := cloud.call(ctx, "find", func(callCtx context.Context) error {
		var findErr error
		record, findErr = cloud.repository.FindByID(callCtx, id)
		return findErr
	})
	if err != nil {
		return nil, err
	}

	if !viewer.canRead(record) {
		return nil, apperr.NotFound(resourceDeck)
	}
	return record, nil
}

// call runs fn under the remote timeout and classifies its error.
func (cloud *Cloud) call(ctx context.Context, operation string, fn func(context.Context) error) error {
	if cloud.repository == nil {
		return apperr.ServiceUnavailable("The remote deck collection is not configured")
	}

	callCtx := ctx
	if cloud.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, cloud.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	if err == nil {
		return nil
	}

	if appError := apperr.As(err); appError != nil && appError.HTTPStatus < 500 {
		return err
	}

	cloud.logger.ErrorContext(ctx, "remote_deck_call_failed",
		slog.String("operation", operation),
		slog.Bool("timeout", errors.Is(err, context.DeadlineExceeded)),
		slog.String("error", err.Error()),
	)
	return apperr.RemoteFailure(err)
}
