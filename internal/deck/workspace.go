// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/digideck/pkg/sessionmap"
)

// SlotKey names the local slot holding the work-in-progress deck.
const SlotKey = "wip"

// # Local Slot

// LocalStore is the local key-value slot the workspace writes through to.
type LocalStore interface {

	/*
		Get reads the raw slot value.

		Returns:
		  - []byte: Stored bytes
		  - bool: False when the slot has never been written
		  - error: Storage failures
	*/
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set overwrites the slot value.
	Set(ctx context.Context, key string, value []byte) error
}

// # Workspace

/*
Workspace owns the one editable deck of a session.

The deck is read from the local slot on first use. Every mutation encodes
the whole deck and writes it to the slot; the new deck replaces the current
one in memory only after that write succeeds. Each committed mutation bumps
the revision, which lets slow callers detect concurrent edits.
*/
type Workspace struct {
	mu       sync.Mutex
	store    LocalStore
	key      string
	logger   *slog.Logger
	loaded   bool
	current  Deck
	revision uint64
}

// NewWorkspace binds a workspace to one slot key of store.
func NewWorkspace(store LocalStore, key string, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{store: store, key: key, logger: logger}
}

// Current returns the deck, loading it from the slot on first use.
func (workspace *Workspace) Current(ctx context.Context) (Deck, error) {
	current, _, err := workspace.Snapshot(ctx)
	return current, err
}

// Snapshot returns the deck together with its revision.
func (workspace *Workspace) Snapshot(ctx context.Context) (Deck, uint64, error) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if err := workspace.ensureLoaded(ctx); err != nil {
		return Deck{}, 0, err
	}
	return workspace.current.Clone(), workspace.revision, nil
}

// ChangeQuantity applies [ChangeQuantity] to the current deck.
func (workspace *Workspace) ChangeQuantity(ctx context.Context, cardID string, delta int, section Section) (Deck, error) {
	return workspace.Replace(ctx, func(current Deck) Deck {
		return ChangeQuantity(current, cardID, delta, section)
	})
}

// Replace swaps the current deck for transform(current).
func (workspace *Workspace) Replace(ctx context.Context, transform func(current Deck) Deck) (Deck, error) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if err := workspace.ensureLoaded(ctx); err != nil {
		return Deck{}, err
	}
	return workspace.commit(ctx, transform(workspace.current.Clone()))
}

/*
ReplaceSince is Replace for callers that read the deck earlier.

transform receives changed=true when any mutation was committed after
revision, so it can merge instead of overwrite.
*/
func (workspace *Workspace) ReplaceSince(ctx context.Context, revision uint64, transform func(current Deck, changed bool) Deck) (Deck, error) {
	workspace.mu.Lock()
	defer workspace.mu.Unlock()

	if err := workspace.ensureLoaded(ctx); err != nil {
		return Deck{}, err
	}
	return workspace.commit(ctx, transform(workspace.current.Clone(), workspace.revision != revision))
}

// Clear replaces the deck with a fresh temporary one.
func (workspace *Workspace) Clear(ctx context.Context) (Deck, error) {
	return workspace.Replace(ctx, func(Deck) Deck { return New() })
}

// ensureLoaded reads the slot once. Callers hold mu.
func (workspace *Workspace) ensureLoaded(ctx context.Context) error {
	if workspace.loaded {
		return nil
	}

	raw, found, err := workspace.store.Get(ctx, workspace.key)
	if err != nil {
		return fmt.Errorf("deck: read local slot %q: %w", workspace.key, err)
	}

	workspace.current = New()
	if found {
		decoded, warnings := Decode(raw)
		for _, warning := range warnings {
			workspace.logger.WarnContext(ctx, "local_deck_recovered",
				slog.String("slot", workspace.key),
				slog.String("warning", warning),
			)
		}
		workspace.current = decoded
	}

	workspace.loaded = true
	return nil
}

// commit writes next to the slot and then adopts it. Callers hold mu.
func (workspace *Workspace) commit(ctx context.Context, next Deck) (Deck, error) {
	next = next.Clone()

	encoded, err := Encode(next)
	if err != nil {
		return Deck{}, fmt.Errorf("deck: encode: %w", err)
	}
	if err := workspace.store.Set(ctx, workspace.key, encoded); err != nil {
		return Deck{}, fmt.Errorf("deck: write local slot %q: %w", workspace.key, err)
	}

	workspace.current = next
	workspace.revision++
	return next.Clone(), nil
}

// # Session Registry

// Workspaces hands out one [Workspace] per browsing session.
type Workspaces struct {
	store    LocalStore
	logger   *slog.Logger
	sessions *sessionmap.Map[*Workspace]
}

// NewWorkspaces creates a registry that drops workspaces idle for longer than ttl.
// A dropped workspace is reloaded from its slot on the next request.
func NewWorkspaces(store LocalStore, ttl time.Duration, logger *slog.Logger) *Workspaces {
	return &Workspaces{
		store:    store,
		logger:   logger,
		sessions: sessionmap.New[*Workspace](ttl),
	}
}

// For returns the workspace of session.
func (registry *Workspaces) For(session string) *Workspace {
	return registry.sessions.GetOrCreate(session, func() *Workspace {
		return NewWorkspace(registry.store, SessionSlot(session), registry.logger)
	})
}

// RunJanitor evicts idle workspaces every interval until ctx is cancelled.
func (registry *Workspaces) RunJanitor(ctx context.Context, interval time.Duration) {
	registry.sessions.Run(ctx, interval)
}

// SessionSlot is the slot key of a session's work-in-progress deck.
func SessionSlot(session string) string {
	return SlotKey + ":" + session
}
