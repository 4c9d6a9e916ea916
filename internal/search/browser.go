// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/pkg/pagination"
	"github.com/taibuivan/digideck/pkg/sessionmap"
)

// browseState is the last search seen for one browsing session.
type browseState struct {
	mu      sync.Mutex
	lastKey string
}

// changed records key and reports whether it differs from the previous one.
// The first search of a session is not a change.
func (state *browseState) changed(key string) bool {
	state.mu.Lock()
	defer state.mu.Unlock()

	previous := state.lastKey
	state.lastKey = key
	return previous != "" && previous != key
}

// Browser pages through searches on behalf of browsing sessions.
type Browser struct {
	engine   *Engine
	sessions *sessionmap.Map[*browseState]
}

// NewBrowser creates a Browser that forgets sessions idle for longer than ttl.
func NewBrowser(engine *Engine, ttl time.Duration) *Browser {
	return &Browser{
		engine:   engine,
		sessions: sessionmap.New[*browseState](ttl),
	}
}

/*
Browse runs criteria and returns the requested page.

When the session's previous search differs from this one the page is reset
to 0. An empty session is never tracked.
*/
func (browser *Browser) Browse(session string, criteria Criteria, params pagination.Params) pagination.Page[catalog.Card] {
	result := browser.engine.Run(criteria)

	reset := false
	if session != "" {
		state := browser.sessions.GetOrCreate(session, func() *browseState { return &browseState{} })
		reset = state.changed(result.Key)
	}

	return pagination.Paginate(result.Cards, params.Limit, params.Page, reset)
}

// RunJanitor evicts idle sessions every interval until ctx is cancelled.
func (browser *Browser) RunJanitor(ctx context.Context, interval time.Duration) {
	browser.sessions.Run(ctx, interval)
}
