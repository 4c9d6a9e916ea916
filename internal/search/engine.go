// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"sync"

	"github.com/taibuivan/digideck/internal/catalog"
)

// DefaultMemoSize bounds how many distinct searches the Engine remembers.
const DefaultMemoSize = 64

// Result is a filtered and sorted card sequence.
//
// Cards is shared with the Engine's memo and must be treated as read-only.
type Result struct {
	Cards  []catalog.Card
	Key    string
	Cached bool
}

// Engine evaluates searches over a fixed card sequence and memoizes results
// by the canonical criteria key. It is safe for concurrent use.
type Engine struct {
	cards    []catalog.Card
	capacity int

	mu    sync.Mutex
	memo  map[string][]catalog.Card
	order []string
}

// NewEngine creates an Engine over every card of the catalog.
func NewEngine(source *catalog.Catalog) *Engine {
	return NewEngineWithCards(source.Cards(), DefaultMemoSize)
}

// NewEngineWithCards creates an Engine over cards with a memo of the given size.
func NewEngineWithCards(cards []catalog.Card, capacity int) *Engine {
	if capacity < 1 {
		capacity = 1
	}
	return &Engine{
		cards:    cards,
		capacity: capacity,
		memo:     make(map[string][]catalog.Card, capacity),
	}
}

/*
Run filters and sorts for criteria, reusing the memoized result when an
equal search ran before.

Equality is structural: criteria that normalize to the same value share one
entry. When the memo is full the oldest entry is evicted.
*/
func (engine *Engine) Run(criteria Criteria) Result {
	normalized := criteria.Normalize()
	key := normalized.Key()

	engine.mu.Lock()
	cached, found := engine.memo[key]
	engine.mu.Unlock()

	if found {
		return Result{Cards: cached, Key: key, Cached: true}
	}

	cards := Filter(engine.cards, Build(normalized))
	Sort(cards, normalized.Sort)

	engine.mu.Lock()
	defer engine.mu.Unlock()

	// Another goroutine may have stored the same search meanwhile.
	if existing, found := engine.memo[key]; found {
		return Result{Cards: existing, Key: key, Cached: true}
	}

	if len(engine.order) >= engine.capacity {
		oldest := engine.order[0]
		engine.order = engine.order[1:]
		delete(engine.memo, oldest)
	}
	engine.memo[key] = cards
	engine.order = append(engine.order, key)

	return Result{Cards: cards, Key: key}
}

// MemoLen reports how many searches are currently memoized.
func (engine *Engine) MemoLen() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return len(engine.memo)
}
