// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search filters, sorts and memoizes card searches over the catalog.

A search starts from [Criteria] (the structured filter state), which [Build]
turns into a [Spec]: an ordered list of clauses joined by AND. [Filter] keeps
catalog order and [Sort] orders stably by a [SortKey]. The [Engine]
memoizes (criteria, sort key) results, and the [Browser] remembers the last
search of each browsing session so a changed filter sends the user back to
the first page.
*/
package search

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/digideck/internal/catalog"
)

// Filter returns the cards that pass spec, in their original order.
func Filter(cards []catalog.Card, spec Spec) []catalog.Card {
	m := newMatcher()

	out := make([]catalog.Card, 0, len(cards))
	for i := range cards {
		if m.matches(&cards[i], spec) {
			out = append(out, cards[i])
		}
	}
	return out
}

// Sort orders cards in place by key. The sort is stable, so ties keep
// their previous relative order.
//
// Text keys use an English collator with numeric ordering ("Lv.10" after
// "Lv.3"); [SortDP] compares numerically.
func Sort(cards []catalog.Card, key SortKey) {
	if key == SortDP {
		slices.SortStableFunc(cards, func(a, b catalog.Card) int {
			return cmp.Compare(a.DP, b.DP)
		})
		return
	}

	// A Collator is not safe for concurrent use.
	collator := collate.New(language.English, collate.Numeric)
	text := sortText(key)

	slices.SortStableFunc(cards, func(a, b catalog.Card) int {
		return collator.CompareString(text(&a), text(&b))
	})
}

func sortText(key SortKey) func(*catalog.Card) string {
	switch key {
	case SortLevel:
		return func(card *catalog.Card) string { return string(card.Level) }
	default:
		return func(card *catalog.Card) string { return card.Color }
	}
}
