// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog holds the static, read-only set of trading cards.

Cards are loaded once at startup from JSON batches (one file per released
set, concatenated in file name order) and never change afterwards. The
Catalog derives a case-insensitive index by card number and the distinct
values of the filterable fields (facets) that the filter UI offers.

Accessors hand out copies, so no caller can mutate the loaded data.
*/
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// ErrDuplicateNumber is returned when two records share a card number.
var ErrDuplicateNumber = errors.New("catalog: duplicate card number")

// Lookup resolves a card number. Deck statistics and export depend on it
// rather than on the whole Catalog.
type Lookup interface {
	Card(number string) (Card, bool)
}

// Facets lists the distinct values of each filterable field, in first-seen order.
type Facets struct {
	Colors    []string `json:"colors"`
	CardTypes []string `json:"cardTypes"`
	Rarities  []string `json:"rarities"`
	Sets      []string `json:"sets"`
	Levels    []string `json:"levels"`
}

// Catalog is the immutable set of cards.
type Catalog struct {
	cards    []Card
	byNumber map[string]int
	facets   Facets
}

/*
New builds a Catalog from cards in the given order.

Returns:
  - *Catalog: The indexed catalog
  - error: ErrDuplicateNumber if a card number appears twice (ignoring case)
*/
func New(cards []Card) (*Catalog, error) {
	catalog := &Catalog{
		cards:    make([]Card, 0, len(cards)),
		byNumber: make(map[string]int, len(cards)),
	}

	for _, card := range cards {
		key := numberKey(card.Number)
		if key == "" {
			return nil, fmt.Errorf("catalog: card %q has no number", card.Name)
		}
		if _, exists := catalog.byNumber[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNumber, card.Number)
		}

		catalog.byNumber[key] = len(catalog.cards)
		catalog.cards = append(catalog.cards, card.clone())

		catalog.facets.Colors = appendFacet(catalog.facets.Colors, card.Color)
		catalog.facets.CardTypes = appendFacet(catalog.facets.CardTypes, card.CardType)
		catalog.facets.Rarities = appendFacet(catalog.facets.Rarities, card.Rarity)
		catalog.facets.Levels = appendFacet(catalog.facets.Levels, string(card.Level))
		for _, set := range card.Sets() {
			catalog.facets.Sets = appendFacet(catalog.facets.Sets, set)
		}
	}

	return catalog, nil
}

/*
Load reads every *.json file at the root of fsys in file name order. Each
file holds a JSON array of cards.

Returns:
  - *Catalog: The concatenated catalog
  - error: Read, decode or duplicate-number failures, naming the file
*/
func Load(fsys fs.FS) (*Catalog, error) {
	names, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: list batches: %w", err)
	}
	slices.Sort(names)

	var cards []Card
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", name, err)
		}

		var batch []Card
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("catalog: decode %s: %w", path.Base(name), err)
		}
		cards = append(cards, batch...)
	}

	return New(cards)
}

// Len reports the number of cards.
func (catalog *Catalog) Len() int {
	return len(catalog.cards)
}

// Cards returns a copy of every card in catalog order.
func (catalog *Catalog) Cards() []Card {
	cards := make([]Card, len(catalog.cards))
	for i, card := range catalog.cards {
		cards[i] = card.clone()
	}
	return cards
}

// Card looks a card up by number, ignoring case.
func (catalog *Catalog) Card(number string) (Card, bool) {
	index, found := catalog.byNumber[numberKey(number)]
	if !found {
		return Card{}, false
	}
	return catalog.cards[index].clone(), true
}

// Facets returns a copy of the distinct field values.
func (catalog *Catalog) Facets() Facets {
	return Facets{
		Colors:    slices.Clone(catalog.facets.Colors),
		CardTypes: slices.Clone(catalog.facets.CardTypes),
		Rarities:  slices.Clone(catalog.facets.Rarities),
		Sets:      slices.Clone(catalog.facets.Sets),
		Levels:    slices.Clone(catalog.facets.Levels),
	}
}

// numberKey folds a card number for the index. A Caser is stateful, so each
// call builds its own.
func numberKey(number string) string {
	return cases.Fold().String(strings.TrimSpace(number))
}

func appendFacet(values []string, value string) []string {
	if value == "" || containsFold(values, value) {
		return values
	}
	return append(values, value)
}

func containsFold(values []string, value string) bool {
	return slices.ContainsFunc(values, func(existing string) bool {
		return strings.EqualFold(existing, value)
	})
}
