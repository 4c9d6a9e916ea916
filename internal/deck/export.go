// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"fmt"
	"slices"
	"strings"

	"github.com/taibuivan/digideck/internal/catalog"
)

// ExportFilename is the download name of an exported deck.
const ExportFilename = "digimon deck.txt"

// unknownName stands in for cards the catalog does not know.
const unknownName = "unknown"

const (
	headerMain = "[MAIN]"
	headerEgg  = "[EGG]"
)

/*
ExportText renders d as a plain-text deck list.

	[MAIN]
	<quantity> <number> (<name>)
	[EGG]
	<quantity> <number> (<name>)

Entries are sorted by card number and lines are joined by a newline with
none at the end.
*/
func ExportText(d Deck, lookup catalog.Lookup) string {
	lines := []string{headerMain}
	lines = append(lines, exportSection(d.Main, lookup)...)
	lines = append(lines, headerEgg)
	lines = append(lines, exportSection(d.Egg, lookup)...)
	return strings.Join(lines, "\n")
}

func exportSection(entries Entries, lookup catalog.Lookup) []string {
	ids := make([]string, 0, len(entries))
	for cardID := range entries {
		ids = append(ids, cardID)
	}
	slices.Sort(ids)

	lines := make([]string, 0, len(ids))
	for _, cardID := range ids {
		name := unknownName
		if card, ok := lookup.Card(cardID); ok {
			name = card.Name
		}
		lines = append(lines, fmt.Sprintf("%d %s (%s)", entries[cardID], cardID, name))
	}
	return lines
}
