// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/taibuivan/digideck/internal/catalog"
)

// deckLine matches "<quantity> <number>" with an optional "(<name>)".
var deckLine = regexp.MustCompile(`^(\d+)\s+(\S+)(?:\s+\(.*\))?$`)

/*
ParseText reads a deck list in the [ExportText] format into a temporary deck.

Section headers are case-insensitive and lines before any header belong to
the main section. Card numbers are resolved through lookup and stored under
their canonical form, so case variants of one card are summed together.
Cards the lookup does not know are skipped. Every quantity is then clamped
to [1, MaxCopies]. Blank lines are skipped. Lines that cannot be read are
reported as warnings, as are unknown cards and every clamp.
*/
func ParseText(text string, lookup catalog.Lookup) (Deck, []string) {
	var warnings []string
	result := New()
	section := SectionMain

	scanner := bufio.NewScanner(strings.NewReader(text))
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case strings.EqualFold(line, headerMain):
			section = SectionMain
			continue
		case strings.EqualFold(line, headerEgg):
			section = SectionEgg
			continue
		}

		match := deckLine.FindStringSubmatch(line)
		if match == nil {
			warnings = append(warnings, fmt.Sprintf("line %d: cannot read %q", lineNumber, line))
			continue
		}

		quantity, err := strconv.Atoi(match[1])
		if err != nil || quantity < 1 {
			warnings = append(warnings, fmt.Sprintf("line %d: skipped %s with quantity %s", lineNumber, match[2], match[1]))
			continue
		}

		card, known := lookup.Card(match[2])
		if !known {
			warnings = append(warnings, fmt.Sprintf("line %d: skipped unknown card %s", lineNumber, match[2]))
			continue
		}

		entries := result.Entries(section)
		entries[card.Number] = min(entries[card.Number]+min(quantity, MaxCopies+1), MaxCopies+1)
	}

	for _, section := range []Section{SectionMain, SectionEgg} {
		entries := result.Entries(section)
		for cardID, quantity := range entries {
			if quantity > MaxCopies {
				warnings = append(warnings, fmt.Sprintf("%s: clamped %s to %d copies", section, cardID, MaxCopies))
				entries[cardID] = MaxCopies
			}
		}
	}

	return result, warnings
}
