// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/internal/platform/apperr"
)

/*
Place resolves the card id and section a quantity change applies to.

A known card is stored under its canonical number. When requested is empty
the section is egg for digi-eggs and main otherwise. Adding copies of a card
the lookup does not know fails with NotFound; removing them is allowed so
stale entries can be cleaned up.
*/
func Place(lookup catalog.Lookup, number string, requested Section, delta int) (string, Section, error) {
	cardID := number
	section := requested

	card, known := lookup.Card(number)
	switch {
	case known:
		cardID = card.Number
		if section == "" && card.IsEgg() {
			section = SectionEgg
		}
	case delta > 0:
		return "", "", apperr.NotFound("Card")
	}

	if section == "" {
		section = SectionMain
	}
	return cardID, section, nil
}
