// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/digideck/internal/catalog"
)

// LevelCount is the number of digimon copies at one level.
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Stats summarizes a deck. Counts are copies, not distinct cards.
type Stats struct {
	OptionCount  int          `json:"optionCount"`
	TamerCount   int          `json:"tamerCount"`
	LevelCounts  []LevelCount `json:"levelCounts"`
	MainTotal    int          `json:"mainTotal"`
	EggTotal     int          `json:"eggTotal"`
	MainOverflow bool         `json:"mainOverflow"`
	EggOverflow  bool         `json:"eggOverflow"`
	Missing      []string     `json:"missing"`
}

/*
ComputeStats aggregates the main section of d.

Options, tamers and digimon per level are counted from the main section.
Card numbers the lookup does not know are skipped and listed in Missing,
sorted, from both sections. Totals and overflow flags cover both sections
and ignore the lookup.
*/
func ComputeStats(d Deck, lookup catalog.Lookup) Stats {
	stats := Stats{
		LevelCounts: []LevelCount{},
		Missing:     []string{},
		MainTotal:   d.Main.Total(),
		EggTotal:    d.Egg.Total(),
	}
	stats.MainOverflow = stats.MainTotal > MainSoftLimit
	stats.EggOverflow = stats.EggTotal > EggSoftLimit

	levels := make(map[string]int)
	for cardID, quantity := range d.Main {
		card, ok := lookup.Card(cardID)
		if !ok {
			stats.Missing = append(stats.Missing, cardID)
			continue
		}

		switch {
		case card.IsType(catalog.TypeDigimon):
			levels[string(card.Level)] += quantity
		case card.IsType(catalog.TypeOption):
			stats.OptionCount += quantity
		case card.IsType(catalog.TypeTamer):
			stats.TamerCount += quantity
		}
	}

	for cardID := range d.Egg {
		if _, ok := lookup.Card(cardID); !ok {
			stats.Missing = append(stats.Missing, cardID)
		}
	}

	for level, count := range levels {
		stats.LevelCounts = append(stats.LevelCounts, LevelCount{Level: level, Count: count})
	}

	collator := collate.New(language.English, collate.Numeric)
	slices.SortFunc(stats.LevelCounts, func(a, b LevelCount) int {
		return collator.CompareString(a.Level, b.Level)
	})
	slices.Sort(stats.Missing)
	stats.Missing = slices.Compact(stats.Missing)

	return stats
}
