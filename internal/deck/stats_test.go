// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/digideck/internal/deck"
)

/*
TestComputeStats counts copies by card type and level.
*/
func TestComputeStats(t *testing.T) {
	d := deck.New()
	d.Main = deck.Entries{
		"BT1-01": 4,
		"BT1-02": 3,
		"BT1-03": 1,
		"BT1-05": 2,
		"BT1-06": 4,
		"ZZ9-99": 2,
	}
	d.Egg = deck.Entries{"BT1-04": 4, "ZZ9-00": 1}

	got := deck.ComputeStats(d, testCards(t))

	want := deck.Stats{
		OptionCount: 4,
		TamerCount:  2,
		LevelCounts: []deck.LevelCount{
			{Level: "Lv.3", Count: 4},
			{Level: "Lv.4", Count: 3},
			{Level: "Lv.10", Count: 1},
		},
		MainTotal: 16,
		EggTotal:  5,
		Missing:   []string{"ZZ9-00", "ZZ9-99"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeStats mismatch (-want +got):\n%s", diff)
	}
}

/*
TestComputeStats_Overflow flags sections above their advisory size.
*/
func TestComputeStats_Overflow(t *testing.T) {
	d := deck.New()
	for i := range 13 {
		d.Main[string(rune('A'+i))+"-1"] = 4
	}
	d.Egg = deck.Entries{"E-1": 4, "E-2": 2}

	stats := deck.ComputeStats(d, testCards(t))

	assert.Equal(t, 52, stats.MainTotal)
	assert.True(t, stats.MainOverflow)
	assert.True(t, stats.EggOverflow)
	assert.Empty(t, stats.LevelCounts)
	assert.Len(t, stats.Missing, 15)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := deck.ComputeStats(deck.New(), testCards(t))

	assert.Equal(t, deck.Stats{LevelCounts: []deck.LevelCount{}, Missing: []string{}}, stats)
}
