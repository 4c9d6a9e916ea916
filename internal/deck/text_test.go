// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/digideck/internal/deck"
)

/*
TestExportText renders sorted sections with catalog names.
*/
func TestExportText(t *testing.T) {
	cards := testCards(t)

	tests := []struct {
		name string
		main deck.Entries
		egg  deck.Entries
		want string
	}{
		{
			name: "single_card_empty_egg",
			main: deck.Entries{"BT1-01": 2},
			egg:  deck.Entries{},
			want: "[MAIN]\n2 BT1-01 (Agumon)\n[EGG]",
		},
		{
			name: "empty_deck",
			want: "[MAIN]\n[EGG]",
		},
		{
			name: "sorted_with_unknown",
			main: deck.Entries{"BT1-06": 1, "BT1-02": 4, "ZZ9-99": 3},
			egg:  deck.Entries{"BT1-04": 4},
			want: "[MAIN]\n4 BT1-02 (Greymon)\n1 BT1-06 (Gaia Force)\n3 ZZ9-99 (unknown)\n[EGG]\n4 BT1-04 (Koromon)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := deck.New()
			if tt.main != nil {
				d.Main = tt.main
			}
			if tt.egg != nil {
				d.Egg = tt.egg
			}

			assert.Equal(t, tt.want, deck.ExportText(d, cards))
		})
	}
}

/*
TestParseText_RoundTrip reads back what ExportText writes.
*/
func TestParseText_RoundTrip(t *testing.T) {
	cards := testCards(t)

	original := deck.New()
	original.Main = deck.Entries{"BT1-01": 4, "BT1-05": 2}
	original.Egg = deck.Entries{"BT1-04": 3}

	parsed, warnings := deck.ParseText(deck.ExportText(original, cards), cards)

	assert.Empty(t, warnings)
	assert.Equal(t, original, parsed)
}

/*
TestParseText_Lenient accepts hand-written lists and reports what it skipped.
*/
func TestParseText_Lenient(t *testing.T) {
	text := "2 BT1-01\r\n" +
		"\n" +
		"3 bt1-01 (Agumon again)\n" +
		"[egg]\n" +
		"1 BT1-04 (Koromon)\n" +
		"0 BT1-05\n" +
		"2 ZZ9-99 (Mystery)\n" +
		"Koromon x2\n"

	parsed, warnings := deck.ParseText(text, testCards(t))

	assert.Equal(t, deck.Entries{"BT1-01": 4}, parsed.Main)
	assert.Equal(t, deck.Entries{"BT1-04": 1}, parsed.Egg)
	assert.Equal(t, []string{
		`line 6: skipped BT1-05 with quantity 0`,
		`line 7: skipped unknown card ZZ9-99`,
		`line 8: cannot read "Koromon x2"`,
		`main: clamped BT1-01 to 4 copies`,
	}, warnings)
	assert.IsType(t, deck.Temporary{}, parsed.Origin)
}

/*
TestParseText_CanonicalNumbers stores imported cards under the number the
add path uses, so later edits land on the same entry.
*/
func TestParseText_CanonicalNumbers(t *testing.T) {
	cards := testCards(t)

	parsed, warnings := deck.ParseText("[MAIN]\n4 bt1-02 (Greymon)", cards)
	require.Empty(t, warnings)

	cardID, section, err := deck.Place(cards, "BT1-02", "", 4)
	require.NoError(t, err)

	updated := deck.ChangeQuantity(parsed, cardID, 4, section)

	assert.Equal(t, deck.Entries{"BT1-02": 4}, updated.Main)
	assert.Equal(t, 4, deck.ComputeStats(updated, cards).MainTotal)
}
