// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/digideck/internal/catalog"
)

/*
TestLoad_ConcatenatesInFileNameOrder verifies batches are read in name order.
*/
func TestLoad_ConcatenatesInFileNameOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"b.json":    {Data: []byte(`[{"number":"B-1","name":"Second","cardType":"Option","printings":[]}]`)},
		"a.json":    {Data: []byte(`[{"number":"A-1","name":"First","cardType":"Tamer","printings":[]}]`)},
		"notes.txt": {Data: []byte(`ignored`)},
	}

	loaded, err := catalog.Load(fsys)
	require.NoError(t, err)

	cards := loaded.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "A-1", cards[0].Number)
	assert.Equal(t, "B-1", cards[1].Number)
}

/*
TestLoad_RejectsDuplicates verifies that card numbers are unique across batches.
*/
func TestLoad_RejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`[{"number":"BT1-010","name":"Agumon","printings":[]}]`)},
		"b.json": {Data: []byte(`[{"number":"bt1-010","name":"Agumon again","printings":[]}]`)},
	}

	_, err := catalog.Load(fsys)
	assert.ErrorIs(t, err, catalog.ErrDuplicateNumber)
}

/*
TestLoad_RejectsMalformedBatch names the offending file.
*/
func TestLoad_RejectsMalformedBatch(t *testing.T) {
	_, err := catalog.Load(fstest.MapFS{"broken.json": {Data: []byte(`{"number":`)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.json")
}

/*
TestLevel_UnmarshalJSON normalises numeric and string levels.
*/
func TestLevel_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want catalog.Level
	}{
		{"number", `3`, "Lv.3"},
		{"digit_string", `"4"`, "Lv.4"},
		{"prefixed", `"Lv.5"`, "Lv.5"},
		{"unknown", `"unknown"`, "unknown"},
		{"null", `null`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var level catalog.Level
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &level))
			assert.Equal(t, tt.want, level)
		})
	}

	var level catalog.Level
	assert.Error(t, json.Unmarshal([]byte(`true`), &level))
}

/*
TestEmbedded loads the compiled-in batches and checks lookups and facets.
*/
func TestEmbedded(t *testing.T) {
	loaded, err := catalog.Embedded()
	require.NoError(t, err)
	assert.Equal(t, 24, loaded.Len())

	card, found := loaded.Card("bt1-010")
	require.True(t, found)
	assert.Equal(t, "Agumon", card.Name)
	assert.Equal(t, catalog.Level("Lv.3"), card.Level)
	assert.Equal(t, []string{"BT-1", "P"}, card.Sets())

	_, found = loaded.Card("XX9-999")
	assert.False(t, found)

	egg, found := loaded.Card("ST1-01")
	require.True(t, found)
	assert.True(t, egg.IsEgg())

	facets := loaded.Facets()
	assert.Equal(t, []string{"Red", "Blue", "Green", "White"}, facets.Colors)
	assert.Equal(t, []string{"Digi-Egg", "Digimon", "Tamer", "Option"}, facets.CardTypes)
	assert.Equal(t, []string{"BT-1", "P", "ST-1", "ST-2"}, facets.Sets)
	assert.Contains(t, facets.Levels, "Lv.7")
}

/*
TestCatalog_ReturnsCopies verifies that callers cannot mutate the catalog.
*/
func TestCatalog_ReturnsCopies(t *testing.T) {
	loaded, err := catalog.New([]catalog.Card{{
		Number:    "BT1-010",
		Name:      "Agumon",
		Printings: []catalog.Printing{{Name: "Agumon", Set: "BT-1"}},
	}})
	require.NoError(t, err)

	card, _ := loaded.Card("BT1-010")
	card.Name = "Changed"
	card.Printings[0].Set = "Changed"

	cards := loaded.Cards()
	cards[0].Printings[0].Set = "Changed too"

	facets := loaded.Facets()
	facets.Sets[0] = "Changed"

	again, _ := loaded.Card("BT1-010")
	assert.Equal(t, "Agumon", again.Name)
	assert.Equal(t, "BT-1", again.Printings[0].Set)
	assert.Equal(t, []string{"BT-1"}, loaded.Facets().Sets)
}
