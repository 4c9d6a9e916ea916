// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/digideck/internal/cli"
	"github.com/taibuivan/digideck/internal/deck"
	"github.com/taibuivan/digideck/internal/platform/apperr"
)

type result struct {
	out    string
	errOut string
	err    error
}

func run(t *testing.T, stateDir, stdin string, args ...string) result {
	t.Helper()

	root := cli.NewRootCommand(cli.Settings{StateDir: stateDir})

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

/*
TestDeck_EditPersistsBetweenRuns edits the deck across separate invocations.
*/
func TestDeck_EditPersistsBetweenRuns(t *testing.T) {
	dir := t.TempDir()

	added := run(t, dir, "", "deck", "add", "ST1-02", "2")
	require.NoError(t, added.err)
	assert.Equal(t, "ST1-02: 2 in main\n", added.out)

	egg := run(t, dir, "", "deck", "add", "st1-01")
	require.NoError(t, egg.err)
	assert.Equal(t, "ST1-01: 1 in egg\n", egg.out)

	assert.FileExists(t, filepath.Join(dir, "wip.json"))

	shown := run(t, dir, "", "deck", "show")
	require.NoError(t, shown.err)
	assert.Contains(t, shown.out, "temporary")
	assert.Contains(t, shown.out, "Biyomon")
	assert.Contains(t, shown.out, "Koromon")

	exported := run(t, dir, "", "deck", "export")
	require.NoError(t, exported.err)
	assert.Equal(t, "[MAIN]\n2 ST1-02 (Biyomon)\n[EGG]\n1 ST1-01 (Koromon)\n", exported.out)

	removed := run(t, dir, "", "deck", "remove", "ST1-02", "4")
	require.NoError(t, removed.err)
	assert.Equal(t, "ST1-02: 0 in main\n", removed.out)

	cleared := run(t, dir, "", "deck", "clear")
	require.NoError(t, cleared.err)

	empty := run(t, dir, "", "deck", "export")
	require.NoError(t, empty.err)
	assert.Equal(t, "[MAIN]\n[EGG]\n", empty.out)
}

/*
TestDeck_ChangeRejected covers the inputs an edit refuses.
*/
func TestDeck_ChangeRejected(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{name: "unknown_card", args: []string{"deck", "add", "ST9-99"}, wantCode: "NOT_FOUND"},
		{name: "too_many_copies", args: []string{"deck", "add", "ST1-02", "5"}, wantCode: "VALIDATION_ERROR"},
		{name: "bad_number", args: []string{"deck", "add", "agumon"}, wantCode: "VALIDATION_ERROR"},
		{name: "bad_section", args: []string{"deck", "add", "ST1-02", "--section", "side"}, wantCode: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, t.TempDir(), "", tt.args...)
			require.Error(t, res.err)
			assert.True(t, apperr.HasCode(res.err, tt.wantCode), res.err)
		})
	}
}

/*
TestDeck_RemoveUnknownCard lets a stale entry be cleaned up.
*/
func TestDeck_RemoveUnknownCard(t *testing.T) {
	dir := t.TempDir()

	imported := run(t, dir, "[MAIN]\n2 ST9-99\n", "deck", "import", "-")
	require.NoError(t, imported.err)

	removed := run(t, dir, "", "deck", "remove", "ST9-99", "2")
	require.NoError(t, removed.err)

	exported := run(t, dir, "", "deck", "export")
	require.NoError(t, exported.err)
	assert.Equal(t, "[MAIN]\n[EGG]\n", exported.out)
}

/*
TestDeck_Import reads a list from a file and from standard input.
*/
func TestDeck_Import(t *testing.T) {
	t.Run("file_with_warnings", func(t *testing.T) {
		dir := t.TempDir()
		list := filepath.Join(t.TempDir(), "list.txt")
		require.NoError(t, os.WriteFile(list, []byte("[MAIN]\n4 ST1-03 (Agumon)\nnot a card\n[egg]\n1 ST2-01\n"), 0o644))

		imported := run(t, dir, "", "deck", "import", list)
		require.NoError(t, imported.err)
		assert.Contains(t, imported.out, "Imported 4 main and 1 egg cards.")
		assert.Contains(t, imported.errOut, "warning: line 3")

		exported := run(t, dir, "", "deck", "export")
		require.NoError(t, exported.err)
		assert.Equal(t, "[MAIN]\n4 ST1-03 (Agumon)\n[EGG]\n1 ST2-01 (Tsunomon)\n", exported.out)
	})

	t.Run("numbers_resolved_through_catalog", func(t *testing.T) {
		dir := t.TempDir()

		imported := run(t, dir, "4 st1-03\n2 ST9-99\n", "deck", "import", "-")
		require.NoError(t, imported.err)
		assert.Contains(t, imported.out, "Imported 4 main and 0 egg cards.")
		assert.Contains(t, imported.errOut, "warning: line 2: skipped unknown card ST9-99")

		added := run(t, dir, "", "deck", "add", "ST1-03", "4")
		require.NoError(t, added.err)
		assert.Contains(t, added.out, "ST1-03: 4 in main")

		exported := run(t, dir, "", "deck", "export")
		require.NoError(t, exported.err)
		assert.Equal(t, "[MAIN]\n4 ST1-03 (Agumon)\n[EGG]\n", exported.out)
	})

	t.Run("only_unknown_cards", func(t *testing.T) {
		dir := t.TempDir()

		imported := run(t, dir, "4 ST9-99\n", "deck", "import", "-")
		require.Error(t, imported.err)
		assert.Contains(t, imported.errOut, "skipped unknown card ST9-99")
	})

	t.Run("nothing_readable", func(t *testing.T) {
		dir := t.TempDir()

		seeded := run(t, dir, "", "deck", "add", "ST1-02")
		require.NoError(t, seeded.err)

		imported := run(t, dir, "hello\n", "deck", "import", "-")
		require.Error(t, imported.err)

		exported := run(t, dir, "", "deck", "export")
		require.NoError(t, exported.err)
		assert.Contains(t, exported.out, "ST1-02", "a failed import keeps the deck")
	})
}

/*
TestDeck_Stats summarizes the main section.
*/
func TestDeck_Stats(t *testing.T) {
	dir := t.TempDir()

	store, err := deck.NewFileLocalStore(dir)
	require.NoError(t, err)

	seeded := deck.New()
	seeded.Main = deck.Entries{"ST1-02": 3, "ST1-07": 1, "ST1-12": 2, "ST1-13": 1, "ST9-99": 1}
	seeded.Egg = deck.Entries{"ST1-01": 4}
	slot, err := deck.Encode(seeded)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), deck.SlotKey, slot))

	stats := run(t, dir, "", "deck", "stats")
	require.NoError(t, stats.err)
	assert.Contains(t, stats.out, "8/50")
	assert.Contains(t, stats.out, "4/5")
	assert.Contains(t, stats.out, "Lv.3")
	assert.Contains(t, stats.out, "Lv.4")
	assert.Contains(t, stats.out, "Not in the catalog: ST9-99")
}

/*
TestCards_Search filters and paginates the embedded catalog.
*/
func TestCards_Search(t *testing.T) {
	res := run(t, t.TempDir(), "", "cards", "--color", "blue", "--type", "digimon", "--limit", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "5 cards on 3 pages, showing page 0")
	assert.NotContains(t, res.out, "Agumon")

	last := run(t, t.TempDir(), "", "cards", "--color", "blue", "--type", "digimon", "--limit", "2", "--page", "9")
	require.NoError(t, last.err)
	assert.Contains(t, last.out, "showing page 2")

	none := run(t, t.TempDir(), "", "cards", "-q", "no such card anywhere")
	require.NoError(t, none.err)
	assert.Contains(t, none.out, "No cards match.")
}

/*
TestCard_Details looks a card up by number, ignoring case.
*/
func TestCard_Details(t *testing.T) {
	res := run(t, t.TempDir(), "", "card", "st1-07")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "ST1-07")
	assert.Contains(t, res.out, "Greymon")
	assert.Contains(t, res.out, "Lv.4")

	missing := run(t, t.TempDir(), "", "card", "ST9-99")
	assert.True(t, apperr.HasCode(missing.err, "NOT_FOUND"))
}

/*
TestErrorMessage lists validation details under the message.
*/
func TestErrorMessage(t *testing.T) {
	res := run(t, t.TempDir(), "", "deck", "add", "ST1-02", "9")
	require.Error(t, res.err)

	message := cli.ErrorMessage(res.err)
	assert.True(t, strings.HasPrefix(message, "Validation failed\n"), message)
	assert.Contains(t, message, "  quantity: ")

	assert.Equal(t, "Card not found", cli.ErrorMessage(apperr.NotFound("Card")))
}

/*
TestLoadSettings reads the state directory from the environment.
*/
func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DIGIDECK_STATE_DIR", dir)
	t.Setenv("CATALOG_DIR", "")

	settings, err := cli.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, dir, settings.StateDir)
	assert.Empty(t, settings.CatalogDir)
}
