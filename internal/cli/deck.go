// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/internal/deck"
	"github.com/taibuivan/digideck/internal/platform/validate"
)

func newDeckCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Edit the work-in-progress deck",
		Long: `Edit the work-in-progress deck kept in the state directory.

Every change is written through to disk, so the deck is still there the
next time digideck runs.`,
	}

	cmd.AddCommand(
		newDeckShowCommand(app),
		newDeckChangeCommand(app, "add", 1),
		newDeckChangeCommand(app, "remove", -1),
		newDeckClearCommand(app),
		newDeckStatsCommand(app),
		newDeckExportCommand(app),
		newDeckImportCommand(app),
	)
	return cmd
}

// # Show

func newDeckShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, cards, err := app.deckDependencies()
			if err != nil {
				return err
			}

			current, err := workspace.Current(cmd.Context())
			if err != nil {
				return err
			}

			renderDeck(cmd.OutOrStdout(), current, cards)
			return nil
		},
	}
}

func renderDeck(out io.Writer, current deck.Deck, cards catalog.Lookup) {
	if persisted, ok := current.Persisted(); ok {
		status := persisted.Privacy.String()
		if persisted.Dirty {
			status += ", unsaved changes"
		}
		renderField(out, "Deck", fmt.Sprintf("%s (%s, %s)", persisted.Name, persisted.CloudID, status))
	} else {
		renderField(out, "Deck", "temporary")
	}

	if current.IsEmpty() {
		renderNote(out, "The deck is empty.")
		return
	}

	var rows [][]string
	for _, section := range []deck.Section{deck.SectionMain, deck.SectionEgg} {
		entries := current.Entries(section)
		for _, cardID := range slices.Sorted(maps.Keys(entries)) {
			name := "unknown"
			if card, found := cards.Card(cardID); found {
				name = card.Name
			}
			rows = append(rows, []string{string(section), strconv.Itoa(entries[cardID]), cardID, name})
		}
	}
	renderTable(out, []string{"Section", "Qty", "Number", "Name"}, rows)
	renderNote(out, "main %d/%d, egg %d/%d", current.Main.Total(), deck.MainSoftLimit, current.Egg.Total(), deck.EggSoftLimit)
}

// # Add / Remove

func newDeckChangeCommand(app *App, verb string, sign int) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   verb + " <number> [quantity]",
		Short: strings.ToUpper(verb[:1]) + verb[1:] + " copies of a card",
		Example: fmt.Sprintf(`  digideck deck %[1]s BT1-084
  digideck deck %[1]s ST1-01 2 --section egg`, verb),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := strings.TrimSpace(args[0])

			quantity := 1
			if len(args) == 2 {
				parsed, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quantity %q is not a number", args[1])
				}
				quantity = parsed
			}

			validator := &validate.Validator{}
			validator.CardNumber("number", number).
				Range("quantity", quantity, 1, deck.MaxCopies)
			if section != "" {
				validator.OneOf("section", section, string(deck.SectionMain), string(deck.SectionEgg))
			}
			if err := validator.Err(); err != nil {
				return err
			}

			workspace, cards, err := app.deckDependencies()
			if err != nil {
				return err
			}

			requested, _ := deck.ParseSection(section)
			delta := sign * quantity
			cardID, placed, err := deck.Place(cards, number, requested, delta)
			if err != nil {
				return err
			}

			updated, err := workspace.ChangeQuantity(cmd.Context(), cardID, delta, placed)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d in %s\n", cardID, updated.Quantity(placed, cardID), placed)
			return nil
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "main or egg (inferred from the card type when omitted)")
	return cmd
}

// # Clear

func newDeckClearCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Start over with an empty temporary deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := app.workspace()
			if err != nil {
				return err
			}

			if _, err := workspace.Clear(cmd.Context()); err != nil {
				return err
			}

			renderNote(cmd.OutOrStdout(), "Deck cleared.")
			return nil
		},
	}
}

// # Stats

func newDeckStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count options, tamers and digimon per level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, cards, err := app.deckDependencies()
			if err != nil {
				return err
			}

			current, err := workspace.Current(cmd.Context())
			if err != nil {
				return err
			}

			renderStats(cmd.OutOrStdout(), deck.ComputeStats(current, cards))
			return nil
		},
	}
}

func renderStats(out io.Writer, stats deck.Stats) {
	renderField(out, "Main", sizeLabel(stats.MainTotal, deck.MainSoftLimit, stats.MainOverflow))
	renderField(out, "Egg", sizeLabel(stats.EggTotal, deck.EggSoftLimit, stats.EggOverflow))
	renderField(out, "Options", strconv.Itoa(stats.OptionCount))
	renderField(out, "Tamers", strconv.Itoa(stats.TamerCount))

	if len(stats.LevelCounts) > 0 {
		rows := make([][]string, 0, len(stats.LevelCounts))
		for _, level := range stats.LevelCounts {
			rows = append(rows, []string{level.Level, strconv.Itoa(level.Count)})
		}
		renderTable(out, []string{"Level", "Digimon"}, rows)
	}

	if len(stats.Missing) > 0 {
		renderNote(out, "Not in the catalog: %s", strings.Join(stats.Missing, ", "))
	}
}

func sizeLabel(total, limit int, overflow bool) string {
	label := fmt.Sprintf("%d/%d", total, limit)
	if overflow {
		label += " (over the limit)"
	}
	return label
}

// # Export / Import

func newDeckExportCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the deck as a text list",
		Example: `  digideck deck export
  digideck deck export -o "digimon deck.txt"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, cards, err := app.deckDependencies()
			if err != nil {
				return err
			}

			current, err := workspace.Current(cmd.Context())
			if err != nil {
				return err
			}

			text := deck.ExportText(current, cards)
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			renderNote(cmd.OutOrStdout(), "Deck written to %s.", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of standard output")
	return cmd
}

func newDeckImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the deck with a text list",
		Long: `Replace the deck with a text list in the export format.

Lines that cannot be read and cards missing from the catalog are reported
and skipped. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading deck list: %w", err)
			}

			cards, err := app.catalog()
			if err != nil {
				return err
			}

			parsed, warnings := deck.ParseText(string(data), cards)
			for _, warning := range warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", warning)
			}
			if parsed.IsEmpty() {
				return errors.New("the deck list has no readable entries")
			}

			workspace, err := app.workspace()
			if err != nil {
				return err
			}

			if _, err := workspace.Replace(cmd.Context(), func(deck.Deck) deck.Deck { return parsed }); err != nil {
				return err
			}

			renderNote(cmd.OutOrStdout(), "Imported %d main and %d egg cards.", parsed.Main.Total(), parsed.Egg.Total())
			return nil
		},
	}
}

// # Helpers

func (app *App) deckDependencies() (*deck.Workspace, *catalog.Catalog, error) {
	cards, err := app.catalog()
	if err != nil {
		return nil, nil, err
	}

	workspace, err := app.workspace()
	if err != nil {
		return nil, nil, err
	}
	return workspace, cards, nil
}
