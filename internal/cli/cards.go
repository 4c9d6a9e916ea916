// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/internal/platform/apperr"
	"github.com/taibuivan/digideck/internal/platform/validate"
	"github.com/taibuivan/digideck/internal/search"
	"github.com/taibuivan/digideck/pkg/pagination"
)

// # Card Search

type cardsOptions struct {
	query    string
	colors   []string
	types    []string
	rarities []string
	sets     []string
	level    string
	sort     string
	page     int
	limit    int
}

func newCardsCommand(app *App) *cobra.Command {
	opts := &cardsOptions{}

	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Search the card catalog",
		Long: `Search the card catalog with the same filters the card browser offers.

List filters accept several values, either repeated or comma-separated, and
match any of them. Text matches card names and effects, ignoring case.`,
		Example: `  digideck cards --color red --type digimon
  digideck cards -q "draw 1" --sort level
  digideck cards --set BT-1 --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runCards(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.query, "query", "q", "", "free text matched against names and effects")
	flags.StringSliceVar(&opts.colors, "color", nil, "card colors")
	flags.StringSliceVar(&opts.types, "type", nil, "card types (digimon, digi-egg, tamer, option)")
	flags.StringSliceVar(&opts.rarities, "rarity", nil, "rarities")
	flags.StringSliceVar(&opts.sets, "set", nil, "set codes such as BT-1")
	flags.StringVar(&opts.level, "level", "", "level such as Lv.4")
	flags.StringVar(&opts.sort, "sort", string(search.SortColor), "sort order: color, level or dp")
	flags.IntVar(&opts.page, "page", pagination.DefaultPage, "page to show, starting at 0")
	flags.IntVar(&opts.limit, "limit", pagination.DefaultLimit, "cards per page")

	return cmd
}

func (app *App) runCards(cmd *cobra.Command, opts *cardsOptions) error {
	cards, err := app.catalog()
	if err != nil {
		return err
	}

	criteria := search.Criteria{
		Text:      opts.query,
		Colors:    opts.colors,
		CardTypes: opts.types,
		Rarities:  opts.rarities,
		Sets:      opts.sets,
		Level:     opts.level,
		Sort:      search.SortKey(opts.sort),
	}

	limit := opts.limit
	if limit < 1 || limit > pagination.MaxLimit {
		limit = pagination.DefaultLimit
	}

	result := search.NewEngine(cards).Run(criteria)
	page := pagination.Paginate(result.Cards, limit, opts.page, false)

	out := cmd.OutOrStdout()
	if page.TotalCount == 0 {
		renderNote(out, "No cards match.")
		return nil
	}

	rows := make([][]string, 0, len(page.Items))
	for _, card := range page.Items {
		rows = append(rows, []string{card.Number, card.Name, card.CardType, card.Color, string(card.Level), card.Rarity})
	}
	renderTable(out, []string{"Number", "Name", "Type", "Color", "Level", "Rarity"}, rows)
	renderNote(out, "%d cards on %d pages, showing page %d", page.TotalCount, page.NumPages, page.ActualPage)

	return nil
}

// # Card Details

func newCardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "card <number>",
		Short:   "Show the details of one card",
		Example: `  digideck card BT1-084`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number := strings.TrimSpace(args[0])

			validator := &validate.Validator{}
			if err := validator.CardNumber("number", number).Err(); err != nil {
				return err
			}

			cards, err := app.catalog()
			if err != nil {
				return err
			}

			card, found := cards.Card(number)
			if !found {
				return apperr.NotFound("Card")
			}

			renderCard(cmd, card)
			return nil
		},
	}
}

func renderCard(cmd *cobra.Command, card catalog.Card) {
	out := cmd.OutOrStdout()

	renderField(out, "Number", card.Number)
	renderField(out, "Name", card.Name)
	renderField(out, "Card type", card.CardType)
	renderField(out, "Color", card.Color)
	renderField(out, "Rarity", card.Rarity)
	renderField(out, "Level", string(card.Level))
	if card.DP > 0 {
		renderField(out, "DP", strconv.Itoa(card.DP))
	}
	if card.Cost > 0 {
		renderField(out, "Cost", strconv.Itoa(card.Cost))
	}
	renderField(out, "Form", card.Form)
	renderField(out, "Attribute", card.Attribute)
	renderField(out, "Type", card.Type)
	for _, digivolve := range card.DigivolveCosts {
		renderField(out, "Digivolve", strconv.Itoa(digivolve.Cost)+" from "+digivolve.FromColor+" "+string(digivolve.FromLevel))
	}
	renderField(out, "Effect", card.Effect)
	renderField(out, "Inherited effect", card.InheritedEffect)
	renderField(out, "Digivolve effect", card.DigivolveEffect)
	renderField(out, "Security effect", card.SecurityEffect)
	renderField(out, "Sets", strings.Join(card.Sets(), ", "))
	renderField(out, "Image", card.ImageURL())
	renderField(out, "Notes", card.Notes)
}
