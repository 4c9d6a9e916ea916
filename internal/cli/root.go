// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements the digideck command line client.

The CLI works offline: the card catalog is the embedded data (or
CATALOG_DIR) and the work-in-progress deck lives in a JSON file under the
state directory, so a deck survives between invocations the same way the
browser slot survives a reload.

Commands:

  - cards: filtered, sorted and paginated card search.
  - card <number>: full details of one card.
  - deck show|add|remove|clear|stats|export|import: edit the local deck.
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/internal/deck"
	"github.com/taibuivan/digideck/internal/platform/apperr"
)

// # Settings

// Settings are the environment defaults of the persistent flags.
type Settings struct {
	CatalogDir string `env:"CATALOG_DIR"`
	StateDir   string `env:"DIGIDECK_STATE_DIR"`
	Debug      bool   `env:"DIGIDECK_DEBUG" envDefault:"false"`
}

// LoadSettings reads [Settings] from the environment. An empty StateDir
// falls back to the user configuration directory.
func LoadSettings() (Settings, error) {
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("cli: failed to parse environment variables: %w", err)
	}

	if settings.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = os.TempDir()
		}
		settings.StateDir = filepath.Join(base, "digideck")
	}
	return settings, nil
}

// # Application

// App carries the state shared by every command of one invocation.
type App struct {
	settings Settings
	logger   *slog.Logger
	cards    *catalog.Catalog
}

// NewRootCommand builds the command tree. settings provide the flag defaults.
func NewRootCommand(settings Settings) *cobra.Command {
	app := &App{settings: settings}

	root := &cobra.Command{
		Use:           "digideck",
		Short:         "Browse Digimon cards and build decks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if app.settings.Debug {
				level = slog.LevelDebug
			}
			app.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.settings.CatalogDir, "catalog-dir", settings.CatalogDir, "directory of card JSON batches (defaults to the embedded data)")
	flags.StringVar(&app.settings.StateDir, "state-dir", settings.StateDir, "directory holding the work-in-progress deck")
	flags.BoolVar(&app.settings.Debug, "debug", settings.Debug, "log at debug level")

	root.AddCommand(
		newCardsCommand(app),
		newCardCommand(app),
		newDeckCommand(app),
	)
	return root
}

// Execute runs the command tree with args under ctx.
func Execute(ctx context.Context, args []string) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}

	root := NewRootCommand(settings)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ErrorMessage renders err for the terminal, listing validation details.
func ErrorMessage(err error) string {
	appErr := apperr.As(err)
	if appErr == nil || len(appErr.Details) == 0 {
		return err.Error()
	}

	lines := []string{appErr.Message}
	for _, detail := range appErr.Details {
		lines = append(lines, fmt.Sprintf("  %s: %s", detail.Field, detail.Message))
	}
	return strings.Join(lines, "\n")
}

// # Dependencies

// catalog loads the card catalog once per invocation.
func (app *App) catalog() (*catalog.Catalog, error) {
	if app.cards != nil {
		return app.cards, nil
	}

	cards, err := catalog.Open(app.settings.CatalogDir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	app.logger.Debug("catalog_loaded", slog.Int("cards", cards.Len()))

	app.cards = cards
	return cards, nil
}

// workspace opens the deck slot under the state directory.
func (app *App) workspace() (*deck.Workspace, error) {
	store, err := deck.NewFileLocalStore(app.settings.StateDir)
	if err != nil {
		return nil, fmt.Errorf("opening state directory: %w", err)
	}
	return deck.NewWorkspace(store, deck.SlotKey, app.logger), nil
}
