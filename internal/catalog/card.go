// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// # Card Types

// Card type names as they appear in the card data. Comparisons are case-insensitive.
const (
	TypeDigimon = "Digimon"
	TypeDigiEgg = "Digi-Egg"
	TypeOption  = "Option"
	TypeTamer   = "Tamer"
)

// # Card Model

// Card is one immutable record of the catalog.
type Card struct {
	Number          string          `json:"number"`
	Name            string          `json:"name"`
	CardType        string          `json:"cardType"`
	Color           string          `json:"color"`
	Rarity          string          `json:"rarity"`
	Level           Level           `json:"level,omitempty"`
	DP              int             `json:"dp,omitempty"`
	Cost            int             `json:"cost,omitempty"`
	Form            string          `json:"form,omitempty"`
	Attribute       string          `json:"attribute,omitempty"`
	Type            string          `json:"type,omitempty"`
	DigivolveCosts  []DigivolveCost `json:"digivolveCosts,omitempty"`
	Effect          string          `json:"effect,omitempty"`
	InheritedEffect string          `json:"inheritedEffect,omitempty"`
	DigivolveEffect string          `json:"digivolveEffect,omitempty"`
	SecurityEffect  string          `json:"securityEffect,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Printings       []Printing      `json:"printings"`
}

// Printing is one release of a card in a given set.
type Printing struct {
	Name     string `json:"name"`
	Set      string `json:"set"`
	ImageURL string `json:"imageURL"`
}

// DigivolveCost is one way a Digimon can be digivolved into.
type DigivolveCost struct {
	Cost      int    `json:"cost"`
	FromLevel Level  `json:"fromLevel"`
	FromColor string `json:"fromColor"`
}

// IsType reports whether the card's type equals name, ignoring case.
func (c Card) IsType(name string) bool {
	return strings.EqualFold(c.CardType, name)
}

// IsEgg reports whether the card belongs in the egg section of a deck.
func (c Card) IsEgg() bool {
	return c.IsType(TypeDigiEgg)
}

// Sets returns the distinct set names across the card's printings, in printing order.
func (c Card) Sets() []string {
	sets := make([]string, 0, len(c.Printings))
	for _, printing := range c.Printings {
		if printing.Set != "" && !containsFold(sets, printing.Set) {
			sets = append(sets, printing.Set)
		}
	}
	return sets
}

// ImageURL returns the image of the first printing, or "" for a card without printings.
func (c Card) ImageURL() string {
	if len(c.Printings) == 0 {
		return ""
	}
	return c.Printings[0].ImageURL
}

// clone returns a deep copy so callers cannot reach the catalog's slices.
func (c Card) clone() Card {
	c.Printings = append([]Printing(nil), c.Printings...)
	c.DigivolveCosts = append([]DigivolveCost(nil), c.DigivolveCosts...)
	return c
}

// # Level

// Level is a card level such as "Lv.3".
//
// The card data carries levels either as numbers (3) or strings ("3",
// "Lv.3", "unknown"). Numbers and bare digits are normalised to "Lv.N";
// other strings are kept as written.
type Level string

// UnmarshalJSON accepts a JSON number, string or null.
func (l *Level) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
		return nil

	case len(data) > 0 && data[0] == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("catalog: invalid level %s: %w", data, err)
		}
		*l = normaliseLevel(strings.TrimSpace(text))
		return nil

	default:
		number, err := strconv.Atoi(string(data))
		if err != nil {
			return fmt.Errorf("catalog: invalid level %s: %w", data, err)
		}
		*l = Level("Lv." + strconv.Itoa(number))
		return nil
	}
}

func normaliseLevel(text string) Level {
	if _, err := strconv.Atoi(text); err == nil {
		return Level("Lv." + text)
	}
	return Level(text)
}
