// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"fmt"
	"slices"
	"strings"
)

// # Sort Keys

// SortKey names the field a result set is ordered by.
type SortKey string

const (
	SortColor SortKey = "color"
	SortLevel SortKey = "level"
	SortDP    SortKey = "dp"
)

// SortKeys lists every supported key, default first.
var SortKeys = []SortKey{SortColor, SortLevel, SortDP}

// ParseSortKey maps user input to a SortKey. Unknown or empty input falls
// back to [SortColor].
func ParseSortKey(raw string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if slices.Contains(SortKeys, key) {
		return key
	}
	return SortColor
}

// # Criteria

// Criteria is the structured filter state behind a card search. Empty
// fields impose no constraint.
type Criteria struct {
	Text      string
	Colors    []string
	CardTypes []string
	Rarities  []string
	Sets      []string
	Level     string
	Sort      SortKey
}

// Normalize trims text, drops blank list entries, sorts and de-duplicates
// the lists case-insensitively and resolves the sort key. Two criteria that
// select the same cards in the same order normalize to equal values.
func (c Criteria) Normalize() Criteria {
	return Criteria{
		Text:      strings.TrimSpace(c.Text),
		Colors:    normalizeList(c.Colors),
		CardTypes: normalizeList(c.CardTypes),
		Rarities:  normalizeList(c.Rarities),
		Sets:      normalizeList(c.Sets),
		Level:     strings.TrimSpace(c.Level),
		Sort:      ParseSortKey(string(c.Sort)),
	}
}

// Key is the canonical memo key of the normalized criteria.
func (c Criteria) Key() string {
	n := c.Normalize()
	return fmt.Sprintf("t=%q|c=%q|k=%q|r=%q|s=%q|l=%q|o=%s",
		strings.ToLower(n.Text), n.Colors, n.CardTypes, n.Rarities, n.Sets, strings.ToLower(n.Level), n.Sort)
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" {
			out = append(out, value)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
