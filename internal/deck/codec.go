// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"encoding/json"
	"fmt"
	"math"
)

// Origin tags in the local slot format.
const (
	typeTemporary = "temp"
	typePersisted = "persisted"
)

// wireDeck is the local slot format, also used for API responses.
type wireDeck struct {
	Type    string  `json:"type"`
	Main    Entries `json:"main"`
	Egg     Entries `json:"egg"`
	CloudID string  `json:"cloudId,omitempty"`
	Name    string  `json:"name,omitempty"`
	Dirty   bool    `json:"dirty,omitempty"`
	Privacy Privacy `json:"privacy,omitempty"`
}

// Encode serializes d into the local slot format.
func Encode(d Deck) ([]byte, error) {
	return json.Marshal(toWire(d))
}

// MarshalJSON renders a deck in the local slot format.
func (d Deck) MarshalJSON() ([]byte, error) {
	return Encode(d)
}

func toWire(d Deck) wireDeck {
	d = d.Clone()
	wire := wireDeck{Type: typeTemporary, Main: d.Main, Egg: d.Egg}

	if persisted, ok := d.Persisted(); ok {
		wire.Type = typePersisted
		wire.CloudID = persisted.CloudID
		wire.Name = persisted.Name
		wire.Dirty = persisted.Dirty
		wire.Privacy = persisted.Privacy
	}

	return wire
}

/*
Decode reads the local slot format with best-effort recovery.

Decode never fails. A blob that is not a JSON object yields an empty
temporary deck. A section that is missing or not an object becomes empty
while the other section is kept. Quantities above [MaxCopies] are clamped,
and entries that are not positive integers are dropped. Every recovery is
reported in the returned warnings.
*/
func Decode(data []byte) (Deck, []string) {
	var warnings []string

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return New(), []string{"stored deck is not a JSON object, starting fresh"}
	}

	result := New()
	for _, section := range []Section{SectionMain, SectionEgg} {
		entries, sectionWarnings := decodeSection(fields[string(section)], section)
		warnings = append(warnings, sectionWarnings...)
		if section == SectionMain {
			result.Main = entries
		} else {
			result.Egg = entries
		}
	}

	var header struct {
		Type    string  `json:"type"`
		CloudID string  `json:"cloudId"`
		Name    string  `json:"name"`
		Dirty   bool    `json:"dirty"`
		Privacy Privacy `json:"privacy"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		warnings = append(warnings, "stored deck header is malformed, treating it as temporary")
		return result, warnings
	}

	if header.Type == typePersisted {
		if header.CloudID == "" {
			warnings = append(warnings, "persisted deck has no cloud id, treating it as temporary")
			return result, warnings
		}
		if !header.Privacy.Valid() {
			warnings = append(warnings, fmt.Sprintf("unknown privacy %d, treating it as private", header.Privacy))
			header.Privacy = PrivacyPrivate
		}
		result.Origin = Persisted{
			CloudID: header.CloudID,
			Name:    header.Name,
			Privacy: header.Privacy,
			Dirty:   header.Dirty,
		}
	}

	return result, warnings
}

// decodeSection reads one section, recovering whatever is usable.
func decodeSection(raw json.RawMessage, section Section) (Entries, []string) {
	if len(raw) == 0 || string(raw) == "null" {
		return Entries{}, []string{fmt.Sprintf("%s section was missing from the stored deck", section)}
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return Entries{}, []string{fmt.Sprintf("%s section is not an object, starting it empty", section)}
	}

	var warnings []string
	entries := make(Entries, len(values))
	for cardID, rawQuantity := range values {
		quantity, ok := parseQuantity(rawQuantity)
		switch {
		case !ok || quantity < 1:
			warnings = append(warnings, fmt.Sprintf("dropped %s entry %q with quantity %s", section, cardID, rawQuantity))
		case quantity > MaxCopies:
			warnings = append(warnings, fmt.Sprintf("clamped %s entry %q from %d to %d", section, cardID, quantity, MaxCopies))
			entries[cardID] = MaxCopies
		default:
			entries[cardID] = quantity
		}
	}

	return entries, warnings
}

// parseQuantity accepts JSON numbers with an integral value.
func parseQuantity(raw json.RawMessage) (int, bool) {
	var number float64
	if err := json.Unmarshal(raw, &number); err != nil {
		return 0, false
	}
	if number != math.Trunc(number) || math.Abs(number) > math.MaxInt32 {
		return 0, false
	}
	return int(number), true
}
