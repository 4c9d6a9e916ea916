// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package deck implements the deck under construction and its persistence.

A [Deck] has two sections, main and egg, each mapping a card number to a
quantity between 1 and [MaxCopies]. Its [Origin] records whether it only
exists locally ([Temporary]) or mirrors a record of the remote collection
([Persisted]). The only way from Temporary to Persisted is
[Temporary.Persist]; nothing goes back.

Layers:

  - Model: Deck, Origin and the pure [ChangeQuantity] reducer.
  - Workspace: the one editable deck of a session, written through to a
    [LocalStore] on every mutation.
  - Cloud: save, load, publish and list against the remote [Repository].
  - Text: [ExportText] and [ParseText] for the plain-text deck list.
  - Stats: [ComputeStats] over a catalog lookup.
*/
package deck

import (
	"maps"
	"strings"
)

// # Limits

const (
	// MaxCopies is the highest quantity of one card in one section.
	MaxCopies = 4

	// MainSoftLimit is the advised size of the main section.
	MainSoftLimit = 50

	// EggSoftLimit is the advised size of the egg section.
	EggSoftLimit = 5
)

// # Sections

// Section names one half of a deck.
type Section string

const (
	SectionMain Section = "main"
	SectionEgg  Section = "egg"
)

// ParseSection maps user input to a Section.
func ParseSection(raw string) (Section, bool) {
	switch Section(strings.ToLower(strings.TrimSpace(raw))) {
	case SectionMain:
		return SectionMain, true
	case SectionEgg:
		return SectionEgg, true
	default:
		return "", false
	}
}

// Entries maps card numbers to quantities. Absent means zero.
type Entries map[string]int

// Total is the number of copies across all entries.
func (e Entries) Total() int {
	total := 0
	for _, quantity := range e {
		total += quantity
	}
	return total
}

// # Deck

// Deck is a value: every operation returns a new Deck and leaves its input untouched.
type Deck struct {
	Main   Entries
	Egg    Entries
	Origin Origin
}

// New returns an empty temporary deck.
func New() Deck {
	return Deck{Main: Entries{}, Egg: Entries{}, Origin: Temporary{}}
}

// Entries returns the mapping of one section. The result must not be modified.
func (d Deck) Entries(section Section) Entries {
	if section == SectionEgg {
		return d.Egg
	}
	return d.Main
}

// Quantity returns the copies of cardID in section.
func (d Deck) Quantity(section Section, cardID string) int {
	return d.Entries(section)[cardID]
}

// Clone returns a deep copy.
func (d Deck) Clone() Deck {
	clone := Deck{Main: Entries{}, Egg: Entries{}, Origin: d.Origin}
	maps.Copy(clone.Main, d.Main)
	maps.Copy(clone.Egg, d.Egg)
	if clone.Origin == nil {
		clone.Origin = Temporary{}
	}
	return clone
}

// IsEmpty reports whether both sections are empty.
func (d Deck) IsEmpty() bool {
	return len(d.Main) == 0 && len(d.Egg) == 0
}

// Persisted returns the remote identity of a persisted deck.
func (d Deck) Persisted() (Persisted, bool) {
	persisted, ok := d.Origin.(Persisted)
	return persisted, ok
}

// Dirty reports whether a persisted deck has changes the remote record lacks.
func (d Deck) Dirty() bool {
	persisted, ok := d.Persisted()
	return ok && persisted.Dirty
}

// WithOrigin returns a copy of d with another origin.
func (d Deck) WithOrigin(origin Origin) Deck {
	clone := d.Clone()
	clone.Origin = origin
	return clone
}

/*
ChangeQuantity adds delta copies of cardID to section.

The quantity is clamped to [0, MaxCopies]; reaching zero removes the entry.
Any mutation of a persisted deck marks it dirty.
*/
func ChangeQuantity(d Deck, cardID string, delta int, section Section) Deck {
	next := d.Clone()
	entries := next.Entries(section)

	delta = min(max(delta, -MaxCopies), MaxCopies)
	quantity := min(max(entries[cardID]+delta, 0), MaxCopies)
	if quantity == 0 {
		delete(entries, cardID)
	} else {
		entries[cardID] = quantity
	}

	if persisted, ok := next.Origin.(Persisted); ok {
		persisted.Dirty = true
		next.Origin = persisted
	}

	return next
}

// # Origin

// Privacy is the visibility of a remote deck. The numeric values are stored
// in the remote status column.
type Privacy int

const (
	PrivacyPrivate Privacy = 0
	PrivacyPublic  Privacy = 10
)

// Valid reports whether p is a known privacy status.
func (p Privacy) Valid() bool {
	return p == PrivacyPrivate || p == PrivacyPublic
}

func (p Privacy) String() string {
	if p == PrivacyPublic {
		return "public"
	}
	return "private"
}

// Origin tells whether a deck exists remotely. Implemented by [Temporary]
// and [Persisted] only.
type Origin interface {
	isOrigin()
}

// Temporary is a deck that only exists in the local slot.
type Temporary struct{}

// Persisted is a deck mirrored by a remote record.
type Persisted struct {
	CloudID string
	Name    string
	Privacy Privacy
	Dirty   bool
}

func (Temporary) isOrigin() {}
func (Persisted) isOrigin() {}

// Persist is the one-way transition to a remote identity. The result is clean.
func (Temporary) Persist(cloudID, name string, privacy Privacy) Persisted {
	return Persisted{CloudID: cloudID, Name: name, Privacy: privacy}
}
