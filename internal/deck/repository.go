// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCorruptedRecord is returned by [FromRecord] for a record that cannot become a deck.
var ErrCorruptedRecord = errors.New("deck: corrupted remote record")

// ListLimit is how many decks [Repository.ListByOwner] returns.
const ListLimit = 10

// # Remote Record

/*
Record is a deck document as stored in the remote collection.

Fields are optional because the collection does not enforce a shape; a
record missing any of ID, Name, Status, Main or Egg is rejected by
[FromRecord].
*/
type Record struct {
	ID      *string         `json:"id"`
	UserID  string          `json:"user"`
	Name    *string         `json:"name"`
	Status  *Privacy        `json:"status"`
	Main    json.RawMessage `json:"main"`
	Egg     json.RawMessage `json:"egg"`
	MTime   time.Time       `json:"mtime"`
	Created time.Time       `json:"created"`
}

// Draft is the content written by Create and Update.
type Draft struct {
	Name   string
	Main   Entries
	Egg    Entries
	Status Privacy
}

// DraftOf copies the sections of d into a Draft.
func DraftOf(d Deck, name string, status Privacy) Draft {
	d = d.Clone()
	return Draft{Name: name, Main: d.Main, Egg: d.Egg, Status: status}
}

// # Data Access

// Repository is the remote deck collection.
type Repository interface {

	/*
		Create inserts a new record with a server-assigned ID.

		Returns:
		  - string: The new record ID
		  - error: Persistence failures
	*/
	Create(context context.Context, owner string, draft Draft) (string, error)

	// Update overwrites the name and sections of a record owned by owner and
	// stamps its modification time. Status is left untouched.
	Update(context context.Context, id, owner string, draft Draft) error

	// SetStatus changes the privacy of a record owned by owner.
	SetStatus(context context.Context, id, owner string, status Privacy) error

	// FindByID returns one record or apperr.NotFound.
	FindByID(context context.Context, id string) (*Record, error)

	// ListByOwner returns the owner's most recently modified records first.
	ListByOwner(context context.Context, owner string, limit int) ([]*Record, error)
}

// # Record Conversion

/*
FromRecord turns a remote record into a clean persisted deck.

It fails with [ErrCorruptedRecord] when a required field is absent, a
section is not an object of integers, or the status is unknown. Nothing is
adopted on failure. Quantities outside [1, MaxCopies] are dropped or
clamped like the local slot.
*/
func FromRecord(record *Record) (Deck, error) {
	if record == nil || record.ID == nil || *record.ID == "" || record.Name == nil || record.Status == nil {
		return Deck{}, fmt.Errorf("%w: missing id, name or status", ErrCorruptedRecord)
	}
	if !record.Status.Valid() {
		return Deck{}, fmt.Errorf("%w: unknown status %d", ErrCorruptedRecord, *record.Status)
	}

	main, err := recordSection(record.Main, SectionMain)
	if err != nil {
		return Deck{}, err
	}
	egg, err := recordSection(record.Egg, SectionEgg)
	if err != nil {
		return Deck{}, err
	}

	return Deck{
		Main: main,
		Egg:  egg,
		Origin: Persisted{
			CloudID: *record.ID,
			Name:    *record.Name,
			Privacy: *record.Status,
		},
	}, nil
}

func recordSection(raw json.RawMessage, section Section) (Entries, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%w: missing %s section", ErrCorruptedRecord, section)
	}

	var quantities map[string]int
	if err := json.Unmarshal(raw, &quantities); err != nil {
		return nil, fmt.Errorf("%w: %s section: %v", ErrCorruptedRecord, section, err)
	}

	entries := make(Entries, len(quantities))
	for cardID, quantity := range quantities {
		if quantity >= 1 {
			entries[cardID] = min(quantity, MaxCopies)
		}
	}
	return entries, nil
}
