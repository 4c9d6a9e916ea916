// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the primary keys of accounts and remote decks.

Keys are Version 7 UUIDs: their millisecond timestamp prefix keeps PostgreSQL
B-tree inserts append-only and lets a key be compared with the deck's
created time when debugging.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string.
//
// It panics only when the system entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}
	return id.String()
}
