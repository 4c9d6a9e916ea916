// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/digideck/internal/catalog"
	"github.com/taibuivan/digideck/internal/deck"
	"github.com/taibuivan/digideck/internal/platform/apperr"
)

// memStore is an in-memory LocalStore.
type memStore struct {
	mu      sync.Mutex
	slots   map[string][]byte
	writes  int
	failSet error
}

func newMemStore() *memStore {
	return &memStore{slots: map[string][]byte{}}
}

func (store *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.slots[key]
	return value, ok, nil
}

func (store *memStore) Set(_ context.Context, key string, value []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failSet != nil {
		return store.failSet
	}
	store.slots[key] = append([]byte(nil), value...)
	store.writes++
	return nil
}

func (store *memStore) slot(key string) string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return string(store.slots[key])
}

// fakeRepository is an in-memory Repository.
type fakeRepository struct {
	mu      sync.Mutex
	records map[string]*deck.Record
	nextID  int
	fail    error
	onWrite func()
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: map[string]*deck.Record{}}
}

func (repository *fakeRepository) Create(_ context.Context, owner string, draft deck.Draft) (string, error) {
	if repository.onWrite != nil {
		repository.onWrite()
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.fail != nil {
		return "", repository.fail
	}

	repository.nextID++
	id := fmt.Sprintf("0190a000-0000-7000-8000-%012d", repository.nextID)
	repository.records[id] = recordOf(id, owner, draft)
	return id, nil
}

func (repository *fakeRepository) Update(_ context.Context, id, owner string, draft deck.Draft) error {
	if repository.onWrite != nil {
		repository.onWrite()
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.fail != nil {
		return repository.fail
	}

	existing, ok := repository.records[id]
	if !ok || existing.UserID != owner {
		return apperr.NotFound("Deck")
	}
	updated := recordOf(id, owner, draft)
	updated.Status = existing.Status
	repository.records[id] = updated
	return nil
}

func (repository *fakeRepository) SetStatus(_ context.Context, id, owner string, status deck.Privacy) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.fail != nil {
		return repository.fail
	}

	existing, ok := repository.records[id]
	if !ok || existing.UserID != owner {
		return apperr.NotFound("Deck")
	}
	existing.Status = &status
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*deck.Record, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.fail != nil {
		return nil, repository.fail
	}

	record, ok := repository.records[id]
	if !ok {
		return nil, apperr.NotFound("Deck")
	}
	return record, nil
}

func (repository *fakeRepository) ListByOwner(_ context.Context, owner string, limit int) ([]*deck.Record, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	if repository.fail != nil {
		return nil, repository.fail
	}

	var records []*deck.Record
	for _, record := range repository.records {
		if record.UserID == owner && len(records) < limit {
			records = append(records, record)
		}
	}
	return records, nil
}

func recordOf(id, owner string, draft deck.Draft) *deck.Record {
	name := draft.Name
	status := draft.Status
	return &deck.Record{
		ID:     &id,
		UserID: owner,
		Name:   &name,
		Status: &status,
		Main:   mustJSON(draft.Main),
		Egg:    mustJSON(draft.Egg),
	}
}

func mustJSON(entries deck.Entries) json.RawMessage {
	if entries == nil {
		entries = deck.Entries{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		panic(err)
	}
	return encoded
}

var errUnreachable = errors.New("connection refused")

// testCards is a small catalog covering every card type.
func testCards(t *testing.T) *catalog.Catalog {
	t.Helper()
	cards, err := catalog.New([]catalog.Card{
		{Number: "BT1-01", Name: "Agumon", CardType: catalog.TypeDigimon, Level: "Lv.3"},
		{Number: "BT1-02", Name: "Greymon", CardType: catalog.TypeDigimon, Level: "Lv.4"},
		{Number: "BT1-03", Name: "Omnimon", CardType: catalog.TypeDigimon, Level: "Lv.10"},
		{Number: "BT1-04", Name: "Koromon", CardType: catalog.TypeDigiEgg, Level: "Lv.2"},
		{Number: "BT1-05", Name: "Tai Kamiya", CardType: catalog.TypeTamer},
		{Number: "BT1-06", Name: "Gaia Force", CardType: catalog.TypeOption},
	})
	require.NoError(t, err)
	return cards
}
