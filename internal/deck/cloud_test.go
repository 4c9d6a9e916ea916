// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/digideck/internal/deck"
	"github.com/taibuivan/digideck/internal/platform/apperr"
	"github.com/taibuivan/digideck/pkg/pointer"
)

const (
	ownerID = "0190a000-0000-7000-8000-0000000000aa"
	otherID = "0190a000-0000-7000-8000-0000000000bb"
)

func newCloud(repository deck.Repository) *deck.Cloud {
	return deck.NewCloud(repository, time.Second, nil)
}

func seededWorkspace(t *testing.T) *deck.Workspace {
	t.Helper()
	workspace := deck.NewWorkspace(newMemStore(), deck.SlotKey, nil)
	_, err := workspace.ChangeQuantity(context.Background(), "BT1-01", 2, deck.SectionMain)
	require.NoError(t, err)
	return workspace
}

/*
TestCloud_SaveTransitions creates on first save and updates afterwards.
*/
func TestCloud_SaveTransitions(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	cloud := newCloud(repository)
	workspace := seededWorkspace(t)

	saved, err := cloud.Save(ctx, workspace, ownerID, "  Red Rush ")
	require.NoError(t, err)

	persisted, ok := saved.Persisted()
	require.True(t, ok)
	assert.Equal(t, "Red Rush", persisted.Name)
	assert.Equal(t, deck.PrivacyPrivate, persisted.Privacy)
	assert.False(t, persisted.Dirty)

	record := repository.records[persisted.CloudID]
	require.NotNil(t, record)
	assert.Equal(t, ownerID, record.UserID)
	assert.JSONEq(t, `{"BT1-01":2}`, string(record.Main))
	assert.JSONEq(t, `{}`, string(record.Egg))

	edited, err := workspace.ChangeQuantity(ctx, "BT1-02", 1, deck.SectionMain)
	require.NoError(t, err)
	assert.True(t, edited.Dirty())

	// An empty name keeps the saved one.
	resaved, err := cloud.Save(ctx, workspace, ownerID, "")
	require.NoError(t, err)
	assert.False(t, resaved.Dirty())
	assert.Len(t, repository.records, 1)
	assert.JSONEq(t, `{"BT1-01":2,"BT1-02":1}`, string(repository.records[persisted.CloudID].Main))
	assert.Equal(t, "Red Rush", *repository.records[persisted.CloudID].Name)
}

/*
TestCloud_SaveByAnotherAccount creates a separate record when the persisted
deck in the workspace belongs to someone else.
*/
func TestCloud_SaveByAnotherAccount(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	cloud := newCloud(repository)
	workspace := seededWorkspace(t)

	first, err := cloud.Save(ctx, workspace, ownerID, "Shared Session")
	require.NoError(t, err)
	original, ok := first.Persisted()
	require.True(t, ok)

	saved, err := cloud.Save(ctx, workspace, otherID, "")
	require.NoError(t, err)

	copied, ok := saved.Persisted()
	require.True(t, ok)
	assert.NotEqual(t, original.CloudID, copied.CloudID)
	assert.Equal(t, "Shared Session", copied.Name)
	assert.Equal(t, deck.PrivacyPrivate, copied.Privacy)
	assert.False(t, copied.Dirty)

	require.Len(t, repository.records, 2)
	assert.Equal(t, ownerID, repository.records[original.CloudID].UserID)
	assert.Equal(t, otherID, repository.records[copied.CloudID].UserID)

	again, err := cloud.Save(ctx, workspace, otherID, "Mine Now")
	require.NoError(t, err)
	assert.Len(t, repository.records, 2, "later saves update the copy")
	assert.Equal(t, "Mine Now", *repository.records[copied.CloudID].Name)
	assert.Equal(t, "Shared Session", *repository.records[original.CloudID].Name)
	assert.False(t, again.Dirty())
}

/*
TestCloud_SaveKeepsDirtyOnConcurrentEdit leaves the deck dirty when it
changed while the remote write was in flight.
*/
func TestCloud_SaveKeepsDirtyOnConcurrentEdit(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	workspace := seededWorkspace(t)

	repository.onWrite = func() {
		_, err := workspace.ChangeQuantity(ctx, "BT1-03", 1, deck.SectionMain)
		require.NoError(t, err)
	}

	saved, err := newCloud(repository).Save(ctx, workspace, ownerID, "Racing")
	require.NoError(t, err)

	persisted, ok := saved.Persisted()
	require.True(t, ok)
	assert.True(t, persisted.Dirty)
	assert.Equal(t, 1, saved.Main["BT1-03"])
	assert.JSONEq(t, `{"BT1-01":2}`, string(repository.records[persisted.CloudID].Main))
}

/*
TestCloud_SaveErrors covers validation and remote failures.
*/
func TestCloud_SaveErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("first_save_needs_name", func(t *testing.T) {
		_, err := newCloud(newFakeRepository()).Save(ctx, seededWorkspace(t), ownerID, "   ")
		assert.True(t, apperr.HasCode(err, "VALIDATION_ERROR"))
	})

	t.Run("remote_failure_is_retryable", func(t *testing.T) {
		repository := newFakeRepository()
		repository.fail = errUnreachable
		workspace := seededWorkspace(t)

		_, err := newCloud(repository).Save(ctx, workspace, ownerID, "Deck")
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "REMOTE_FAILED", appError.Code)
		assert.True(t, appError.Retryable)
		assert.True(t, errors.Is(err, errUnreachable))

		current, err := workspace.Current(ctx)
		require.NoError(t, err)
		assert.IsType(t, deck.Temporary{}, current.Origin, "nothing changes locally")
	})

	t.Run("remote_not_configured", func(t *testing.T) {
		workspace := seededWorkspace(t)

		_, err := newCloud(nil).Save(ctx, workspace, ownerID, "Deck")
		assert.True(t, apperr.HasCode(err, "SERVICE_UNAVAILABLE"))

		current, err := workspace.Current(ctx)
		require.NoError(t, err)
		assert.IsType(t, deck.Temporary{}, current.Origin)
	})

	t.Run("timeout_is_remote_failure", func(t *testing.T) {
		cloud := deck.NewCloud(blockingRepository{newFakeRepository()}, 10*time.Millisecond, nil)

		_, err := cloud.Save(ctx, seededWorkspace(t), ownerID, "Deck")
		assert.True(t, apperr.HasCode(err, "REMOTE_FAILED"))
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}

// blockingRepository waits for the caller's deadline on Create.
type blockingRepository struct {
	*fakeRepository
}

func (blockingRepository) Create(ctx context.Context, _ string, _ deck.Draft) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

/*
TestCloud_Load adopts owned records and forks public ones.
*/
func TestCloud_Load(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	cloud := newCloud(repository)

	ownedID, err := repository.Create(ctx, ownerID, deck.Draft{Name: "Mine", Main: deck.Entries{"BT1-01": 4}, Egg: deck.Entries{"BT1-04": 2}})
	require.NoError(t, err)
	publicID, err := repository.Create(ctx, otherID, deck.Draft{Name: "Theirs", Main: deck.Entries{"BT1-02": 1}, Status: deck.PrivacyPublic})
	require.NoError(t, err)
	privateID, err := repository.Create(ctx, otherID, deck.Draft{Name: "Secret", Main: deck.Entries{}})
	require.NoError(t, err)

	t.Run("owned_is_persisted", func(t *testing.T) {
		workspace := seededWorkspace(t)

		loaded, err := cloud.Load(ctx, workspace, ownedID, deck.Viewer{UserID: ownerID})
		require.NoError(t, err)

		assert.Equal(t, deck.Entries{"BT1-01": 4}, loaded.Main)
		assert.Equal(t, deck.Entries{"BT1-04": 2}, loaded.Egg)
		assert.Equal(t, deck.Persisted{CloudID: ownedID, Name: "Mine", Privacy: deck.PrivacyPrivate}, loaded.Origin)
	})

	t.Run("foreign_public_is_forked", func(t *testing.T) {
		loaded, err := cloud.Load(ctx, seededWorkspace(t), publicID, deck.Viewer{UserID: ownerID})
		require.NoError(t, err)

		assert.Equal(t, deck.Entries{"BT1-02": 1}, loaded.Main)
		assert.IsType(t, deck.Temporary{}, loaded.Origin)
	})

	t.Run("foreign_private_is_hidden", func(t *testing.T) {
		_, err := cloud.Load(ctx, seededWorkspace(t), privateID, deck.Viewer{UserID: ownerID})
		assert.True(t, apperr.HasCode(err, "NOT_FOUND"))

		_, err = cloud.View(ctx, privateID, deck.Viewer{UserID: ownerID, CanReadPrivate: true})
		assert.NoError(t, err)
	})

	t.Run("corrupted_adopts_nothing", func(t *testing.T) {
		brokenID := "0190a000-0000-7000-8000-0000000000ff"
		repository.records[brokenID] = &deck.Record{
			ID:     pointer.To(brokenID),
			UserID: ownerID,
			Status: pointer.To(deck.PrivacyPrivate),
			Main:   json.RawMessage(`{}`),
			Egg:    json.RawMessage(`{}`),
		}
		workspace := seededWorkspace(t)

		_, err := cloud.Load(ctx, workspace, brokenID, deck.Viewer{UserID: ownerID})
		assert.True(t, apperr.HasCode(err, "DECK_CORRUPTED"))

		current, err := workspace.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, deck.Entries{"BT1-01": 2}, current.Main)
	})
}

/*
TestCloud_Publish flips a saved deck to public.
*/
func TestCloud_Publish(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	cloud := newCloud(repository)
	workspace := seededWorkspace(t)

	_, err := cloud.Publish(ctx, workspace, ownerID)
	assert.True(t, apperr.HasCode(err, "UNPROCESSABLE"))

	saved, err := cloud.Save(ctx, workspace, ownerID, "Share me")
	require.NoError(t, err)
	persisted, _ := saved.Persisted()

	published, err := cloud.Publish(ctx, workspace, ownerID)
	require.NoError(t, err)

	now, ok := published.Persisted()
	require.True(t, ok)
	assert.Equal(t, deck.PrivacyPublic, now.Privacy)
	assert.Equal(t, deck.PrivacyPublic, *repository.records[persisted.CloudID].Status)

	_, err = cloud.View(ctx, persisted.CloudID, deck.Viewer{})
	assert.NoError(t, err, "public decks are visible to anyone")
}

func TestCloud_List(t *testing.T) {
	ctx := context.Background()
	repository := newFakeRepository()
	for _, owner := range []string{ownerID, ownerID, otherID} {
		_, err := repository.Create(ctx, owner, deck.Draft{Name: "Deck"})
		require.NoError(t, err)
	}

	records, err := newCloud(repository).List(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

/*
TestFromRecord rejects incomplete records.
*/
func TestFromRecord(t *testing.T) {
	valid := func() *deck.Record {
		return &deck.Record{
			ID:     pointer.To("id-1"),
			UserID: ownerID,
			Name:   pointer.To("Deck"),
			Status: pointer.To(deck.PrivacyPublic),
			Main:   json.RawMessage(`{"BT1-01":9,"BT1-02":0}`),
			Egg:    json.RawMessage(`{"BT1-04":1}`),
		}
	}

	tests := []struct {
		name   string
		mutate func(record *deck.Record)
	}{
		{name: "missing_id", mutate: func(record *deck.Record) { record.ID = nil }},
		{name: "empty_id", mutate: func(record *deck.Record) { record.ID = pointer.To("") }},
		{name: "missing_name", mutate: func(record *deck.Record) { record.Name = nil }},
		{name: "missing_status", mutate: func(record *deck.Record) { record.Status = nil }},
		{name: "unknown_status", mutate: func(record *deck.Record) { record.Status = pointer.To(deck.Privacy(5)) }},
		{name: "missing_main", mutate: func(record *deck.Record) { record.Main = nil }},
		{name: "null_egg", mutate: func(record *deck.Record) { record.Egg = json.RawMessage(`null`) }},
		{name: "egg_not_object", mutate: func(record *deck.Record) { record.Egg = json.RawMessage(`"x"`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := valid()
			tt.mutate(record)

			_, err := deck.FromRecord(record)
			assert.ErrorIs(t, err, deck.ErrCorruptedRecord)
		})
	}

	loaded, err := deck.FromRecord(valid())
	require.NoError(t, err)
	assert.Equal(t, deck.Entries{"BT1-01": 4}, loaded.Main)
	assert.Equal(t, deck.Persisted{CloudID: "id-1", Name: "Deck", Privacy: deck.PrivacyPublic}, loaded.Origin)
}
