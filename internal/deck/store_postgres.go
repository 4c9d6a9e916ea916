// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/digideck/internal/platform/apperr"
	"github.com/taibuivan/digideck/internal/platform/database/schema"
	"github.com/taibuivan/digideck/internal/platform/dberr"
	"github.com/taibuivan/digideck/pkg/pointer"
	"github.com/taibuivan/digideck/pkg/uuid"
)

const resourceDeck = "Deck"

// PostgresRepository implements Repository on the decks.deck table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, owner string, draft Draft) (string, error) {
	main, egg, err := encodeSections(draft)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`,
		schema.DecksDeck.Table,
		schema.DecksDeck.ID, schema.DecksDeck.UserID, schema.DecksDeck.Name,
		schema.DecksDeck.Main, schema.DecksDeck.Egg, schema.DecksDeck.Status,
		schema.DecksDeck.MTime, schema.DecksDeck.Created,
	)

	id := uuid.New()
	if _, err := repository.db.Exec(context, query, id, owner, draft.Name, main, egg, int16(draft.Status)); err != nil {
		return "", dberr.Wrap(err, "create_deck")
	}

	return id, nil
}

func (repository *PostgresRepository) Update(context context.Context, id, owner string, draft Draft) error {
	main, egg, err := encodeSections(draft)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = now()
		WHERE %s = $1 AND %s = $2
	`,
		schema.DecksDeck.Table,
		schema.DecksDeck.Name, schema.DecksDeck.Main, schema.DecksDeck.Egg, schema.DecksDeck.MTime,
		schema.DecksDeck.ID, schema.DecksDeck.UserID,
	)

	tag, err := repository.db.Exec(context, query, id, owner, draft.Name, main, egg)
	if err != nil {
		return dberr.Wrap(err, resourceDeck)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceDeck)
	}

	return nil
}

func (repository *PostgresRepository) SetStatus(context context.Context, id, owner string, status Privacy) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = now()
		WHERE %s = $1 AND %s = $2
	`,
		schema.DecksDeck.Table,
		schema.DecksDeck.Status, schema.DecksDeck.MTime,
		schema.DecksDeck.ID, schema.DecksDeck.UserID,
	)

	tag, err := repository.db.Exec(context, query, id, owner, int16(status))
	if err != nil {
		return dberr.Wrap(err, resourceDeck)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceDeck)
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		selectColumns(), schema.DecksDeck.Table, schema.DecksDeck.ID)

	record, err := scanRecord(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceDeck)
	}

	return record, nil
}

func (repository *PostgresRepository) ListByOwner(context context.Context, owner string, limit int) ([]*Record, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		selectColumns(), schema.DecksDeck.Table, schema.DecksDeck.UserID, schema.DecksDeck.MTime)

	rows, err := repository.db.Query(context, query, owner, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_decks")
	}
	defer rows.Close()

	records := make([]*Record, 0, limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_deck")
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_decks")
	}

	return records, nil
}

// # Helpers

func selectColumns() string {
	return fmt.Sprintf("%s::text, %s::text, %s, %s, %s, %s, %s, %s",
		schema.DecksDeck.ID, schema.DecksDeck.UserID, schema.DecksDeck.Name,
		schema.DecksDeck.Main, schema.DecksDeck.Egg, schema.DecksDeck.Status,
		schema.DecksDeck.MTime, schema.DecksDeck.Created)
}

func scanRecord(row pgx.Row) (*Record, error) {
	var (
		record Record
		id     string
		status *int16
	)

	if err := row.Scan(&id, &record.UserID, &record.Name, &record.Main, &record.Egg, &status, &record.MTime, &record.Created); err != nil {
		return nil, err
	}

	record.ID = pointer.To(id)
	if status != nil {
		record.Status = pointer.To(Privacy(*status))
	}

	return &record, nil
}

func encodeSections(draft Draft) (string, string, error) {
	main, err := json.Marshal(nonNil(draft.Main))
	if err != nil {
		return "", "", fmt.Errorf("deck: encode main: %w", err)
	}
	egg, err := json.Marshal(nonNil(draft.Egg))
	if err != nil {
		return "", "", fmt.Errorf("deck: encode egg: %w", err)
	}
	return string(main), string(egg), nil
}

func nonNil(entries Entries) Entries {
	if entries == nil {
		return Entries{}
	}
	return entries
}
