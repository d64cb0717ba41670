package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

type BundleStore struct {
	db *pgxpool.Pool
}

func NewBundleStore(db *pgxpool.Pool) *BundleStore {
	return &BundleStore{db: db}
}

// WriteLatest replaces the envelope for the card in one statement, so a
// concurrent reader sees either the old envelope or the new one, never a mix.
// The card check is a plain query at write time, not a foreign key, so the
// registry and the bundle table can be split later without a schema change.
func (s *BundleStore) WriteLatest(ctx context.Context, env *models.Envelope) error {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cards WHERE id = $1)`, env.CardID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check card reference: %w", err)
	}
	if !exists {
		return &models.UnknownCardError{CardID: env.CardID}
	}

	query := `
		INSERT INTO bundles (card_id, payload, period_label, ingested_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (card_id)
		DO UPDATE SET payload = $2, period_label = $3, ingested_at = $4
	`

	_, err = s.db.Exec(ctx, query, env.CardID, env.Payload, env.PeriodLabel, env.IngestedAt)
	if err != nil {
		return fmt.Errorf("failed to write latest envelope: %w", err)
	}

	return nil
}

// ReadLatest returns nil, nil for a card that has never received data. That
// empty state is valid, the resolution layer turns it into a "no data yet"
// marker rather than an error.
func (s *BundleStore) ReadLatest(ctx context.Context, cardID string) (*models.Envelope, error) {
	query := `
		SELECT card_id, payload, period_label, ingested_at
		FROM bundles
		WHERE card_id = $1
	`

	env := &models.Envelope{}
	err := s.db.QueryRow(ctx, query, cardID).Scan(
		&env.CardID,
		&env.Payload,
		&env.PeriodLabel,
		&env.IngestedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no data yet
		}
		return nil, fmt.Errorf("failed to read latest envelope: %w", err)
	}

	return env, nil
}
