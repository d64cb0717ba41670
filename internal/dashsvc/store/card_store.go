package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

type CardStore struct {
	db *pgxpool.Pool
}

func NewCardStore(db *pgxpool.Pool) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) CreateCard(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, title, subtitle, tags, source_attribution, chart_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.Exec(ctx, query,
		card.ID,
		card.Title,
		card.Subtitle,
		card.Tags,
		card.SourceAttribution,
		card.ChartType,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	return nil
}

func (s *CardStore) GetCard(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT id, title, subtitle, tags, source_attribution, chart_type, created_at, updated_at
		FROM cards
		WHERE id = $1
	`

	card := &models.Card{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.Title,
		&card.Subtitle,
		&card.Tags,
		&card.SourceAttribution,
		&card.ChartType,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // card not found
		}
		return nil, fmt.Errorf("failed to get card by id: %w", err)
	}

	return card, nil
}

// ListCards returns cards in stable insertion order, narrowed by the filter.
func (s *CardStore) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	query := `
		SELECT id, title, subtitle, tags, source_attribution, chart_type, created_at, updated_at
		FROM cards
		WHERE ($1 = '' OR source_attribution = $1)
		  AND ($2 = '' OR $2 = ANY(tags))
		ORDER BY created_at, id
	`

	rows, err := s.db.Query(ctx, query, filter.Source, filter.Tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID,
			&card.Title,
			&card.Subtitle,
			&card.Tags,
			&card.SourceAttribution,
			&card.ChartType,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read card rows: %w", err)
	}

	return cards, nil
}

func (s *CardStore) UpdateCard(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET title = $2, subtitle = $3, tags = $4, source_attribution = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := s.db.Exec(ctx, query,
		card.ID,
		card.Title,
		card.Subtitle,
		card.Tags,
		card.SourceAttribution,
		card.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
