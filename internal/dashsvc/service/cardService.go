package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/dash-services/internal/dashsvc/chart"
	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// CardService is the card registry: the provisioning path owns card records,
// ingestion never mutates them.
type CardService struct {
	store CardStore
}

func NewCardService(store CardStore) *CardService {
	return &CardService{store: store}
}

// CreateCard provisions a card with a fresh unique id. Title and a recognized
// chart type are required.
func (s *CardService) CreateCard(ctx context.Context, spec models.CardSpec) (*models.Card, error) {
	if strings.TrimSpace(spec.Title) == "" {
		return nil, &models.ValidationError{Field: "title", Reason: "title must not be empty"}
	}
	if _, ok := chart.Parse(spec.ChartType); !ok {
		return nil, &models.ValidationError{Field: "chart_type", Reason: "unrecognized chart type"}
	}

	now := time.Now().UTC()
	card := &models.Card{
		ID:                uuid.New().String(),
		Title:             spec.Title,
		Subtitle:          spec.Subtitle,
		Tags:              spec.Tags,
		SourceAttribution: spec.SourceAttribution,
		ChartType:         spec.ChartType,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) GetCard(ctx context.Context, id string) (*models.Card, error) {
	card, err := s.store.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, models.ErrNotFound
	}
	return card, nil
}

func (s *CardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	return s.store.ListCards(ctx, filter)
}

// UpdateCard applies a partial patch. The chart type is immutable after
// creation, changing it would invalidate the payload shape of any envelope
// already stored for the card.
func (s *CardService) UpdateCard(ctx context.Context, id string, patch models.CardPatch) (*models.Card, error) {
	card, err := s.store.GetCard(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, models.ErrNotFound
	}

	if patch.ChartType != nil && *patch.ChartType != card.ChartType {
		return nil, &models.ImmutableFieldError{Field: "chart_type"}
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, &models.ValidationError{Field: "title", Reason: "title must not be empty"}
		}
		card.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		card.Subtitle = *patch.Subtitle
	}
	if patch.Tags != nil {
		card.Tags = *patch.Tags
	}
	if patch.SourceAttribution != nil {
		card.SourceAttribution = *patch.SourceAttribution
	}
	card.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}
