package service

import (
	"context"

	"github.com/pulseboard/dash-services/internal/dashsvc/chart"
	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// ResolvedCard is the render-ready join of registry and bundle store. It is
// the only read shape the presentation layer consumes: LatestData is always
// present in the response, explicitly null for a card with no data yet, and
// Renderer is empty when the stored chart type is outside the recognized set.
type ResolvedCard struct {
	Card       models.Card      `json:"card"`
	ChartType  string           `json:"chart_type"`
	Renderer   string           `json:"renderer,omitempty"`
	HasData    bool             `json:"has_data"`
	LatestData *models.Envelope `json:"latest_data"`
}

// ResolveService answers full-card queries in a single round trip, so card
// and bundle are read at one logical instant.
type ResolveService struct {
	cards   CardStore
	bundles *BundleService
}

func NewResolveService(cards CardStore, bundles *BundleService) *ResolveService {
	return &ResolveService{cards: cards, bundles: bundles}
}

func (s *ResolveService) ResolveFull(ctx context.Context, cardID string) (*ResolvedCard, error) {
	card, err := s.cards.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		// also covers an orphaned bundle whose card was removed out-of-band
		return nil, models.ErrNotFound
	}

	env, err := s.bundles.ReadLatest(ctx, cardID)
	if err != nil {
		return nil, err
	}

	resolved := &ResolvedCard{
		Card:       *card,
		ChartType:  card.ChartType,
		HasData:    env != nil,
		LatestData: env,
	}

	// an unrecognized chart type degrades to the no-renderer state
	if t, ok := chart.Parse(card.ChartType); ok {
		if name, ok := chart.Renderer(t); ok {
			resolved.Renderer = name
		}
	}

	return resolved, nil
}
