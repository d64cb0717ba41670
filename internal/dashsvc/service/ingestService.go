package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/dash-services/internal/comm"
	"github.com/pulseboard/dash-services/internal/dashsvc/chart"
	"github.com/pulseboard/dash-services/internal/dashsvc/models"
	"github.com/pulseboard/dash-services/internal/dashsvc/producer"
)

// IngestRequest is a producer push. Card is the optional creation descriptor
// used only when an auto-provision producer pushes to a card id the registry
// does not hold yet.
type IngestRequest struct {
	CardID      string           `json:"card_id"`
	Metric      string           `json:"metric"`
	Payload     json.RawMessage  `json:"payload"`
	PeriodLabel string           `json:"period_label,omitempty"`
	Card        *models.CardSpec `json:"card,omitempty"`
}

// IngestService is the gateway between external producers and the bundle
// store. It validates before it touches any state, so a rejected push leaves
// registry and store exactly as they were and a retry is safe to re-issue.
type IngestService struct {
	cards     CardStore
	bundles   *BundleService
	producers *producer.Registry
	events    EventPublisher
	now       func() time.Time
}

func NewIngestService(cards CardStore, bundles *BundleService, producers *producer.Registry, events EventPublisher) *IngestService {
	return &IngestService{
		cards:     cards,
		bundles:   bundles,
		producers: producers,
		events:    events,
		now:       time.Now,
	}
}

// Ingest turns one push into one envelope write.
func (s *IngestService) Ingest(ctx context.Context, producerName string, req IngestRequest) (*models.Envelope, error) {
	p, ok := s.producers.Get(producerName)
	if !ok {
		return nil, &models.ValidationError{Field: "producer", Reason: fmt.Sprintf("unknown producer %q", producerName)}
	}

	ms, ok := p.Metrics[req.Metric]
	if !ok {
		return nil, &models.ValidationError{Field: "metric", Reason: fmt.Sprintf("producer %q does not accept metric %q", producerName, req.Metric)}
	}

	if req.CardID == "" {
		return nil, &models.ValidationError{Field: "card_id", Reason: "card_id is required"}
	}

	card, err := s.cards.GetCard(ctx, req.CardID)
	if err != nil {
		return nil, err
	}
	if card == nil && !p.AutoProvision {
		return nil, &models.UnknownCardError{CardID: req.CardID}
	}

	// validate against the card's declared chart type before any state is
	// touched; a fresh card takes the metric's declared type
	chartType := ms.Chart
	if card != nil {
		chartType, _ = chart.Parse(card.ChartType)
	}
	if err := chart.Validate(chartType, req.Payload); err != nil {
		return nil, err
	}

	now := s.now().UTC()

	if card == nil {
		card, err = s.provisionCard(ctx, p, ms, req, now)
		if err != nil {
			return nil, err
		}
	}

	periodLabel := req.PeriodLabel
	if periodLabel == "" {
		periodLabel = PeriodLabelFor(now)
	}

	env := &models.Envelope{
		CardID:      card.ID,
		Payload:     req.Payload,
		PeriodLabel: periodLabel,
		IngestedAt:  now,
	}

	if err := s.bundles.WriteLatest(ctx, env); err != nil {
		return nil, err
	}

	if s.events != nil {
		ev := comm.CardUpdate{
			CardID:      card.ID,
			ChartType:   card.ChartType,
			Source:      card.SourceAttribution,
			PeriodLabel: env.PeriodLabel,
			IngestedAt:  env.IngestedAt,
		}
		if err := s.events.PublishCardUpdated(ev); err != nil {
			log.Errorf("failed to publish card update for %s: %s", card.ID, err)
		}
	}

	return env, nil
}

// provisionCard creates the card on first push for an auto-provision
// producer, honoring the pushed card id so the producer keeps a stable tile.
func (s *IngestService) provisionCard(ctx context.Context, p *producer.Producer, ms producer.MetricSpec, req IngestRequest, now time.Time) (*models.Card, error) {
	card := &models.Card{
		ID:                req.CardID,
		Title:             ms.DefaultTitle,
		SourceAttribution: p.Source,
		ChartType:         string(ms.Chart),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if req.Card != nil {
		if req.Card.Title != "" {
			card.Title = req.Card.Title
		}
		card.Subtitle = req.Card.Subtitle
		card.Tags = req.Card.Tags
		if req.Card.SourceAttribution != "" {
			card.SourceAttribution = req.Card.SourceAttribution
		}
	}
	if card.Title == "" {
		return nil, &models.ValidationError{Field: "card.title", Reason: "title must not be empty"}
	}

	if err := s.cards.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// PeriodLabelFor derives a reporting-period label from the ingestion
// timestamp, used when the producer omits one.
func PeriodLabelFor(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %d", quarter, t.Year())
}
