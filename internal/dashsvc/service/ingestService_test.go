package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/dash-services/internal/comm"
	"github.com/pulseboard/dash-services/internal/dashsvc/models"
	"github.com/pulseboard/dash-services/internal/dashsvc/producer"
	"github.com/pulseboard/dash-services/internal/dashsvc/store/memory"
)

type capturedEvents struct {
	updates []comm.CardUpdate
}

func (c *capturedEvents) PublishCardUpdated(ev comm.CardUpdate) error {
	c.updates = append(c.updates, ev)
	return nil
}

func newGateway(t *testing.T) (*IngestService, *memory.Store, *capturedEvents) {
	t.Helper()
	mem := memory.NewStore()
	events := &capturedEvents{}
	bundles := NewBundleService(mem, mem)
	return NewIngestService(mem, bundles, producer.NewRegistry(), events), mem, events
}

func existingCard(t *testing.T, mem *memory.Store, id, chartType string) {
	t.Helper()
	err := mem.CreateCard(context.Background(), &models.Card{
		ID:                id,
		Title:             "Sprint Velocity",
		SourceAttribution: "Product Kanban",
		ChartType:         chartType,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestIngestVelocityScenario(t *testing.T) {
	gw, mem, events := newGateway(t)
	ctx := context.Background()
	existingCard(t, mem, "velocity-card", "sparkline-series")

	env, err := gw.Ingest(ctx, "product-kanban", IngestRequest{
		CardID:      "velocity-card",
		Metric:      "velocity",
		Payload:     json.RawMessage(`{"points":[10,12,9,15]}`),
		PeriodLabel: "Sprint 41",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sprint 41", env.PeriodLabel)

	stored, err := mem.ReadLatest(ctx, "velocity-card")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.JSONEq(t, `{"points":[10,12,9,15]}`, string(stored.Payload))
	assert.Equal(t, "Sprint 41", stored.PeriodLabel)

	require.Len(t, events.updates, 1)
	assert.Equal(t, "velocity-card", events.updates[0].CardID)
	assert.Equal(t, "Product Kanban", events.updates[0].Source)
}

func TestIngestSchemaMismatchLeavesStoreUnchanged(t *testing.T) {
	gw, mem, events := newGateway(t)
	ctx := context.Background()
	existingCard(t, mem, "intel-card", "competitive-intel")

	require.NoError(t, mem.WriteLatest(ctx, &models.Envelope{
		CardID:      "intel-card",
		Payload:     json.RawMessage(`{"title":"Rival v1"}`),
		PeriodLabel: "Q2 2026",
	}))
	before, err := mem.ReadLatest(ctx, "intel-card")
	require.NoError(t, err)

	// competitive-intel payload missing required title
	_, err = gw.Ingest(ctx, "research-feed", IngestRequest{
		CardID:  "intel-card",
		Metric:  "intel",
		Payload: json.RawMessage(`{"summary":"rival shipped v2"}`),
	})
	var sm *models.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "title", sm.Field)

	after, err := mem.ReadLatest(ctx, "intel-card")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Empty(t, events.updates)
}

func TestIngestValidatesAgainstCardsDeclaredType(t *testing.T) {
	gw, mem, _ := newGateway(t)
	ctx := context.Background()
	// card declared metric-tile; a velocity-shaped payload must be rejected
	existingCard(t, mem, "health-card", "metric-tile")

	_, err := gw.Ingest(ctx, "product-kanban", IngestRequest{
		CardID:  "health-card",
		Metric:  "velocity",
		Payload: json.RawMessage(`{"points":[1,2,3]}`),
	})
	var sm *models.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "metric-tile", sm.ChartType)
}

func TestIngestIdempotentEffect(t *testing.T) {
	gw, mem, _ := newGateway(t)
	ctx := context.Background()
	existingCard(t, mem, "velocity-card", "sparkline-series")

	req := IngestRequest{
		CardID:      "velocity-card",
		Metric:      "velocity",
		Payload:     json.RawMessage(`{"points":[10,12]}`),
		PeriodLabel: "Sprint 41",
	}

	_, err := gw.Ingest(ctx, "product-kanban", req)
	require.NoError(t, err)
	first, err := mem.ReadLatest(ctx, "velocity-card")
	require.NoError(t, err)

	_, err = gw.Ingest(ctx, "product-kanban", req)
	require.NoError(t, err)
	second, err := mem.ReadLatest(ctx, "velocity-card")
	require.NoError(t, err)

	assert.JSONEq(t, string(first.Payload), string(second.Payload))
	assert.Equal(t, first.PeriodLabel, second.PeriodLabel)

	// history is not idempotent: each push appends once
	hist, err := mem.History(ctx, "velocity-card")
	require.NoError(t, err)
	assert.Len(t, hist, 2)
}

func TestIngestAutoProvisionCreatesCard(t *testing.T) {
	gw, mem, _ := newGateway(t)
	ctx := context.Background()

	env, err := gw.Ingest(ctx, "product-kanban", IngestRequest{
		CardID:  "kanban-burndown",
		Metric:  "burndown",
		Payload: json.RawMessage(`{"remaining":[40,33,25]}`),
	})
	require.NoError(t, err)

	card, err := mem.GetCard(ctx, "kanban-burndown")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "Sprint Burndown", card.Title)
	assert.Equal(t, "Product Kanban", card.SourceAttribution)
	assert.Equal(t, "kanban-ops", card.ChartType)
	assert.Equal(t, "kanban-burndown", env.CardID)
}

func TestIngestUnknownCardHardFailureWithoutAutoProvision(t *testing.T) {
	gw, mem, _ := newGateway(t)
	ctx := context.Background()

	_, err := gw.Ingest(ctx, "research-feed", IngestRequest{
		CardID:  "ghost",
		Metric:  "citation",
		Payload: json.RawMessage(`{"citation":"DORA 2025","source":"Google Cloud"}`),
	})
	var unknown *models.UnknownCardError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "ghost", unknown.CardID)

	// no card was provisioned as a side effect
	card, err := mem.GetCard(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, card)
}

func TestIngestRejectedPushProvisionsNothing(t *testing.T) {
	gw, mem, _ := newGateway(t)
	ctx := context.Background()

	// auto-provision producer, but the payload fails the contract
	_, err := gw.Ingest(ctx, "product-kanban", IngestRequest{
		CardID:  "kanban-velocity",
		Metric:  "velocity",
		Payload: json.RawMessage(`{"points":[]}`),
	})
	var sm *models.SchemaMismatchError
	require.True(t, errors.As(err, &sm))

	card, err := mem.GetCard(ctx, "kanban-velocity")
	require.NoError(t, err)
	assert.Nil(t, card)
}

func TestIngestDefaultsPeriodLabel(t *testing.T) {
	gw, mem, _ := newGateway(t)
	ctx := context.Background()
	existingCard(t, mem, "velocity-card", "sparkline-series")

	gw.now = func() time.Time { return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC) }

	env, err := gw.Ingest(ctx, "product-kanban", IngestRequest{
		CardID:  "velocity-card",
		Metric:  "velocity",
		Payload: json.RawMessage(`{"points":[1]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Q3 2026", env.PeriodLabel)
}

func TestIngestUnknownProducerAndMetric(t *testing.T) {
	gw, _, _ := newGateway(t)
	ctx := context.Background()

	var ve *models.ValidationError
	_, err := gw.Ingest(ctx, "crm-sync", IngestRequest{Metric: "velocity"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "producer", ve.Field)

	_, err = gw.Ingest(ctx, "product-kanban", IngestRequest{Metric: "revenue", CardID: "c1"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "metric", ve.Field)
}

func TestPeriodLabelFor(t *testing.T) {
	assert.Equal(t, "Q1 2026", PeriodLabelFor(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Q4 2025", PeriodLabelFor(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
