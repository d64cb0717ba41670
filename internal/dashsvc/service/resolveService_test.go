package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
	"github.com/pulseboard/dash-services/internal/dashsvc/store/memory"
)

func newResolver(t *testing.T) (*ResolveService, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	return NewResolveService(mem, NewBundleService(mem, nil)), mem
}

func TestResolveFullWithData(t *testing.T) {
	resolver, mem := newResolver(t)
	ctx := context.Background()

	require.NoError(t, mem.CreateCard(ctx, &models.Card{
		ID:        "c1",
		Title:     "Sprint Velocity",
		ChartType: "sparkline-series",
	}))
	require.NoError(t, mem.WriteLatest(ctx, &models.Envelope{
		CardID:      "c1",
		Payload:     json.RawMessage(`{"points":[10,12,9,15]}`),
		PeriodLabel: "Sprint 41",
		IngestedAt:  time.Now().UTC(),
	}))

	resolved, err := resolver.ResolveFull(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Sprint Velocity", resolved.Card.Title)
	assert.Equal(t, "sparkline-series", resolved.ChartType)
	assert.Equal(t, "SparklineChart", resolved.Renderer)
	assert.True(t, resolved.HasData)
	require.NotNil(t, resolved.LatestData)
	assert.JSONEq(t, `{"points":[10,12,9,15]}`, string(resolved.LatestData.Payload))
	assert.Equal(t, "Sprint 41", resolved.LatestData.PeriodLabel)
}

func TestResolveFullEmptyBundleIsExplicit(t *testing.T) {
	resolver, mem := newResolver(t)
	ctx := context.Background()

	require.NoError(t, mem.CreateCard(ctx, &models.Card{ID: "c1", Title: "Churn", ChartType: "metric-tile"}))

	resolved, err := resolver.ResolveFull(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, resolved.HasData)
	assert.Nil(t, resolved.LatestData)

	// the empty marker must survive serialization as an explicit null field
	raw, err := json.Marshal(resolved)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	v, present := decoded["latest_data"]
	require.True(t, present)
	assert.Equal(t, "null", string(v))
}

func TestResolveFullNotFound(t *testing.T) {
	resolver, _ := newResolver(t)
	_, err := resolver.ResolveFull(context.Background(), "ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveFullOrphanedBundle(t *testing.T) {
	resolver, mem := newResolver(t)
	ctx := context.Background()

	require.NoError(t, mem.CreateCard(ctx, &models.Card{ID: "c1", Title: "Churn", ChartType: "metric-tile"}))
	require.NoError(t, mem.WriteLatest(ctx, &models.Envelope{CardID: "c1", Payload: json.RawMessage(`{"value":"2%","change_pct":"-1%","positive":true}`)}))
	require.NoError(t, mem.DeleteCard(ctx, "c1"))

	// the bundle is orphaned; resolution fails cleanly instead of leaking a
	// half-filled object
	_, err := resolver.ResolveFull(ctx, "c1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveFullUnrecognizedChartTypeDegrades(t *testing.T) {
	resolver, mem := newResolver(t)
	ctx := context.Background()

	// a stored type outside the recognized set, e.g. written by a newer
	// provisioning tool
	require.NoError(t, mem.CreateCard(ctx, &models.Card{ID: "c1", Title: "Mystery", ChartType: "hex-grid"}))

	resolved, err := resolver.ResolveFull(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "hex-grid", resolved.ChartType)
	assert.Empty(t, resolved.Renderer)
}
