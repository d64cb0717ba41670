package chart

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

func TestParse(t *testing.T) {
	for _, s := range []string{"sparkline-series", "metric-tile", "research-card", "competitive-intel", "kanban-ops"} {
		typ, ok := Parse(s)
		require.True(t, ok, s)
		assert.Equal(t, Type(s), typ)
	}

	typ, ok := Parse("pie-chart")
	assert.False(t, ok)
	assert.Equal(t, Unrecognized, typ)
}

func TestRendererFallback(t *testing.T) {
	name, ok := Renderer(SparklineSeries)
	require.True(t, ok)
	assert.Equal(t, "SparklineChart", name)

	name, ok = Renderer(Unrecognized)
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestValidateSparkline(t *testing.T) {
	require.NoError(t, Validate(SparklineSeries, json.RawMessage(`{"points":[10,12,9,15]}`)))
	require.NoError(t, Validate(SparklineSeries, json.RawMessage(`{"points":[1],"positive":true}`)))

	err := Validate(SparklineSeries, json.RawMessage(`{"points":[]}`))
	var sm *models.SchemaMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "points", sm.Field)

	err = Validate(SparklineSeries, json.RawMessage(`{"points":["a","b"]}`))
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "points", sm.Field)
}

func TestValidateMetricTile(t *testing.T) {
	require.NoError(t, Validate(MetricTile, json.RawMessage(
		`{"value":"4.2k","change_pct":"+3.1%","positive":true,"rows":[{"label":"p95","value":"212ms"}]}`)))

	var sm *models.SchemaMismatchError
	err := Validate(MetricTile, json.RawMessage(`{"change_pct":"+3.1%","positive":true}`))
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "value", sm.Field)

	err = Validate(MetricTile, json.RawMessage(`{"value":"4.2k","change_pct":"+3.1%"}`))
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "positive", sm.Field)
}

func TestValidateResearchCard(t *testing.T) {
	require.NoError(t, Validate(ResearchCard, json.RawMessage(`{"citation":"DORA 2025","source":"Google Cloud"}`)))

	var sm *models.SchemaMismatchError
	err := Validate(ResearchCard, json.RawMessage(`{"citation":"DORA 2025"}`))
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "source", sm.Field)
}

func TestValidateCompetitiveIntelMissingTitle(t *testing.T) {
	var sm *models.SchemaMismatchError
	err := Validate(CompetitiveIntel, json.RawMessage(`{"summary":"rival shipped v2","tags":["pricing"]}`))
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "title", sm.Field)

	require.NoError(t, Validate(CompetitiveIntel, json.RawMessage(`{"title":"Rival v2 launch"}`)))
}

func TestValidateKanbanOpsShapes(t *testing.T) {
	valid := []string{
		`{"points":[10,12,9,15]}`,
		`{"remaining":[40,33,25,18],"ideal":[40,30,20,10]}`,
		`{"value":"99.2%","change_pct":"-0.3%","positive":false}`,
		`{"rows":[{"label":"open","value":"14"},{"label":"done","value":"32"}],"headline":"Sprint 42"}`,
	}
	for _, p := range valid {
		assert.NoError(t, Validate(KanbanOps, json.RawMessage(p)), p)
	}

	var sm *models.SchemaMismatchError
	err := Validate(KanbanOps, json.RawMessage(`{"velocity":"fast"}`))
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "payload", sm.Field)
}

func TestValidateEmptyPayload(t *testing.T) {
	var sm *models.SchemaMismatchError
	err := Validate(MetricTile, nil)
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, "payload", sm.Field)
}

func TestDecode(t *testing.T) {
	v, ok := Decode(SparklineSeries, json.RawMessage(`{"points":[1,2,3]}`))
	require.True(t, ok)
	p, ok := v.(SparklinePayload)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, p.Points)

	_, ok = Decode(Unrecognized, json.RawMessage(`{}`))
	assert.False(t, ok)
}
