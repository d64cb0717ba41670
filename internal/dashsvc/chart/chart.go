// Package chart holds the closed set of recognized chart types and the
// payload contract each one imposes. The ingestion gateway enforces these
// contracts on the way in so the rendering side can assume them on the way
// out and dispatch on the type tag alone.
package chart

import (
	"encoding/json"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

type Type string

const (
	SparklineSeries  Type = "sparkline-series"
	MetricTile       Type = "metric-tile"
	ResearchCard     Type = "research-card"
	CompetitiveIntel Type = "competitive-intel"
	KanbanOps        Type = "kanban-ops"

	// Unrecognized is the fallback for a stored type outside the closed set.
	// It renders as "no renderer", it never crashes dispatch.
	Unrecognized Type = ""
)

// Parse maps a stored tag onto the closed set.
func Parse(s string) (Type, bool) {
	switch Type(s) {
	case SparklineSeries, MetricTile, ResearchCard, CompetitiveIntel, KanbanOps:
		return Type(s), true
	}
	return Unrecognized, false
}

// Renderer names the presentation component for a chart type. The second
// return is false for types outside the closed set, which the presentation
// layer renders as an explicit no-renderer affordance.
func Renderer(t Type) (string, bool) {
	switch t {
	case SparklineSeries:
		return "SparklineChart", true
	case MetricTile:
		return "MetricTile", true
	case ResearchCard:
		return "ResearchCard", true
	case CompetitiveIntel:
		return "IntelCard", true
	case KanbanOps:
		return "KanbanOpsPanel", true
	}
	return "", false
}

// Row is a label/value line shared by the tile-style payloads.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SparklinePayload is an ordered numeric series.
type SparklinePayload struct {
	Points   []float64 `json:"points"`
	Positive *bool     `json:"positive,omitempty"`
}

// MetricTilePayload is a headline figure with its period-over-period change.
type MetricTilePayload struct {
	Value     string `json:"value"`
	ChangePct string `json:"change_pct"`
	Positive  *bool  `json:"positive"`
	Rows      []Row  `json:"rows,omitempty"`
}

// ResearchCardPayload cites an external finding.
type ResearchCardPayload struct {
	Citation string   `json:"citation"`
	Source   string   `json:"source"`
	Tags     []string `json:"tags,omitempty"`
	Rows     []Row    `json:"rows,omitempty"`
}

// CompetitiveIntelPayload summarises a competitor signal.
type CompetitiveIntelPayload struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
	Summary string   `json:"summary,omitempty"`
}

// Kanban-ops payloads come in the producer-specific shapes below; a kanban-ops
// card accepts any one of them.

// KanbanVelocityPayload is a per-sprint velocity series.
type KanbanVelocityPayload struct {
	Points []float64 `json:"points"`
}

// KanbanBurndownPayload is remaining work per day, with an optional ideal line.
type KanbanBurndownPayload struct {
	Remaining []float64 `json:"remaining"`
	Ideal     []float64 `json:"ideal,omitempty"`
}

// KanbanAppHealthPayload mirrors the metric-tile shape for app health pushes.
type KanbanAppHealthPayload struct {
	Value     string `json:"value"`
	ChangePct string `json:"change_pct"`
	Positive  *bool  `json:"positive"`
}

// KanbanSummaryPayload is a label/value digest of the board.
type KanbanSummaryPayload struct {
	Headline string `json:"headline,omitempty"`
	Rows     []Row  `json:"rows"`
}

func mismatch(t Type, field, reason string) error {
	return &models.SchemaMismatchError{ChartType: string(t), Field: field, Reason: reason}
}

// Validate checks raw against the contract of t. It never coerces: a payload
// that fails the contract is rejected naming the offending field, and the raw
// bytes are stored untouched when it passes.
func Validate(t Type, raw json.RawMessage) error {
	if len(raw) == 0 {
		return mismatch(t, "payload", "payload is empty")
	}

	switch t {
	case SparklineSeries:
		var p SparklinePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return mismatch(t, "points", "points must be an ordered numeric sequence")
		}
		if len(p.Points) == 0 {
			return mismatch(t, "points", "at least one point is required")
		}
		return nil

	case MetricTile:
		var p MetricTilePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return mismatch(t, "payload", "malformed metric-tile payload")
		}
		if p.Value == "" {
			return mismatch(t, "value", "value is required")
		}
		if p.ChangePct == "" {
			return mismatch(t, "change_pct", "change_pct is required")
		}
		if p.Positive == nil {
			return mismatch(t, "positive", "positive is required")
		}
		return nil

	case ResearchCard:
		var p ResearchCardPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return mismatch(t, "payload", "malformed research-card payload")
		}
		if p.Citation == "" {
			return mismatch(t, "citation", "citation is required")
		}
		if p.Source == "" {
			return mismatch(t, "source", "source is required")
		}
		return nil

	case CompetitiveIntel:
		var p CompetitiveIntelPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return mismatch(t, "payload", "malformed competitive-intel payload")
		}
		if p.Title == "" {
			return mismatch(t, "title", "title is required")
		}
		return nil

	case KanbanOps:
		if validKanbanOps(raw) {
			return nil
		}
		return mismatch(t, "payload", "payload matches none of the velocity/burndown/appHealth/summary shapes")
	}

	return mismatch(t, "chart_type", "unrecognized chart type")
}

func validKanbanOps(raw json.RawMessage) bool {
	var v KanbanVelocityPayload
	if err := json.Unmarshal(raw, &v); err == nil && len(v.Points) > 0 {
		return true
	}
	var b KanbanBurndownPayload
	if err := json.Unmarshal(raw, &b); err == nil && len(b.Remaining) > 0 {
		return true
	}
	var h KanbanAppHealthPayload
	if err := json.Unmarshal(raw, &h); err == nil && h.Value != "" && h.ChangePct != "" && h.Positive != nil {
		return true
	}
	var s KanbanSummaryPayload
	if err := json.Unmarshal(raw, &s); err == nil && len(s.Rows) > 0 {
		return true
	}
	return false
}

// Decode is the dispatch side of the contract: it turns a validated payload
// into its typed variant for the renderer named by Renderer. Callers that hit
// the nil, false branch show the no-renderer affordance.
func Decode(t Type, raw json.RawMessage) (any, bool) {
	switch t {
	case SparklineSeries:
		var p SparklinePayload
		if json.Unmarshal(raw, &p) == nil {
			return p, true
		}
	case MetricTile:
		var p MetricTilePayload
		if json.Unmarshal(raw, &p) == nil {
			return p, true
		}
	case ResearchCard:
		var p ResearchCardPayload
		if json.Unmarshal(raw, &p) == nil {
			return p, true
		}
	case CompetitiveIntel:
		var p CompetitiveIntelPayload
		if json.Unmarshal(raw, &p) == nil {
			return p, true
		}
	case KanbanOps:
		var m map[string]json.RawMessage
		if json.Unmarshal(raw, &m) == nil {
			return m, true
		}
	}
	return nil, false
}
