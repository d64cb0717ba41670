// Package producer declares the external systems allowed to push data into
// the gateway, and which chart type each of their logical metrics lands on.
package producer

import (
	"fmt"
	"sync"

	"github.com/pulseboard/dash-services/internal/dashsvc/chart"
)

// MetricSpec binds one logical metric name of a producer to a chart type.
// DefaultTitle seeds the card title when the producer auto-provisions.
type MetricSpec struct {
	Chart        chart.Type
	DefaultTitle string
}

// Producer is one external push integration. AutoProvision producers may
// create a card on first push; for all others an unknown card id is a hard
// failure.
type Producer struct {
	Name          string
	Source        string // source attribution stamped on auto-provisioned cards
	AutoProvision bool
	Metrics       map[string]MetricSpec
}

// Registry holds the known producers. Builtins are seeded at construction;
// Register adds integrations configured at startup.
type Registry struct {
	mu        sync.RWMutex
	producers map[string]*Producer
}

func NewRegistry() *Registry {
	r := &Registry{producers: make(map[string]*Producer)}
	for _, p := range builtins() {
		r.producers[p.Name] = p
	}
	return r
}

func (r *Registry) Get(name string) (*Producer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.producers[name]
	return p, ok
}

func (r *Registry) Register(p *Producer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.producers[p.Name]; exists {
		return fmt.Errorf("producer %q already registered", p.Name)
	}
	r.producers[p.Name] = p
	return nil
}

// builtins are the integrations shipped with the dashboard. The kanban board
// pushes on a 6h cadence; the cadence is the producer's contract, the gateway
// just records whatever arrives last.
func builtins() []*Producer {
	return []*Producer{
		{
			Name:          "product-kanban",
			Source:        "Product Kanban",
			AutoProvision: true,
			Metrics: map[string]MetricSpec{
				"velocity":  {Chart: chart.SparklineSeries, DefaultTitle: "Sprint Velocity"},
				"burndown":  {Chart: chart.KanbanOps, DefaultTitle: "Sprint Burndown"},
				"appHealth": {Chart: chart.MetricTile, DefaultTitle: "App Health"},
				"summary":   {Chart: chart.KanbanOps, DefaultTitle: "Board Summary"},
			},
		},
		{
			Name:          "research-feed",
			Source:        "Research Desk",
			AutoProvision: false,
			Metrics: map[string]MetricSpec{
				"citation": {Chart: chart.ResearchCard},
				"intel":    {Chart: chart.CompetitiveIntel},
			},
		},
	}
}
