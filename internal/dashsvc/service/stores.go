package service

import (
	"context"

	"github.com/pulseboard/dash-services/internal/comm"
	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// Store interfaces satisfied by both the postgres stores and the memory
// driver, so STORE_DRIVER picks the backend without touching the services.

type CardStore interface {
	CreateCard(ctx context.Context, card *models.Card) error
	GetCard(ctx context.Context, id string) (*models.Card, error) // nil, nil when missing
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	UpdateCard(ctx context.Context, card *models.Card) error
}

type BundleStore interface {
	WriteLatest(ctx context.Context, env *models.Envelope) error
	ReadLatest(ctx context.Context, cardID string) (*models.Envelope, error) // nil, nil when no data yet
}

type HistoryStore interface {
	AppendEnvelope(ctx context.Context, env *models.Envelope) error
}

type TaskStore interface {
	GetTask(ctx context.Context, id string) (*models.Task, error) // nil, nil when missing
	ListTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
}

// EventPublisher fans an accepted ingestion out to the stream service. A nil
// publisher is allowed; ingestion does not depend on the event path.
type EventPublisher interface {
	PublishCardUpdated(ev comm.CardUpdate) error
}
