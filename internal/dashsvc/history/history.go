// Package history is the optional append-only envelope log, kept in MongoDB
// keyed by (card_id, ingested_at). Entries are never mutated or deleted by
// the service; retention is handled by a TTL index on expires_at.
package history

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// Collection is shared with the startup code that provisions the TTL index.
const Collection = "envelope_history"

type entry struct {
	CardID      string    `bson:"card_id"`
	Payload     []byte    `bson:"payload"`
	PeriodLabel string    `bson:"period_label"`
	IngestedAt  time.Time `bson:"ingested_at"`
	ExpiresAt   time.Time `bson:"expires_at,omitempty"`
}

type Store struct {
	coll *mongo.Collection
	ttl  time.Duration // zero disables expiry stamping
}

func NewStore(db *mongo.Database, ttl time.Duration) *Store {
	return &Store{
		coll: db.Collection(Collection),
		ttl:  ttl,
	}
}

// AppendEnvelope inserts one history entry per accepted push. Re-pushing the
// same payload appends again: history keeps every push, only the latest
// envelope is idempotent.
func (s *Store) AppendEnvelope(ctx context.Context, env *models.Envelope) error {
	e := entry{
		CardID:      env.CardID,
		Payload:     env.Payload,
		PeriodLabel: env.PeriodLabel,
		IngestedAt:  env.IngestedAt,
	}
	if s.ttl > 0 {
		e.ExpiresAt = env.IngestedAt.Add(s.ttl)
	}

	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}
	return nil
}

// History returns the logged envelopes for a card, oldest first.
func (s *Store) History(ctx context.Context, cardID string) ([]models.Envelope, error) {
	opts := options.Find().SetSort(bson.M{"ingested_at": 1})
	cur, err := s.coll.Find(ctx, bson.M{"card_id": cardID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Envelope
	for cur.Next(ctx) {
		var e entry
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode history entry: %w", err)
		}
		out = append(out, models.Envelope{
			CardID:      e.CardID,
			Payload:     e.Payload,
			PeriodLabel: e.PeriodLabel,
			IngestedAt:  e.IngestedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history cursor: %w", err)
	}

	return out, nil
}
