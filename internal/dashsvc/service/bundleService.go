package service

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// BundleService owns the latest-data envelopes. History logging is an
// optional capability: with a nil history store only the latest envelope is
// kept, matching the behavior dashboards actually rely on.
type BundleService struct {
	store   BundleStore
	history HistoryStore
}

func NewBundleService(store BundleStore, history HistoryStore) *BundleService {
	return &BundleService{store: store, history: history}
}

// WriteLatest replaces the card's envelope wholesale and, when enabled,
// appends one history entry. The envelope write is the commit point: a
// failed write leaves no trace, so producer retries are safe.
func (s *BundleService) WriteLatest(ctx context.Context, env *models.Envelope) error {
	if err := s.store.WriteLatest(ctx, env); err != nil {
		return err
	}

	if s.history != nil {
		if err := s.history.AppendEnvelope(ctx, env); err != nil {
			// the latest envelope is already committed; a lost history entry
			// is logged, not surfaced as an ingestion failure
			log.Errorf("failed to append envelope history for card %s: %s", env.CardID, err)
		}
	}
	return nil
}

func (s *BundleService) ReadLatest(ctx context.Context, cardID string) (*models.Envelope, error) {
	return s.store.ReadLatest(ctx, cardID)
}
