// Package memory is the in-memory store driver. It backs the test suite and
// STORE_DRIVER=memory deployments, and mirrors the semantics of the postgres
// stores: write-time referential check, wholesale envelope swap, stable
// insertion order for listings.
package memory

import (
	"context"
	"sync"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// Store holds every entity behind one mutex. Envelope writes swap the whole
// record under the lock, so a reader never observes a torn envelope; reads
// hand out deep copies so callers cannot see a later overwrite either.
type Store struct {
	mu        sync.RWMutex
	cards     map[string]*models.Card
	cardOrder []string
	bundles   map[string]*models.Envelope
	history   []models.Envelope
	tasks     map[string]*models.Task
	taskOrder []string
}

func NewStore() *Store {
	return &Store{
		cards:   make(map[string]*models.Card),
		bundles: make(map[string]*models.Envelope),
		tasks:   make(map[string]*models.Task),
	}
}

func cloneCard(c *models.Card) *models.Card {
	cp := *c
	if c.Tags != nil {
		cp.Tags = append([]string(nil), c.Tags...)
	}
	return &cp
}

func (s *Store) CreateCard(ctx context.Context, card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cards[card.ID]; exists {
		return &models.ValidationError{Field: "id", Reason: "card id already exists"}
	}
	s.cards[card.ID] = cloneCard(card)
	s.cardOrder = append(s.cardOrder, card.ID)
	return nil
}

func (s *Store) GetCard(ctx context.Context, id string) (*models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return nil, nil
	}
	return cloneCard(card), nil
}

func (s *Store) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cards []models.Card
	for _, id := range s.cardOrder {
		card := s.cards[id]
		if filter.Matches(card) {
			cards = append(cards, *cloneCard(card))
		}
	}
	return cards, nil
}

func (s *Store) UpdateCard(ctx context.Context, card *models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[card.ID]; !ok {
		return models.ErrNotFound
	}
	s.cards[card.ID] = cloneCard(card)
	return nil
}

// DeleteCard exists for the orphaned-bundle scenario: removing a card leaves
// its envelope in place, resolution of the orphan fails gracefully.
func (s *Store) DeleteCard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.cards, id)
	for i, cid := range s.cardOrder {
		if cid == id {
			s.cardOrder = append(s.cardOrder[:i], s.cardOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) WriteLatest(ctx context.Context, env *models.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cards[env.CardID]; !ok {
		return &models.UnknownCardError{CardID: env.CardID}
	}
	s.bundles[env.CardID] = env.Clone()
	return nil
}

func (s *Store) ReadLatest(ctx context.Context, cardID string) (*models.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, ok := s.bundles[cardID]
	if !ok {
		return nil, nil // no data yet
	}
	return env.Clone(), nil
}

// AppendEnvelope implements the optional history capability as an append-only
// log; entries are never mutated or dropped.
func (s *Store) AppendEnvelope(ctx context.Context, env *models.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, *env.Clone())
	return nil
}

func (s *Store) History(ctx context.Context, cardID string) ([]models.Envelope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Envelope
	for _, env := range s.history {
		if env.CardID == cardID {
			out = append(out, *env.Clone())
		}
	}
	return out, nil
}

func cloneTask(t *models.Task) *models.Task {
	cp := *t
	return &cp
}

func (s *Store) PutTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; !exists {
		s.taskOrder = append(s.taskOrder, task.ID)
	}
	s.tasks[task.ID] = cloneTask(task)
	return nil
}

func (s *Store) GetTask(ctx context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, nil
	}
	return cloneTask(task), nil
}

func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []models.Task
	for _, id := range s.taskOrder {
		tasks = append(tasks, *cloneTask(s.tasks[id]))
	}
	return tasks, nil
}

func (s *Store) UpdateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return models.ErrNotFound
	}
	s.tasks[task.ID] = cloneTask(task)
	return nil
}
