package memory

import (
	"context"
	"sync"

	"go-interview-backend/internal/domain"
)

type wizardStore struct {
	mu     sync.RWMutex
	states map[int64]*domain.WizardState
}

// NewWizardStore creates a volatile, process-local wizard store
func NewWizardStore() domain.WizardStore {
	return &wizardStore{states: make(map[int64]*domain.WizardState)}
}

func (s *wizardStore) Get(_ context.Context, actorID int64) (*domain.WizardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[actorID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (s *wizardStore) Put(_ context.Context, actorID int64, state *domain.WizardState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *state
	s.states[actorID] = &copied
	return nil
}

func (s *wizardStore) Delete(_ context.Context, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, actorID)
	return nil
}
